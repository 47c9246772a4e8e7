// Package anime is a typed client for the Jikan anime resources, built on
// top of package client.
package anime

import (
	"context"
	"fmt"

	"github.com/jikan-go/jikan/client"
)

const (
	animeByIDPath    = "/anime/{id}"
	animeEpisodePath = "/anime/{id}/episodes"
	animeSearchPath  = "/anime"
)

// Client fetches anime resources through any client.Fetcher.
type Client struct {
	f client.Fetcher
}

// New returns a Client over f.
func New(f client.Fetcher) *Client {
	return &Client{f: f}
}

// GetAnimeByID returns the anime with the given MyAnimeList id.
func (c *Client) GetAnimeByID(ctx context.Context, id int) (*Anime, error) {
	if id <= 0 {
		return nil, fmt.Errorf("anime id must be > 0, got %d", id)
	}
	resp, err := client.Fetch[Response[Anime]](ctx, c.f, animeByIDPath, client.PathParams{"id": id}, nil)
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// GetAnimeEpisodes returns one page of episodes. page <= 0 means the first
// page.
func (c *Client) GetAnimeEpisodes(ctx context.Context, id, page int) (*Page[Episode], error) {
	if id <= 0 {
		return nil, fmt.Errorf("anime id must be > 0, got %d", id)
	}
	var query client.QueryParams
	if page > 0 {
		query = client.QueryParams{"page": page}
	}
	resp, err := client.Fetch[Page[Episode]](ctx, c.f, animeEpisodePath, client.PathParams{"id": id}, query)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// SearchParams narrows an anime search. Zero fields are not sent.
type SearchParams struct {
	Query   string
	Page    int
	Limit   int
	Type    string
	Status  string
	OrderBy string
	Sort    string
	SFW     bool
}

func (p SearchParams) query() client.QueryParams {
	q := client.QueryParams{}
	set := func(k string, v any, ok bool) {
		if ok {
			q[k] = v
		}
	}
	set("q", p.Query, p.Query != "")
	set("page", p.Page, p.Page > 0)
	set("limit", p.Limit, p.Limit > 0)
	set("type", p.Type, p.Type != "")
	set("status", p.Status, p.Status != "")
	set("order_by", p.OrderBy, p.OrderBy != "")
	set("sort", p.Sort, p.Sort != "")
	set("sfw", p.SFW, p.SFW)
	return q
}

// SearchAnime returns one page of anime matching p.
func (c *Client) SearchAnime(ctx context.Context, p SearchParams) (*Page[Anime], error) {
	resp, err := client.Fetch[Page[Anime]](ctx, c.f, animeSearchPath, nil, p.query())
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
