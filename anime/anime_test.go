package anime

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jikan-go/jikan/client"
)

// recordingFetcher captures the last call and decodes a canned body.
type recordingFetcher struct {
	endpoint string
	path     client.PathParams
	query    client.QueryParams
	body     string
	err      error
}

func (r *recordingFetcher) FetchResource(_ context.Context, endpoint string, path client.PathParams, query client.QueryParams, out any) error {
	r.endpoint, r.path, r.query = endpoint, path, query
	if r.err != nil {
		return r.err
	}
	return json.Unmarshal([]byte(r.body), out)
}

func TestGetAnimeByID(t *testing.T) {
	t.Parallel()
	f := &recordingFetcher{body: `{"data":{"mal_id":1,"title":"Cowboy Bebop","episodes":26,"score":8.75}}`}
	a, err := New(f).GetAnimeByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "/anime/{id}", f.endpoint)
	assert.Equal(t, client.PathParams{"id": 1}, f.path)
	assert.Nil(t, f.query)
	assert.Equal(t, "Cowboy Bebop", a.Title)
	assert.Equal(t, 26, a.Episodes)
	assert.InDelta(t, 8.75, a.Score, 1e-9)
}

func TestGetAnimeByID_RejectsInvalidID(t *testing.T) {
	t.Parallel()
	f := &recordingFetcher{}
	_, err := New(f).GetAnimeByID(context.Background(), 0)
	require.Error(t, err)
	assert.Empty(t, f.endpoint)
}

func TestGetAnimeByID_PropagatesError(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")
	_, err := New(&recordingFetcher{err: boom}).GetAnimeByID(context.Background(), 1)
	assert.ErrorIs(t, err, boom)
}

func TestGetAnimeEpisodes(t *testing.T) {
	t.Parallel()
	f := &recordingFetcher{body: `{"pagination":{"last_visible_page":2,"has_next_page":true},"data":[{"mal_id":1,"title":"Asteroid Blues","filler":false}]}`}
	page, err := New(f).GetAnimeEpisodes(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, "/anime/{id}/episodes", f.endpoint)
	assert.Equal(t, client.QueryParams{"page": 2}, f.query)
	assert.True(t, page.Pagination.HasNextPage)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "Asteroid Blues", page.Data[0].Title)
}

func TestSearchParams_OmitsZeroFields(t *testing.T) {
	t.Parallel()
	q := SearchParams{Query: "bebop", Limit: 5, SFW: true}.query()
	assert.Equal(t, client.QueryParams{"q": "bebop", "limit": 5, "sfw": true}, q)
	assert.Empty(t, SearchParams{}.query())
}

func TestSearchAnime_EndToEnd(t *testing.T) {
	t.Parallel()
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotQuery = r.URL.Path, r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"pagination":{"last_visible_page":1,"has_next_page":false,"items":{"count":1,"total":1,"per_page":25}},"data":[{"mal_id":1,"title":"Cowboy Bebop"}]}`)
	}))
	defer srv.Close()

	c, err := client.New(client.WithBaseURL(srv.URL))
	require.NoError(t, err)

	page, err := New(c).SearchAnime(context.Background(), SearchParams{Query: "cowboy bebop", Page: 1})
	require.NoError(t, err)
	assert.Equal(t, "/anime", gotPath)
	assert.Equal(t, "page=1&q=cowboy+bebop", gotQuery)
	require.NotNil(t, page.Pagination.Items)
	assert.Equal(t, 1, page.Pagination.Items.Total)
	assert.Equal(t, 1, page.Data[0].MalID)
}

func TestGetAnimeByID_NotFound(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"status":404,"type":"BadResponseException","message":"Resource does not exist"}`)
	}))
	defer srv.Close()

	c, err := client.New(client.WithBaseURL(srv.URL))
	require.NoError(t, err)
	_, err = New(c).GetAnimeByID(context.Background(), 999999)
	require.Error(t, err)
	assert.True(t, client.IsTransport(err))
	assert.True(t, client.IsIrrecoverable(err))
}
