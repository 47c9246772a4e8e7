// Package client is the base layer for typed Jikan REST API clients.
//
// A Client turns an endpoint template such as "/anime/{id}/episodes" and a
// set of path and query parameters into a GET request, runs it through a
// private response cache and, when observed, an Observer, and decodes the
// JSON body into the caller's type:
//
//	c, err := client.New(client.WithLogging(true))
//	if err != nil {
//		return err
//	}
//	page, err := client.Fetch[EpisodesPage](ctx, c, "/anime/{id}/episodes",
//		client.PathParams{"id": 21}, client.QueryParams{"page": 2})
//
// Resource clients are built by holding a Fetcher, see package anime.
package client
