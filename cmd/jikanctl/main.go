package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jikan-go/jikan/anime"
	"github.com/jikan-go/jikan/client"
	"github.com/jikan-go/jikan/internal/logger"
)

const requestTimeout = 15 * time.Second

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	baseURL  string
	debug    bool
	cacheTTL time.Duration
	noCache  bool
	timeout  time.Duration
}

func main() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "jikanctl",
		Short:         "jikanctl queries the Jikan REST API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.Logger = logger.NewConsole(cmd.ErrOrStderr(), opts.debug)
			log.Debug().Msg("debug logging enabled")
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.baseURL, "base-url", "", "Base URL of the API (default $JIKAN_BASE_URL or "+client.DefaultBaseURL+")")
	rootCmd.PersistentFlags().BoolVarP(&opts.debug, "debug", "d", false, "Log every request and response")
	rootCmd.PersistentFlags().DurationVar(&opts.cacheTTL, "cache-ttl", 0, "Freshness lifetime for responses without cache headers")
	rootCmd.PersistentFlags().BoolVar(&opts.noCache, "no-cache", false, "Disable the response cache")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", requestTimeout, "Timeout for a single command")

	rootCmd.AddCommand(newFetchCmd(opts))
	rootCmd.AddCommand(newAnimeCmd(opts))

	return rootCmd
}

// newClient builds a client from the environment, then applies flags.
func (o *rootOptions) newClient() (*client.Client, error) {
	cfg, err := client.LoadConfig(client.DefaultEnvPrefix)
	if err != nil {
		return nil, err
	}
	if o.baseURL != "" {
		cfg.BaseURL = o.baseURL
	}
	if o.cacheTTL > 0 {
		cfg.Cache.TTL = o.cacheTTL
	}
	if o.noCache {
		cfg.Cache.Disabled = true
	}
	return client.NewFromConfig(cfg,
		client.WithLogger(log.Logger),
		client.WithLogging(o.debug || cfg.EnableLogging),
	)
}

func newFetchCmd(opts *rootOptions) *cobra.Command {
	var pathArgs, queryArgs []string

	cmd := &cobra.Command{
		Use:   "fetch <endpoint-template>",
		Short: "GET an endpoint template and print the JSON body",
		Example: `  jikanctl fetch /anime/{id}/episodes --path id=1 --query page=2
  jikanctl fetch /top/anime --query type=tv --query limit=5`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pathParams, err := parsePairs(pathArgs, false)
			if err != nil {
				return fmt.Errorf("--path: %w", err)
			}
			queryParams, err := parsePairs(queryArgs, true)
			if err != nil {
				return fmt.Errorf("--query: %w", err)
			}

			c, err := opts.newClient()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()

			log.Debug().
				Str("endpoint", args[0]).
				Str("base_url", c.BaseURL()).
				Interface("path", pathParams).
				Interface("query", queryParams).
				Msg("fetching resource")

			start := time.Now()
			body, err := client.Fetch[json.RawMessage](ctx, c, args[0], pathParams, queryParams)
			elapsed := time.Since(start)
			if err != nil {
				log.Error().Err(err).Str("endpoint", args[0]).Dur("elapsed", elapsed).Msg("fetch failed")
				return err
			}
			log.Debug().Str("endpoint", args[0]).Int("bytes", len(body)).Dur("elapsed", elapsed).Msg("fetch completed")

			var out bytes.Buffer
			if err := json.Indent(&out, body, "", "  "); err != nil {
				return err
			}
			out.WriteByte('\n')
			_, err = cmd.OutOrStdout().Write(out.Bytes())
			return err
		},
	}

	cmd.Flags().StringArrayVar(&pathArgs, "path", nil, "Path parameter as key=value (repeatable)")
	cmd.Flags().StringArrayVar(&queryArgs, "query", nil, "Query parameter as key=value (repeatable)")

	return cmd
}

func newAnimeCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "anime",
		Short: "Typed anime queries",
	}
	cmd.AddCommand(newAnimeGetCmd(opts))
	cmd.AddCommand(newAnimeEpisodesCmd(opts))
	cmd.AddCommand(newAnimeSearchCmd(opts))
	return cmd
}

func newAnimeGetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one anime by MyAnimeList id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid id %q: %w", args[0], err)
			}
			c, err := opts.newClient()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()

			a, err := anime.New(c).GetAnimeByID(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%d episodes\tscore %.2f\n", a.MalID, a.Title, a.Type, a.Episodes, a.Score)
			return nil
		},
	}
}

func newAnimeEpisodesCmd(opts *rootOptions) *cobra.Command {
	var page int

	cmd := &cobra.Command{
		Use:   "episodes <id>",
		Short: "List the episodes of an anime",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid id %q: %w", args[0], err)
			}
			c, err := opts.newClient()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()

			eps, err := anime.New(c).GetAnimeEpisodes(ctx, id, page)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, ep := range eps.Data {
				fmt.Fprintf(w, "%d\t%s\n", ep.MalID, ep.Title)
			}
			if eps.Pagination.HasNextPage {
				fmt.Fprintf(w, "(more: --page %d)\n", max(page, 1)+1)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 0, "Page number (default first)")
	return cmd
}

func newAnimeSearchCmd(opts *rootOptions) *cobra.Command {
	var params anime.SearchParams

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search anime by title",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params.Query = strings.Join(args, " ")
			c, err := opts.newClient()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()

			res, err := anime.New(c).SearchAnime(ctx, params)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, a := range res.Data {
				fmt.Fprintf(w, "%d\t%s\t%s\n", a.MalID, a.Title, a.Type)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&params.Page, "page", 0, "Page number")
	cmd.Flags().IntVar(&params.Limit, "limit", 0, "Results per page")
	cmd.Flags().StringVar(&params.Type, "type", "", "Filter by type (tv, movie, ova, ...)")
	cmd.Flags().BoolVar(&params.SFW, "sfw", false, "Exclude adult entries")
	return cmd
}

// parsePairs turns repeated key=value flags into parameters. With lists set,
// a repeated key collects its values; otherwise it is an error.
func parsePairs(pairs []string, lists bool) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]any, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("expected key=value, got %q", p)
		}
		if prev, exists := out[k]; exists {
			if !lists {
				return nil, fmt.Errorf("%q given more than once", k)
			}
			switch pv := prev.(type) {
			case []string:
				out[k] = append(pv, v)
			default:
				out[k] = []string{pv.(string), v}
			}
			continue
		}
		out[k] = v
	}
	return out, nil
}
