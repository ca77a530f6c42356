package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/researchaccelerator-hub/youtube-tracker/client"
	"github.com/researchaccelerator-hub/youtube-tracker/config"
	"github.com/researchaccelerator-hub/youtube-tracker/ingest"
	"github.com/researchaccelerator-hub/youtube-tracker/insight"
	"github.com/researchaccelerator-hub/youtube-tracker/metrics"
	"github.com/researchaccelerator-hub/youtube-tracker/model"
	"github.com/researchaccelerator-hub/youtube-tracker/server"
	"github.com/researchaccelerator-hub/youtube-tracker/store"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := rootCmd().Execute(); err != nil {
		log.Fatal().Err(err).Msg("Command failed")
	}
}

// core bundles everything the subcommands need.
type core struct {
	cfg      *config.Config
	ingestor *ingest.Ingestor
	searcher *ingest.KeywordSearcher
	chain    *insight.Chain
}

func buildCore(ctx context.Context) (*core, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	var api client.YouTubeAPI
	if cfg.YouTube.APIKey == "" {
		log.Warn().Msg("YOUTUBE_API_KEY is not set; ingestion disabled, stored metrics remain available")
		api = client.NewUnavailable()
	} else {
		api, err = client.NewDataAPIClient(ctx, cfg.YouTube.APIKey)
		if err != nil {
			return nil, err
		}
	}

	quota := ingest.NewQuotaTracker(cfg.YouTube.QuotaBudget)
	st := store.NewFileStore(cfg.Store.Path)
	ingestor := ingest.NewIngestor(api, st, quota, cfg.Ingest.MaxRecords, cfg.Ingest.PageSize, cfg.Ingest.BatchSize)
	details := ingest.NewDetailFetcher(api, quota, cfg.Ingest.BatchSize)
	searcher := ingest.NewKeywordSearcher(api, quota, details, cfg.Search.MaxPages)

	chain, err := insight.NewChainFromConfig(cfg.Insight)
	if err != nil {
		log.Warn().Err(err).Msg("Narrative provider misconfigured; insight disabled")
		chain = nil
	}

	return &core{cfg: cfg, ingestor: ingestor, searcher: searcher, chain: chain}, nil
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "youtube-tracker",
		Short:        "Track a YouTube channel's uploads over time",
		SilenceUsage: true,
	}
	root.AddCommand(serveCmd(), ingestCmd(), metricsCmd(), searchCmd(), insightCmd())
	return root
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := buildCore(cmd.Context())
			if err != nil {
				return err
			}

			srv := &http.Server{
				Addr:         fmt.Sprintf(":%d", c.cfg.Server.Port),
				Handler:      server.New(c.ingestor, c.searcher, c.chain, c.cfg).Router(),
				ReadTimeout:  c.cfg.Server.ReadTimeout,
				WriteTimeout: c.cfg.Server.WriteTimeout,
			}

			errCh := make(chan error, 1)
			go func() {
				log.Info().Int("port", c.cfg.Server.Port).Msg("Starting server")
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- err
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return err
			case sig := <-quit:
				log.Info().Str("signal", sig.String()).Msg("Shutting down")
			}

			ctx, cancel := context.WithTimeout(context.Background(), c.cfg.Server.ShutdownTimeout)
			defer cancel()
			return srv.Shutdown(ctx)
		},
	}
}

func ingestCmd() *cobra.Command {
	var days int
	var backfill bool

	cmd := &cobra.Command{
		Use:   "ingest <channel>",
		Short: "Ingest a channel's uploads into the local store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := buildCore(cmd.Context())
			if err != nil {
				return err
			}

			mode := model.Incremental
			if backfill {
				mode = model.Backfill
			}
			var since time.Time
			if days > 0 {
				since = time.Now().Add(-time.Duration(days) * 24 * time.Hour)
			}

			result, err := c.ingestor.Ingest(cmd.Context(), args[0], since, mode)
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}
	cmd.Flags().IntVar(&days, "days", 0, "only fetch videos published in the last N days")
	cmd.Flags().BoolVar(&backfill, "backfill", false, "walk past the cursor to recover older videos")
	return cmd
}

func metricsCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "metrics <channel>",
		Short: "Print day-bucketed metrics for a channel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := buildCore(cmd.Context())
			if err != nil {
				return err
			}

			_, rows, err := c.ingestor.ChannelRows(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(metrics.Compute(rows, days, time.Now()))
		},
	}
	cmd.Flags().IntVar(&days, "days", 30, "window in days")
	return cmd
}

func searchCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "search <keyword>[,<keyword>...]",
		Short: "Keyword metrics across channels",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := buildCore(cmd.Context())
			if err != nil {
				return err
			}

			var keywords []string
			for _, kw := range strings.Split(args[0], ",") {
				if kw = strings.TrimSpace(kw); kw != "" {
					keywords = append(keywords, kw)
				}
			}

			rows, err := c.searcher.Search(cmd.Context(), keywords, days)
			if err != nil {
				return err
			}
			return printJSON(metrics.ComputeKeyword(strings.Join(keywords, " "), rows, days, time.Now()))
		},
	}
	cmd.Flags().IntVar(&days, "days", 30, "window in days")
	return cmd
}

func insightCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "insight <channel>",
		Short: "Generate a narrative report for a channel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := buildCore(cmd.Context())
			if err != nil {
				return err
			}
			if c.chain == nil {
				return fmt.Errorf("no narrative provider configured")
			}

			_, rows, err := c.ingestor.ChannelRows(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			report := metrics.Compute(rows, days, time.Now())
			sample := insight.BuildSample(report.Rows, c.cfg.Insight.SampleMaxRows, c.cfg.Insight.SampleTitleLen)

			result, err := c.chain.Summarize(cmd.Context(), sample, days)
			if err != nil {
				return err
			}
			fmt.Println(result.Text)
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", 30, "window in days")
	return cmd
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
