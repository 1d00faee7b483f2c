package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/shiva994u/stock-news-analyzer/internal/app"
	"github.com/shiva994u/stock-news-analyzer/internal/config"
	"github.com/shiva994u/stock-news-analyzer/internal/model"
)

var (
	version = "dev"
	commit  = "none"
)

type engine interface {
	FetchComprehensiveNews(ctx context.Context, q model.NewsQuery) (*model.NewsResult, error)
	FetchTopGainers(ctx context.Context, q model.GainerQuery) (*model.QuoteResult, error)
	AnalyzeBulkSentiment(records []model.QuoteRecord) map[string]model.SentimentResult
}

// buildEngine is swapped out in tests.
var buildEngine = func(ctx context.Context, configPath string) (engine, func() error, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	a := app.New(ctx, cfg, slog.Default())
	return a.Engine, a.Close, nil
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "pulse",
		Short:        "Market news and top gainers from several providers",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", os.Getenv("CONFIG_PATH"), "path to YAML config file")

	root.AddCommand(newNewsCmd(&configPath))
	root.AddCommand(newGainersCmd(&configPath))
	root.AddCommand(newSentimentCmd(&configPath))
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pulse %s (commit: %s)\n", version, commit)
		},
	})
	return root
}

func newNewsCmd(configPath *string) *cobra.Command {
	var (
		q          model.NewsQuery
		noFallback bool
	)
	cmd := &cobra.Command{
		Use:   "news SYMBOL",
		Short: "Fetch merged news for a ticker",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q.Symbol = args[0]
			q.NoFallback = noFallback
			return withEngine(cmd, *configPath, func(e engine) (any, error) {
				return e.FetchComprehensiveNews(cmd.Context(), q)
			})
		},
	}
	cmd.Flags().IntVar(&q.Limit, "limit", 0, "maximum records (default 20)")
	cmd.Flags().IntVar(&q.Days, "days", 0, "lookback window in days (default 7)")
	cmd.Flags().StringSliceVar(&q.PreferredSources, "sources", nil, "only query these sources")
	cmd.Flags().BoolVar(&noFallback, "no-fallback", false, "return nothing instead of synthetic data")
	return cmd
}

func newGainersCmd(configPath *string) *cobra.Command {
	var (
		q          model.GainerQuery
		noFallback bool
	)
	cmd := &cobra.Command{
		Use:   "gainers",
		Short: "Fetch today's top gainers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q.NoFallback = noFallback
			return withEngine(cmd, *configPath, func(e engine) (any, error) {
				return e.FetchTopGainers(cmd.Context(), q)
			})
		},
	}
	cmd.Flags().IntVar(&q.Limit, "limit", 0, "maximum records (default 10)")
	cmd.Flags().Float64Var(&q.MinPercentChange, "min-change", 0, "minimum percent change")
	cmd.Flags().StringSliceVar(&q.PreferredSources, "sources", nil, "only query these sources")
	cmd.Flags().BoolVar(&noFallback, "no-fallback", false, "return nothing instead of synthetic data")
	return cmd
}

func newSentimentCmd(configPath *string) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "sentiment",
		Short: "Score a JSON array of quotes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := readQuotes(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}
			return withEngine(cmd, *configPath, func(e engine) (any, error) {
				return e.AnalyzeBulkSentiment(records), nil
			})
		},
	}
	cmd.Flags().StringVar(&file, "file", "-", "quotes file, - for stdin")
	return cmd
}

func withEngine(cmd *cobra.Command, configPath string, run func(engine) (any, error)) error {
	e, closeFn, err := buildEngine(cmd.Context(), configPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeFn(); err != nil {
			slog.Warn("shutdown", "error", err)
		}
	}()

	out, err := run(e)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func readQuotes(stdin io.Reader, file string) ([]model.QuoteRecord, error) {
	r := stdin
	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	var records []model.QuoteRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode quotes: %w", err)
	}
	return records, nil
}
