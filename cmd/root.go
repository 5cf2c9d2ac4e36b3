package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/charitytools/bidcraft/internal/config"
	"github.com/charitytools/bidcraft/internal/funder"
	"github.com/charitytools/bidcraft/internal/pipeline"
	"github.com/charitytools/bidcraft/pkg/assist"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "bidcraft",
	Short: "Charity funding request builder",
	Long:  "Turns rough notes or a draft bid into a structured funding request tailored to a named funder: rule-based fact detection, funder knowledge, deterministic document synthesis, optional remote enrichment.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// newResolver builds the funder resolver, loading custom profiles when
// configured.
func newResolver() (*funder.Resolver, error) {
	r := funder.NewResolver()
	if cfg.Funders.File != "" {
		if err := r.LoadFile(cfg.Funders.File); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// newPipeline wires the pipeline, with the assist client only when a base
// URL is configured.
func newPipeline(resolver *funder.Resolver) *pipeline.Pipeline {
	var client assist.Client
	if cfg.Assist.BaseURL != "" {
		client = assist.NewClient(cfg.Assist.BaseURL,
			assist.WithKey(cfg.Assist.Key),
			assist.WithTimeout(time.Duration(cfg.Assist.TimeoutSecs)*time.Second),
		)
	}
	return pipeline.New(client, resolver)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
