package main

import (
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/charitytools/bidcraft/internal/model"
)

var (
	batchFunder string
	batchMode   string
	batchOutDir string
)

var batchCmd = &cobra.Command{
	Use:   "batch [input-files...]",
	Short: "Build funding request documents for many note files at once",
	Long:  "Processes each input file independently and concurrently, writing one generated document per input into the output directory. A failing file does not stop the others.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if batchFunder == "" {
			return eris.New("--funder is required")
		}
		mode := model.Mode(batchMode)
		if !mode.Valid() {
			return eris.Errorf("invalid mode %q (want draft or notes)", batchMode)
		}
		if err := os.MkdirAll(batchOutDir, 0o755); err != nil {
			return eris.Wrap(err, "create output directory")
		}

		resolver, err := newResolver()
		if err != nil {
			return err
		}
		pl := newPipeline(resolver)

		g, ctx := errgroup.WithContext(cmd.Context())
		g.SetLimit(cfg.Batch.MaxConcurrent)

		var failed atomic.Int32
		for _, path := range args {
			path := path
			g.Go(func() error {
				log := zap.L().With(zap.String("file", path))

				input, err := readInput(path)
				if err != nil {
					log.Error("batch: read failed", zap.Error(err))
					failed.Add(1)
					return nil
				}

				sess := &model.Session{
					Mode:       mode,
					FunderName: batchFunder,
					Input:      input,
					Answers:    model.Answers{},
					NotSure:    model.NotSure{},
				}
				if err := pl.Analyse(ctx, sess); err != nil {
					log.Error("batch: analyse failed", zap.Error(err))
					failed.Add(1)
					return nil
				}

				out, err := pl.Generate(ctx, sess)
				if err != nil {
					log.Error("batch: generate failed", zap.Error(err))
					failed.Add(1)
					return nil
				}

				name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + ".html"
				dest := filepath.Join(batchOutDir, name)
				if err := os.WriteFile(dest, []byte(out.Document), 0o644); err != nil {
					log.Error("batch: write failed", zap.Error(err))
					failed.Add(1)
					return nil
				}
				log.Info("batch: document written",
					zap.String("dest", dest),
					zap.Int("gaps", len(out.Gaps)),
				)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		if n := failed.Load(); n > 0 {
			return eris.Errorf("batch: %d of %d files failed", n, len(args))
		}
		return nil
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchFunder, "funder", "", "funder name applied to every file (required)")
	batchCmd.Flags().StringVar(&batchMode, "mode", "notes", "input mode: draft or notes")
	batchCmd.Flags().StringVar(&batchOutDir, "out-dir", "out", "directory for generated documents")
	rootCmd.AddCommand(batchCmd)
}
