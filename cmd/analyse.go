package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/charitytools/bidcraft/internal/model"
	"github.com/charitytools/bidcraft/internal/pipeline"
)

var (
	analyseFunder string
	analyseMode   string
)

var analyseCmd = &cobra.Command{
	Use:   "analyse [input-file]",
	Short: "Show detected facts, funder priorities, and open questions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input, err := readInput(args[0])
		if err != nil {
			return err
		}
		if analyseFunder == "" {
			return eris.New("--funder is required")
		}
		mode := model.Mode(analyseMode)
		if !mode.Valid() {
			return eris.Errorf("invalid mode %q (want draft or notes)", analyseMode)
		}

		resolver, err := newResolver()
		if err != nil {
			return err
		}
		pl := newPipeline(resolver)

		sess := &model.Session{
			Mode:       mode,
			FunderName: analyseFunder,
			Input:      input,
			Answers:    model.Answers{},
			NotSure:    model.NotSure{},
		}
		if err := pl.Analyse(cmd.Context(), sess); err != nil {
			return eris.Wrap(err, "cannot analyse your request right now, try again")
		}

		fmt.Fprintln(cmd.OutOrStdout(), pipeline.FormatSummary(*sess))
		fmt.Fprintln(cmd.OutOrStdout(), pipeline.FormatQuestions(sess.Answers, sess.NotSure))

		if gaps := pipeline.Gaps(sess.Answers, sess.NotSure); len(gaps) > 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "## Gaps")
			for _, g := range gaps {
				fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", g)
			}
		}
		return nil
	},
}

func init() {
	analyseCmd.Flags().StringVar(&analyseFunder, "funder", "", "funder name (required)")
	analyseCmd.Flags().StringVar(&analyseMode, "mode", "notes", "input mode: draft or notes")
	rootCmd.AddCommand(analyseCmd)
}
