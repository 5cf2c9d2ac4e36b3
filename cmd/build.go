package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/charitytools/bidcraft/internal/model"
)

var (
	buildFunder  string
	buildMode    string
	buildOut     string
	buildAnswers []string
	buildNotSure []string
)

var buildCmd = &cobra.Command{
	Use:   "build [input-file]",
	Short: "Build a funding request document from notes or a draft",
	Long:  "Reads free text from a file (or stdin with \"-\"), detects facts, applies any answer overrides, and writes the generated document, alignment notes, and gap list.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input, err := readInput(args[0])
		if err != nil {
			return err
		}
		if buildFunder == "" {
			return eris.New("--funder is required")
		}
		mode := model.Mode(buildMode)
		if !mode.Valid() {
			return eris.Errorf("invalid mode %q (want draft or notes)", buildMode)
		}

		resolver, err := newResolver()
		if err != nil {
			return err
		}
		pl := newPipeline(resolver)

		sess := &model.Session{
			Mode:       mode,
			FunderName: buildFunder,
			Input:      input,
			Answers:    model.Answers{},
			NotSure:    model.NotSure{},
		}

		if err := pl.Analyse(cmd.Context(), sess); err != nil {
			return eris.Wrap(err, "cannot analyse your request right now, try again")
		}

		if err := applyOverrides(sess, buildAnswers, buildNotSure); err != nil {
			return err
		}

		out, err := pl.Generate(cmd.Context(), sess)
		if err != nil {
			return eris.Wrap(err, "cannot generate your funding request right now, try again")
		}

		if err := writeOutput(buildOut, out.Document); err != nil {
			return err
		}
		zap.L().Info("build: document written",
			zap.String("funder", buildFunder),
			zap.String("source", out.Source),
			zap.Int("gaps", len(out.Gaps)),
		)

		fmt.Fprintln(cmd.OutOrStdout(), "Alignment notes:")
		fmt.Fprintln(cmd.OutOrStdout(), out.Alignment)
		if len(out.Gaps) > 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "\nGaps to address:")
			for _, g := range out.Gaps {
				fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", g)
			}
		}
		return nil
	},
}

// readInput loads the text to analyse; "-" reads stdin.
func readInput(path string) (string, error) {
	if path == "-" {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", eris.Wrap(err, "read stdin")
		}
		return strings.TrimSpace(string(raw)), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", eris.Wrap(err, "read input file")
	}
	return strings.TrimSpace(string(raw)), nil
}

// applyOverrides folds --answer and --not-sure flags into the session.
// User-supplied answers replace pre-filled ones; unknown ids are rejected.
func applyOverrides(sess *model.Session, answers, notSure []string) error {
	for _, kv := range answers {
		id, val, ok := strings.Cut(kv, "=")
		if !ok {
			return eris.Errorf("invalid --answer %q (want id=value)", kv)
		}
		if model.QuestionByID(id) == nil {
			return eris.Errorf("unknown question id %q", id)
		}
		sess.Answers[id] = val
	}
	for _, id := range notSure {
		if model.QuestionByID(id) == nil {
			return eris.Errorf("unknown question id %q", id)
		}
		sess.NotSure[id] = true
	}
	return nil
}

func writeOutput(path, doc string) error {
	if path == "" {
		fmt.Println(doc)
		return nil
	}
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return eris.Wrap(err, "write output file")
	}
	return nil
}

func init() {
	buildCmd.Flags().StringVar(&buildFunder, "funder", "", "funder name (required)")
	buildCmd.Flags().StringVar(&buildMode, "mode", "notes", "input mode: draft or notes")
	buildCmd.Flags().StringVar(&buildOut, "out", "", "output file (default stdout)")
	buildCmd.Flags().StringArrayVar(&buildAnswers, "answer", nil, "answer override, id=value (repeatable)")
	buildCmd.Flags().StringSliceVar(&buildNotSure, "not-sure", nil, "question ids to mark not sure yet")
	rootCmd.AddCommand(buildCmd)
}
