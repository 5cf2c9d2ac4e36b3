package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var fundersCmd = &cobra.Command{
	Use:   "funders",
	Short: "List the built-in and custom funder knowledge profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		resolver, err := newResolver()
		if err != nil {
			return err
		}

		for _, p := range resolver.Profiles() {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", p.Name)
			fmt.Fprintf(cmd.OutOrStdout(), "  Focus: %s\n", p.Focus)
			fmt.Fprintf(cmd.OutOrStdout(), "  Values: %s\n", strings.Join(p.Values, "; "))
			fmt.Fprintf(cmd.OutOrStdout(), "  Language: %s\n", strings.Join(p.Language, ", "))
			fmt.Fprintf(cmd.OutOrStdout(), "  Tip: %s\n\n", p.Tip)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fundersCmd)
}
