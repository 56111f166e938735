package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

const (
	versionSumQuestion = "What do you get if you add up the version numbers in all packets?"
	evaluateQuestion   = "What do you get if you evaluate the expression represented by your hexadecimal-encoded BITS transmission?"
)

func solveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "solve [hex]",
		Short: "Print the version sum and the evaluated value",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, cfg, err := decodeTransmission(cmd, args, opts)
			if err != nil {
				return err
			}
			value, err := p.Evaluate()
			if err != nil {
				return fmt.Errorf("evaluate: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %d\n", versionSumQuestion, p.VersionSum())
			fmt.Fprintf(out, "%s %d\n", evaluateQuestion, value)
			return finish(cfg)
		},
	}
}
