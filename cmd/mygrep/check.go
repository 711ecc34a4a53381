package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"mygrep/internal/crosscheck"
)

func newCheckCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <regex>",
		Short: "Compare the engine with Go's regexp on all short strings",
		Long: `Check evaluates the regex on every string over the alphabet up to the
given length, shortest first, and compares each answer with Go's regexp
package. Defaults for --alphabet and --max-len come from the config file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			alphabet := a.cfg.Alphabet
			if cmd.Flags().Changed("alphabet") {
				alphabet, _ = cmd.Flags().GetString("alphabet")
			}
			maxLen := a.cfg.MaxLen
			if cmd.Flags().Changed("max-len") {
				maxLen, _ = cmd.Flags().GetInt("max-len")
			}
			a.log.Debug("cross-checking", "regex", args[0], "alphabet", alphabet, "max_len", maxLen)

			res, err := crosscheck.Run(args[0], []rune(alphabet), maxLen)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, m := range res.Mismatches {
				fmt.Fprintln(out, m)
			}
			fmt.Fprintln(out, res)
			if !res.OK() {
				return errors.Errorf("%d mismatches", len(res.Mismatches))
			}
			return nil
		},
	}
	cmd.Flags().String("alphabet", "", "characters to build test strings from")
	cmd.Flags().Int("max-len", 0, "longest test string")
	return cmd
}
