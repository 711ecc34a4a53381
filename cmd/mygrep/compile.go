package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mygrep/internal/nfafile"
	"mygrep/internal/postfix"
	"mygrep/internal/regexlib"
)

func newPostfixCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "postfix <regex>",
		Short: "Print the postfix form of a regular expression",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			toks, err := postfix.Compile(args[0])
			if err != nil {
				return err
			}
			a.log.Debug("compiled", "regex", args[0], "tokens", len(toks))
			fmt.Fprintln(cmd.OutOrStdout(), postfix.Format(toks))
			return nil
		},
	}
}

func newBuildCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build <regex>",
		Short: "Print the automaton of a regular expression",
		Long: `Build runs Thompson's construction on the regular expression and prints the
automaton in the format read by "mygrep run". Lambda arrows are removed
unless --keep-lambdas is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			re, err := regexlib.Compile(args[0])
			if err != nil {
				return err
			}
			n := re.NFA()
			if keep, _ := cmd.Flags().GetBool("keep-lambdas"); keep {
				n = re.LambdaNFA()
			}
			a.log.Debug("built", "regex", args[0], "nfa", n.String())
			if out, _ := cmd.Flags().GetString("output"); out != "" {
				if err := nfafile.Save(a.fs, out, n); err != nil {
					return err
				}
				a.log.Info("automaton written", "path", out)
				return nil
			}
			return nfafile.Write(cmd.OutOrStdout(), n)
		},
	}
	cmd.Flags().Bool("keep-lambdas", false, "print the automaton before lambda removal")
	cmd.Flags().StringP("output", "o", "", "write to this file instead of stdout")
	return cmd
}
