package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"mygrep/internal/automaton"
	"mygrep/internal/nfafile"
	"mygrep/internal/regexlib"
)

func verdict(ok bool) string {
	if ok {
		return "accept"
	}
	return "reject"
}

func newMatchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match <regex> <input>...",
		Short: "Report whether each input is in the language of the regex",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			re, err := regexlib.Compile(args[0], regexlib.WithLogger(a.traceLogger(cmd)))
			if err != nil {
				return err
			}
			rejected := false
			for _, in := range args[1:] {
				ok := re.Match(in)
				rejected = rejected || !ok
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", verdict(ok), in)
			}
			if rejected {
				return errRejected
			}
			return nil
		},
	}
	cmd.Flags().Bool("trace", false, "log the active states after every symbol")
	return cmd
}

func newGrepCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "grep <regex> [file...]",
		Short: "Print the lines that the regex matches entirely",
		Long: `Grep prints every line of the given files, or of standard input when no
file is given, that is in the language of the regex. The whole line has to
match. The exit status is 1 when no line matched.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			re, err := regexlib.Compile(args[0])
			if err != nil {
				return err
			}
			files := args[1:]
			matched := 0
			if len(files) == 0 {
				n, err := grep(re, a.stdin, "", cmd.OutOrStdout())
				if err != nil {
					return errors.Wrap(err, "read stdin")
				}
				matched += n
			}
			for _, name := range files {
				f, err := a.fs.Open(name)
				if err != nil {
					return errors.Wrapf(err, "open %s", name)
				}
				prefix := ""
				if len(files) > 1 {
					prefix = name + ":"
				}
				n, err := grep(re, f, prefix, cmd.OutOrStdout())
				f.Close()
				if err != nil {
					return errors.Wrapf(err, "read %s", name)
				}
				a.log.Debug("scanned", "file", name, "matches", n)
				matched += n
			}
			if matched == 0 {
				return errRejected
			}
			return nil
		},
	}
}

// maxLine is the longest line grep will read.
const maxLine = 16 << 20

func grep(re *regexlib.Regex, r io.Reader, prefix string, w io.Writer) (int, error) {
	n := 0
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLine)
	for sc.Scan() {
		line := sc.Text()
		if re.Match(line) {
			n++
			fmt.Fprintf(w, "%s%s\n", prefix, line)
		}
	}
	return n, sc.Err()
}

func newRunCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <file.nfa> <input>...",
		Short: "Run a hand-written automaton on each input",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := nfafile.Load(a.fs, args[0])
			if err != nil {
				return err
			}
			if n.HasLambdas() {
				a.log.Debug("removing lambda arrows", "file", args[0], "nfa", n.String())
				n.EliminateLambdas()
			}
			var trace automaton.TraceFunc
			if l := a.traceLogger(cmd); l != nil {
				trace = func(step int, c automaton.Symbol, active automaton.StateSet) {
					l.Debug("step", "n", step, "symbol", c.String(), "active", active.String())
				}
			}
			rejected := false
			for _, in := range args[1:] {
				ok := automaton.AcceptsTrace(in, n.Start, n.Delta, n.Accept, trace)
				rejected = rejected || !ok
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", verdict(ok), in)
			}
			if rejected {
				return errRejected
			}
			return nil
		},
	}
	cmd.Flags().Bool("trace", false, "log the active states after every symbol")
	return cmd
}
