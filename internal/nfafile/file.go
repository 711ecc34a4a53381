package nfafile

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"mygrep/internal/automaton"
)

var bareName = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// Load reads and parses the automaton stored at path in fs.
func Load(fs afero.Fs, path string) (*automaton.NFA, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, "read automaton %s", path)
	}
	n, err := Parse(path, data)
	if err != nil {
		return nil, errors.Wrapf(err, "load automaton %s", path)
	}
	return n, nil
}

// Save writes n to path in fs, replacing any existing file.
func Save(fs afero.Fs, path string, n *automaton.NFA) error {
	var b strings.Builder
	if err := Write(&b, n); err != nil {
		return err
	}
	if err := afero.WriteFile(fs, path, []byte(b.String()), 0644); err != nil {
		return errors.Wrapf(err, "write automaton %s", path)
	}
	return nil
}

// Write prints n in the format read by Parse. States and arrows are sorted,
// so equal automata always produce the same text.
func Write(w io.Writer, n *automaton.NFA) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "start %s\n", quoteState(n.Start))
	if len(n.Accept) > 0 {
		names := make([]string, 0, len(n.Accept))
		for _, st := range n.Accept.Sorted() {
			names = append(names, quoteState(st))
		}
		fmt.Fprintf(bw, "accept %s\n", strings.Join(names, ", "))
	}
	for _, k := range n.Delta.Keys() {
		to := n.Delta[k]
		if len(to) == 0 {
			continue
		}
		names := make([]string, 0, len(to))
		for _, st := range to.Sorted() {
			names = append(names, quoteState(st))
		}
		if k.On == automaton.Epsilon {
			fmt.Fprintf(bw, "%s --> %s\n", quoteState(k.From), strings.Join(names, ", "))
		} else {
			fmt.Fprintf(bw, "%s -- %s --> %s\n", quoteState(k.From), strconv.QuoteRune(rune(k.On)), strings.Join(names, ", "))
		}
	}
	return errors.Wrap(bw.Flush(), "write automaton")
}

func quoteState(st automaton.State) string {
	s := string(st)
	if bareName.MatchString(s) && s != "start" && s != "accept" {
		return s
	}
	return strconv.Quote(s)
}
