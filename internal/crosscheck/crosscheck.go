// Package crosscheck compares the regex engine with Go's regexp package on
// every string over a small alphabet up to a given length.
package crosscheck

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pkg/errors"

	"mygrep/internal/postfix"
	"mygrep/internal/regexlib"
)

// Mismatch is an input on which the two evaluators disagree.
type Mismatch struct {
	Input     string
	Mine      bool
	Reference bool
}

func (m Mismatch) String() string {
	return fmt.Sprintf("Wrong on %q: Mine %v, Reference %v", m.Input, m.Mine, m.Reference)
}

type Result struct {
	Pattern    string
	MaxLen     int
	Tried      int
	Correct    int
	Mismatches []Mismatch
}

func (r *Result) OK() bool { return len(r.Mismatches) == 0 }

func (r *Result) String() string {
	return fmt.Sprintf("%d / %d Correct on %s up to length %d", r.Correct, r.Tried, r.Pattern, r.MaxLen)
}

// StdlibPattern rewrites expr in regexp syntax, anchored at both ends.
// Repeated stars collapse into one since regexp rejects nested repetition.
func StdlibPattern(expr string) (string, error) {
	toks, err := postfix.Tokenize(expr)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString("^(?:")
	var prev *postfix.Token
	for i := range toks {
		tok := toks[i]
		switch tok.Kind {
		case postfix.Operand:
			b.WriteString(regexp.QuoteMeta(string(tok.Char)))
		case postfix.Union:
			b.WriteByte('|')
		case postfix.Star:
			if prev != nil && prev.Kind == postfix.Star {
				break
			}
			b.WriteByte('*')
		case postfix.LParen:
			b.WriteString("(?:")
		case postfix.RParen:
			b.WriteByte(')')
		}
		prev = &toks[i]
	}
	b.WriteString(")$")
	return b.String(), nil
}

// Run evaluates expr on every string over alphabet of length at most maxLen,
// in order of length and then alphabet order, and records each disagreement
// with regexp.
func Run(expr string, alphabet []rune, maxLen int) (*Result, error) {
	if len(alphabet) == 0 {
		return nil, errors.New("crosscheck: empty alphabet")
	}
	if maxLen < 0 {
		return nil, errors.Errorf("crosscheck: negative max length %d", maxLen)
	}
	mine, err := regexlib.Compile(expr)
	if err != nil {
		return nil, errors.Wrapf(err, "crosscheck: compile %q", expr)
	}
	pat, err := StdlibPattern(expr)
	if err != nil {
		return nil, err
	}
	ref, err := regexp.Compile(pat)
	if err != nil {
		return nil, errors.Wrapf(err, "crosscheck: reference compile %q", pat)
	}

	res := &Result{Pattern: expr, MaxLen: maxLen}
	queue := []string{""}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		res.Tried++
		got, want := mine.Match(s), ref.MatchString(s)
		if got == want {
			res.Correct++
		} else {
			res.Mismatches = append(res.Mismatches, Mismatch{Input: s, Mine: got, Reference: want})
		}
		if len([]rune(s)) < maxLen {
			for _, c := range alphabet {
				queue = append(queue, s+string(c))
			}
		}
	}
	return res, nil
}
