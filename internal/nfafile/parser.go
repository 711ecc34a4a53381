// Package nfafile reads and writes hand-written automata.
//
// The format is line oriented:
//
//	# comment
//	start S
//	accept U, "odd-name"
//	S -- 'a' --> T, U
//	A --> B
//
// An arrow without a symbol is a lambda arrow. States are bare names made of
// letters, digits and underscores, or double-quoted strings. Symbols are Go
// character literals.
package nfafile

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"mygrep/internal/automaton"
)

type File struct {
	Entries []*Entry `parser:"@@*"`
}

type Entry struct {
	Pos    lexer.Position
	Start  *StateRef   `parser:"  'start':Ident @@"`
	Accept []*StateRef `parser:"| 'accept':Ident @@ (',' @@)*"`
	Edge   *Edge       `parser:"| @@"`
}

type Edge struct {
	Pos    lexer.Position
	From   *StateRef   `parser:"@@"`
	Symbol *string     `parser:"( '--' @Char )? '-->'"`
	To     []*StateRef `parser:"@@ (',' @@)*"`
}

type StateRef struct {
	Name string `parser:"@(Ident | String)"`
}

var nfaLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "String", Pattern: `"(?:\\.|[^"\\])*"`},
	{Name: "Char", Pattern: `'(?:\\.|[^'\\])+'`},
	{Name: "Arrow", Pattern: `-->`},
	{Name: "Dash", Pattern: `--`},
	{Name: "Ident", Pattern: `[A-Za-z0-9_]+`},
	{Name: "Punct", Pattern: `,`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var parser = participle.MustBuild[File](
	participle.Lexer(nfaLexer),
	participle.Unquote("String"),
	participle.Elide("Whitespace", "Comment"),
	participle.UseLookahead(2),
)

// Parse reads an automaton definition. name is used in error positions.
// Every semantic problem in the file is reported, not just the first.
func Parse(name string, data []byte) (*automaton.NFA, error) {
	f, err := parser.ParseBytes(name, data)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", name)
	}
	return f.NFA()
}

// NFA converts a parsed file into an automaton.
func (f *File) NFA() (*automaton.NFA, error) {
	var reterr error
	var starts []*Entry
	accept := automaton.StateSet{}
	d := automaton.Delta{}

	for _, e := range f.Entries {
		switch {
		case e.Start != nil:
			starts = append(starts, e)
		case len(e.Accept) > 0:
			for _, ref := range e.Accept {
				accept.Add(automaton.State(ref.Name))
			}
		case e.Edge != nil:
			on, err := e.Edge.symbol()
			if err != nil {
				reterr = multierror.Append(reterr, err)
				continue
			}
			from := automaton.State(e.Edge.From.Name)
			for _, ref := range e.Edge.To {
				to := automaton.State(ref.Name)
				if d.Get(from, on).Has(to) {
					reterr = multierror.Append(reterr, fmt.Errorf("%s: duplicate arrow %s -- %s --> %s", e.Pos, from, on, to))
					continue
				}
				d.Add(from, on, to)
			}
		}
	}

	var start automaton.State
	switch len(starts) {
	case 0:
		reterr = multierror.Append(reterr, errors.New("no start state declared"))
	case 1:
		start = automaton.State(starts[0].Start.Name)
	default:
		for _, e := range starts[1:] {
			reterr = multierror.Append(reterr, fmt.Errorf("%s: start state already declared at %s", e.Pos, starts[0].Pos))
		}
	}

	if reterr != nil {
		return nil, reterr
	}
	return &automaton.NFA{Start: start, Delta: d, Accept: accept}, nil
}

func (e *Edge) symbol() (automaton.Symbol, error) {
	if e.Symbol == nil {
		return automaton.Epsilon, nil
	}
	s, err := strconv.Unquote(*e.Symbol)
	if err != nil || utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("%s: symbol %s must be a single character", e.Pos, *e.Symbol)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return automaton.Symbol(r), nil
}
