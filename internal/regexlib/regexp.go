// Package regexlib compiles small regular expressions into epsilon-free
// NFAs and matches whole strings against them.
package regexlib

import (
	"context"
	"log/slog"

	"mygrep/internal/automaton"
	"mygrep/internal/logging"
	"mygrep/internal/postfix"
)

type Regex struct {
	pattern string
	postfix []postfix.Token
	lambda  *automaton.NFA // Thompson NFA, kept for inspection
	nfa     *automaton.NFA // lambda-free NFA used for matching
	log     *slog.Logger
}

// Option configures Compile.
type Option func(*Regex)

// WithLogger makes Match log the active states after every rune at debug
// level.
func WithLogger(l *slog.Logger) Option {
	return func(r *Regex) {
		if l != nil {
			r.log = l
		}
	}
}

// Compile parses pattern, builds its Thompson NFA and removes the lambda
// arrows. The empty pattern matches only the empty string.
func Compile(pattern string, opts ...Option) (*Regex, error) {
	toks, err := postfix.Compile(pattern)
	if err != nil {
		return nil, err
	}
	lambda, err := Build(toks)
	if err != nil {
		return nil, err
	}
	nfa := lambda.Clone()
	nfa.EliminateLambdas()

	r := &Regex{
		pattern: pattern,
		postfix: toks,
		lambda:  lambda,
		nfa:     nfa,
		log:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

func MustCompile(p string, opts ...Option) *Regex {
	r, err := Compile(p, opts...)
	if err != nil {
		panic(err)
	}
	return r
}

// Match reports whether the whole of s is in the language of the pattern.
// It is safe for concurrent use.
func (r *Regex) Match(s string) bool {
	var trace automaton.TraceFunc
	if r.log.Enabled(context.Background(), slog.LevelDebug) {
		r.log.Debug("match", "pattern", r.pattern, "input", s, "active", automaton.NewStateSet(r.nfa.Start).String())
		trace = func(step int, c automaton.Symbol, active automaton.StateSet) {
			r.log.Debug("step", "n", step, "symbol", c.String(), "active", active.String())
		}
	}
	ok := automaton.AcceptsTrace(s, r.nfa.Start, r.nfa.Delta, r.nfa.Accept, trace)
	r.log.Debug("result", "pattern", r.pattern, "input", s, "accepted", ok)
	return ok
}

func (r *Regex) Pattern() string { return r.pattern }

// Postfix returns a copy of the compiled postfix tokens.
func (r *Regex) Postfix() []postfix.Token {
	return append([]postfix.Token(nil), r.postfix...)
}

// NFA returns a copy of the lambda-free automaton used by Match.
func (r *Regex) NFA() *automaton.NFA { return r.nfa.Clone() }

// LambdaNFA returns a copy of the Thompson automaton before lambda removal.
func (r *Regex) LambdaNFA() *automaton.NFA { return r.lambda.Clone() }

func (r *Regex) String() string { return r.pattern }
