package regexlib

import (
	"fmt"

	"mygrep/internal/automaton"
	"mygrep/internal/postfix"
)

// Suffixes appended to a fragment's start state to name the states that
// union and star introduce.
const (
	exitSuffix  = "_1"
	unionSuffix = "_2"
	starSuffix  = "_3"
)

// emptyPrefix names the state of an empty group: ε0, ε1, ... Operand states
// always have _ as their second rune, so the names never clash.
const emptyPrefix = "ε"

type nfaFrag struct {
	start automaton.State
	outs  []automaton.State // dangling states that need an ε edge to the next piece
}

func patchOuts(d automaton.Delta, outs []automaton.State, to automaton.State) {
	for _, s := range outs {
		d.Add(s, automaton.Epsilon, to)
	}
}

// Build runs Thompson's construction over postfix tokens. Operand c_i owns
// the states "c_i" and "c_i_1"; union and star add a state named after the
// start of their left operand with suffix _2 and _3. The result starts in
// "Start", accepts only in "Finish" and still contains lambda arrows. An
// empty group is a single state with no arrows of its own.
func Build(tokens []postfix.Token) (*automaton.NFA, error) {
	n := automaton.New(automaton.StartState)
	n.Accept.Add(automaton.FinishState)
	d := n.Delta

	var stack []nfaFrag
	empties := 0
	pop := func(tok postfix.Token) (nfaFrag, error) {
		if len(stack) == 0 {
			return nfaFrag{}, postfix.Malformed(tok.Pos, "operator %s is missing an operand", tok.Name())
		}
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return f, nil
	}

	for _, tok := range tokens {
		switch tok.Kind {
		case postfix.Operand:
			s1 := automaton.State(tok.Name())
			s2 := s1 + exitSuffix
			d.Add(s1, automaton.Symbol(tok.Char), s2)
			stack = append(stack, nfaFrag{start: s1, outs: []automaton.State{s2}})
		case postfix.Empty:
			s := automaton.State(fmt.Sprintf("%s%d", emptyPrefix, empties))
			empties++
			stack = append(stack, nfaFrag{start: s, outs: []automaton.State{s}})
		case postfix.Concat:
			f2, err := pop(tok)
			if err != nil {
				return nil, err
			}
			f1, err := pop(tok)
			if err != nil {
				return nil, err
			}
			patchOuts(d, f1.outs, f2.start)
			stack = append(stack, nfaFrag{start: f1.start, outs: f2.outs})
		case postfix.Union:
			f2, err := pop(tok)
			if err != nil {
				return nil, err
			}
			f1, err := pop(tok)
			if err != nil {
				return nil, err
			}
			s := f1.start + unionSuffix
			d.Add(s, automaton.Epsilon, f1.start, f2.start)
			outs := append(f1.outs, f2.outs...)
			stack = append(stack, nfaFrag{start: s, outs: outs})
		case postfix.Star:
			f, err := pop(tok)
			if err != nil {
				return nil, err
			}
			s := f.start + starSuffix
			patchOuts(d, f.outs, s)
			d.Add(s, automaton.Epsilon, f.start)
			stack = append(stack, nfaFrag{start: s, outs: []automaton.State{s}})
		default:
			return nil, postfix.Malformed(tok.Pos, "unexpected %s in postfix input", tok.Name())
		}
	}

	switch len(stack) {
	case 0:
		d.Add(automaton.StartState, automaton.Epsilon, automaton.FinishState)
	case 1:
		frag := stack[0]
		d.Add(automaton.StartState, automaton.Epsilon, frag.start)
		patchOuts(d, frag.outs, automaton.FinishState)
	default:
		return nil, postfix.Malformed(-1, "%d operands are not joined by an operator", len(stack))
	}
	return n, nil
}
