// Package automaton models nondeterministic finite automata as a transition
// map from (state, symbol) to a set of states, removes lambda transitions and
// simulates the result on input strings.
package automaton

import (
	"fmt"
	"sort"
)

// Symbol is a single input rune, or Epsilon for a lambda arrow.
type Symbol rune

// Epsilon marks a transition that consumes no input.
const Epsilon Symbol = -1

func (c Symbol) String() string {
	if c == Epsilon {
		return "ε"
	}
	return string(rune(c))
}

// Key is the domain of the transition function.
type Key struct {
	From State
	On   Symbol
}

// Delta is the transition function. A missing key means no transition.
type Delta map[Key]StateSet

// Add records the arrows from -on-> to... and returns d.
func (d Delta) Add(from State, on Symbol, to ...State) Delta {
	k := Key{From: from, On: on}
	set, ok := d[k]
	if !ok {
		set = StateSet{}
		d[k] = set
	}
	for _, st := range to {
		set.Add(st)
	}
	return d
}

// Get returns the destinations of (from, on). The result may be nil and must
// not be modified.
func (d Delta) Get(from State, on Symbol) StateSet {
	return d[Key{From: from, On: on}]
}

// Clone returns a deep copy of d.
func (d Delta) Clone() Delta {
	out := make(Delta, len(d))
	for k, v := range d {
		out[k] = v.Clone()
	}
	return out
}

// Equal reports whether both maps describe the same arrows. Keys mapping to
// an empty set count as absent.
func (d Delta) Equal(other Delta) bool {
	for k, v := range d {
		if !v.Equal(other[k]) {
			return false
		}
	}
	for k, v := range other {
		if len(v) > 0 && len(d[k]) == 0 {
			return false
		}
	}
	return true
}

// HasLambdas reports whether any epsilon arrow is present.
func (d Delta) HasLambdas() bool {
	for k, v := range d {
		if k.On == Epsilon && len(v) > 0 {
			return true
		}
	}
	return false
}

// Alphabet returns the non-epsilon symbols used by d, in ascending order.
func (d Delta) Alphabet() []Symbol {
	seen := map[Symbol]struct{}{}
	for k := range d {
		if k.On != Epsilon {
			seen[k.On] = struct{}{}
		}
	}
	out := make([]Symbol, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Keys returns the keys of d ordered by state then symbol, with epsilon
// first.
func (d Delta) Keys() []Key {
	out := make([]Key, 0, len(d))
	for k := range d {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		return out[i].On < out[j].On
	})
	return out
}

// bySource regroups d as state -> symbol -> destinations. The inner sets are
// copies, so the view stays valid while d is being written.
func (d Delta) bySource() map[State]map[Symbol]StateSet {
	out := make(map[State]map[Symbol]StateSet)
	for k, v := range d {
		row, ok := out[k.From]
		if !ok {
			row = make(map[Symbol]StateSet)
			out[k.From] = row
		}
		if _, ok := row[k.On]; !ok {
			row[k.On] = StateSet{}
		}
		row[k.On].Union(v)
	}
	return out
}

// StatesOf derives the state set of d from its sources and destinations.
func StatesOf(d Delta) StateSet {
	out := StateSet{}
	for k, v := range d {
		out.Add(k.From)
		out.Union(v)
	}
	return out
}

// NFA bundles a transition function with its start and accept states.
type NFA struct {
	Start  State
	Delta  Delta
	Accept StateSet
}

// New returns an empty automaton that starts in start.
func New(start State) *NFA {
	return &NFA{Start: start, Delta: Delta{}, Accept: StateSet{}}
}

// States returns every state mentioned by the automaton.
func (n *NFA) States() StateSet {
	out := StatesOf(n.Delta)
	out.Add(n.Start)
	return out.Union(n.Accept)
}

func (n *NFA) Clone() *NFA {
	return &NFA{Start: n.Start, Delta: n.Delta.Clone(), Accept: n.Accept.Clone()}
}

func (n *NFA) HasLambdas() bool { return n.Delta.HasLambdas() }

func (n *NFA) Alphabet() []Symbol { return n.Delta.Alphabet() }

// Accepts runs the automaton on input. See Accepts.
func (n *NFA) Accepts(input string) bool {
	return Accepts(input, n.Start, n.Delta, n.Accept)
}

// EliminateLambdas rewrites n in place into an equivalent epsilon-free
// automaton.
func (n *NFA) EliminateLambdas() {
	n.Delta, n.Accept = EliminateLambdas(n.Delta, n.Accept)
}

func (n *NFA) String() string {
	return fmt.Sprintf("NFA{start=%s, states=%d, arrows=%d, accept=%s}",
		n.Start, len(n.States()), len(n.Delta), n.Accept)
}
