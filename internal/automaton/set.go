package automaton

import (
	"sort"
	"strings"
)

// State names a node of an automaton. "Start" and "Finish" are reserved by
// the regex builder for the entry and the canonical accept state.
type State string

const (
	StartState  State = "Start"
	FinishState State = "Finish"
)

// StateSet is an unordered set of states.
type StateSet map[State]struct{}

// NewStateSet returns a set holding the given states.
func NewStateSet(states ...State) StateSet {
	s := make(StateSet, len(states))
	for _, st := range states {
		s[st] = struct{}{}
	}
	return s
}

func (s StateSet) Add(st State) { s[st] = struct{}{} }

func (s StateSet) Has(st State) bool {
	_, ok := s[st]
	return ok
}

// Union adds every member of other to s and returns s.
func (s StateSet) Union(other StateSet) StateSet {
	for st := range other {
		s[st] = struct{}{}
	}
	return s
}

// Intersection returns a new set with the states present in both.
func (s StateSet) Intersection(other StateSet) StateSet {
	small, big := s, other
	if len(big) < len(small) {
		small, big = big, small
	}
	out := StateSet{}
	for st := range small {
		if big.Has(st) {
			out.Add(st)
		}
	}
	return out
}

// Intersects reports whether the two sets share at least one state.
func (s StateSet) Intersects(other StateSet) bool {
	small, big := s, other
	if len(big) < len(small) {
		small, big = big, small
	}
	for st := range small {
		if big.Has(st) {
			return true
		}
	}
	return false
}

func (s StateSet) Clone() StateSet {
	out := make(StateSet, len(s))
	for st := range s {
		out[st] = struct{}{}
	}
	return out
}

func (s StateSet) Equal(other StateSet) bool {
	if len(s) != len(other) {
		return false
	}
	for st := range s {
		if !other.Has(st) {
			return false
		}
	}
	return true
}

// Sorted returns the members in lexical order.
func (s StateSet) Sorted() []State {
	out := make([]State, 0, len(s))
	for st := range s {
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (s StateSet) String() string {
	parts := make([]string, 0, len(s))
	for _, st := range s.Sorted() {
		parts = append(parts, string(st))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
