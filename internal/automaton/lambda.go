package automaton

// Reach returns every state reachable from s by one or more lambda arrows.
// s itself is never part of the result, even when a lambda cycle leads back
// to it.
func Reach(s State, d Delta) StateSet {
	reachable := StateSet{}
	visited := NewStateSet(s)
	stack := []State{s}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for next := range d.Get(cur, Epsilon) {
			if next != s {
				reachable.Add(next)
			}
			if !visited.Has(next) {
				visited.Add(next)
				stack = append(stack, next)
			}
		}
	}
	return reachable
}

// EliminateLambdas removes every lambda arrow from d while keeping the
// language accepted from any state unchanged. Both d and accept are
// rewritten in place and handed back; clone them first to keep the
// original automaton.
//
// A state becomes accepting when an original accept state is lambda-reachable
// from it, and it inherits the symbol arrows of every state it reaches that
// way. Arrows are copied from a snapshot taken before the pass, so arrows
// added for one state are never propagated again for another.
func EliminateLambdas(d Delta, accept StateSet) (Delta, StateSet) {
	if accept == nil {
		accept = StateSet{}
	}
	snapshot := d.bySource()
	states := StatesOf(d)

	closures := make(map[State]StateSet, len(states))
	for s := range states {
		closures[s] = Reach(s, d)
	}

	promoted := StateSet{}
	for s, reach := range closures {
		if reach.Intersects(accept) {
			promoted.Add(s)
		}
		for t := range reach {
			for c, to := range snapshot[t] {
				if c == Epsilon {
					continue
				}
				d.Add(s, c).Get(s, c).Union(to)
			}
		}
	}
	accept.Union(promoted)

	for k := range d {
		if k.On == Epsilon {
			delete(d, k)
		}
	}
	return d, accept
}
