package automaton

// TraceFunc observes the active states after each consumed symbol. step is
// the 1-based position of c in the input.
type TraceFunc func(step int, c Symbol, active StateSet)

// Accepts simulates an NFA without lambda arrows on input, tracking every
// state the automaton could be in at once. The input is accepted when at
// least one of the states left after the last rune is in accept. Input is
// consumed as UTF-8 runes; an invalid byte is read as utf8.RuneError.
func Accepts(input string, start State, d Delta, accept StateSet) bool {
	return AcceptsTrace(input, start, d, accept, nil)
}

// AcceptsTrace is Accepts with a trace callback. A nil trace is allowed.
func AcceptsTrace(input string, start State, d Delta, accept StateSet, trace TraceFunc) bool {
	active := NewStateSet(start)
	step := 0
	for _, r := range input {
		step++
		c := Symbol(r)
		next := StateSet{}
		for p := range active {
			next.Union(d.Get(p, c))
		}
		active = next
		if trace != nil {
			trace(step, c, active.Clone())
		}
	}
	return active.Intersects(accept)
}
