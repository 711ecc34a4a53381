package regexlib

import (
	"bytes"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mygrep/internal/automaton"
	"mygrep/internal/logging"
	"mygrep/internal/postfix"
)

// ------------------------------------------------------------------- helpers

func acc(t *testing.T, re *Regex, in string, want bool) {
	t.Helper()
	assert.Equal(t, want, re.Match(in), "pattern %q on %q", re.Pattern(), in)
}

func newRE(t *testing.T, pat string) *Regex {
	t.Helper()
	re, err := Compile(pat)
	require.NoError(t, err, "compile %q", pat)
	return re
}

func build(t *testing.T, pat string) *automaton.NFA {
	t.Helper()
	toks, err := postfix.Compile(pat)
	require.NoError(t, err)
	n, err := Build(toks)
	require.NoError(t, err)
	return n
}

// ------------------------------------------------------------------- Build

func TestBuildOperand(t *testing.T) {
	n := build(t, "a")
	want := automaton.Delta{}
	want.Add("Start", automaton.Epsilon, "a_0").
		Add("a_0", 'a', "a_0_1").
		Add("a_0_1", automaton.Epsilon, "Finish")
	assert.True(t, want.Equal(n.Delta), "got %v", n.Delta.Keys())
	assert.Equal(t, automaton.StartState, n.Start)
	assert.True(t, n.Accept.Equal(automaton.NewStateSet("Finish")))
}

func TestBuildUnionAndStarNames(t *testing.T) {
	n := build(t, "(a|b)*")
	d := n.Delta
	assert.True(t, d.Get("a_0_2", automaton.Epsilon).Equal(automaton.NewStateSet("a_0", "b_1")))
	assert.True(t, d.Get("a_0_2_3", automaton.Epsilon).Equal(automaton.NewStateSet("a_0_2", "Finish")))
	assert.True(t, d.Get("a_0_1", automaton.Epsilon).Equal(automaton.NewStateSet("a_0_2_3")))
	assert.True(t, d.Get("b_1_1", automaton.Epsilon).Equal(automaton.NewStateSet("a_0_2_3")))
	assert.True(t, d.Get("Start", automaton.Epsilon).Equal(automaton.NewStateSet("a_0_2_3")))
	assert.True(t, n.HasLambdas())
}

func TestBuildEmpty(t *testing.T) {
	n := build(t, "")
	assert.True(t, n.Delta.Get("Start", automaton.Epsilon).Equal(automaton.NewStateSet("Finish")))
	assert.Len(t, n.Delta, 1)
}

func TestBuildMalformedPostfix(t *testing.T) {
	for _, pat := range []string{"*", "|a", "a|", "*a", "a||b", "(|)", "\xff"} {
		t.Run(pat, func(t *testing.T) {
			_, err := Compile(pat)
			require.Error(t, err)
			assert.True(t, errors.Is(err, postfix.ErrMalformedExpression), "%v", err)
		})
	}

	// hand-made postfix with two operands and no operator
	_, err := Build([]postfix.Token{
		{Kind: postfix.Operand, Char: 'a', Index: 0},
		{Kind: postfix.Operand, Char: 'b', Index: 1},
	})
	assert.True(t, errors.Is(err, postfix.ErrMalformedExpression))

	_, err = Build([]postfix.Token{{Kind: postfix.LParen}})
	assert.True(t, errors.Is(err, postfix.ErrMalformedExpression))

	_, err = Build([]postfix.Token{
		{Kind: postfix.Operand, Char: 'a', Index: 0},
		{Kind: postfix.Union, Pos: 1},
	})
	assert.True(t, errors.Is(err, postfix.ErrMalformedExpression))
	assert.Contains(t, err.Error(), "operator | is missing an operand")
}

func TestBuildEmptyGroup(t *testing.T) {
	n := build(t, "a()")
	want := automaton.Delta{}
	want.Add("Start", automaton.Epsilon, "a_0").
		Add("a_0", 'a', "a_0_1").
		Add("a_0_1", automaton.Epsilon, "ε0").
		Add("ε0", automaton.Epsilon, "Finish")
	assert.True(t, want.Equal(n.Delta), "got %v", n.Delta.Keys())

	n = build(t, "()|()")
	assert.True(t, n.Delta.Get("ε0_2", automaton.Epsilon).Equal(automaton.NewStateSet("ε0", "ε1")))
}

// ------------------------------------------------------------------- Match

func TestMatchPrecedence(t *testing.T) {
	re := newRE(t, "a|bc*")
	acc(t, re, "a", true)
	acc(t, re, "b", true)
	acc(t, re, "bc", true)
	acc(t, re, "bccc", true)
	acc(t, re, "ab", false)
	acc(t, re, "", false)
	acc(t, re, "abc", false)
}

func TestMatchTable(t *testing.T) {
	tests := []struct {
		pattern string
		accept  []string
		reject  []string
	}{
		{"", []string{""}, []string{"a"}},
		{"()", []string{""}, []string{"a"}},
		{"a()", []string{"a"}, []string{"", "aa"}},
		{"a|()", []string{"", "a"}, []string{"aa", "b"}},
		{"()*a", []string{"a"}, []string{"", "aa"}},
		{"a*", []string{"", "a", "aaaa"}, []string{"b", "ab"}},
		{"a*a", []string{"a", "aa", "aaa"}, []string{"", "b"}},
		{"(ab)*", []string{"", "ab", "abab"}, []string{"a", "aba", "ba"}},
		{"a(b|c)*d", []string{"ad", "abd", "acbd", "abcbcd"}, []string{"a", "abc", "ade"}},
		{"(a|b)*abb", []string{"abb", "aabb", "babb", "ababb"}, []string{"ab", "abba", ""}},
		{"a**", []string{"", "aaa"}, []string{"b"}},
		{"(a*)*", []string{"", "a", "aa"}, []string{"b"}},
		{"(a*|b*)*c", []string{"c", "abac", "bbc"}, []string{"", "ab"}},
		{`a\*`, []string{"a*"}, []string{"a", "aa", ""}},
		{`\(\)`, []string{"()"}, []string{""}},
		{"a.b", []string{"a.b"}, []string{"axb"}},
		{"ä(ö|ü)", []string{"äö", "äü"}, []string{"ä", "ao"}},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			re := newRE(t, tt.pattern)
			for _, s := range tt.accept {
				acc(t, re, s, true)
			}
			for _, s := range tt.reject {
				acc(t, re, s, false)
			}
		})
	}
}

func TestCompiledNFAHasNoLambdas(t *testing.T) {
	re := newRE(t, "(a|b)*c(d|e*)")
	assert.False(t, re.NFA().HasLambdas())
	assert.True(t, re.LambdaNFA().HasLambdas())
	assert.Equal(t, "a_0 b_1 | * c_2 . d_3 e_4 * | .", postfix.Format(re.Postfix()))
	assert.Equal(t, "(a|b)*c(d|e*)", re.String())
}

func TestAccessorsReturnCopies(t *testing.T) {
	re := newRE(t, "ab")
	n := re.NFA()
	n.Accept.Add("Start")
	assert.False(t, re.Match(""))

	toks := re.Postfix()
	toks[0].Char = 'z'
	assert.True(t, re.Match("ab"))
}

// The lambda-free automaton must agree with a direct simulation of the
// Thompson automaton.
func TestLambdaEliminationPreservesLanguage(t *testing.T) {
	alpha := []string{"", "a", "b"}
	var words []string
	for _, x := range alpha {
		for _, y := range alpha {
			for _, z := range alpha {
				for _, w := range alpha {
					words = append(words, x+y+z+w)
				}
			}
		}
	}
	for _, pat := range []string{"(ab|a)*b", "a*b*", "(a|b)*a(a|b)", "(a|b*)b"} {
		re := newRE(t, pat)
		lambda := re.LambdaNFA()
		for _, s := range words {
			want := simulateWithLambdas(lambda, s)
			assert.Equal(t, want, re.Match(s), "pattern %q input %q", pat, s)
		}
	}
}

func simulateWithLambdas(n *automaton.NFA, s string) bool {
	closure := func(set automaton.StateSet) automaton.StateSet {
		out := set.Clone()
		for st := range set {
			out.Union(automaton.Reach(st, n.Delta))
		}
		return out
	}
	cur := closure(automaton.NewStateSet(n.Start))
	for _, r := range s {
		next := automaton.StateSet{}
		for st := range cur {
			next.Union(n.Delta.Get(st, automaton.Symbol(r)))
		}
		cur = closure(next)
	}
	return cur.Intersects(n.Accept)
}

func TestMatchTraceLogging(t *testing.T) {
	var buf bytes.Buffer
	re, err := Compile("ab", WithLogger(logging.NewWriter(&buf, slog.LevelDebug)))
	require.NoError(t, err)
	assert.True(t, re.Match("ab"))
	out := buf.String()
	assert.Contains(t, out, "msg=step")
	assert.Contains(t, out, "symbol=a")
	assert.Contains(t, out, "accepted=true")
	assert.Equal(t, 2, strings.Count(out, "msg=step"))

	buf.Reset()
	re, err = Compile("ab", WithLogger(logging.NewWriter(&buf, slog.LevelInfo)))
	require.NoError(t, err)
	assert.True(t, re.Match("ab"))
	assert.Empty(t, buf.String())
}

func TestMustCompilePanics(t *testing.T) {
	assert.Panics(t, func() { MustCompile("(") })
	assert.NotPanics(t, func() { MustCompile("a|b", WithLogger(nil)) })
}

func TestMatchConcurrent(t *testing.T) {
	re := MustCompile("(a|b)*abb")
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				assert.True(t, re.Match("babaabb"))
				assert.False(t, re.Match("babaab"))
			}
		}()
	}
	wg.Wait()
}

// ------------------------------------------------------------------- Bench

func BenchmarkMillionAs(b *testing.B) {
	re := MustCompile("a*b*")
	txt := strings.Repeat("a", 1_000_000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = re.Match(txt)
	}
}

func TestMatchRunes(t *testing.T) {
	re := newRE(t, "ä*")
	acc(t, re, "ää", true)
	// input is read rune by rune, so a stray byte arrives as U+FFFD
	acc(t, re, "\xc3", false)
	acc(t, newRE(t, "a"), "\xff", false)

	_, err := Compile("\xff")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid UTF-8 byte 0xff")
}
