package nfafile

import (
	"strings"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mygrep/internal/automaton"
	"mygrep/internal/regexlib"
)

const cycle = `
# A and B loop on lambdas, B accepts
start A
accept B
A --> B
B --> A
B -- 'b' --> C
B -- 'c' --> B
`

func TestParse(t *testing.T) {
	n, err := Parse("cycle.nfa", []byte(cycle))
	require.NoError(t, err)
	assert.Equal(t, automaton.State("A"), n.Start)
	assert.True(t, n.Accept.Equal(automaton.NewStateSet("B")))
	assert.True(t, n.Delta.Get("A", automaton.Epsilon).Equal(automaton.NewStateSet("B")))
	assert.True(t, n.Delta.Get("B", 'b').Equal(automaton.NewStateSet("C")))

	n.EliminateLambdas()
	assert.True(t, n.Accept.Has("A"))
	assert.True(t, n.Delta.Get("A", 'b').Equal(automaton.NewStateSet("C")))
	assert.True(t, n.Accepts(""))
	assert.True(t, n.Accepts("ccc"))
	assert.False(t, n.Accepts("cb"))
}

func TestParseMultiTargetsAndQuoting(t *testing.T) {
	src := `start S
accept U, "odd-name"
S -- 'a' --> T, U
S -- '\'' --> "odd-name"
"odd-name" -- 'ä' --> "odd-name"
T -- '-' --> T
`
	n, err := Parse("multi.nfa", []byte(src))
	require.NoError(t, err)
	assert.True(t, n.Delta.Get("S", 'a').Equal(automaton.NewStateSet("T", "U")))
	assert.True(t, n.Delta.Get("S", '\'').Equal(automaton.NewStateSet("odd-name")))
	assert.True(t, n.Accepts("a"))
	assert.True(t, n.Accepts("'ää"))
	assert.False(t, n.Accepts("a-"))
}

func TestParseSingleState(t *testing.T) {
	n, err := Parse("one.nfa", []byte("start q\naccept q\n"))
	require.NoError(t, err)
	assert.Empty(t, n.Delta)
	assert.True(t, n.Accepts(""))
	assert.False(t, n.Accepts("a"))
}

func TestParseValidation(t *testing.T) {
	src := `start A
start B
accept B
A -- 'xy' --> B
A --> B
B --> C, A, C
`
	_, err := Parse("bad.nfa", []byte(src))
	require.Error(t, err)

	var merr *multierror.Error
	require.True(t, errors.As(err, &merr))
	assert.Len(t, merr.Errors, 3)
	msg := err.Error()
	assert.Contains(t, msg, "start state already declared")
	assert.Contains(t, msg, "must be a single character")
	assert.Contains(t, msg, "duplicate arrow B -- ε --> C")
}

func TestParseMissingStart(t *testing.T) {
	_, err := Parse("empty.nfa", []byte("# nothing here\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no start state")
}

func TestParseSyntaxError(t *testing.T) {
	_, err := Parse("syntax.nfa", []byte("start A\nA -- 'a' B\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "syntax.nfa:2")
}

func TestWriteRoundTrip(t *testing.T) {
	n := regexlib.MustCompile(`(a|-)*\'`).LambdaNFA()
	n.Delta.Add("start", 'z', "accept")
	n.Accept.Add("accept")

	var b strings.Builder
	require.NoError(t, Write(&b, n))
	out := b.String()
	assert.True(t, strings.HasPrefix(out, "start Start\naccept Finish, \"accept\"\n"), out)
	assert.Contains(t, out, "Start --> ")
	assert.Contains(t, out, `"-_1" -- '-' --> "-_1_1"`)
	assert.Contains(t, out, `"start" -- 'z' --> "accept"`)

	back, err := Parse("round.nfa", []byte(out))
	require.NoError(t, err)
	assert.Equal(t, n.Start, back.Start)
	assert.True(t, n.Delta.Equal(back.Delta))
	assert.True(t, n.Accept.Equal(back.Accept))

	var again strings.Builder
	require.NoError(t, Write(&again, back))
	assert.Equal(t, out, again.String())
}

func TestLoadAndSave(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/nfa/cycle.nfa", []byte(cycle), 0644))

	n, err := Load(fs, "/nfa/cycle.nfa")
	require.NoError(t, err)
	require.NoError(t, Save(fs, "/nfa/copy.nfa", n))

	m, err := Load(fs, "/nfa/copy.nfa")
	require.NoError(t, err)
	assert.True(t, n.Delta.Equal(m.Delta))

	_, err = Load(fs, "/nfa/missing.nfa")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read automaton /nfa/missing.nfa")
}
