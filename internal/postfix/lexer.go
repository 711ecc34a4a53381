package postfix

import (
	"fmt"
	"unicode/utf8"
)

// Kind classifies a token.
type Kind int

const (
	Operand Kind = iota // literal rune, tagged with its occurrence index
	Concat              // .
	Union               // |
	Star                // *
	LParen              // (
	RParen              // )
	Empty               // the empty string, written ()
)

// Token is one element of an infix or postfix expression.
type Token struct {
	Kind  Kind
	Char  rune // for Operand
	Index int  // for Operand: 0, 1, 2, ... in order of appearance
	Pos   int  // byte offset in the source expression
}

// Name is the label of an operand, e.g. "a_0". Operators return their
// symbol.
func (t Token) Name() string {
	switch t.Kind {
	case Operand:
		return fmt.Sprintf("%c_%d", t.Char, t.Index)
	case Concat:
		return "."
	case Union:
		return "|"
	case Star:
		return "*"
	case LParen:
		return "("
	case RParen:
		return ")"
	case Empty:
		return "ε"
	}
	return "?"
}

func (t Token) String() string { return t.Name() }

// IsOperator reports whether t is one of . | *.
func (t Token) IsOperator() bool {
	return t.Kind == Concat || t.Kind == Union || t.Kind == Star
}

type lexer struct {
	input string
	pos   int
	index int
}

func newLexer(s string) *lexer { return &lexer{input: s} }

// next returns the next token and false at the end of input.
func (l *lexer) next() (Token, bool, error) {
	if l.pos >= len(l.input) {
		return Token{}, false, nil
	}
	start := l.pos
	r, size := utf8.DecodeRuneInString(l.input[l.pos:])
	if r == utf8.RuneError && size == 1 {
		return Token{}, false, malformed(start, "invalid UTF-8 byte %#x", l.input[start])
	}
	l.pos += size
	switch r {
	case '(':
		return Token{Kind: LParen, Pos: start}, true, nil
	case ')':
		return Token{Kind: RParen, Pos: start}, true, nil
	case '*':
		return Token{Kind: Star, Pos: start}, true, nil
	case '|':
		return Token{Kind: Union, Pos: start}, true, nil
	case '\\':
		if l.pos >= len(l.input) {
			return Token{}, false, malformed(start, "trailing escape character")
		}
		r, size = utf8.DecodeRuneInString(l.input[l.pos:])
		if r == utf8.RuneError && size == 1 {
			return Token{}, false, malformed(l.pos, "invalid UTF-8 byte %#x", l.input[l.pos])
		}
		l.pos += size
	}
	tok := Token{Kind: Operand, Char: r, Index: l.index, Pos: start}
	l.index++
	return tok, true, nil
}
