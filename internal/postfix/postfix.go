// Package postfix turns an infix regular expression into postfix tokens.
//
// The syntax is deliberately small: literals, implicit concatenation, |
// for union, * for Kleene star and parentheses for grouping. A backslash
// makes the next character a literal.
package postfix

import "strings"

var precedence = map[Kind]int{
	Star:   2,
	Concat: 1,
	Union:  0,
}

// Tokenize splits expr into infix tokens and inserts explicit Concat tokens
// wherever two adjacent tokens are not separated by an operator. An empty
// group gets an Empty token between its parentheses.
func Tokenize(expr string) ([]Token, error) {
	l := newLexer(expr)
	var out []Token
	for {
		tok, ok, err := l.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return out, nil
		}
		if len(out) > 0 && endsOperand(out[len(out)-1]) && startsOperand(tok) {
			out = append(out, Token{Kind: Concat, Pos: tok.Pos})
		}
		if tok.Kind == RParen && len(out) > 0 && out[len(out)-1].Kind == LParen {
			out = append(out, Token{Kind: Empty, Pos: tok.Pos})
		}
		out = append(out, tok)
	}
}

// endsOperand is true for tokens after which an operand may be complete.
func endsOperand(t Token) bool {
	return t.Kind == Operand || t.Kind == Empty || t.Kind == RParen || t.Kind == Star
}

func startsOperand(t Token) bool {
	return t.Kind == Operand || t.Kind == Empty || t.Kind == LParen
}

// arity tracks how many operands a postfix sequence leaves on the
// evaluation stack, failing on the first operator that lacks one.
type arity int

func (n *arity) push(t Token) error {
	switch t.Kind {
	case Operand, Empty:
		*n++
	case Star:
		if *n < 1 {
			return malformed(t.Pos, "operator %s is missing an operand", t.Name())
		}
	case Concat, Union:
		if *n < 2 {
			return malformed(t.Pos, "operator %s is missing an operand", t.Name())
		}
		*n--
	}
	return nil
}

// Compile converts expr to postfix order using the shunting-yard algorithm
// with * above concatenation above |, all left associative. Parentheses only
// group and never reach the output. The empty expression compiles to no
// tokens. Every operator in the result has its operands.
func Compile(expr string) ([]Token, error) {
	infix, err := Tokenize(expr)
	if err != nil {
		return nil, err
	}
	postfix := make([]Token, 0, len(infix))
	var operands arity
	emit := func(t Token) error {
		if err := operands.push(t); err != nil {
			return err
		}
		postfix = append(postfix, t)
		return nil
	}
	var stack []Token
	for _, x := range infix {
		switch x.Kind {
		case Operand, Empty:
			if err := emit(x); err != nil {
				return nil, err
			}
		case LParen:
			stack = append(stack, x)
		case RParen:
			for len(stack) > 0 && stack[len(stack)-1].Kind != LParen {
				if err := emit(stack[len(stack)-1]); err != nil {
					return nil, err
				}
				stack = stack[:len(stack)-1]
			}
			if len(stack) == 0 {
				return nil, malformed(x.Pos, "unmatched )")
			}
			stack = stack[:len(stack)-1]
		default:
			p := precedence[x.Kind]
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				if top.Kind == LParen || p > precedence[top.Kind] {
					break
				}
				if err := emit(top); err != nil {
					return nil, err
				}
				stack = stack[:len(stack)-1]
			}
			stack = append(stack, x)
		}
	}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.Kind == LParen {
			return nil, malformed(top.Pos, "unclosed (")
		}
		if err := emit(top); err != nil {
			return nil, err
		}
		stack = stack[:len(stack)-1]
	}
	if operands > 1 {
		return nil, malformed(-1, "%d operands are not joined by an operator", operands)
	}
	return postfix, nil
}

// Format joins token names with single spaces, e.g. "a_0 b_1 |".
func Format(tokens []Token) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = t.Name()
	}
	return strings.Join(parts, " ")
}
