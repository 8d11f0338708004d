package symdiff

import "strings"

// ============================================================
// Parsing
// ============================================================

// DefaultMaxDepth bounds parser recursion when Parser.MaxDepth is unset.
const DefaultMaxDepth = 4096

var (
	splitOrder = []Op{OpAdd, OpSub, OpMul, OpDiv, OpPow}
	funcOrder  = []FuncName{FuncSin, FuncCos, FuncLn, FuncExp}
)

// Parser turns expression text into an unsimplified tree.
//
// At each level the text is split at the first operator outside
// parentheses, trying + - * / ^ in that order. Chains of one operator
// therefore group to the right: "a-b-c" is a-(b-c).
type Parser[T Scalar[T]] struct {
	// MaxDepth limits nesting; deeper input fails with ErrTooDeep.
	MaxDepth int
}

func Parse[T Scalar[T]](s string) (Expr[T], error) { return Parser[T]{}.Parse(s) }

// MustParse is like Parse but panics on error.
func MustParse[T Scalar[T]](s string) Expr[T] {
	e, err := Parse[T](s)
	if err != nil {
		panic(err)
	}
	return e
}

func (p Parser[T]) Parse(s string) (Expr[T], error) {
	limit := p.MaxDepth
	if limit <= 0 {
		limit = DefaultMaxDepth
	}
	return p.parse(s, 0, limit)
}

func (p Parser[T]) parse(s string, depth, limit int) (Expr[T], error) {
	if depth > limit {
		return nil, &ParseError{Input: s, Err: ErrTooDeep}
	}
	s = strings.TrimSpace(stripOuterParens(strings.TrimSpace(s)))

	if s == "x" || s == "y" {
		return &Sym[T]{name: s}, nil
	}

	for _, op := range splitOrder {
		i := splitIndex(s, op)
		if i < 0 {
			continue
		}
		l, err := p.parse(s[:i], depth+1, limit)
		if err != nil {
			return nil, err
		}
		r, err := p.parse(s[i+1:], depth+1, limit)
		if err != nil {
			return nil, err
		}
		return binOf(op, l, r), nil
	}

	for _, fn := range funcOrder {
		prefix := string(fn) + "("
		if strings.HasPrefix(s, prefix) && strings.HasSuffix(s, ")") {
			arg, err := p.parse(s[len(prefix):len(s)-1], depth+1, limit)
			if err != nil {
				return nil, err
			}
			return funcOf(fn, arg), nil
		}
	}

	var z T
	v, err := z.Parse(s)
	if err != nil {
		return nil, &ParseError{Input: s}
	}
	return &Num[T]{val: v}, nil
}

// stripOuterParens removes one pair of parentheses when the opening one
// matches the final character.
func stripOuterParens(s string) string {
	if len(s) < 2 || s[0] != '(' || s[len(s)-1] != ')' {
		return s
	}
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
		}
		if depth == 0 && i < len(s)-1 {
			return s
		}
	}
	return s[1 : len(s)-1]
}

// splitIndex returns the first index of op at parenthesis depth zero, or -1.
// A leading + or - is a sign, not an operator, and so is the sign of a
// literal's exponent.
func splitIndex(s string, op Op) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '(':
			depth++
		case c == ')':
			depth--
		case c == byte(op) && depth == 0:
			if op == OpAdd || op == OpSub {
				if i == 0 || isExponentSign(s, i) {
					continue
				}
			}
			return i
		}
	}
	return -1
}

func isExponentSign(s string, i int) bool {
	if i < 2 || (s[i-1] != 'e' && s[i-1] != 'E') {
		return false
	}
	c := s[i-2]
	return (c >= '0' && c <= '9') || c == '.'
}
