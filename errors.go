package symdiff

import (
	"errors"
	"fmt"
)

var (
	ErrParse             = errors.New("parse error")
	ErrTooDeep           = errors.New("expression nested too deeply")
	ErrUndefinedVariable = errors.New("undefined variable")
	ErrDivisionByZero    = errors.New("division by zero")
	ErrUnknownOperation  = errors.New("unknown operation")
	ErrUnknownFunction   = errors.New("unknown function")
)

// ParseError reports the substring the parser could not make sense of.
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Err != nil && !errors.Is(e.Err, ErrParse) {
		return fmt.Sprintf("invalid expression: '%s': %v", e.Input, e.Err)
	}
	return fmt.Sprintf("invalid expression: '%s'", e.Input)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrParse }

type UndefinedVariableError struct {
	Name string
}

func (e *UndefinedVariableError) Error() string {
	return fmt.Sprintf("undefined variable: %s", e.Name)
}

func (e *UndefinedVariableError) Is(target error) bool { return target == ErrUndefinedVariable }
