package interpreter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/mo"
)

var (
	ErrUnboundFunction    = errors.New("unbound function")
	ErrUnboundArgument    = errors.New("unbound argument")
	ErrUnboundReturnValue = errors.New("unbound return value")
	ErrUnboundOperand     = errors.New("unbound operand")
	ErrTypeMismatch       = errors.New("type mismatch")
	ErrInvalidLiteral     = errors.New("invalid literal")
	ErrEmptySourceFile    = errors.New("empty source file")
)

// Error is an evaluation failure. It unwraps to one of the Err* kinds above.
type Error struct {
	Kind  error
	Names []string
	Pos   mo.Option[int]
	cause error
}

func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Kind.Error())
	if len(e.Names) > 0 {
		sb.WriteString(fmt.Sprintf(": '%s'", strings.Join(e.Names, "', '")))
	}
	if pos, ok := e.Pos.Get(); ok {
		sb.WriteString(fmt.Sprintf(" at %d", pos))
	}
	if e.cause != nil {
		sb.WriteString(fmt.Sprintf(": %v", e.cause))
	}
	return sb.String()
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, pos mo.Option[int], names ...string) *Error {
	return &Error{Kind: kind, Names: names, Pos: pos}
}
