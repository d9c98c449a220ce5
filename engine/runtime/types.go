package runtime

import (
	"fmt"
	"strconv"

	"stepeval/engine/ast"
)

// Value is either a Number or a *Function.
type Value interface {
	isValue()
	Equal(v Value) bool
	String() string
}

var _ Value = Number(0)
var _ Value = (*Function)(nil)

type Number float64

func (n Number) isValue() {}
func (n Number) Equal(v Value) bool {
	switch v.(type) {
	case Number:
		return v.(Number) == n
	default:
		return false
	}
}
func (n Number) String() string {
	return fmt.Sprintf("Number(%s)", strconv.FormatFloat(float64(n), 'f', -1, 64))
}

// ParseNumber parses a literal lexeme as a decimal number.
func ParseNumber(lexeme string) (Number, error) {
	f, err := strconv.ParseFloat(lexeme, 64)
	if err != nil {
		return 0, err
	}
	return Number(f), nil
}

// Function is a function declaration closed over the environment it was declared
// in. Env is a snapshot of the declaring environment's frame list, so frames pushed
// on the declaring side later are not visible, but new bindings written into frames
// that were already there are.
type Function struct {
	Env  *Env
	Decl *ast.FunctionDeclaration
}

func NewFunction(decl *ast.FunctionDeclaration) *Function {
	return &Function{Decl: decl}
}

func (f *Function) isValue() {}

// Equal is identity: two declarations of the same text are still different functions.
func (f *Function) Equal(v Value) bool {
	switch v.(type) {
	case *Function:
		return v.(*Function) == f
	default:
		return false
	}
}
func (f *Function) String() string {
	return fmt.Sprintf("Function(%s(%s))", f.Decl.Name, f.Decl.Parameter)
}
