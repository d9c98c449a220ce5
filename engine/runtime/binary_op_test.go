package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"stepeval/engine/ast"
)

func verifyAdd(t *testing.T, left, right Value, expected Value) {
	ret, err := Add(left, right)
	if expected != nil {
		assert.NoError(t, err)
		assert.Equal(t, expected, ret)
	} else {
		assert.Error(t, err)
	}
}

func TestAdd(t *testing.T) {
	verifyAdd(t, Number(1), Number(2), Number(3))
	verifyAdd(t, Number(1.5), Number(-2), Number(-0.5))
	verifyAdd(t, Number(0), Number(0), Number(0))

	f := NewFunction(ast.MakeFunction("f", "x", ast.MakeIdent("x")))
	verifyAdd(t, Number(1), f, nil)
	verifyAdd(t, f, Number(1), nil)
	verifyAdd(t, f, f, nil)
}

func TestParseNumber(t *testing.T) {
	n, err := ParseNumber("3")
	assert.NoError(t, err)
	assert.Equal(t, Number(3), n)

	n, err = ParseNumber("-0.25")
	assert.NoError(t, err)
	assert.Equal(t, Number(-0.25), n)

	_, err = ParseNumber("three")
	assert.Error(t, err)
	_, err = ParseNumber("")
	assert.Error(t, err)
}

func TestEqual(t *testing.T) {
	decl := ast.MakeFunction("f", "x", ast.MakeIdent("x"))
	f1, f2 := NewFunction(decl), NewFunction(decl)

	assert.True(t, Number(2).Equal(Number(2)))
	assert.False(t, Number(2).Equal(Number(3)))
	assert.False(t, Number(2).Equal(f1))
	assert.True(t, f1.Equal(f1))
	assert.False(t, f1.Equal(f2))
	assert.False(t, f1.Equal(Number(2)))

	assert.Equal(t, "Number(2.5)", Number(2.5).String())
	assert.Equal(t, "Function(f(x))", f1.String())
}
