package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrinter(t *testing.T) {
	file := MakeSourceFile(
		MakeLiteral("a", "3"),
		MakeFunction("f", "x", MakeSum("x", "a")),
		MakeFunction("g", "y", MakeIdent("k"), MakeLiteral("k", "1"), MakeCall("j", "f", "y")),
		MakeCall("c", "f", "a"),
	)
	expected := "a = 3;\n" +
		"f(x) = x + a;\n" +
		"g(y) = { k = 1; j = f(y); return k; };\n" +
		"c = f(a);\n"
	assert.Equal(t, expected, String(file))
}

func TestPrinter_Examples(t *testing.T) {
	for _, ex := range TestExamples {
		s := String(ex.File)
		assert.NotEmpty(t, s, ex.Name)
		assert.Equal(t, len(ex.File.Statements), len(splitLines(s)), ex.Name)
	}
}

func splitLines(s string) []string {
	var ret []string
	start := 0
	for i, c := range s {
		if c == '\n' {
			ret = append(ret, s[start:i])
			start = i + 1
		}
	}
	return ret
}
