package ast

// Builders for hand-constructed programs. They mirror what the external parser
// produces, minus source positions, which are assigned in statement order.

func MakeLiteral(name, lexeme string) *VariableDeclaration {
	return &VariableDeclaration{Name: name, Value: &Literal{Lexeme: lexeme}}
}

func MakeCall(name, callee, argument string) *VariableDeclaration {
	return &VariableDeclaration{Name: name, Value: &CallExpression{Callee: callee, Argument: argument}}
}

func MakeFunction(name, parameter string, ret ReturnExpression, statements ...Statement) *FunctionDeclaration {
	return &FunctionDeclaration{
		Name:      name,
		Parameter: parameter,
		Body:      FunctionBody{Statements: statements, Return: ret},
	}
}

func MakeSum(left, right string) *Addition {
	return &Addition{Left: left, Right: right}
}

func MakeIdent(name string) *Identifier {
	return &Identifier{Name: name}
}

func MakeSourceFile(statements ...Statement) SourceFile {
	for i, s := range statements {
		switch n := s.(type) {
		case *VariableDeclaration:
			n.Pos = i
		case *FunctionDeclaration:
			n.Pos = i
		}
	}
	return SourceFile{Statements: statements}
}

type Example struct {
	Name     string
	File     SourceFile
	Expected float64
}

// TestExamples are complete programs with their expected final value, shared by
// the interpreter, stepper and engine tests.
var TestExamples []Example

func init() {
	TestExamples = []Example{
		{
			Name: "literals",
			File: MakeSourceFile(
				MakeLiteral("a", "1"),
				MakeLiteral("b", "2"),
				MakeLiteral("c", "3"),
			),
			Expected: 3,
		},
		{
			Name: "call_with_addition",
			File: MakeSourceFile(
				MakeLiteral("a", "2"),
				MakeLiteral("b", "3"),
				MakeFunction("f", "x", MakeSum("x", "a")),
				MakeCall("c", "f", "b"),
			),
			Expected: 5,
		},
		{
			Name: "scenario_a",
			File: MakeSourceFile(
				MakeLiteral("a", "3"),
				MakeLiteral("b", "4"),
				MakeFunction("f", "x", MakeSum("x", "a")),
				MakeCall("c", "f", "b"),
			),
			Expected: 7,
		},
		{
			Name: "identity",
			File: MakeSourceFile(
				MakeFunction("f", "x", MakeIdent("x")),
				MakeLiteral("a", "5"),
				MakeCall("b", "f", "a"),
			),
			Expected: 5,
		},
		{
			Name: "body_statements",
			File: MakeSourceFile(
				MakeLiteral("a", "10"),
				MakeFunction("g", "y", MakeSum("y", "k"),
					MakeLiteral("k", "0.5"),
				),
				MakeCall("r", "g", "a"),
			),
			Expected: 10.5,
		},
		{
			Name: "nested_call",
			File: MakeSourceFile(
				MakeLiteral("one", "1"),
				MakeFunction("inc", "n", MakeSum("n", "one")),
				MakeFunction("twice", "m", MakeSum("p", "one"),
					MakeCall("p", "inc", "m"),
				),
				MakeLiteral("v", "40"),
				MakeCall("w", "twice", "v"),
			),
			Expected: 42,
		},
	}
}
