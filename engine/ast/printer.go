package ast

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

type Printer struct{}

var _ VisitorString = Printer{}

func (p Printer) VisitSourceFile(statements []Statement) string {
	var sb strings.Builder
	for _, s := range statements {
		sb.WriteString(s.AcceptString(p))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (p Printer) VisitVariableDeclaration(name string, init Initializer) string {
	return fmt.Sprintf("%s = %s;", name, init.AcceptString(p))
}

func (p Printer) VisitFunctionDeclaration(name, parameter string, body FunctionBody) string {
	ret := body.Return.AcceptString(p)
	if len(body.Statements) == 0 {
		return fmt.Sprintf("%s(%s) = %s;", name, parameter, ret)
	}
	inner := lo.Map(body.Statements, func(s Statement, _ int) string {
		return s.AcceptString(p)
	})
	return fmt.Sprintf("%s(%s) = { %s return %s; };", name, parameter, strings.Join(inner, " "), ret)
}

func (p Printer) VisitLiteral(lexeme string) string {
	return lexeme
}

func (p Printer) VisitCall(callee, argument string) string {
	return fmt.Sprintf("%s(%s)", callee, argument)
}

func (p Printer) VisitIdentifier(name string) string {
	return name
}

func (p Printer) VisitAddition(left, right string) string {
	return fmt.Sprintf("%s + %s", left, right)
}

// String renders any node back into DSL text.
func String(node Ast) string {
	return node.AcceptString(Printer{})
}
