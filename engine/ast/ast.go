package ast

type VisitorString interface {
	VisitSourceFile(statements []Statement) string
	VisitVariableDeclaration(name string, init Initializer) string
	VisitFunctionDeclaration(name, parameter string, body FunctionBody) string
	VisitLiteral(lexeme string) string
	VisitCall(callee, argument string) string
	VisitIdentifier(name string) string
	VisitAddition(left, right string) string
}

type Ast interface {
	AcceptString(v VisitorString) string
}

// Statement is either a *VariableDeclaration or a *FunctionDeclaration.
type Statement interface {
	Ast
	isStatement()
}

// Initializer is the right-hand side of a variable declaration: *Literal or *CallExpression.
type Initializer interface {
	Ast
	isInitializer()
}

// ReturnExpression ends every function body: *Identifier or *Addition.
type ReturnExpression interface {
	Ast
	isReturnExpression()
}

var _ Ast = SourceFile{}
var _ Statement = (*VariableDeclaration)(nil)
var _ Statement = (*FunctionDeclaration)(nil)
var _ Initializer = (*Literal)(nil)
var _ Initializer = (*CallExpression)(nil)
var _ ReturnExpression = (*Identifier)(nil)
var _ ReturnExpression = (*Addition)(nil)

type SourceFile struct {
	Statements []Statement
	Pos        int
}

func (s SourceFile) AcceptString(v VisitorString) string {
	return v.VisitSourceFile(s.Statements)
}

type VariableDeclaration struct {
	Name  string
	Value Initializer
	Pos   int
}

func (d *VariableDeclaration) isStatement() {}

func (d *VariableDeclaration) AcceptString(v VisitorString) string {
	return v.VisitVariableDeclaration(d.Name, d.Value)
}

type FunctionDeclaration struct {
	Name      string
	Parameter string
	Body      FunctionBody
	Pos       int
}

func (d *FunctionDeclaration) isStatement() {}

func (d *FunctionDeclaration) AcceptString(v VisitorString) string {
	return v.VisitFunctionDeclaration(d.Name, d.Parameter, d.Body)
}

type FunctionBody struct {
	Statements []Statement
	Return     ReturnExpression
}

type Literal struct {
	Lexeme string
}

func (l *Literal) isInitializer() {}

func (l *Literal) AcceptString(v VisitorString) string {
	return v.VisitLiteral(l.Lexeme)
}

// CallExpression calls Callee with a single argument, which is always a variable name.
type CallExpression struct {
	Callee   string
	Argument string
}

func (c *CallExpression) isInitializer() {}

func (c *CallExpression) AcceptString(v VisitorString) string {
	return v.VisitCall(c.Callee, c.Argument)
}

type Identifier struct {
	Name string
}

func (i *Identifier) isReturnExpression() {}

func (i *Identifier) AcceptString(v VisitorString) string {
	return v.VisitIdentifier(i.Name)
}

type Addition struct {
	Left  string
	Right string
}

func (a *Addition) isReturnExpression() {}

func (a *Addition) AcceptString(v VisitorString) string {
	return v.VisitAddition(a.Left, a.Right)
}
