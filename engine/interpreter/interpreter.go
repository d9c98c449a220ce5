package interpreter

import (
	"fmt"

	"github.com/samber/mo"
	"go.uber.org/zap"

	"stepeval/engine/ast"
	"stepeval/engine/runtime"
)

// Interpreter evaluates a source file statement by statement, handing an Event to
// its YieldFunc before every unit of work. Methods use value receivers: switching
// into a function's environment only changes the copy that evaluates the body.
type Interpreter struct {
	env   *runtime.Env
	yield YieldFunc
}

func NewInterpreter(yield YieldFunc) Interpreter {
	if yield == nil {
		yield = noYield
	}
	return Interpreter{env: runtime.NewEnv(), yield: yield}
}

// Env returns the global environment.
func (i Interpreter) Env() *runtime.Env {
	return i.env
}

// Eval evaluates the file in the global environment and returns the value of its
// last statement.
func (i Interpreter) Eval(file ast.SourceFile) (runtime.Value, error) {
	if err := i.emit(Start, mo.Some(0)); err != nil {
		return nil, err
	}
	return i.evalSourceFile(file)
}

func (i Interpreter) emit(kind EventKind, pos mo.Option[int]) error {
	return i.yield(Event{Kind: kind, Env: i.env, Pos: pos})
}

func (i Interpreter) evalSourceFile(file ast.SourceFile) (runtime.Value, error) {
	if err := i.emit(EnterSourceFile, mo.Some(file.Pos)); err != nil {
		return nil, err
	}
	values, err := i.evalStatementList(file.Statements)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, newError(ErrEmptySourceFile, mo.Some(file.Pos))
	}
	return values[len(values)-1], nil
}

func (i Interpreter) evalStatementList(statements []ast.Statement) ([]runtime.Value, error) {
	if err := i.emit(EnterStatementList, mo.None[int]()); err != nil {
		return nil, err
	}
	ret := make([]runtime.Value, 0, len(statements))
	for _, s := range statements {
		v, err := i.evalStatement(s)
		if err != nil {
			return nil, err
		}
		ret = append(ret, v)
	}
	return ret, nil
}

func (i Interpreter) evalStatement(statement ast.Statement) (runtime.Value, error) {
	if err := i.emit(EnterStatement, mo.None[int]()); err != nil {
		return nil, err
	}
	switch s := statement.(type) {
	case *ast.VariableDeclaration:
		return i.evalVariableDeclaration(s)
	case *ast.FunctionDeclaration:
		return i.evalFunctionDeclaration(s)
	}
	panic(fmt.Sprintf("unexpected statement: %T", statement))
}

func (i Interpreter) evalVariableDeclaration(decl *ast.VariableDeclaration) (runtime.Value, error) {
	pos := mo.Some(decl.Pos)
	if err := i.emit(EnterVariableDeclaration, pos); err != nil {
		return nil, err
	}
	var val runtime.Value
	switch init := decl.Value.(type) {
	case *ast.Literal:
		n, err := runtime.ParseNumber(init.Lexeme)
		if err != nil {
			e := newError(ErrInvalidLiteral, pos, decl.Name)
			e.cause = err
			return nil, e
		}
		val = n
	case *ast.CallExpression:
		ret, err := i.call(init, pos)
		if err != nil {
			return nil, err
		}
		val = ret
	default:
		panic(fmt.Sprintf("unexpected initializer: %T", decl.Value))
	}
	if err := i.env.Bind(decl.Name, val); err != nil {
		return nil, fmt.Errorf("could not bind '%s': %w", decl.Name, err)
	}
	return val, nil
}

// call evaluates the callee's body in its captured environment extended by one
// frame for the parameter. That frame is popped on every way out of call.
func (i Interpreter) call(c *ast.CallExpression, pos mo.Option[int]) (runtime.Value, error) {
	callee, _ := i.env.Lookup(c.Callee).Get()
	fn, ok := callee.(*runtime.Function)
	if !ok {
		return nil, newError(ErrUnboundFunction, pos, c.Callee)
	}
	arg, ok := i.env.Lookup(c.Argument).Get()
	if !ok {
		return nil, newError(ErrUnboundArgument, pos, c.Argument)
	}

	fn.Env.PushFrame(fn.Decl.Parameter, arg)
	defer func() {
		if err := fn.Env.PopFrame(); err != nil {
			zap.L().Error("unbalanced call frame", zap.String("function", fn.Decl.Name), zap.Error(err))
		}
	}()
	zap.L().Debug("calling function",
		zap.String("function", fn.Decl.Name),
		zap.String("argument", c.Argument),
		zap.Int("depth", fn.Env.Depth()),
	)

	body := i
	body.env = fn.Env
	return body.evalFunctionBody(fn.Decl)
}

func (i Interpreter) evalFunctionBody(decl *ast.FunctionDeclaration) (runtime.Value, error) {
	if err := i.emit(EnterFunctionBody, mo.None[int]()); err != nil {
		return nil, err
	}
	// statement values are thrown away, only the return expression counts
	if _, err := i.evalStatementList(decl.Body.Statements); err != nil {
		return nil, err
	}
	pos := mo.Some(decl.Pos)
	switch ret := decl.Body.Return.(type) {
	case *ast.Identifier:
		v, ok := i.env.Lookup(ret.Name).Get()
		if !ok {
			return nil, newError(ErrUnboundReturnValue, pos, ret.Name)
		}
		return v, nil
	case *ast.Addition:
		left, lok := i.env.Lookup(ret.Left).Get()
		right, rok := i.env.Lookup(ret.Right).Get()
		var missing []string
		if !lok {
			missing = append(missing, ret.Left)
		}
		if !rok {
			missing = append(missing, ret.Right)
		}
		if len(missing) > 0 {
			return nil, newError(ErrUnboundOperand, pos, missing...)
		}
		sum, err := runtime.Add(left, right)
		if err != nil {
			e := newError(ErrTypeMismatch, pos, ret.Left, ret.Right)
			e.cause = err
			return nil, e
		}
		return sum, nil
	}
	panic(fmt.Sprintf("unexpected return expression: %T", decl.Body.Return))
}

// evalFunctionDeclaration binds the function before snapshotting the environment,
// so the function's own name is visible from inside its body.
func (i Interpreter) evalFunctionDeclaration(decl *ast.FunctionDeclaration) (runtime.Value, error) {
	if err := i.emit(EnterFunctionDeclaration, mo.Some(decl.Pos)); err != nil {
		return nil, err
	}
	fn := runtime.NewFunction(decl)
	if err := i.env.Bind(decl.Name, fn); err != nil {
		return nil, fmt.Errorf("could not bind '%s': %w", decl.Name, err)
	}
	fn.Env = i.env.Snapshot()
	return fn, nil
}
