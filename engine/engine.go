package engine

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"stepeval/engine/ast"
	"stepeval/engine/interpreter"
	"stepeval/engine/runtime"
	"stepeval/engine/stepper"
	"stepeval/lib/timer"
)

type Executor struct{}

func NewExecutor() Executor {
	return Executor{}
}

// Exec evaluates the file in one go and returns the value of its last statement.
// Cancelling ctx stops evaluation at the next step.
func (ex Executor) Exec(ctx context.Context, file ast.SourceFile) (runtime.Value, error) {
	defer timer.Start("engine.exec").Stop()
	ip := interpreter.NewInterpreter(func(e interpreter.Event) error {
		timer.Record(ctx, e.Kind.String())
		return ctx.Err()
	})
	ret, err := ip.Eval(file)
	if err != nil {
		zap.L().Warn("evaluation failed", zap.Error(err))
		return nil, errors.Wrap(err, "failed to evaluate source file")
	}
	return ret, nil
}

// Step returns a stepper over the file. The caller drives it with Next and must
// Close it.
func (ex Executor) Step(ctx context.Context, file ast.SourceFile) *stepper.Stepper {
	return stepper.New(ctx, file)
}

// ExecJson decodes a parser-produced JSON AST and evaluates it.
func (ex Executor) ExecJson(ctx context.Context, data []byte) (runtime.Value, error) {
	file, err := ast.FromJson(data)
	if err != nil {
		return nil, errors.Wrap(err, "could not decode source file")
	}
	return ex.Exec(ctx, file)
}
