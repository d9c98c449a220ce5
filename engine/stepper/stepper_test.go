package stepper

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stepeval/engine/ast"
	"stepeval/engine/interpreter"
	"stepeval/engine/runtime"
	"stepeval/lib/timer"
)

func drain(t *testing.T, s *Stepper) []interpreter.EventKind {
	var kinds []interpreter.EventKind
	for {
		e, ok := s.Next()
		if !ok {
			return kinds
		}
		require.NotNil(t, e.Env)
		kinds = append(kinds, e.Kind)
	}
}

func TestStepper_MatchesDirectEvaluation(t *testing.T) {
	for _, ex := range ast.TestExamples {
		t.Run(ex.Name, func(t *testing.T) {
			var direct []interpreter.EventKind
			expected, err := interpreter.NewInterpreter(func(e interpreter.Event) error {
				direct = append(direct, e.Kind)
				return nil
			}).Eval(ex.File)
			require.NoError(t, err)
			assert.Equal(t, runtime.Number(ex.Expected), expected)

			s := New(context.Background(), ex.File)
			defer s.Close()
			kinds := drain(t, s)
			assert.Equal(t, direct, kinds)
			assert.Equal(t, int64(len(kinds)), s.Steps())

			ret, err := s.Result()
			require.NoError(t, err)
			assert.Equal(t, expected, ret)
		})
	}
}

func TestStepper_NothingRunsBeforeNext(t *testing.T) {
	s := New(context.Background(), ast.TestExamples[0].File)
	defer s.Close()
	assert.Equal(t, int64(0), s.Steps())

	e, ok := s.Next()
	require.True(t, ok)
	assert.Equal(t, interpreter.Start, e.Kind)
	assert.Equal(t, 0, e.Pos.MustGet())
	// the global env exists but nothing is bound yet
	assert.Equal(t, 1, e.Env.Depth())
	assert.True(t, e.Env.Lookup("a").IsAbsent())
}

func TestStepper_InspectEnvBetweenSteps(t *testing.T) {
	s := New(context.Background(), ast.TestExamples[2].File)
	defer s.Close()

	var global *runtime.Env
	for {
		e, ok := s.Next()
		require.True(t, ok)
		if global == nil {
			global = e.Env
		}
		if e.Kind == interpreter.EnterFunctionBody {
			// parked inside the call: the parameter frame is there
			assert.Equal(t, 2, e.Env.Depth())
			assert.Equal(t, runtime.Number(4), e.Env.Lookup("x").MustGet())
			assert.True(t, global.Lookup("c").IsAbsent())
			break
		}
	}
	ret, err := s.Result()
	require.NoError(t, err)
	assert.Equal(t, runtime.Number(7), ret)
	assert.Equal(t, runtime.Number(7), global.Lookup("c").MustGet())

	// no more steps once finished
	_, ok := s.Next()
	assert.False(t, ok)
}

func TestStepper_Error(t *testing.T) {
	file := ast.MakeSourceFile(
		ast.MakeLiteral("a", "1"),
		ast.MakeCall("b", "f", "a"),
	)
	s := New(context.Background(), file)
	defer s.Close()
	kinds := drain(t, s)
	assert.Equal(t, interpreter.EnterVariableDeclaration, kinds[len(kinds)-1])
	_, err := s.Result()
	assert.ErrorIs(t, err, interpreter.ErrUnboundFunction)
}

func TestStepper_CloseWhileParkedInCall(t *testing.T) {
	s := New(context.Background(), ast.TestExamples[2].File)
	var fnEnv *runtime.Env
	for {
		e, ok := s.Next()
		require.True(t, ok)
		if e.Kind == interpreter.EnterFunctionBody {
			fnEnv = e.Env
			break
		}
	}
	require.Equal(t, 2, fnEnv.Depth())
	s.Close()
	// the interpreter unwound and released the call frame
	assert.Equal(t, 1, fnEnv.Depth())

	_, ok := s.Next()
	assert.False(t, ok)
	_, err := s.Result()
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStepper_CloseBeforeStart(t *testing.T) {
	s := New(context.Background(), ast.TestExamples[0].File)
	s.Close()
	_, ok := s.Next()
	assert.False(t, ok)
	assert.Equal(t, int64(0), s.Steps())
}

func TestStepper_ParentContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := New(ctx, ast.TestExamples[0].File)
	defer s.Close()
	_, ok := s.Next()
	require.True(t, ok)
	cancel()
	_, err := s.Result()
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStepper_RecordsTrace(t *testing.T) {
	ctx := timer.WithTracing(context.Background())
	s := New(ctx, ast.TestExamples[0].File)
	defer s.Close()
	kinds := drain(t, s)

	names := make([]string, 0, len(kinds))
	for _, k := range kinds {
		names = append(names, k.String())
	}
	assert.Equal(t, names, timer.Events(ctx))
}
