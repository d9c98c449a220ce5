package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexflint/go-arg"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"stepeval/engine"
	"stepeval/engine/ast"
	"stepeval/engine/runtime"
	"stepeval/lib/timer"
)

type StepArgs struct {
	File        string `arg:"--file,env:DSL_AST_FILE" json:"file,omitempty"`
	Step        bool   `arg:"--step,env:DSL_STEP" json:"step,omitempty"`
	Interactive bool   `arg:"--interactive" json:"interactive,omitempty"`
	Trace       bool   `arg:"--trace,env:DSL_TRACE" json:"trace,omitempty"`
	Dev         bool   `arg:"--dev" default:"false" json:"dev,omitempty"`
}

func (args StepArgs) Valid() error {
	if args.File == "" {
		return fmt.Errorf("--file cannot be empty")
	}
	if args.Interactive && !args.Step {
		return fmt.Errorf("--interactive requires --step")
	}
	return nil
}

func newLogger(dev bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if dev {
		config = zap.NewDevelopmentConfig()
	}
	config.EncoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder
	return config.Build(
		zap.AddCaller(),
		zap.AddStacktrace(zap.ErrorLevel),
	)
}

func run(ctx context.Context, args StepArgs, in io.Reader, out io.Writer) (runtime.Value, error) {
	data, err := os.ReadFile(args.File)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read %s", args.File)
	}
	executor := engine.NewExecutor()
	if !args.Step {
		return executor.ExecJson(ctx, data)
	}
	file, err := ast.FromJson(data)
	if err != nil {
		return nil, errors.Wrap(err, "could not decode source file")
	}
	s := executor.Step(ctx, file)
	defer s.Close()
	scanner := bufio.NewScanner(in)
	for {
		e, ok := s.Next()
		if !ok {
			break
		}
		fmt.Fprintf(out, "%3d %s\n", s.Steps(), e)
		if args.Interactive {
			// any line, including an empty one, advances by one step
			if !scanner.Scan() {
				return nil, errors.New("input closed before evaluation finished")
			}
		}
	}
	return s.Result()
}

func main() {
	args := StepArgs{}
	arg.MustParse(&args)
	if err := args.Valid(); err != nil {
		panic(err)
	}

	logger, err := newLogger(args.Dev)
	if err != nil {
		panic(fmt.Errorf("failed to construct logger: %v", err))
	}
	_ = zap.ReplaceGlobals(logger)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()
	if args.Trace {
		ctx = timer.WithTracing(ctx)
	}

	ret, err := run(ctx, args, os.Stdin, os.Stdout)
	if err := timer.LogTracingInfo(ctx, logger); err != nil {
		logger.Warn("could not log trace", zap.Error(err))
	}
	if err != nil {
		logger.Error("evaluation failed", zap.String("file", args.File), zap.Error(err))
		os.Exit(1)
	}
	fmt.Println(ret)
}
