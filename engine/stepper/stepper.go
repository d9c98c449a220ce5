package stepper

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/atomic"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"stepeval/engine/ast"
	"stepeval/engine/interpreter"
	"stepeval/engine/runtime"
	"stepeval/lib/timer"
)

var stepsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "eval_steps_total",
	Help: "Number of evaluation steps delivered to stepping drivers",
}, []string{"kind"})

/*
	Stepper runs an interpreter on its own goroutine and parks it at every event
	until the driver asks for the next one. The driver and the interpreter never run
	at the same time: Next hands control over by sending on resume, and gets it
	back when the interpreter sends the following event or exits. So, between two
	calls to Next, the driver may freely read the environment carried by the event.

	Nothing is evaluated until the first call to Next. A driver that stops calling
	Next should call Close so that the parked goroutine can exit.
*/
type Stepper struct {
	ctx    context.Context
	cancel context.CancelFunc
	group  *errgroup.Group
	resume chan struct{}
	events chan interpreter.Event
	done   chan struct{}
	steps  *atomic.Int64

	finished bool
	result   runtime.Value
}

func New(ctx context.Context, file ast.SourceFile) *Stepper {
	ctx, cancel := context.WithCancel(ctx)
	group, ctx := errgroup.WithContext(ctx)
	s := &Stepper{
		ctx:    ctx,
		cancel: cancel,
		group:  group,
		resume: make(chan struct{}),
		events: make(chan interpreter.Event),
		done:   make(chan struct{}),
		steps:  atomic.NewInt64(0),
	}
	group.Go(func() error {
		defer close(s.done)
		defer close(s.events)
		if err := s.wait(); err != nil {
			return err
		}
		ret, err := interpreter.NewInterpreter(s.yield).Eval(file)
		if err != nil {
			return err
		}
		s.result = ret
		return nil
	})
	return s
}

// wait parks the interpreter goroutine until the driver resumes it. A cancelled
// context wins even if a resume arrived at the same time.
func (s *Stepper) wait() error {
	select {
	case <-s.resume:
	case <-s.ctx.Done():
	}
	return s.ctx.Err()
}

// yield runs on the interpreter goroutine.
func (s *Stepper) yield(e interpreter.Event) error {
	if err := s.ctx.Err(); err != nil {
		return err
	}
	select {
	case s.events <- e:
	case <-s.ctx.Done():
		return s.ctx.Err()
	}
	return s.wait()
}

// Next resumes evaluation until the next event. It returns false once evaluation
// is over, whether it succeeded or not; Result tells which.
func (s *Stepper) Next() (interpreter.Event, bool) {
	if s.finished {
		return interpreter.Event{}, false
	}
	select {
	case s.resume <- struct{}{}:
	case <-s.done:
		s.finished = true
		return interpreter.Event{}, false
	}
	e, ok := <-s.events
	if !ok {
		s.finished = true
		return interpreter.Event{}, false
	}
	s.steps.Inc()
	stepsTotal.WithLabelValues(e.Kind.String()).Inc()
	timer.Record(s.ctx, e.Kind.String())
	zap.L().Debug("evaluation step",
		zap.Int64("step", s.steps.Load()),
		zap.Stringer("kind", e.Kind),
		zap.Stringer("env", e.Env),
	)
	return e, true
}

// Result runs evaluation to completion and returns the value of the source
// file's last statement.
func (s *Stepper) Result() (runtime.Value, error) {
	for {
		if _, ok := s.Next(); !ok {
			break
		}
	}
	if err := s.group.Wait(); err != nil {
		return nil, err
	}
	return s.result, nil
}

// Close abandons the evaluation. It is safe to call at any point, including
// after Result.
func (s *Stepper) Close() {
	s.cancel()
	_ = s.group.Wait()
	s.finished = true
}

// Steps returns the number of events delivered so far.
func (s *Stepper) Steps() int64 {
	return s.steps.Load()
}
