package timer

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

type traceKey struct{}

type traceEvent struct {
	event   string
	elapsed time.Duration
}

type trace struct {
	lock   sync.Mutex
	start  time.Time
	events []traceEvent
}

func (t *trace) record(key string, ts time.Time) {
	t.lock.Lock()
	defer t.lock.Unlock()
	t.events = append(t.events, traceEvent{
		event:   key,
		elapsed: ts.Sub(t.start),
	})
}

// WithTracing returns a context in which Record keeps track of events.
func WithTracing(ctx context.Context) context.Context {
	return context.WithValue(ctx, traceKey{}, &trace{
		lock:   sync.Mutex{},
		start:  time.Now(),
		events: make([]traceEvent, 0),
	})
}

// Record notes that event happened now. It does nothing unless ctx came from
// WithTracing.
func Record(ctx context.Context, event string) {
	if t, ok := ctx.Value(traceKey{}).(*trace); ok {
		t.record(event, time.Now())
	}
}

// Events returns the names of the recorded events in the order they happened.
func Events(ctx context.Context) []string {
	t, ok := ctx.Value(traceKey{}).(*trace)
	if !ok {
		return nil
	}
	t.lock.Lock()
	defer t.lock.Unlock()
	ret := make([]string, 0, len(t.events))
	for _, e := range t.events {
		ret = append(ret, e.event)
	}
	return ret
}

func LogTracingInfo(ctx context.Context, log *zap.Logger) error {
	ctxval := ctx.Value(traceKey{})
	if ctxval == nil {
		return nil
	}
	trace, ok := ctxval.(*trace)
	if !ok {
		return fmt.Errorf("expected trace but got: %v", ctxval)
	}
	trace.lock.Lock()
	defer trace.lock.Unlock()
	sb := strings.Builder{}
	sb.WriteString("====Trace====\n")
	sort.SliceStable(trace.events, func(i, j int) bool {
		return trace.events[i].elapsed < trace.events[j].elapsed
	})
	for _, e := range trace.events {
		sb.WriteString(fmt.Sprintf("\t%5dµs: %s\n", e.elapsed.Microseconds(), e.event))
	}
	log.Debug(sb.String())
	return nil
}
