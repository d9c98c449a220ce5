package runtime

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"
	"github.com/samber/mo"
)

var ErrNoFrame = errors.New("environment has no frame")

// Frame holds the bindings of a single scope. Frames are shared by reference
// between an Env and every snapshot taken of it.
type Frame struct {
	table map[string]Value
}

func NewFrame() *Frame {
	return &Frame{table: make(map[string]Value)}
}

func (f *Frame) set(name string, value Value) {
	f.table[name] = value
}

func (f *Frame) get(name string) (Value, bool) {
	v, ok := f.table[name]
	return v, ok
}

// Names returns the names bound in this frame, sorted.
func (f *Frame) Names() []string {
	names := lo.Keys(f.table)
	sort.Strings(names)
	return names
}

// Bindings returns a copy of the frame's bindings.
func (f *Frame) Bindings() map[string]Value {
	ret := make(map[string]Value, len(f.table))
	for k, v := range f.table {
		ret[k] = v
	}
	return ret
}

// Env is an ordered list of frames, innermost last.
type Env struct {
	frames []*Frame
}

// NewEnv returns an environment holding one empty frame.
func NewEnv() *Env {
	return &Env{frames: []*Frame{NewFrame()}}
}

// PushFrame appends a frame holding exactly one binding.
func (e *Env) PushFrame(name string, value Value) {
	f := NewFrame()
	f.set(name, value)
	e.frames = append(e.frames, f)
}

// Bind sets name in the innermost frame, overwriting any earlier binding there.
func (e *Env) Bind(name string, value Value) error {
	if len(e.frames) == 0 {
		return ErrNoFrame
	}
	e.frames[len(e.frames)-1].set(name, value)
	return nil
}

// PopFrame removes the innermost frame. Every PushFrame must be paired with
// exactly one PopFrame on the same Env.
func (e *Env) PopFrame() error {
	if len(e.frames) == 0 {
		return ErrNoFrame
	}
	e.frames[len(e.frames)-1] = nil
	e.frames = e.frames[:len(e.frames)-1]
	return nil
}

func (e *Env) Lookup(name string) mo.Option[Value] {
	for i := len(e.frames) - 1; i >= 0; i-- {
		if v, ok := e.frames[i].get(name); ok {
			return mo.Some(v)
		}
	}
	return mo.None[Value]()
}

// Snapshot returns a new Env over the same frames. The frame list itself is
// copied so that pushing onto either Env never shows up in the other.
func (e *Env) Snapshot() *Env {
	frames := make([]*Frame, len(e.frames))
	copy(frames, e.frames)
	return &Env{frames: frames}
}

func (e *Env) Depth() int {
	return len(e.frames)
}

// Frames returns the frames outermost first. Callers must treat them as read-only.
func (e *Env) Frames() []*Frame {
	ret := make([]*Frame, len(e.frames))
	copy(ret, e.frames)
	return ret
}

func (e *Env) String() string {
	frames := lo.Map(e.frames, func(f *Frame, _ int) string {
		entries := lo.Map(f.Names(), func(name string, _ int) string {
			return fmt.Sprintf("%s: %s", name, f.table[name])
		})
		return fmt.Sprintf("{%s}", strings.Join(entries, ", "))
	})
	return fmt.Sprintf("[%s]", strings.Join(frames, ", "))
}
