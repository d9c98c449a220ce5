package interpreter

import (
	"fmt"

	"github.com/samber/mo"

	"stepeval/engine/runtime"
)

type EventKind uint8

const (
	Start EventKind = iota
	EnterSourceFile
	EnterStatementList
	EnterStatement
	EnterVariableDeclaration
	EnterFunctionBody
	EnterFunctionDeclaration
)

func (k EventKind) String() string {
	switch k {
	case Start:
		return "start"
	case EnterSourceFile:
		return "source_file"
	case EnterStatementList:
		return "statement_list"
	case EnterStatement:
		return "statement"
	case EnterVariableDeclaration:
		return "variable_declaration"
	case EnterFunctionBody:
		return "function_body"
	case EnterFunctionDeclaration:
		return "function_declaration"
	default:
		return fmt.Sprintf("unknown:%d", k)
	}
}

// Event is emitted right before the interpreter starts on a unit of work. Env is
// the live environment at that point, not a copy: observers must not modify it.
type Event struct {
	Kind EventKind
	Env  *runtime.Env
	Pos  mo.Option[int]
}

func (e Event) String() string {
	if pos, ok := e.Pos.Get(); ok {
		return fmt.Sprintf("%s@%d %s", e.Kind, pos, e.Env)
	}
	return fmt.Sprintf("%s %s", e.Kind, e.Env)
}

// YieldFunc receives every event. A non-nil error aborts the evaluation and is
// returned from Eval as is.
type YieldFunc func(Event) error

func noYield(Event) error { return nil }
