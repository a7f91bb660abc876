package luacmd

import (
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"
)

// Engine owns a sandboxed Lua interpreter and loads command scripts into it.
//
// gopher-lua's LState is not goroutine-safe. The mutex serializes access
// from Go code; Lua execution itself is single-threaded.
type Engine struct {
	mu     sync.Mutex
	L      *lua.LState
	closed bool
}

// New creates an engine with a sandboxed interpreter.
func New() *Engine {
	L := lua.NewState(lua.Options{
		SkipOpenLibs: true, // opened selectively below
	})

	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
	// io, os, debug and package stay closed.

	// The base library still exposes chunk loaders that can reach the
	// filesystem; remove them.
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}

	return &Engine{L: L}
}

// NewDocument returns a fresh table to use as a command receiver. Returns
// nil on a closed engine.
func (e *Engine) NewDocument() *lua.LTable {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil
	}
	return e.L.NewTable()
}

// SetField writes a Go value into doc under key, converting it to the
// matching Lua value.
func (e *Engine) SetField(doc *lua.LTable, key string, v any) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrEngineClosed
	}
	lv, err := toLua(e.L, v)
	if err != nil {
		return fmt.Errorf("set field %q: %w", key, err)
	}
	doc.RawSetString(key, lv)
	return nil
}

// Field reads doc[key] back as a Go value: bool, int64, float64, string,
// []any, map[string]any, or nil.
func (e *Engine) Field(doc *lua.LTable, key string) any {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil
	}
	return toGo(doc.RawGetString(key))
}

// IsClosed reports whether Close has been called.
func (e *Engine) IsClosed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.closed
}

// Close releases the interpreter. Commands loaded from this engine fail
// with ErrEngineClosed afterward.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil
	}
	e.L.Close()
	e.closed = true
	return nil
}

// call invokes a loaded Lua function with doc as its sole argument,
// recovering interpreter panics into errors.
func (e *Engine) call(fn *lua.LFunction, doc *lua.LTable) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrEngineClosed
	}

	var callErr error
	func() {
		defer func() {
			if r := recover(); r != nil {
				callErr = fmt.Errorf("lua panic: %v", r)
			}
		}()
		callErr = e.L.CallByParam(lua.P{
			Fn:      fn,
			NRet:    0,
			Protect: true,
		}, doc)
	}()
	return callErr
}
