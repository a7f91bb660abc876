package luacmd

import (
	"errors"
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/rewind"
)

// Command is a history command whose redo and undo run as Lua functions
// against a table receiver.
type Command struct {
	eng       *Engine
	desc      string
	mergeID   uint64
	mergeable bool
	redo      *lua.LFunction
	undo      *lua.LFunction
}

var (
	_ rewind.Command[*lua.LTable] = (*Command)(nil)
	_ rewind.Mergeable            = (*Command)(nil)
	_ rewind.Describer            = (*Command)(nil)
)

// Load evaluates src, which must return a table with redo and undo
// functions, and wraps it as a command. The table may also carry a
// description string and a merge_id number; see the package documentation
// for the script shape.
func (e *Engine) Load(src string) (*Command, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil, ErrEngineClosed
	}

	fn, err := e.L.LoadString(src)
	if err != nil {
		return nil, fmt.Errorf("compile command script: %w", err)
	}

	top := e.L.GetTop()
	e.L.Push(fn)

	var callErr error
	func() {
		defer func() {
			if r := recover(); r != nil {
				callErr = fmt.Errorf("lua panic: %v", r)
			}
		}()
		callErr = e.L.PCall(0, 1, nil)
	}()
	if callErr != nil {
		e.L.SetTop(top)
		return nil, fmt.Errorf("run command script: %w", callErr)
	}

	ret := e.L.Get(-1)
	e.L.SetTop(top)

	tbl, ok := ret.(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("command script returned %s, want table", ret.Type())
	}

	redo, ok := tbl.RawGetString("redo").(*lua.LFunction)
	if !ok {
		return nil, errors.New("command script: redo is not a function")
	}
	undo, ok := tbl.RawGetString("undo").(*lua.LFunction)
	if !ok {
		return nil, errors.New("command script: undo is not a function")
	}

	cmd := &Command{eng: e, redo: redo, undo: undo}
	if desc, ok := tbl.RawGetString("description").(lua.LString); ok {
		cmd.desc = string(desc)
	}
	if id, ok := tbl.RawGetString("merge_id").(lua.LNumber); ok {
		cmd.mergeID = uint64(id)
		cmd.mergeable = true
	}
	return cmd, nil
}

// Redo runs the script's redo function against doc.
func (c *Command) Redo(doc *lua.LTable) error {
	return c.eng.call(c.redo, doc)
}

// Undo runs the script's undo function against doc.
func (c *Command) Undo(doc *lua.LTable) error {
	return c.eng.call(c.undo, doc)
}

// MergeID returns the script's merge_id, if it declared one.
func (c *Command) MergeID() (uint64, bool) {
	return c.mergeID, c.mergeable
}

// Description returns the script's description, or a generic fallback.
func (c *Command) Description() string {
	if c.desc == "" {
		return "lua command"
	}
	return c.desc
}
