package jsondoc

import (
	"fmt"
	"hash/fnv"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/rewind"
)

// SetCommand writes a value at a path and restores the prior state on undo.
type SetCommand struct {
	path  string
	value any
	raw   string // raw JSON fragment, used when isRaw
	isRaw bool
	merge bool
	prev  snapshot
}

var (
	_ rewind.Command[*Document] = (*SetCommand)(nil)
	_ rewind.Mergeable          = (*SetCommand)(nil)
	_ rewind.Describer          = (*SetCommand)(nil)
)

// NewSet creates a command that sets path to value. Values convert the way
// sjson converts them: strings, numbers, bools, nil, and anything that
// marshals as JSON.
func NewSet(path string, value any) *SetCommand {
	return &SetCommand{path: path, value: value}
}

// NewSetRaw creates a command that sets path to a raw JSON fragment, kept
// byte for byte. The fragment must itself be valid JSON; Redo rejects it
// otherwise.
func NewSetRaw(path, raw string) *SetCommand {
	return &SetCommand{path: path, raw: raw, isRaw: true}
}

// Merging makes consecutive sets of the same path fuse into one history
// entry, for burst edits like slider drags. It returns the command.
func (c *SetCommand) Merging() *SetCommand {
	c.merge = true
	return c
}

// Redo captures the state the write will disturb, then performs it.
func (c *SetCommand) Redo(d *Document) error {
	if c.isRaw && !gjson.ValidBytes([]byte(c.raw)) {
		return fmt.Errorf("set %q: raw fragment: %w", c.path, ErrInvalidJSON)
	}
	c.prev = capture(d, c.path)

	var (
		out []byte
		err error
	)
	if c.isRaw {
		out, err = sjson.SetRawBytes(d.raw, c.path, []byte(c.raw))
	} else {
		out, err = sjson.SetBytes(d.raw, c.path, c.value)
	}
	if err != nil {
		return fmt.Errorf("set %q: %w", c.path, err)
	}
	d.raw = out
	return nil
}

// Undo restores the captured state.
func (c *SetCommand) Undo(d *Document) error {
	if err := c.prev.restore(d); err != nil {
		return fmt.Errorf("unset %q: %w", c.path, err)
	}
	return nil
}

// MergeID hashes the path, so only sets of the same path fuse.
func (c *SetCommand) MergeID() (uint64, bool) {
	if !c.merge {
		return 0, false
	}
	return pathID(c.path), true
}

// Description names the edited path.
func (c *SetCommand) Description() string {
	return "set " + c.path
}

// DeleteCommand removes a path and reinstates the removed state on undo.
type DeleteCommand struct {
	path string
	prev snapshot
}

var (
	_ rewind.Command[*Document] = (*DeleteCommand)(nil)
	_ rewind.Describer          = (*DeleteCommand)(nil)
)

// NewDelete creates a command that deletes path. It fails with
// ErrPathNotFound when the path is already absent.
func NewDelete(path string) *DeleteCommand {
	return &DeleteCommand{path: path}
}

// Redo captures the state around the path and removes it.
func (c *DeleteCommand) Redo(d *Document) error {
	if !d.Exists(c.path) {
		return fmt.Errorf("delete %q: %w", c.path, ErrPathNotFound)
	}
	c.prev = capture(d, c.path)

	out, err := sjson.DeleteBytes(d.raw, c.path)
	if err != nil {
		return fmt.Errorf("delete %q: %w", c.path, err)
	}
	d.raw = out
	return nil
}

// Undo writes the captured state back.
func (c *DeleteCommand) Undo(d *Document) error {
	if err := c.prev.restore(d); err != nil {
		return fmt.Errorf("restore %q: %w", c.path, err)
	}
	return nil
}

// Description names the deleted path.
func (c *DeleteCommand) Description() string {
	return "delete " + c.path
}

// snapshot remembers the smallest slice of the document that must be put
// back to reverse one edit.
type snapshot struct {
	path    string // anchor path; empty restores the whole payload
	raw     string
	existed bool
}

// capture records the pre-edit state an undo needs. The anchor is normally
// the edited path itself. An edit landing in an array captures the whole
// enclosing array, because deleting at an index shifts the elements behind
// it and setting past the end pads with nulls, so no index-level restore
// can reverse either. An edit below a missing ancestor captures that
// ancestor, so undo removes every container the write created.
func capture(d *Document, path string) snapshot {
	anchor := anchorPath(d, path)
	if anchor == "" {
		return snapshot{raw: string(d.raw), existed: true}
	}
	res := gjson.GetBytes(d.raw, anchor)
	return snapshot{path: anchor, raw: res.Raw, existed: res.Exists()}
}

func (s snapshot) restore(d *Document) error {
	if s.path == "" {
		d.raw = []byte(s.raw)
		return nil
	}
	var (
		out []byte
		err error
	)
	if s.existed {
		out, err = sjson.SetRawBytes(d.raw, s.path, []byte(s.raw))
	} else {
		out, err = sjson.DeleteBytes(d.raw, s.path)
	}
	if err != nil {
		return err
	}
	d.raw = out
	return nil
}

// anchorPath picks the path capture records. It narrows to the shallowest
// missing ancestor first, then widens to the parent when the parent holds
// an array. Empty means the whole document.
func anchorPath(d *Document, path string) string {
	target := path
	for i := 0; i < len(path); i++ {
		if path[i] == '.' && !escapedAt(path, i) {
			if prefix := path[:i]; !gjson.GetBytes(d.raw, prefix).Exists() {
				target = prefix
				break
			}
		}
	}

	parent := ""
	if i := lastSep(target); i >= 0 {
		parent = target[:i]
	}
	if parent == "" {
		if gjson.ParseBytes(d.raw).IsArray() {
			return ""
		}
		return target
	}
	if gjson.GetBytes(d.raw, parent).IsArray() {
		return parent
	}
	return target
}

// lastSep returns the index of the last unescaped path separator, or -1.
func lastSep(path string) int {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '.' && !escapedAt(path, i) {
			return i
		}
	}
	return -1
}

// escapedAt reports whether the byte at i is escaped by backslashes.
func escapedAt(path string, i int) bool {
	n := 0
	for j := i - 1; j >= 0 && path[j] == '\\'; j-- {
		n++
	}
	return n%2 == 1
}

// pathID derives a stable merge id from a path.
func pathID(path string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(path))
	return h.Sum64()
}
