package rewind

import "fmt"

// HistoryID names a member History within a Group. Ids are generated by the
// Group and never reused, so a stale id held across a Remove can never
// resolve to a different member.
type HistoryID uint64

// Group owns a set of independent histories, one per open document or
// similar unit, and forwards Push, Redo, and Undo to the member currently
// active. The group is clean only when every member is clean, and its own
// OnClean/OnDirty hooks fire on transitions of that aggregate, independent
// of any hooks set on the members themselves.
type Group[R any] struct {
	members map[HistoryID]*History[R]
	nextID  HistoryID
	active  HistoryID // zero means no selection
	clean   bool
	onClean func()
	onDirty func()
}

// NewGroup creates an empty group. An empty group is clean.
func NewGroup[R any]() *Group[R] {
	return &Group[R]{
		members: make(map[HistoryID]*History[R]),
		clean:   true,
	}
}

// OnClean sets the hook fired when the last dirty member turns clean. It
// returns the group for chaining; a later call replaces the hook.
func (g *Group[R]) OnClean(fn func()) *Group[R] {
	g.onClean = fn
	return g
}

// OnDirty sets the hook fired when the first member turns dirty. It returns
// the group for chaining; a later call replaces the hook.
func (g *Group[R]) OnDirty(fn func()) *Group[R] {
	g.onDirty = fn
	return g
}

// Add registers h as a member and returns its generated id. The new member
// does not become active; select it with SetActive.
func (g *Group[R]) Add(h *History[R]) HistoryID {
	g.nextID++
	id := g.nextID
	g.members[id] = h
	g.checkState()
	return id
}

// Remove unregisters the member named by id and returns it, so a caller can
// keep driving it standalone. Removing the active member clears the
// selection; forwarded operations fail until a new member is selected.
func (g *Group[R]) Remove(id HistoryID) (*History[R], error) {
	h, ok := g.members[id]
	if !ok {
		return nil, fmt.Errorf("remove history %d: %w", id, ErrHistoryNotFound)
	}
	delete(g.members, id)
	if g.active == id {
		g.active = 0
	}
	g.checkState()
	return h, nil
}

// SetActive selects the member that receives forwarded operations.
func (g *Group[R]) SetActive(id HistoryID) error {
	if _, ok := g.members[id]; !ok {
		return fmt.Errorf("set active history %d: %w", id, ErrHistoryNotFound)
	}
	g.active = id
	return nil
}

// Active returns the id of the active member, if one is selected.
func (g *Group[R]) Active() (HistoryID, bool) {
	return g.active, g.active != 0
}

// Len returns the number of member histories.
func (g *Group[R]) Len() int {
	return len(g.members)
}

// Push forwards cmd and recv to the active member's Push, returning its
// result unchanged, or ErrNoActiveHistory when nothing is selected. The
// receiver must belong to the active member; the group never stores it.
func (g *Group[R]) Push(cmd Command[R], recv R) error {
	h, err := g.activeHistory()
	if err != nil {
		return err
	}
	err = h.Push(cmd, recv)
	g.checkState()
	return err
}

// Redo forwards to the active member's Redo, returning its result
// unchanged, or ErrNoActiveHistory when nothing is selected.
func (g *Group[R]) Redo(recv R) error {
	h, err := g.activeHistory()
	if err != nil {
		return err
	}
	err = h.Redo(recv)
	g.checkState()
	return err
}

// Undo forwards to the active member's Undo, returning its result
// unchanged, or ErrNoActiveHistory when nothing is selected.
func (g *Group[R]) Undo(recv R) error {
	h, err := g.activeHistory()
	if err != nil {
		return err
	}
	err = h.Undo(recv)
	g.checkState()
	return err
}

// IsClean reports whether every member is clean. An empty group is clean.
func (g *Group[R]) IsClean() bool {
	for _, h := range g.members {
		if h.IsDirty() {
			return false
		}
	}
	return true
}

// IsDirty reports whether any member is dirty.
func (g *Group[R]) IsDirty() bool {
	return !g.IsClean()
}

func (g *Group[R]) activeHistory() (*History[R], error) {
	if g.active == 0 {
		return nil, ErrNoActiveHistory
	}
	return g.members[g.active], nil
}

// checkState recomputes the aggregate and fires a hook when it flipped.
// Called after every forwarded operation and every membership change.
func (g *Group[R]) checkState() {
	clean := g.IsClean()
	if clean == g.clean {
		return
	}
	g.clean = clean
	if clean {
		if g.onClean != nil {
			g.onClean()
		}
	} else if g.onDirty != nil {
		g.onDirty()
	}
}
