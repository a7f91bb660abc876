package rewind

// merged fuses two commands into a single history entry. The pair redoes
// front-to-back and undoes back-to-front, failing fast in both directions.
// It reports the first command's merge id, so a chain of same-id commands
// folds into nested pairs that still answer with the chain's id.
type merged[R any] struct {
	a, b Command[R]
}

func (m *merged[R]) Redo(recv R) error {
	if err := m.a.Redo(recv); err != nil {
		return err
	}
	return m.b.Redo(recv)
}

func (m *merged[R]) Undo(recv R) error {
	if err := m.b.Undo(recv); err != nil {
		return err
	}
	return m.a.Undo(recv)
}

// MergeID defers to the first command, keeping the pair fusable.
func (m *merged[R]) MergeID() (uint64, bool) {
	return mergeID(m.a)
}

// Description joins both halves so listings show the full fused effect.
func (m *merged[R]) Description() string {
	return describe(m.a) + "; " + describe(m.b)
}
