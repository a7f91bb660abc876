// Package rewind provides a reversible command-history engine built on the
// Command pattern: client code mutates an externally-owned receiver through
// commands, and the engine records them so the mutations can be undone and
// redone.
//
// # Commands
//
// A Command pairs a Redo that applies an effect to the receiver with an Undo
// that restores the receiver's prior observable state. The engine never
// inspects the receiver; it only sequences Redo/Undo calls, so keeping Undo
// an exact inverse of Redo is the command author's contract. The receiver is
// passed on every call and never retained between calls.
//
// # History
//
// A History owns an ordered sequence of entries and a cursor separating
// applied entries from undone ones:
//
//	hist := rewind.NewHistory[*Doc]().
//		OnClean(func() { markSaved() }).
//		OnDirty(func() { markUnsaved() })
//
//	hist.Push(cmd, doc) // applies cmd and records it
//	hist.Undo(doc)      // reverts the entry before the cursor
//	hist.Redo(doc)      // reapplies the entry at the cursor
//
// A History is clean when the cursor sits at the end of the sequence and
// dirty otherwise. The OnClean/OnDirty hooks fire exactly once per
// transition across that boundary, never unconditionally. Pushing after an
// undo discards the undone tail for good.
//
// # Merging
//
// Commands that implement Mergeable can fuse with the previous entry when
// both report the same merge id. The fused pair occupies a single slot:
// one Undo reverts both, one Redo reapplies both. Merging is automatic and
// id-driven (the engine decides, not the command), and pairwise-recursive:
// a fused pair exposes its first command's id and can fuse again.
//
// # Groups
//
// A Group registers independent histories under generated ids and forwards
// Push/Redo/Undo to the one currently active. Its aggregate state is clean
// only when every member is clean, with its own transition hooks.
//
// # Errors
//
// Command failures are never swallowed, retried, or rolled back: the error
// returns to the caller wrapped in a CommandError carrying the command
// instance that failed. A failed Redo during Push still occupies its history
// slot and the push still lands clean. A failed standalone Redo moves
// nothing. A failed Undo leaves the cursor on the entry it stepped into,
// though the dirty hook stays quiet until an undo succeeds.
//
// # Concurrency
//
// The engine is synchronous and unlocked. Every operation runs to completion
// on the caller's goroutine and borrows the receiver for exactly one
// Redo/Undo call. A History or Group must not be operated from two call
// sites at once; callers that share one across goroutines own the locking.
package rewind
