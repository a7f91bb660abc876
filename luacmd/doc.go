// Package luacmd builds history commands out of Lua scripts, so an
// application can ship undoable operations as data instead of compiled code.
//
// # Command scripts
//
// A command script is a Lua chunk that returns a table describing the
// command:
//
//	return {
//		description = "indent line",
//		merge_id = 7,
//		redo = function(doc) doc.indent = (doc.indent or 0) + 1 end,
//		undo = function(doc) doc.indent = doc.indent - 1 end,
//	}
//
// redo and undo are required functions; description and merge_id are
// optional and surface through the rewind Describer and Mergeable
// interfaces. The loaded Command implements rewind.Command[*lua.LTable]:
// the receiver is a Lua table owned by the caller and passed to the script
// on every call.
//
// # Sandboxing
//
// The engine opens only the base, table, string, and math libraries, and
// removes the loaders that reach the filesystem (dofile, loadfile, load,
// loadstring). Scripts get pure computation over the tables they are handed.
//
// # Concurrency
//
// One Engine wraps one Lua interpreter, and gopher-lua states are not
// goroutine-safe. The engine serializes calls from Go with a mutex, but
// commands loaded from one engine should still be driven by one history at
// a time.
package luacmd
