// Package jsondoc provides a JSON document receiver and path-addressed
// commands for it, so structured configuration or state edits can be pushed
// through a history and undone field by field.
//
// A Document wraps a JSON payload. Commands address it with gjson/sjson
// paths:
//
//	doc, _ := jsondoc.New([]byte(`{"user":{"name":"ann"}}`))
//	hist := rewind.NewHistory[*jsondoc.Document]()
//	hist.Push(jsondoc.NewSet("user.name", "bea"), doc)
//	hist.Undo(doc) // user.name is "ann" again
//
// Commands capture the prior value when they run, not when they are built,
// so a command can be constructed up front and pushed later. Undo restores
// the captured raw JSON exactly.
//
// Edits that land in an array, whether an explicit index like "items.2" or
// sjson's append alias "items.-1", capture the enclosing array wholesale:
// deleting at an index shifts the elements behind it, and setting past the
// end pads with nulls, so no index-level restore can reverse either. A set
// below a missing ancestor captures that ancestor, and undoing it removes
// the containers the write created.
package jsondoc
