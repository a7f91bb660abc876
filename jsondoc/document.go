package jsondoc

import (
	"errors"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// Errors for document operations.
var (
	// ErrInvalidJSON is returned when a payload does not parse.
	ErrInvalidJSON = errors.New("invalid json")

	// ErrPathNotFound is returned when a command addresses a missing path.
	ErrPathNotFound = errors.New("path not found")
)

// Document is a JSON payload mutated through path commands. The zero value
// is not usable; create one with New.
type Document struct {
	raw []byte
}

// New wraps raw as a document, validating it first.
func New(raw []byte) (*Document, error) {
	if !gjson.ValidBytes(raw) {
		return nil, ErrInvalidJSON
	}
	// Copy: the document owns its payload from here on.
	d := &Document{raw: make([]byte, len(raw))}
	copy(d.raw, raw)
	return d, nil
}

// Raw returns the current payload. The slice is the document's backing
// store; callers must not modify it.
func (d *Document) Raw() []byte {
	return d.raw
}

// String returns the current payload as a string.
func (d *Document) String() string {
	return string(d.raw)
}

// Pretty returns the payload reformatted for display.
func (d *Document) Pretty() []byte {
	return pretty.Pretty(d.raw)
}

// Get reads the value at path.
func (d *Document) Get(path string) gjson.Result {
	return gjson.GetBytes(d.raw, path)
}

// Exists reports whether path resolves to a value.
func (d *Document) Exists(path string) bool {
	return d.Get(path).Exists()
}
