// Package pdf translates a structured declaration submission into field
// writes against the interactive Arbeitsagentur PDF template.
package pdf

import "errors"

// FieldKind classifies a form field for the purposes of filling.
type FieldKind string

const (
	FieldKindText     FieldKind = "text"
	FieldKindCheckbox FieldKind = "checkbox"
	FieldKindUnknown  FieldKind = "unknown"
)

// ErrFieldNotFound is returned by Form implementations when no field with
// the requested name exists in the template.
var ErrFieldNotFound = errors.New("form field not found")

// Form is the write surface of a loaded document. Field names are the
// fully-qualified dotted names of the AcroForm hierarchy.
type Form interface {
	// FieldNames returns every field name in template order. The slice is a
	// snapshot taken at load time; fillers scan it for pattern matches.
	FieldNames() []string

	// SetText writes a text value into the named field.
	SetText(name, value string) error

	// Check ticks the named checkbox.
	Check(name string) error
}

// Document is one in-memory instance of the template. Each fill request
// loads its own Document; instances are never shared.
type Document interface {
	Form() (Form, error)

	// Flatten makes every field read-only so the filled declaration can no
	// longer be edited.
	Flatten() error

	// Save serializes the document and returns the resulting bytes.
	Save() ([]byte, error)
}

// Engine loads documents from template bytes. The production engine is
// backed by pdfcpu; tests substitute an in-memory fake.
type Engine interface {
	Load(data []byte) (Document, error)
}
