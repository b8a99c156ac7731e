package pdf

import (
	"errors"
	"fmt"
	"strings"
)

// fakeField declares one field of the in-memory test template.
type fakeField struct {
	name string
	kind FieldKind
}

// fakeForm is an in-memory Form capturing all writes, so tests can assert
// exactly which fields were filled and with what.
type fakeForm struct {
	order  []string
	kinds  map[string]FieldKind
	texts  map[string]string
	checks map[string]bool
}

func newFakeForm(fields []fakeField) *fakeForm {
	f := &fakeForm{
		kinds:  make(map[string]FieldKind),
		texts:  make(map[string]string),
		checks: make(map[string]bool),
	}
	for _, fld := range fields {
		f.order = append(f.order, fld.name)
		f.kinds[fld.name] = fld.kind
	}
	return f
}

func (f *fakeForm) FieldNames() []string {
	names := make([]string, len(f.order))
	copy(names, f.order)
	return names
}

func (f *fakeForm) SetText(name, value string) error {
	kind, ok := f.kinds[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrFieldNotFound, name)
	}
	if kind != FieldKindText {
		return fmt.Errorf("field %s is not a text field", name)
	}
	f.texts[name] = value
	return nil
}

func (f *fakeForm) Check(name string) error {
	kind, ok := f.kinds[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrFieldNotFound, name)
	}
	if kind != FieldKindCheckbox {
		return fmt.Errorf("field %s is not a checkbox", name)
	}
	f.checks[name] = true
	return nil
}

type fakeDocument struct {
	form      *fakeForm
	flattened bool
	saveErr   error
}

func (d *fakeDocument) Form() (Form, error) { return d.form, nil }

func (d *fakeDocument) Flatten() error {
	d.flattened = true
	return nil
}

func (d *fakeDocument) Save() ([]byte, error) {
	if d.saveErr != nil {
		return nil, d.saveErr
	}
	return []byte("%PDF-fake"), nil
}

type fakeEngine struct {
	doc     *fakeDocument
	loadErr error
}

func (e *fakeEngine) Load(data []byte) (Document, error) {
	if e.loadErr != nil {
		return nil, e.loadErr
	}
	if len(data) == 0 {
		return nil, errors.New("empty template")
	}
	return e.doc, nil
}

// defaultTemplateFields expands the default field map into a complete fake
// template, with all five rows of the working-time grid.
func defaultTemplateFields() []fakeField {
	var out []fakeField
	for _, ref := range DefaultFieldMap().Fields {
		if strings.Contains(ref.Path, "%d") {
			for row := 1; row <= 5; row++ {
				out = append(out, fakeField{fmt.Sprintf(ref.Path, row), ref.Kind})
			}
			continue
		}
		out = append(out, fakeField{ref.Path, ref.Kind})
	}
	return out
}
