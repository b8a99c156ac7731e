package pdf

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/docfiller/docfiller/internal/model"
)

// ErrPDFGeneration is the generic failure for a fill request. Only document
// loading, flattening and serialization raise it; individual field writes
// are collected as WriteResults and never abort the fill.
var ErrPDFGeneration = errors.New("failed to generate PDF")

// Filler sequences the section fillers against one loaded document.
type Filler struct {
	engine Engine
	fields *FieldMap
	now    func() time.Time
}

// NewFiller creates a filler using the given engine and field map.
func NewFiller(engine Engine, fields *FieldMap) *Filler {
	if fields == nil {
		fields = DefaultFieldMap()
	}
	return &Filler{
		engine: engine,
		fields: fields,
		now:    time.Now,
	}
}

// FillForm loads the template bytes, fills all sections from the submission,
// flattens the form and returns the serialized result together with the
// per-field write outcomes.
func (f *Filler) FillForm(template []byte, sub model.Submission) ([]byte, []WriteResult, error) {
	doc, err := f.engine.Load(template)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: load template: %v", ErrPDFGeneration, err)
	}

	form, err := doc.Form()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: read form: %v", ErrPDFGeneration, err)
	}

	sub.NormalizeWeeks()

	var results []WriteResult
	results = append(results, f.fillMasterData(form, sub.MasterData)...)
	results = append(results, f.fillGeneralInfo(form, sub.GeneralInfo)...)
	results = append(results, f.fillWorkingTime(form, sub.WorkingTime)...)
	results = append(results, f.fillIncome(form, sub.Income)...)
	if sub.DeclarationConfirmed {
		results = append(results, f.markDeclaration(form, sub.GeneralInfo.ActivityLocation)...)
	}

	for _, r := range results {
		if r.Status == StatusMissing || r.Status == StatusFailed {
			log.Printf("field write %s", r)
		}
	}

	if err := doc.Flatten(); err != nil {
		return nil, results, fmt.Errorf("%w: flatten form: %v", ErrPDFGeneration, err)
	}

	out, err := doc.Save()
	if err != nil {
		return nil, results, fmt.Errorf("%w: save document: %v", ErrPDFGeneration, err)
	}
	return out, results, nil
}

// setText writes a value to the field behind a semantic key, empty values
// included. Missing keys and lookup misses become results, never errors.
func (f *Filler) setText(form Form, key, value string, out *[]WriteResult) {
	ref, ok := f.fields.Ref(key)
	if !ok {
		*out = append(*out, WriteResult{Key: key, Status: StatusMissing})
		return
	}
	f.write(form, key, ref, value, out)
}

// setTextIfPresent behaves like setText but records a skip for empty values
// instead of writing a blank.
func (f *Filler) setTextIfPresent(form Form, key, value string, out *[]WriteResult) {
	if value == "" {
		*out = append(*out, WriteResult{Key: key, Status: StatusSkipped})
		return
	}
	f.setText(form, key, value, out)
}

// setRowText writes to a row-addressed field of the working-time grid.
// Empty values are skipped; zero-hour cells stay blank on the printed form.
func (f *Filler) setRowText(form Form, key string, row int, value string, out *[]WriteResult) {
	if value == "" {
		*out = append(*out, WriteResult{Key: key, Status: StatusSkipped})
		return
	}
	ref, ok := f.fields.Row(key, row)
	if !ok {
		*out = append(*out, WriteResult{Key: key, Status: StatusMissing})
		return
	}
	f.write(form, key, ref, value, out)
}

func (f *Filler) write(form Form, key string, ref FieldRef, value string, out *[]WriteResult) {
	name, ok := locate(form, ref)
	if !ok {
		*out = append(*out, WriteResult{Key: key, Field: ref.Path, Status: StatusMissing})
		return
	}
	if err := form.SetText(name, value); err != nil {
		*out = append(*out, WriteResult{Key: key, Field: name, Status: StatusFailed, Err: err})
		return
	}
	*out = append(*out, WriteResult{Key: key, Field: name, Status: StatusWritten})
}

// check ticks the checkbox behind a semantic key.
func (f *Filler) check(form Form, key string, out *[]WriteResult) {
	ref, ok := f.fields.Ref(key)
	if !ok {
		*out = append(*out, WriteResult{Key: key, Status: StatusMissing})
		return
	}
	name, ok := locate(form, ref)
	if !ok {
		*out = append(*out, WriteResult{Key: key, Field: ref.Path, Status: StatusMissing})
		return
	}
	if err := form.Check(name); err != nil {
		*out = append(*out, WriteResult{Key: key, Field: name, Status: StatusFailed, Err: err})
		return
	}
	*out = append(*out, WriteResult{Key: key, Field: name, Status: StatusChecked})
}

// checkPair maps a boolean onto two independent checkbox fields, ticking
// exactly one of them. Modeling the pair explicitly rules out the state
// where neither or both members end up checked.
func (f *Filler) checkPair(form Form, yesKey, noKey string, value bool, out *[]WriteResult) {
	if value {
		f.check(form, yesKey, out)
		*out = append(*out, WriteResult{Key: noKey, Status: StatusSkipped})
		return
	}
	*out = append(*out, WriteResult{Key: yesKey, Status: StatusSkipped})
	f.check(form, noKey, out)
}

// formatNumber renders hour and euro amounts without a trailing ".0".
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
