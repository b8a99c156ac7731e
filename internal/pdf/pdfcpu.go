package pdf

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// PDFCPUEngine implements Engine on top of the pdfcpu library.
type PDFCPUEngine struct {
	conf *model.Configuration
}

// NewPDFCPUEngine creates the production engine. Relaxed validation keeps
// authority-issued templates loadable; they are rarely spec-clean.
func NewPDFCPUEngine() *PDFCPUEngine {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &PDFCPUEngine{conf: conf}
}

// Load builds an in-memory document from template bytes.
func (e *PDFCPUEngine) Load(data []byte) (Document, error) {
	ctx, err := api.ReadContext(bytes.NewReader(data), e.conf)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF context: %w", err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("failed to ensure page count: %w", err)
	}
	return &pdfcpuDocument{ctx: ctx}, nil
}

type pdfcpuDocument struct {
	ctx  *model.Context
	form *pdfcpuForm
}

func (d *pdfcpuDocument) Form() (Form, error) {
	if d.form != nil {
		return d.form, nil
	}
	form, err := newPDFCPUForm(d.ctx)
	if err != nil {
		return nil, err
	}
	d.form = form
	return form, nil
}

// Flatten locks every form field read-only. The interactive fields survive
// as objects but no conforming viewer lets the user edit them anymore.
func (d *pdfcpuDocument) Flatten() error {
	form, err := d.Form()
	if err != nil {
		return err
	}
	pf := form.(*pdfcpuForm)
	for _, name := range pf.order {
		fld := pf.fields[name]
		var flags types.Integer
		if obj, found := fld.dict.Find("Ff"); found {
			if i, err := d.ctx.DereferenceInteger(obj); err == nil && i != nil {
				flags = *i
			}
		}
		fld.dict["Ff"] = types.Integer(int(flags) | 1) // bit 1: ReadOnly
	}
	return nil
}

func (d *pdfcpuDocument) Save() ([]byte, error) {
	var buf bytes.Buffer
	if err := api.WriteContext(d.ctx, &buf); err != nil {
		return nil, fmt.Errorf("failed to write PDF context: %w", err)
	}
	return buf.Bytes(), nil
}

// formField is one terminal AcroForm field plus its widget annotations.
type formField struct {
	name    string
	kind    FieldKind
	dict    types.Dict
	widgets []types.Dict
}

type pdfcpuForm struct {
	ctx    *model.Context
	acro   types.Dict
	order  []string
	fields map[string]*formField
}

// newPDFCPUForm walks the AcroForm field tree once and indexes every
// terminal field under its fully-qualified dotted name.
func newPDFCPUForm(ctx *model.Context) (*pdfcpuForm, error) {
	rootDict, err := ctx.Catalog()
	if err != nil {
		return nil, fmt.Errorf("failed to get catalog: %w", err)
	}

	form := &pdfcpuForm{
		ctx:    ctx,
		fields: make(map[string]*formField),
	}

	acroFormObj, found := rootDict.Find("AcroForm")
	if !found {
		return nil, fmt.Errorf("document carries no AcroForm dictionary")
	}
	acroFormDict, err := ctx.DereferenceDict(acroFormObj)
	if err != nil {
		return nil, fmt.Errorf("failed to dereference AcroForm: %w", err)
	}
	if acroFormDict == nil {
		return nil, fmt.Errorf("document carries no AcroForm dictionary")
	}
	form.acro = acroFormDict

	fieldsObj, found := acroFormDict.Find("Fields")
	if !found {
		return form, nil
	}
	fieldsArray, err := ctx.DereferenceArray(fieldsObj)
	if err != nil {
		return nil, fmt.Errorf("failed to dereference Fields array: %w", err)
	}

	form.walk("", fieldsArray)
	return form, nil
}

func (f *pdfcpuForm) walk(prefix string, fields types.Array) {
	for _, fieldObj := range fields {
		fieldDict, err := f.ctx.DereferenceDict(fieldObj)
		if err != nil || fieldDict == nil {
			continue
		}

		name := ""
		if nameObj, found := fieldDict.Find("T"); found {
			if n, err := f.ctx.DereferenceStringOrHexLiteral(nameObj, model.V10, nil); err == nil {
				name = n
			}
		}
		qualified := name
		if prefix != "" && name != "" {
			qualified = prefix + "." + name
		} else if prefix != "" {
			qualified = prefix
		}

		var widgets []types.Dict
		if kidsObj, found := fieldDict.Find("Kids"); found {
			kidsArray, err := f.ctx.DereferenceArray(kidsObj)
			if err == nil && len(kidsArray) > 0 {
				// Kids that carry their own T are nested fields; kids
				// without one are this field's widget annotations.
				nested := false
				for _, kidObj := range kidsArray {
					if kidDict, err := f.ctx.DereferenceDict(kidObj); err == nil && kidDict != nil {
						if _, hasName := kidDict.Find("T"); hasName {
							nested = true
							break
						}
					}
				}
				if nested {
					f.walk(qualified, kidsArray)
					continue
				}
				for _, kidObj := range kidsArray {
					if kidDict, err := f.ctx.DereferenceDict(kidObj); err == nil && kidDict != nil {
						widgets = append(widgets, kidDict)
					}
				}
			}
		}

		if qualified == "" {
			continue
		}
		if _, exists := f.fields[qualified]; exists {
			continue
		}
		f.fields[qualified] = &formField{
			name:    qualified,
			kind:    f.fieldKind(fieldDict),
			dict:    fieldDict,
			widgets: widgets,
		}
		f.order = append(f.order, qualified)
	}
}

// fieldKind maps the FT entry (with Parent fallback) onto a fill kind.
func (f *pdfcpuForm) fieldKind(fieldDict types.Dict) FieldKind {
	ftObj, found := fieldDict.Find("FT")
	if !found {
		if parentObj, found := fieldDict.Find("Parent"); found {
			if parentDict, err := f.ctx.DereferenceDict(parentObj); err == nil && parentDict != nil {
				return f.fieldKind(parentDict)
			}
		}
		return FieldKindUnknown
	}
	ftName, err := f.ctx.DereferenceName(ftObj, model.V10, nil)
	if err != nil {
		return FieldKindUnknown
	}
	switch ftName {
	case "Tx":
		return FieldKindText
	case "Btn":
		if flagsObj, found := fieldDict.Find("Ff"); found {
			if flags, err := f.ctx.DereferenceInteger(flagsObj); err == nil && flags != nil {
				if (*flags & (1 << 16)) != 0 { // bit 17: pushbutton
					return FieldKindUnknown
				}
			}
		}
		return FieldKindCheckbox
	default:
		return FieldKindUnknown
	}
}

func (f *pdfcpuForm) FieldNames() []string {
	names := make([]string, len(f.order))
	copy(names, f.order)
	return names
}

func (f *pdfcpuForm) SetText(name, value string) error {
	fld, ok := f.fields[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrFieldNotFound, name)
	}
	if fld.kind != FieldKindText {
		return fmt.Errorf("field %s is not a text field", name)
	}
	fld.dict["V"] = types.StringLiteral(value)
	// Drop stale appearance streams so viewers re-render the new value.
	delete(fld.dict, "AP")
	for _, w := range fld.widgets {
		delete(w, "AP")
	}
	f.acro["NeedAppearances"] = types.Boolean(true)
	return nil
}

func (f *pdfcpuForm) Check(name string) error {
	fld, ok := f.fields[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrFieldNotFound, name)
	}
	if fld.kind != FieldKindCheckbox {
		return fmt.Errorf("field %s is not a checkbox", name)
	}
	on := f.onState(fld)
	fld.dict["V"] = types.Name(on)
	fld.dict["AS"] = types.Name(on)
	for _, w := range fld.widgets {
		w["AS"] = types.Name(on)
	}
	return nil
}

// onState finds the checkbox's "on" appearance state. German authority
// templates use /Ja about as often as /Yes or /1, so the state is read from
// the normal appearance dictionary instead of being assumed.
func (f *pdfcpuForm) onState(fld *formField) string {
	dicts := append([]types.Dict{fld.dict}, fld.widgets...)
	for _, d := range dicts {
		apObj, found := d.Find("AP")
		if !found {
			continue
		}
		apDict, err := f.ctx.DereferenceDict(apObj)
		if err != nil || apDict == nil {
			continue
		}
		nObj, found := apDict.Find("N")
		if !found {
			continue
		}
		nDict, err := f.ctx.DereferenceDict(nObj)
		if err != nil || nDict == nil {
			continue
		}
		for state := range nDict {
			if state != "Off" {
				return state
			}
		}
	}
	return "Yes"
}
