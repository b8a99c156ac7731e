package pdf

import (
	"bytes"
	"fmt"
	"strings"

	ledongthuc "github.com/ledongthuc/pdf"
)

// FieldInfo describes one template field for the inspector output.
type FieldInfo struct {
	Name string    `json:"name"`
	Kind FieldKind `json:"kind"`
}

// TemplateInfo summarizes an inspected template.
type TemplateInfo struct {
	Pages      int         `json:"pages"`
	FieldCount int         `json:"fieldCount"`
	TextFields int         `json:"textFields"`
	Checkboxes int         `json:"checkboxes"`
	HasText    bool        `json:"hasText"`
	Fields     []FieldInfo `json:"fields"`
}

// Inspector lists the interactive fields of a template. It exists because
// the field map is only as good as the field names it targets; after a
// template revision the inspector output is the input for the next map.
type Inspector struct {
	engine *PDFCPUEngine
}

func NewInspector() *Inspector {
	return &Inspector{engine: NewPDFCPUEngine()}
}

// Inspect enumerates the template's fields and probes its page content.
func (i *Inspector) Inspect(data []byte) (*TemplateInfo, error) {
	doc, err := i.engine.Load(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load template: %w", err)
	}
	form, err := doc.Form()
	if err != nil {
		return nil, fmt.Errorf("failed to read form: %w", err)
	}

	pf := form.(*pdfcpuForm)
	info := &TemplateInfo{}
	for _, name := range pf.order {
		fld := pf.fields[name]
		info.Fields = append(info.Fields, FieldInfo{Name: name, Kind: fld.kind})
		switch fld.kind {
		case FieldKindText:
			info.TextFields++
		case FieldKindCheckbox:
			info.Checkboxes++
		}
	}
	info.FieldCount = len(info.Fields)

	// Page count and text probe go through ledongthuc/pdf; pdfcpu owns the
	// form tree, the reader owns content extraction.
	if reader, err := ledongthuc.NewReader(bytes.NewReader(data), int64(len(data))); err == nil {
		info.Pages = reader.NumPage()
		for pageNum := 1; pageNum <= reader.NumPage() && !info.HasText; pageNum++ {
			page := reader.Page(pageNum)
			if page.V.IsNull() {
				continue
			}
			if text, err := page.GetPlainText(nil); err == nil && strings.TrimSpace(text) != "" {
				info.HasText = true
			}
		}
	}

	return info, nil
}
