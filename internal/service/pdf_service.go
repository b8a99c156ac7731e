package service

import (
	"fmt"
	"os"

	"github.com/docfiller/docfiller/internal/model"
	"github.com/docfiller/docfiller/internal/pdf"
)

// DownloadFilename is the attachment name of the filled declaration.
const DownloadFilename = "erklaerung_selbststaendige_arbeit.pdf"

// PDFService produces filled declarations from the configured template.
type PDFService struct {
	templatePath string
	maxSize      int64
	filler       *pdf.Filler
	inspector    *pdf.Inspector
}

func NewPDFService(templatePath string, maxSize int64, filler *pdf.Filler) *PDFService {
	return &PDFService{
		templatePath: templatePath,
		maxSize:      maxSize,
		filler:       filler,
		inspector:    pdf.NewInspector(),
	}
}

// template reads the configured template file. Each request gets its own
// document instance from these bytes; nothing mutable is shared.
func (s *PDFService) template() ([]byte, error) {
	info, err := os.Stat(s.templatePath)
	if err != nil {
		return nil, fmt.Errorf("template not accessible: %w", err)
	}
	if s.maxSize > 0 && info.Size() > s.maxSize {
		return nil, fmt.Errorf("template %s exceeds maximum size of %d bytes", s.templatePath, s.maxSize)
	}
	data, err := os.ReadFile(s.templatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read template: %w", err)
	}
	return data, nil
}

// Generate validates nothing; callers validate first. It fills the template
// with the submission and returns the document bytes plus the per-field
// write outcomes.
func (s *PDFService) Generate(sub model.Submission) ([]byte, []pdf.WriteResult, error) {
	template, err := s.template()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", pdf.ErrPDFGeneration, err)
	}
	return s.filler.FillForm(template, sub)
}

// InspectTemplate lists the configured template's form fields.
func (s *PDFService) InspectTemplate() (*pdf.TemplateInfo, error) {
	template, err := s.template()
	if err != nil {
		return nil, err
	}
	return s.inspector.Inspect(template)
}
