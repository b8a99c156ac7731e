package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docfiller/docfiller/internal/model"
	"github.com/docfiller/docfiller/internal/pdf"
)

func newTestPDFService(templatePath string, maxSize int64) *PDFService {
	filler := pdf.NewFiller(pdf.NewPDFCPUEngine(), pdf.DefaultFieldMap())
	return NewPDFService(templatePath, maxSize, filler)
}

func TestGenerateMissingTemplate(t *testing.T) {
	svc := newTestPDFService(filepath.Join(t.TempDir(), "missing.pdf"), 0)

	_, _, err := svc.Generate(model.Submission{})

	require.Error(t, err)
	assert.ErrorIs(t, err, pdf.ErrPDFGeneration)
}

func TestGenerateTemplateTooLarge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "big.pdf")
	require.NoError(t, os.WriteFile(path, make([]byte, 2048), 0o600))

	svc := newTestPDFService(path, 1024)

	_, _, err := svc.Generate(model.Submission{})

	require.Error(t, err)
	assert.ErrorIs(t, err, pdf.ErrPDFGeneration)
	assert.Contains(t, err.Error(), "maximum size")
}

func TestInspectTemplateMissing(t *testing.T) {
	svc := newTestPDFService(filepath.Join(t.TempDir(), "missing.pdf"), 0)

	_, err := svc.InspectTemplate()

	require.Error(t, err)
}

func TestInspectTemplateGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.pdf")
	require.NoError(t, os.WriteFile(path, []byte("not a pdf"), 0o600))

	svc := newTestPDFService(path, 0)

	_, err := svc.InspectTemplate()

	require.Error(t, err)
}
