package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/docfiller/docfiller/internal/model"
	"github.com/docfiller/docfiller/internal/pdf"
	"github.com/docfiller/docfiller/internal/service"
)

// Generator produces filled declarations; satisfied by service.PDFService.
type Generator interface {
	Generate(sub model.Submission) ([]byte, []pdf.WriteResult, error)
	InspectTemplate() (*pdf.TemplateInfo, error)
}

// PDFHandler serves declaration generation and template inspection.
type PDFHandler struct {
	gen Generator
}

func NewPDFHandler(gen Generator) *PDFHandler {
	return &PDFHandler{gen: gen}
}

// Generate handles POST /api/generate-pdf: it validates the submission,
// fills the template and streams the result as an attachment. Fill failures
// surface as a generic message; no partial PDF is ever returned.
func (h *PDFHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req model.GeneratePDFRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid form data")
		return
	}
	if req.FormData == nil {
		writeError(w, http.StatusBadRequest, "Form data is required")
		return
	}

	var verr *model.ValidationError
	if err := req.FormData.Validate(); err != nil {
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"message": "Invalid form data",
				"errors":  verr.Problems,
			})
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	data, results, err := h.gen.Generate(*req.FormData)
	if err != nil {
		log.Printf("PDF generation failed: %v", err)
		writeError(w, http.StatusInternalServerError, "PDF generation failed")
		return
	}
	log.Printf("PDF generated: %d bytes, %d fields written", len(data), pdf.Written(results))

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+service.DownloadFilename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	_, _ = w.Write(data)
}

// TemplateFields handles GET /api/template/fields.
func (h *PDFHandler) TemplateFields(w http.ResponseWriter, r *http.Request) {
	info, err := h.gen.InspectTemplate()
	if err != nil {
		log.Printf("template inspection failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Template inspection failed")
		return
	}
	writeJSON(w, http.StatusOK, info)
}
