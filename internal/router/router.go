// Package router wires handlers onto the HTTP route tree.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/docfiller/docfiller/internal/handler"
	"github.com/docfiller/docfiller/internal/middleware"
	"github.com/docfiller/docfiller/internal/service"
)

// New builds the full route tree for the DocFiller HTTP server.
func New(forms *service.FormService, pdfs *service.PDFService) http.Handler {
	drafts := handler.NewDraftHandler(forms)
	pdf := handler.NewPDFHandler(pdfs)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recovery)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/form/{userId}", drafts.Get)
		r.Post("/form", drafts.Save)
		r.Post("/generate-pdf", pdf.Generate)
		r.Get("/template/fields", pdf.TemplateFields)
	})

	return r
}
