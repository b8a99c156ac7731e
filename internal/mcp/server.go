// Package mcp exposes the fill pipeline as Model Context Protocol tools
// over stdio, so agent clients can fill declarations without the REST API.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/docfiller/docfiller/internal/config"
	"github.com/docfiller/docfiller/internal/model"
	"github.com/docfiller/docfiller/internal/pdf"
	"github.com/docfiller/docfiller/internal/service"
)

const serverName = "docfiller"

// Server represents the MCP server instance
type Server struct {
	config    *config.Config
	pdfs      *service.PDFService
	filler    *pdf.Filler
	inspector *pdf.Inspector
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, pdfs *service.PDFService, filler *pdf.Filler) (*Server, error) {
	if pdfs == nil {
		return nil, fmt.Errorf("pdf service cannot be nil")
	}
	if filler == nil {
		return nil, fmt.Errorf("filler cannot be nil")
	}

	mcpServer := server.NewMCPServer(
		serverName,
		cfg.Version,
		server.WithToolCapabilities(false), // tool set is static
	)

	s := &Server{
		config:    cfg,
		pdfs:      pdfs,
		filler:    filler,
		inspector: pdf.NewInspector(),
		mcpServer: mcpServer,
	}

	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	inspectTool := mcp.NewTool(
		"docfiller_inspect_template",
		mcp.WithDescription("List the form fields of the declaration PDF template"),
		mcp.WithString("template",
			mcp.Description("Path to a template PDF (uses the configured template if empty)"),
		),
	)
	s.mcpServer.AddTool(inspectTool, s.handleInspectTemplate)

	fillTool := mcp.NewTool(
		"docfiller_fill_form",
		mcp.WithDescription("Fill the declaration of self-employed work with submission data and write the resulting PDF"),
		mcp.WithString("submission",
			mcp.Required(),
			mcp.Description("Submission data as a JSON object (masterData, generalInfo, workingTime, income)"),
		),
		mcp.WithString("output",
			mcp.Required(),
			mcp.Description("Path to write the filled PDF to"),
		),
		mcp.WithString("template",
			mcp.Description("Path to a template PDF (uses the configured template if empty)"),
		),
	)
	s.mcpServer.AddTool(fillTool, s.handleFillForm)
}

// Handler functions
func (s *Server) handleInspectTemplate(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	var info *pdf.TemplateInfo
	var err error
	if path, ok := args["template"].(string); ok && path != "" {
		var data []byte
		if data, err = os.ReadFile(path); err == nil {
			info, err = s.inspector.Inspect(data)
		}
	} else {
		info, err = s.pdfs.InspectTemplate()
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(s.formatTemplateInfo(info)), nil
}

func (s *Server) handleFillForm(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := request.RequireString("submission")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	output, err := request.RequireString("output")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var sub model.Submission
	if err := json.Unmarshal([]byte(raw), &sub); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid submission JSON: %v", err)), nil
	}
	if err := sub.Validate(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	args := request.GetArguments()
	var data []byte
	var results []pdf.WriteResult
	if path, ok := args["template"].(string); ok && path != "" {
		var template []byte
		if template, err = os.ReadFile(path); err == nil {
			data, results, err = s.filler.FillForm(template, sub)
		}
	} else {
		data, results, err = s.pdfs.Generate(sub)
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := os.WriteFile(output, data, 0o600); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to write output: %v", err)), nil
	}

	return mcp.NewToolResultText(s.formatFillResult(output, len(data), results)), nil
}

// Formatting methods
func (s *Server) formatTemplateInfo(info *pdf.TemplateInfo) string {
	text := "Declaration Template\n"
	text += fmt.Sprintf("Pages: %d\n", info.Pages)
	text += fmt.Sprintf("Form fields: %d (%d text, %d checkbox)\n", info.FieldCount, info.TextFields, info.Checkboxes)
	text += fmt.Sprintf("Has extractable text: %t\n", info.HasText)

	if len(info.Fields) > 0 {
		text += "\nFields:\n"
		for i, f := range info.Fields {
			text += fmt.Sprintf("%d. %s (%s)\n", i+1, f.Name, f.Kind)
		}
	}

	return text
}

func (s *Server) formatFillResult(output string, size int, results []pdf.WriteResult) string {
	text := fmt.Sprintf("Filled declaration written to %s (%d bytes)\n", output, size)
	text += fmt.Sprintf("Fields written: %d\n", pdf.Written(results))

	var missing, failed int
	for _, r := range results {
		switch r.Status {
		case pdf.StatusMissing:
			missing++
		case pdf.StatusFailed:
			failed++
		}
	}
	if missing > 0 {
		text += fmt.Sprintf("Fields not found in template: %d\n", missing)
	}
	if failed > 0 {
		text += fmt.Sprintf("Fields that failed to write: %d\n", failed)
	}

	return text
}

// Run starts the MCP server over stdio
func (s *Server) Run(_ context.Context) error {
	if s.config.IsDebug() {
		log.Printf("Starting DocFiller MCP server in stdio mode")
		log.Printf("Template: %s", s.config.TemplatePath)
	}

	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}
