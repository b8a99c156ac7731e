// docfiller-inspect lists the AcroForm fields of a declaration template.
// It exists to recover field paths when the Arbeitsagentur publishes a new
// revision of the form, so the field map can be updated.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/docfiller/docfiller/internal/pdf"
)

var (
	outputFormat = flag.String("format", "text", "Output format: text, json")
	help         = flag.Bool("help", false, "Show help message")
)

func main() {
	flag.Parse()

	if *help {
		printHelp()
		return
	}

	if flag.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "Error: PDF file path required\n\n")
		printUsage()
		os.Exit(1)
	}

	pdfPath := flag.Arg(0)
	if _, err := os.Stat(pdfPath); os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Error: File not found: %s\n", pdfPath)
		os.Exit(1)
	}

	result, err := inspect(pdfPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error inspecting template: %v\n", err)
		os.Exit(1)
	}

	if err := outputResults(result); err != nil {
		fmt.Fprintf(os.Stderr, "Error outputting results: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println("DocFiller Inspect - list form fields of a declaration PDF template")
	fmt.Println()
	fmt.Println("The field names printed here are the fully qualified AcroForm paths")
	fmt.Println("that the field map refers to. Run this against a new template revision")
	fmt.Println("to see which paths moved.")
	fmt.Println()
	printUsage()
	fmt.Println()
	fmt.Println("OPTIONS:")
	fmt.Println("  -format        Output format: text (default), json")
	fmt.Println("  -help          Show this help message")
	fmt.Println()
	fmt.Println("EXAMPLES:")
	fmt.Println("  docfiller-inspect template/original-form.pdf")
	fmt.Println("  docfiller-inspect -format json template/original-form.pdf")
}

func printUsage() {
	fmt.Println("USAGE:")
	fmt.Println("  docfiller-inspect [OPTIONS] <pdf_file>")
}

// InspectionResult is the template report keyed by file path.
type InspectionResult struct {
	FilePath string            `json:"filePath"`
	Success  bool              `json:"success"`
	Error    string            `json:"error,omitempty"`
	Template *pdf.TemplateInfo `json:"template,omitempty"`
}

func inspect(pdfPath string) (*InspectionResult, error) {
	absPath, err := filepath.Abs(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	result := &InspectionResult{FilePath: absPath}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	info, err := pdf.NewInspector().Inspect(data)
	if err != nil {
		result.Error = err.Error()
		return result, nil // report the failure instead of aborting
	}

	result.Success = true
	result.Template = info
	return result, nil
}

func outputResults(result *InspectionResult) error {
	switch *outputFormat {
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	case "text":
		return outputText(result)
	default:
		return fmt.Errorf("unsupported output format: %s", *outputFormat)
	}
}

func outputText(result *InspectionResult) error {
	if !result.Success {
		fmt.Printf("Template inspection failed: %s\n", result.Error)
		return nil
	}

	info := result.Template
	fmt.Printf("Template: %s\n", result.FilePath)
	fmt.Printf("Pages: %d\n", info.Pages)
	fmt.Printf("Form fields: %d (%d text, %d checkbox)\n", info.FieldCount, info.TextFields, info.Checkboxes)
	fmt.Printf("Has extractable text: %t\n", info.HasText)
	fmt.Println()

	if info.FieldCount == 0 {
		fmt.Println("No form fields detected. The template may be flattened or image-based.")
		return nil
	}

	for i, field := range info.Fields {
		fmt.Printf("[%d] %s\n", i+1, field.Name)
		fmt.Printf("    Type: %s\n", field.Kind)
	}

	return nil
}

func init() {
	flag.Usage = func() {
		printHelp()
	}
}
