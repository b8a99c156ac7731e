package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/docfiller/docfiller/internal/config"
	"github.com/docfiller/docfiller/internal/mcp"
	"github.com/docfiller/docfiller/internal/pdf"
	"github.com/docfiller/docfiller/internal/router"
	"github.com/docfiller/docfiller/internal/service"
	"github.com/docfiller/docfiller/internal/storage"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

// setupLogging configures logging based on the run mode
func setupLogging(cfg *config.Config) {
	if cfg.IsMCPMode() {
		// In MCP mode, redirect log output to stderr to avoid interfering with the protocol
		log.SetOutput(os.Stderr)
		if !cfg.IsDebug() {
			log.SetOutput(os.NewFile(0, os.DevNull))
		}
	} else {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}
}

// openStore builds the draft store for the configured backend
func openStore(cfg *config.Config) (storage.DraftStore, error) {
	switch cfg.StoreBackend {
	case config.StoreMemory:
		return storage.NewMemStore(), nil
	case config.StoreJSON:
		return storage.NewJSONStore(cfg.DataDir)
	case config.StoreSQLite:
		return storage.NewSQLiteStore(filepath.Join(cfg.DataDir, "docfiller.db"))
	default:
		return nil, fmt.Errorf("unknown store backend: %s", cfg.StoreBackend)
	}
}

// loadFieldMap returns the configured field map, falling back to the built-in one
func loadFieldMap(cfg *config.Config) (*pdf.FieldMap, error) {
	if cfg.FieldMapPath == "" {
		return pdf.DefaultFieldMap(), nil
	}
	return pdf.LoadFieldMap(cfg.FieldMapPath)
}

// runHTTPMode serves the REST API until a shutdown signal arrives
func runHTTPMode(cfg *config.Config, handler http.Handler) {
	srv := &http.Server{
		Addr:              cfg.Address(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	serverErrCh := make(chan error, 1)
	go func() {
		log.Printf("Listening on http://%s", cfg.Address())
		serverErrCh <- srv.ListenAndServe()
	}()

	select {
	case sig := <-signalCh:
		log.Printf("Received signal: %s", sig)
		log.Println("Initiating graceful shutdown...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Server shutdown with error: %v", err)
			os.Exit(1)
		}
		<-serverErrCh

	case err := <-serverErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Server error: %v", err)
			os.Exit(1)
		}
	}

	log.Println("Server stopped successfully")
}

// runMCPMode runs the MCP stdio server; the parent process controls the lifecycle
func runMCPMode(ctx context.Context, server *mcp.Server) {
	if err := server.Run(ctx); err != nil {
		if os.Getenv("DEBUG") != "" {
			log.Printf("Server error: %v", err)
		}
		os.Exit(1)
	}
}

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			printVersion()
			return
		}
	}

	cfg, err := config.LoadFromFlags()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogging(cfg)

	// Set version if it was provided during build
	if version != "dev" {
		cfg.Version = version
	}

	if cfg.IsDebug() && cfg.IsHTTPMode() {
		log.Printf("Starting with configuration: %s", cfg.String())
	}

	fieldMap, err := loadFieldMap(cfg)
	if err != nil {
		log.Fatalf("Failed to load field map: %v", err)
	}

	filler := pdf.NewFiller(pdf.NewPDFCPUEngine(), fieldMap)
	pdfService := service.NewPDFService(cfg.TemplatePath, cfg.MaxTemplateSize, filler)

	if cfg.IsMCPMode() {
		server, err := mcp.NewServer(cfg, pdfService, filler)
		if err != nil {
			log.Fatalf("Failed to create MCP server: %v", err)
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		runMCPMode(ctx, server)
		return
	}

	store, err := openStore(cfg)
	if err != nil {
		log.Fatalf("Failed to open draft store: %v", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("Failed to close draft store: %v", err)
		}
	}()

	formService := service.NewFormService(store)
	runHTTPMode(cfg, router.New(formService, pdfService))
}

// printVersion prints version information
func printVersion() {
	fmt.Printf("DocFiller\n")
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Build Time: %s\n", buildTime)
	fmt.Printf("Git Commit: %s\n", gitCommit)
	fmt.Printf("Built with: %s\n", runtime.Version())
}
