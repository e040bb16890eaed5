package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mathivhahy/pastemax/engine"
	"github.com/mathivhahy/pastemax/scan"
	"github.com/mathivhahy/pastemax/server"
	"github.com/mathivhahy/pastemax/token"
	"github.com/mathivhahy/pastemax/tools"
)

// excludePatterns is a repeatable CLI flag for custom ignore patterns.
type excludePatterns []string

func (e *excludePatterns) String() string { return strings.Join(*e, ", ") }
func (e *excludePatterns) Set(value string) error {
	*e = append(*e, value)
	return nil
}

func main() {
	var rootDir string
	var maxFileSizeBytes int64
	var eagerScan bool
	var logLevel string
	var logFile string
	var excludes excludePatterns

	flag.StringVar(&rootDir, "root", "", "Default scan root (default: current working directory)")
	flag.Var(&excludes, "exclude", "Extra ignore pattern (repeatable)")
	flag.Int64Var(&maxFileSizeBytes, "max-file-size", scan.MaxFileSizeBytes, "Maximum file size in bytes before a file is skipped")
	flag.BoolVar(&eagerScan, "eager", false, "Scan the root at startup instead of waiting for the first scan request")
	flag.StringVar(&logLevel, "log-level", "info", "Log level: debug|info|warn|error")
	flag.StringVar(&logFile, "log-file", "", "Log file path (default: pastemax.log in the root directory)")
	flag.Parse()

	if rootDir == "" {
		var err error
		rootDir, err = os.Getwd()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting working directory: %v\n", err)
			os.Exit(1)
		}
	}
	rootDir, _ = filepath.Abs(rootDir)

	// Default log file lives next to the scanned project. Never stdout:
	// stdout carries the MCP stdio transport.
	if logFile == "" {
		logFile = filepath.Join(rootDir, "pastemax.log")
	}
	logger := setupLogger(logLevel, logFile)

	logger.Info("starting pastemax",
		"root", rootDir,
		"maxFileSize", maxFileSizeBytes,
	)

	startTime := time.Now()

	counter := token.NewCounter(logger)
	coordinator := engine.New(engine.Options{
		Logger:         logger,
		Counter:        counter,
		MaxFileSize:    maxFileSizeBytes,
		CustomPatterns: excludes,
		Progress: func(p scan.Progress) {
			logger.Debug("progress", "status", string(p.Status), "message", p.Message)
		},
	})
	defer coordinator.Close()

	if eagerScan {
		result, err := coordinator.Scan(rootDir)
		if err != nil {
			logger.Error("initial scan failed", "root", rootDir, "error", err)
		} else {
			logger.Info("initial scan finished",
				"outcome", result.Outcome.String(),
				"files", len(result.Files),
				"duration", result.Duration,
			)
		}
	}

	scanHandler := &tools.ScanHandler{Engine: coordinator, DefaultRoot: rootDir, Logger: logger}
	cancelHandler := &tools.CancelHandler{Engine: coordinator, Logger: logger}
	filesHandler := &tools.FilesHandler{Engine: coordinator, Logger: logger}
	assembleHandler := &tools.AssembleHandler{Engine: coordinator, Logger: logger}
	statusHandler := &tools.StatusHandler{Engine: coordinator, StartTime: startTime, Logger: logger}

	mcpServer := server.Setup(scanHandler, cancelHandler, filesHandler, assembleHandler, statusHandler)

	logger.Info("MCP server starting on stdio")
	if err := mcpServer.Run(context.Background(), &mcp.StdioTransport{}); err != nil {
		logger.Error("MCP server error", "error", err)
		os.Exit(1)
	}
}

// setupLogger creates an slog.Logger writing to stderr or a file.
func setupLogger(level string, logFile string) *slog.Logger {
	var logLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	var writer *os.File
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: cannot open log file %s: %v, falling back to stderr\n", logFile, err)
			writer = os.Stderr
		} else {
			writer = f
		}
	} else {
		writer = os.Stderr
	}

	handler := slog.NewTextHandler(writer, &slog.HandlerOptions{Level: logLevel})
	return slog.New(handler)
}
