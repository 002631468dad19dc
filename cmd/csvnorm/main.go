// Command csvnorm sanitizes an eight-column CSV stream: UTF-8 repair,
// timestamp and duration normalization, name uppercasing. Rows that stay
// unparseable after repair are dropped from the output.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/mark3labs/mcp-go/server"
	"gopkg.in/yaml.v3"

	"github.com/hazyhaar/csvnorm/pkg/api"
	"github.com/hazyhaar/csvnorm/pkg/auditlog"
	"github.com/hazyhaar/csvnorm/pkg/sanitize"
	"github.com/hazyhaar/csvnorm/pkg/stream"
)

const version = "0.1.0"

type config struct {
	Timezone       string `yaml:"timezone"`
	OutputTimezone string `yaml:"output_timezone"`
	Encoding       string `yaml:"encoding"`
	KeepHeader     bool   `yaml:"keep_header"`
	RecomputeTotal bool   `yaml:"recompute_total"`
	AuditDB        string `yaml:"audit_db"`
	Addr           string `yaml:"addr"`
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "run":
		cmdRun(os.Args[2:])
	case "serve":
		cmdServe(os.Args[2:])
	case "mcp":
		cmdMCP(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: csvnorm <command>\n\nCommands:\n  run     Filter CSV from stdin to stdout\n  serve   Start the HTTP server\n  mcp     Serve MCP tools over stdio\n")
}

func cmdRun(args []string) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	fs.Parse(args)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	cfg := loadConfig(*cfgPath, logger)
	proc, cleanup := buildProcessor(cfg, logger)
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	in, err := sanitize.DecodeReader(os.Stdin, cfg.Encoding)
	if err != nil {
		logger.Error("bad input encoding", "error", err)
		os.Exit(1)
	}

	stats, err := proc.Run(ctx, in, os.Stdout)
	if err != nil {
		logger.Error("stream failed", "error", err)
		os.Exit(1)
	}
	logger.Info("stream complete",
		"read", stats.Read,
		"emitted", stats.Emitted,
		"dropped", stats.Dropped,
		"headers", stats.Headers)
}

func cmdServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	fs.Parse(args)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	cfg := loadConfig(*cfgPath, logger)
	proc, cleanup := buildProcessor(cfg, logger)
	defer cleanup()

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: api.NewRouter(proc, cfg.Timezone, logger),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("csvnorm listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	srv.Shutdown(shutdownCtx)
}

func cmdMCP(args []string) {
	fs := flag.NewFlagSet("mcp", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	fs.Parse(args)

	// stdout carries the MCP protocol; everything else goes to stderr.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	cfg := loadConfig(*cfgPath, logger)
	proc, cleanup := buildProcessor(cfg, logger)
	defer cleanup()

	srv := server.NewMCPServer("csvnorm", version)
	api.RegisterMCPTools(srv, proc, logger)

	if err := server.ServeStdio(srv); err != nil {
		logger.Error("mcp server failed", "error", err)
		os.Exit(1)
	}
}

// buildProcessor assembles the sanitizer and stream driver from config.
// The returned cleanup closes the audit DB, if one was opened.
func buildProcessor(cfg config, logger *slog.Logger) (*stream.Processor, func()) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("bad timezone", "timezone", cfg.Timezone, "error", err)
		os.Exit(1)
	}

	var out *time.Location
	if cfg.OutputTimezone != "" {
		out, err = time.LoadLocation(cfg.OutputTimezone)
		if err != nil {
			logger.Error("bad output timezone", "timezone", cfg.OutputTimezone, "error", err)
			os.Exit(1)
		}
	}

	san := sanitize.New(sanitize.Options{
		Location:       loc,
		OutputLocation: out,
		KeepHeader:     cfg.KeepHeader,
		RecomputeTotal: cfg.RecomputeTotal,
	})

	var audit stream.AuditSink
	cleanup := func() {}
	if cfg.AuditDB != "" {
		db, err := auditlog.Open(cfg.AuditDB)
		if err != nil {
			logger.Error("failed to open audit db", "path", cfg.AuditDB, "error", err)
			os.Exit(1)
		}
		audit = db
		cleanup = func() { db.Close() }
		logger.Info("audit journal enabled", "path", cfg.AuditDB)
	}

	return stream.New(san, logger, audit), cleanup
}

func loadConfig(path string, logger *slog.Logger) config {
	cfg := config{
		Timezone: "America/Los_Angeles",
		Addr:     ":8421",
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Info("no config file, using defaults", "path", path)
			return cfg
		}
		logger.Error("read config", "error", err)
		os.Exit(1)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		logger.Error("parse config", "error", err)
		os.Exit(1)
	}
	return cfg
}
