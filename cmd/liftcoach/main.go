package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/claude/liftcoach/internal/coach"
	"github.com/claude/liftcoach/internal/config"
	"github.com/claude/liftcoach/internal/gemini"
	"github.com/claude/liftcoach/internal/mcp"
	"github.com/claude/liftcoach/internal/models"
	"github.com/claude/liftcoach/internal/planstore"
	"github.com/claude/liftcoach/internal/server"
	"github.com/claude/liftcoach/internal/suggest"
	"github.com/getsentry/sentry-go"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"tailscale.com/tsnet"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "", "path to config file (empty: environment only)")
	flag.Parse()

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.New(slog.NewTextHandler(os.Stderr, nil)).Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()}))
	log.Info("LiftCoach starting", "version", Version)

	// Error reporting
	var report func(error)
	if cfg.Sentry.DSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.Sentry.DSN,
			Environment:      cfg.Sentry.Environment,
			Release:          Version,
			AttachStacktrace: true,
		})
		if err != nil {
			log.Warn("sentry initialization failed", "error", err)
		} else {
			log.Info("sentry initialized", "environment", cfg.Sentry.Environment)
			defer sentry.Flush(2 * time.Second)
			report = func(err error) { sentry.CaptureException(err) }
		}
	}

	// Suggestion pipeline
	gen := gemini.NewClient(gemini.Config{
		APIKey:            cfg.Gemini.APIKey,
		Model:             cfg.Gemini.Model,
		Endpoint:          cfg.Gemini.Endpoint,
		Temperature:       cfg.Gemini.Temperature,
		Timeout:           cfg.Gemini.Timeout(),
		RequestsPerMinute: cfg.Gemini.RequestsPerMinute,
	})
	log.Info("gemini client ready", "model", gen.Model())

	changed := coach.NewSignal()
	orch := suggest.New(gen, log,
		suggest.WithOnChange(func(suggest.RequestState) { changed.Notify() }),
		suggest.WithErrorReporter(report),
	)

	// Session state
	var initial []models.TrainingPlan
	if cfg.Seed.DemoPlans {
		initial = models.DemoPlans()
	}
	store := planstore.New(planstore.NewState(initial), log)
	svc := coach.NewService(store, orch, changed, log)

	// Create server
	srv := server.New(svc, cfg.Server.APIKey, log)
	if cfg.MCP.Enabled {
		srv.SetMCP(mcpserver.NewStreamableHTTPServer(mcp.New(svc, Version, log)))
		log.Info("mcp endpoint enabled", "path", "/mcp")
	}

	// Start server on tsnet or plain HTTP
	var listener net.Listener
	var tsServer *tsnet.Server

	if cfg.Tailscale.Enabled {
		tsServer = &tsnet.Server{
			Hostname: cfg.Tailscale.Hostname,
			Dir:      cfg.Tailscale.StateDir,
		}
		if err := tsServer.Start(); err != nil {
			log.Error("tsnet start failed", "error", err)
			os.Exit(1)
		}
		defer tsServer.Close()

		listener, err = tsServer.Listen("tcp", ":80")
		if err != nil {
			log.Error("tsnet listen failed", "error", err)
			os.Exit(1)
		}
		log.Info("tsnet server starting", "hostname", cfg.Tailscale.Hostname)
	} else {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		listener, err = net.Listen("tcp", addr)
		if err != nil {
			log.Error("listen failed", "addr", addr, "error", err)
			os.Exit(1)
		}
		log.Info("server starting", "addr", addr, "mode", "dev (no tailscale)")
	}

	httpSrv := &http.Server{Handler: srv}

	go func() {
		if err := httpSrv.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("shutting down", "signal", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "error", err)
	}
	log.Info("server stopped")
}
