package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/claude/liftcoach/internal/client"
	"github.com/claude/liftcoach/internal/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	serverURL := flag.String("server", os.Getenv("LIFTCOACH_URL"), "LiftCoach server URL (e.g. https://liftcoach.tail1234.ts.net)")
	apiKey := flag.String("api-key", os.Getenv("LIFTCOACH_SERVER_API_KEY"), "API key for the LiftCoach server")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("liftcoach-mcp", Version)
		return
	}

	// stdout carries the MCP protocol, so logs go to stderr.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *serverURL == "" {
		fmt.Fprintf(os.Stderr, "Usage: liftcoach-mcp -server <URL> [-api-key KEY]\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	backend := client.New(*serverURL, client.WithAPIKey(*apiKey))
	s := mcp.New(backend, Version, log)

	log.Info("liftcoach-mcp serving on stdio", "server", *serverURL)
	if err := server.ServeStdio(s); err != nil {
		log.Error("stdio server error", "error", err)
		os.Exit(1)
	}
}
