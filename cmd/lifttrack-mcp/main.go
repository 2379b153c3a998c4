package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/claude/lifttrack/internal/config"
	"github.com/claude/lifttrack/internal/mcp"
	"github.com/claude/lifttrack/internal/storage"
	"github.com/claude/lifttrack/internal/training"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	email := flag.String("email", "", "email of the user to serve data for")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("lifttrack-mcp", Version)
		return
	}

	// Stdout carries the MCP transport, so logs go to stderr.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *email == "" {
		*email = os.Getenv("LIFTTRACK_MCP_EMAIL")
	}
	if *email == "" {
		fmt.Fprintf(os.Stderr, "Usage: lifttrack-mcp -config <file> -email <user email>\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	db, err := storage.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	user, err := db.GetOrCreateUser(ctx, *email, "")
	if err != nil {
		log.Error("failed to resolve user", "email", *email, "error", err)
		os.Exit(1)
	}
	log.Info("serving MCP over stdio", "user", user.Email)

	engine := training.New(db, log)
	s := mcp.New(engine, Version, log)

	err = server.ServeStdio(s, server.WithStdioContextFunc(
		func(ctx context.Context) context.Context {
			return mcp.WithUserID(ctx, user.ID)
		},
	))
	if err != nil {
		log.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}
