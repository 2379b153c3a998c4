package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/claude/lifttrack/internal/config"
	"github.com/claude/lifttrack/internal/seed"
	"github.com/claude/lifttrack/internal/storage"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	plansDir := flag.String("plans", "plans", "directory of plan template JSON files")
	dryRun := flag.Bool("dry-run", false, "parse and validate plan files without writing anything")
	force := flag.Bool("force", false, "ignore seed state and re-apply every file")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("lifttrack-seed", Version)
		return
	}

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	info, err := os.Stat(*plansDir)
	if err != nil || !info.IsDir() {
		log.Error("plans directory not found", "path", *plansDir)
		os.Exit(1)
	}

	ctx := context.Background()
	db, err := storage.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Seed state lives next to the user's home dir so reruns skip
	// already-applied files. -force bypasses it.
	var state *seed.StateDB
	if !*force && !*dryRun {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			log.Error("failed to get home directory", "error", err)
			os.Exit(1)
		}
		state, err = seed.OpenStateDB(filepath.Join(homeDir, ".lifttrack-seed"))
		if err != nil {
			log.Error("failed to open state database", "error", err)
			os.Exit(1)
		}
		defer state.Close()
	}

	if *dryRun {
		log.Info("DRY RUN mode — files will be parsed and validated but not applied")
	}

	seeder := seed.New(db, state, log)
	stats, err := seeder.SeedDir(ctx, *plansDir, *dryRun)
	if err != nil {
		log.Error("seeding failed", "error", err)
		os.Exit(1)
	}

	log.Info("seeding complete",
		"applied", stats.PlansApplied,
		"skipped", stats.PlansSkipped,
		"days", stats.DaysInserted,
		"exercises", stats.ExercisesSeen,
		"links", stats.LinksCreated,
	)
}
