package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"finterm/internal/chart"
	"finterm/internal/config"
	"finterm/internal/scheme"
	"finterm/internal/storage"
	"finterm/internal/ui"
)

func main() {
	catalog := flag.Bool("catalog", false, "print the theme style catalog as YAML and exit")
	themeName := flag.String("theme", "", "chart theme for this session (CLASSIC, CLEARLOOK, SAND, BLACKBERRY, DARK)")
	logPath := flag.String("log", os.Getenv("FINTERM_LOG"), "write debug logs to this file")
	flag.Parse()

	if *catalog {
		if err := scheme.WriteCatalog(os.Stdout); err != nil {
			log.Fatalf("write catalog: %v", err)
		}
		return
	}

	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		log.Fatalf("finterm needs an interactive terminal; use -catalog for scripted output")
	}

	logger := log.New(io.Discard, "", log.LstdFlags)
	if *logPath != "" {
		f, err := tea.LogToFile(*logPath, "finterm")
		if err != nil {
			log.Fatalf("open log: %v", err)
		}
		defer f.Close()
		logger = log.Default()
	}

	ctx := context.Background()

	cfgStore, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *themeName != "" {
		t, err := scheme.ParseTheme(*themeName)
		if err != nil {
			log.Fatalf("theme flag: %v", err)
		}
		cfgStore.OverrideTheme(t)
	}

	db, err := storage.Open(ctx)
	if err != nil {
		log.Fatalf("open storage: %v", err)
	}
	defer db.Close()

	symbols, err := db.ListSymbols(ctx)
	if err != nil {
		log.Fatalf("list symbols: %v", err)
	}
	if len(symbols) == 0 {
		if _, err := db.SeedDemo(ctx, cfgStore.Config.Symbol, 240, time.Now()); err != nil {
			log.Fatalf("seed demo data: %v", err)
		}
		logger.Printf("seeded demo bars for %s", cfgStore.Config.Symbol)
	}

	resolver := scheme.NewResolver(chart.Stylesheets, scheme.WithLogger(logger))
	program := ui.NewProgram(db, cfgStore, resolver)
	if err := program.Start(); err != nil {
		log.Println("program terminated:", err)
		os.Exit(1)
	}
}
