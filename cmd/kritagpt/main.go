package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	_ "kritagpt/pkg/ai/providers"
	"kritagpt/pkg/config"
	"kritagpt/pkg/host"
	"kritagpt/pkg/logging"
	"kritagpt/pkg/ui"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default ~/.kritagpt/config.json)")
	noDoc := flag.Bool("no-doc", false, "start without an open document")
	flag.Parse()

	path := *configPath
	if path == "" {
		path = config.GetConfigPath()
	}

	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if _, err := logging.Init(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
		os.Exit(1)
	}
	slog.Info("starting", "provider", cfg.APIProvider, "model", cfg.Model)

	app := host.NewMemApp()
	if !*noDoc {
		app.NewDocument("Untitled", 1024, 768)
	}

	p := tea.NewProgram(ui.New(cfg, path, app), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("fatal", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
