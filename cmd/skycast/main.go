package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ngmaloney/skycast/internal/app"
	"github.com/ngmaloney/skycast/internal/config"
	"github.com/ngmaloney/skycast/internal/ui"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file")
	logPath := flag.String("log", filepath.Join("data", "skycast.log"), "Where to write logs while the UI owns the terminal")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(filepath.Dir(*logPath), 0755); err != nil {
		fmt.Printf("Error creating log directory: %v\n", err)
		os.Exit(1)
	}
	logFile, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Printf("Error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	slog.SetDefault(cfg.NewLogger(logFile))

	var built holder
	setup := func(progress chan<- string) (ui.Predictor, error) {
		a, err := app.Build(context.Background(), cfg, progress, nil)
		if err != nil {
			slog.Error("setup failed", "error", err)
			return nil, err
		}
		if err := built.set(a); err != nil {
			return nil, err
		}
		return a.Pipeline, nil
	}

	p := tea.NewProgram(ui.NewModel(setup), tea.WithAltScreen())
	_, err = p.Run()
	built.close()
	if err != nil {
		fmt.Printf("Error running application: %v\n", err)
		os.Exit(1)
	}
}
