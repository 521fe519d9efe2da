package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"TrafficLens/internal/config"
	"TrafficLens/internal/generator"
	"TrafficLens/internal/ui"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "Path to config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// First run convenience: create the mock dataset if it is absent, same
	// orchestration as the API server.
	records, err := generator.Generate(cfg.Generator)
	if err != nil {
		log.Fatalf("Failed to generate dataset: %v", err)
	}
	if _, err := generator.WriteIfAbsent(cfg.Dataset.Path, records); err != nil {
		log.Fatalf("Failed to write dataset file: %v", err)
	}

	p := tea.NewProgram(ui.NewModel(cfg), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running viewer: %v\n", err)
		os.Exit(1)
	}
}
