package main

import (
	"flag"
	"log"

	"TrafficLens/internal/config"
	"TrafficLens/internal/generator"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "Path to config file")
	outputFile := flag.String("o", "", "Output dataset path (overrides config)")
	count := flag.Int("c", 0, "Number of records to generate (overrides config)")
	seed := flag.Int64("seed", 0, "Generator seed (overrides config)")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	path := cfg.Dataset.Path
	if *outputFile != "" {
		path = *outputFile
	}
	if *count > 0 {
		cfg.Generator.Count = *count
	}
	if *seed != 0 {
		cfg.Generator.Seed = *seed
	}

	log.Printf("Generating %d records (seed %d)...", cfg.Generator.Count, cfg.Generator.Seed)
	records, err := generator.Generate(cfg.Generator)
	if err != nil {
		log.Fatalf("Failed to generate records: %v", err)
	}

	created, err := generator.WriteIfAbsent(path, records)
	if err != nil {
		log.Fatalf("Failed to write dataset: %v", err)
	}
	if !created {
		log.Printf("%s already exists. Skipping creation.", path)
		return
	}
	log.Printf("Successfully created %s with %d records.", path, len(records))
}
