package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"TrafficLens/internal/config"
	"TrafficLens/internal/generator"

	"github.com/gorilla/mux"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "Path to config file")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Generate the dataset file if it is absent. The store itself never
	// auto-generates; this orchestration step decides.
	records, err := generator.Generate(cfg.Generator)
	if err != nil {
		log.Fatalf("Failed to generate dataset: %v", err)
	}
	created, err := generator.WriteIfAbsent(cfg.Dataset.Path, records)
	if err != nil {
		log.Fatalf("Failed to write dataset file: %v", err)
	}
	if created {
		log.Printf("Created mock dataset %s with %d records", cfg.Dataset.Path, len(records))
	} else {
		log.Printf("Dataset %s already exists, skipping generation", cfg.Dataset.Path)
	}

	// Initialize router
	r := mux.NewRouter()

	apiHandler := &APIHandler{cfg: cfg}

	// Define API routes
	r.HandleFunc("/api/protocols", apiHandler.protocolsHandler).Methods("GET")
	r.HandleFunc("/api/plot/protocol", apiHandler.protocolPlotHandler).Methods("GET")
	r.HandleFunc("/api/plot/top_ips", apiHandler.topIPsHandler).Methods("GET")
	r.HandleFunc("/api/data", apiHandler.dataHandler).Methods("GET")
	r.HandleFunc("/api/stats", apiHandler.statsHandler).Methods("GET")

	// Start HTTP server
	server := &http.Server{
		Addr:    cfg.API.ListenAddr,
		Handler: r,
	}

	go func() {
		log.Printf("API server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v", server.Addr, err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("API server shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("API server exited.")
}
