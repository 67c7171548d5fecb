package main

import (
	"context"
	"log"

	"github.com/aida-nabila/code-map/internal/config"
	"github.com/aida-nabila/code-map/internal/services"
)

// Builds the job embedding cache offline so the API server starts fast.
// Run it after dropping new CSV/XLSX files into the job data directory;
// remember to delete the old cache file first.
func main() {
	log.Println("🚀 Starting job embedding cache build...")

	// Load configuration
	cfg := config.Load()

	// Initialize Gemini
	geminiService, err := services.NewGeminiService(cfg.Gemini)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	jobIndex := services.NewJobIndex(cfg.Jobs.DataDir, cfg.Jobs.CacheFilename, geminiService)

	if err := jobIndex.Load(context.Background()); err != nil {
		log.Fatalf("❌ Failed to build job index: %v", err)
	}

	if jobIndex.Len() == 0 {
		log.Printf("⚠️  No job postings found in %s\n", cfg.Jobs.DataDir)
		return
	}

	log.Printf("✅ Cache built for %d job postings\n", jobIndex.Len())
}
