// One-shot CLI runner: search-and-rank a query, or scrape a single store
// page, without going through the chat transport.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"go-eats-agent/internal/agent"
	"go-eats-agent/internal/browser"
	"go-eats-agent/internal/config"
)

func main() {
	query := flag.String("query", "", "free-form request, e.g. '宵夜 300 內 要辣'")
	storeURL := flag.String("store", "", "store URL to scrape menu from")
	headless := flag.Bool("headless", true, "run browser headless")
	flag.Parse()

	if *query == "" && *storeURL == "" {
		fmt.Fprintln(os.Stderr, "usage: agent -query '宵夜 300 內 要辣' | agent -store <url>")
		os.Exit(1)
	}

	cfg := &config.Config{Headless: *headless}
	cfg.ApplyDefaults()
	if authState := os.Getenv("AUTH_STATE_PATH"); authState != "" {
		cfg.AuthStatePath = authState
	}

	manager, err := browser.NewManager(cfg.Headless)
	if err != nil {
		log.Fatalf("❌ Failed to init browser: %v", err)
	}
	defer manager.Close()

	recommender := agent.New(cfg, manager)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	if *storeURL != "" {
		detail, err := recommender.ScrapeStore(ctx, *storeURL)
		if err != nil {
			log.Fatalf("❌ Store scrape failed: %v", err)
		}
		printAndSave(detail, "store-detail")
		return
	}

	result, err := recommender.Run(ctx, *query)
	if err != nil {
		log.Fatalf("❌ Search failed: %v", err)
	}

	log.Printf("✅ Found %d restaurants, top %d recommended", result.TotalFound, len(result.Recommendations))
	printAndSave(result.Recommendations, "recommendations")
}

func printAndSave(v any, prefix string) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("⚠️ Failed to marshal results: %v", err)
	}
	fmt.Println(string(data))

	logDir := "logs"
	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.Printf("⚠️ Failed to create logs directory: %v", err)
		return
	}

	filename := fmt.Sprintf("%s-%s.json", prefix, time.Now().Format("2006-01-02"))
	path := filepath.Join(logDir, filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		log.Printf("⚠️ Failed to write results file: %v", err)
		return
	}
	log.Printf("📁 Results saved to %s", path)
}
