package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"x-impressions/internal/dom"
	"x-impressions/internal/extract"
)

// Replays the extraction chain against a saved post HTML (see snapshot_dir).
func main() {
	if len(os.Args) < 2 {
		log.Fatalf("usage: %s <post.html>", os.Args[0])
	}

	fmt.Printf("🗂 Loading snapshot %s...\n", os.Args[1])
	f, err := os.Open(os.Args[1])
	if err != nil {
		log.Fatalf("Failed to open snapshot: %v", err)
	}
	defer f.Close()

	doc, err := dom.NewSnapshot(f)
	if err != nil {
		log.Fatalf("Failed to parse snapshot: %v", err)
	}

	res, err := extract.Run(context.Background(), doc, extract.DefaultChain())
	if errors.Is(err, extract.ErrNotFound) {
		fmt.Println("✗ No view count in this snapshot. Selectors may need updating.")
		return
	}
	if err != nil {
		log.Fatalf("Extraction failed: %v", err)
	}

	fmt.Printf("✓ %s (method: %s)\n", res.Value, res.Method)
	if views, err := extract.ParseCount(res.Value); err == nil {
		fmt.Printf("  = %d views\n", views)
	}
}
