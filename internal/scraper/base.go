// Define an interface for all scrapers
// Ensure consistency

package scraper

import (
	"context"
	"time"

	"x-impressions/internal/extract"
	"x-impressions/internal/session"
)

// Result is a scraped view count for one post.
type Result struct {
	PostURL     string
	Impressions string //as rendered, e.g. "4,821" or "1.2K"
	Method      string
	Views       int64
	Parsed      bool //Views is valid
	ScrapedAt   time.Time
}

// Page is a browser tab that can both be driven through login and read by the extraction chain.
type Page interface {
	session.Page
	extract.Document
}

//Scraper defines the interface that all platform scrapers must implement
type Scraper interface {
	//Scrape the view count of the configured post; nil result means not found
	Scrape(ctx context.Context, page Page) (*Result, error)

	//Name is the platform name
	Name() string
}
