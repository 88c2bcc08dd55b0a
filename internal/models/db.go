package models

import (
	"time"
)

// ViewSnapshot is one recorded reading of a post's view count.
type ViewSnapshot struct {
	ID          int64     `json:"id"`
	PostURL     string    `json:"post_url"`
	Impressions string    `json:"impressions"` // as rendered on the page
	Views       *int64    `json:"views,omitempty"`
	Method      string    `json:"method"`
	ScrapedAt   time.Time `json:"scraped_at"`
}
