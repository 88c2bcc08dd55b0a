package x

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"x-impressions/internal/config"
	"x-impressions/internal/extract"
	"x-impressions/internal/scraper"
	"x-impressions/internal/session"
)

// humanizer is implemented by live pages that can simulate a reader.
type humanizer interface {
	Humanize(ctx context.Context) error
}

type XScraper struct {
	cfg     *config.Config
	session *session.Manager
	chain   []extract.Strategy
	// settle before looking for the count, the analytics link renders late
	settle time.Duration
	now    func() time.Time
}

func NewXScraper(cfg *config.Config) *XScraper {
	return &XScraper{
		cfg:     cfg,
		session: session.NewManager(),
		chain:   extract.DefaultChain(),
		settle:  3 * time.Second,
		now:     time.Now,
	}
}

func (s *XScraper) Name() string {
	return "X"
}

// Scrape ensures an authenticated session on the post and runs the extraction chain.
// A (nil, nil) return means the page showed no count.
func (s *XScraper) Scrape(ctx context.Context, page scraper.Page) (*scraper.Result, error) {
	state, err := s.session.Ensure(ctx, page, s.cfg.PostURL, s.cfg.Credentials())
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", state, err)
	}

	log.Println("👀 Looking for impressions...")
	if h, ok := page.(humanizer); ok {
		if err := h.Humanize(ctx); err != nil {
			log.Printf("  ⚠️ Humanize failed: %v", err)
		}
	}
	if err := wait(ctx, s.settle); err != nil {
		return nil, err
	}

	found, err := extract.Run(ctx, page, s.chain)
	if errors.Is(err, extract.ErrNotFound) {
		log.Println("❌ Could not find impressions. The post may not display impressions or you may not have access.")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	result := &scraper.Result{
		PostURL:     s.cfg.PostURL,
		Impressions: found.Value,
		Method:      found.Method,
		ScrapedAt:   s.now(),
	}
	if views, err := extract.ParseCount(found.Value); err == nil {
		result.Views = views
		result.Parsed = true
	} else {
		log.Printf("  ⚠️ Could not parse %q as a number: %v", found.Value, err)
	}
	return result, nil
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
