package extract

import "time"

// X DOM selectors used by the extraction chain.
// X changes its markup without notice; update these first when scraping breaks.
const (
	// AnalyticsLink is the per-post analytics anchor (own posts expose it with a count).
	AnalyticsLink = `a[href*="analytics"]`
	// AnalyticsSpan is the styled numeric span X renders inside the analytics anchor.
	AnalyticsSpan = `a[href*="analytics"] span[class*="css"]`
	// Labelled matches every element carrying an accessibility label.
	Labelled = `[aria-label]`
)

// analyticsWait bounds the wait for the analytics span before falling through.
const analyticsWait = 5 * time.Second
