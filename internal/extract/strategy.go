// Locate the view count on a rendered post
// Ordered fallback chain, first hit wins

package extract

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"
)

// ErrNotFound means every strategy was tried and none produced a count.
var ErrNotFound = errors.New("view count not found")

// Element is a single node matched in a Document.
type Element interface {
	// Text returns the rendered (visible) text of the node.
	Text() (string, error)
	// Attr returns the attribute value and whether it was present.
	Attr(name string) (string, bool, error)
}

// Document is the read-only view of a page the strategies query.
type Document interface {
	// WaitFirst waits up to timeout for the first node matching selector.
	WaitFirst(ctx context.Context, selector string, timeout time.Duration) (Element, error)
	// All returns every node matching selector in DOM order.
	All(ctx context.Context, selector string) ([]Element, error)
}

// Strategy is one independent heuristic in the chain.
type Strategy struct {
	Name string
	Find func(ctx context.Context, doc Document) (string, bool)
}

// Result is the winning value and the strategy that produced it.
type Result struct {
	Value  string
	Method string
}

// DefaultChain returns the strategies in the order they must be tried:
// own posts expose an analytics link with a rendered number, other posts
// may only carry the count in an accessibility label.
func DefaultChain() []Strategy {
	return []Strategy{
		{Name: "analytics-span", Find: analyticsSpan},
		{Name: "analytics-aria", Find: analyticsAria},
		{Name: "aria-any", Find: anyAria},
		{Name: "analytics-text", Find: analyticsText},
	}
}

// Run evaluates chain in order and stops at the first strategy that yields a
// value containing a digit. Returns ErrNotFound when none does.
func Run(ctx context.Context, doc Document, chain []Strategy) (Result, error) {
	for i, s := range chain {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		value, ok := s.Find(ctx, doc)
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		if !hasDigit(value) {
			log.Printf("    ⚠️ Method %d (%s) returned %q without digits, skipping", i+1, s.Name, value)
			continue
		}

		log.Printf("✅ Impressions found (Method %d, %s): %s", i+1, s.Name, value)
		return Result{Value: value, Method: s.Name}, nil
	}
	return Result{}, ErrNotFound
}

// analyticsSpan reads the styled number inside the analytics link.
func analyticsSpan(ctx context.Context, doc Document) (string, bool) {
	el, err := doc.WaitFirst(ctx, AnalyticsSpan, analyticsWait)
	if err != nil {
		return "", false
	}
	text, err := el.Text()
	if err != nil || strings.TrimSpace(text) == "" {
		return "", false
	}
	return text, true
}

// analyticsAria scans the aria-label of every analytics link.
func analyticsAria(ctx context.Context, doc Document) (string, bool) {
	return firstLabelCount(ctx, doc, AnalyticsLink)
}

// anyAria scans the aria-label of any labelled element.
func anyAria(ctx context.Context, doc Document) (string, bool) {
	return firstLabelCount(ctx, doc, Labelled)
}

func firstLabelCount(ctx context.Context, doc Document, selector string) (string, bool) {
	elements, err := doc.All(ctx, selector)
	if err != nil {
		return "", false
	}
	for _, el := range elements {
		label, ok, err := el.Attr("aria-label")
		if err != nil || !ok {
			continue
		}
		if count, found := ViewsFromLabel(label); found {
			return count, true
		}
	}
	return "", false
}

// analyticsText falls back to the plain text of the analytics links.
func analyticsText(ctx context.Context, doc Document) (string, bool) {
	elements, err := doc.All(ctx, AnalyticsLink)
	if err != nil {
		return "", false
	}
	for _, el := range elements {
		text, err := el.Text()
		if err != nil {
			continue
		}
		text = strings.TrimSpace(text)
		if text != "" && hasDigit(text) {
			return text, true
		}
	}
	return "", false
}
