package dom

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"x-impressions/internal/extract"

	"github.com/PuerkitoBio/goquery"
)

// Snapshot is a parsed, static copy of a page. It answers the same queries as
// a live Page, without waiting: a node is either in the snapshot or it is not.
type Snapshot struct {
	doc *goquery.Document
}

// NewSnapshot parses HTML from r.
func NewSnapshot(r io.Reader) (*Snapshot, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return &Snapshot{doc: doc}, nil
}

// ParseSnapshot parses an HTML string.
func ParseSnapshot(html string) (*Snapshot, error) {
	return NewSnapshot(strings.NewReader(html))
}

func (s *Snapshot) WaitFirst(ctx context.Context, selector string, _ time.Duration) (extract.Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sel := s.doc.Find(selector).First()
	if sel.Length() == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoMatch, selector)
	}
	return snapshotElement{sel: sel}, nil
}

func (s *Snapshot) All(ctx context.Context, selector string) ([]extract.Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var elements []extract.Element
	s.doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		elements = append(elements, snapshotElement{sel: sel})
	})
	return elements, nil
}

type snapshotElement struct {
	sel *goquery.Selection
}

func (e snapshotElement) Text() (string, error) {
	return e.sel.Text(), nil
}

func (e snapshotElement) Attr(name string) (string, bool, error) {
	v, ok := e.sel.Attr(name)
	return v, ok, nil
}
