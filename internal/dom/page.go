package dom

import (
	"context"
	"errors"
	"regexp"
	"time"

	"x-impressions/internal/browser"
	"x-impressions/internal/extract"

	"github.com/playwright-community/playwright-go"
)

// ErrNoMatch is returned when a selector matches nothing.
var ErrNoMatch = errors.New("no element matches selector")

// Page adapts a live playwright page to the session and extraction flows.
type Page struct {
	page        playwright.Page
	navTimeout  time.Duration
	textTimeout time.Duration
}

func NewPage(page playwright.Page) *Page {
	return &Page{
		page:        page,
		navTimeout:  30 * time.Second,
		textTimeout: 2 * time.Second,
	}
}

// Raw exposes the wrapped playwright page for screenshots and HTML dumps.
func (p *Page) Raw() playwright.Page {
	return p.page
}

func (p *Page) Goto(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := p.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   ms(p.navTimeout),
	})
	return err
}

func (p *Page) URL() string {
	return p.page.URL()
}

func (p *Page) Count(ctx context.Context, selector string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return p.page.Locator(selector).Count()
}

func (p *Page) WaitVisible(ctx context.Context, selector string, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return p.page.Locator(selector).First().WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateAttached,
		Timeout: ms(timeout),
	})
}

// Type enters text key by key with a human-ish per-key delay.
func (p *Page) Type(ctx context.Context, selector, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return p.page.Locator(selector).First().PressSequentially(text, playwright.LocatorPressSequentiallyOptions{
		Delay: playwright.Float(float64(browser.KeyDelay().Milliseconds())),
	})
}

func (p *Page) Press(ctx context.Context, selector, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return p.page.Locator(selector).First().Press(key)
}

func (p *Page) WaitForURL(ctx context.Context, pattern *regexp.Regexp, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return p.page.WaitForURL(pattern, playwright.PageWaitForURLOptions{
		Timeout:   ms(timeout),
		WaitUntil: playwright.WaitUntilStateCommit,
	})
}

// Humanize jiggles the mouse and nudges the scroll position before reading.
func (p *Page) Humanize(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	browser.MouseJiggle(p.page)
	return browser.NudgeScroll(p.page)
}

func (p *Page) WaitFirst(ctx context.Context, selector string, timeout time.Duration) (extract.Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	loc := p.page.Locator(selector).First()
	if err := loc.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateAttached,
		Timeout: ms(timeout),
	}); err != nil {
		return nil, err
	}
	return locatorElement{loc: loc, timeout: p.textTimeout}, nil
}

func (p *Page) All(ctx context.Context, selector string) ([]extract.Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	locators, err := p.page.Locator(selector).All()
	if err != nil {
		return nil, err
	}
	elements := make([]extract.Element, len(locators))
	for i, loc := range locators {
		elements[i] = locatorElement{loc: loc, timeout: p.textTimeout}
	}
	return elements, nil
}

type locatorElement struct {
	loc     playwright.Locator
	timeout time.Duration
}

func (e locatorElement) Text() (string, error) {
	return e.loc.InnerText(playwright.LocatorInnerTextOptions{
		Timeout: ms(e.timeout),
	})
}

func (e locatorElement) Attr(name string) (string, bool, error) {
	v, err := e.loc.GetAttribute(name, playwright.LocatorGetAttributeOptions{
		Timeout: ms(e.timeout),
	})
	if err != nil {
		return "", false, err
	}
	return v, v != "", nil
}

func ms(d time.Duration) *float64 {
	return playwright.Float(float64(d.Milliseconds()))
}
