package browser

import (
	"errors"
	"fmt"
	"log"

	"github.com/playwright-community/playwright-go"
)

// DefaultUserAgent is the Firefox UA presented instead of the automation build's own.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:109.0) Gecko/20100101 Firefox/115.0"

type LaunchOptions struct {
	Headless  bool
	UserAgent string
	// Install downloads the Firefox build and driver before launching
	Install bool
}

type PlaywrightManager struct {
	pw        *playwright.Playwright
	browser   playwright.Browser
	userAgent string
}

// FirefoxPrefs hides the usual automation fingerprints.
func FirefoxPrefs(userAgent string) map[string]interface{} {
	return map[string]interface{}{
		"dom.webdriver.enabled":      false,
		"useAutomationExtension":     false,
		"general.useragent.override": userAgent,
	}
}

func NewPlaywright(opts LaunchOptions) (*PlaywrightManager, error) {
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}

	if opts.Install {
		log.Println("📥 Installing Playwright Firefox...")
		if err := playwright.Install(&playwright.RunOptions{Browsers: []string{"firefox"}}); err != nil {
			return nil, fmt.Errorf("could not install playwright firefox: %w", err)
		}
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("could not start playwright: %w", err)
	}

	browser, err := pw.Firefox.Launch(playwright.BrowserTypeLaunchOptions{
		Headless:         playwright.Bool(opts.Headless),
		FirefoxUserPrefs: FirefoxPrefs(opts.UserAgent),
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("could not launch firefox: %w", err)
	}

	return &PlaywrightManager{
		pw:        pw,
		browser:   browser,
		userAgent: opts.UserAgent,
	}, nil
}

// NewContext opens an isolated browser context carrying the override UA and any preloaded cookies.
func (pm *PlaywrightManager) NewContext(cookies []playwright.OptionalCookie) (playwright.BrowserContext, error) {
	ctx, err := pm.browser.NewContext(playwright.BrowserNewContextOptions{
		UserAgent: playwright.String(pm.userAgent),
		Viewport: &playwright.Size{
			Width:  1280,
			Height: 900,
		},
		Locale: playwright.String("en-US"),
	})
	if err != nil {
		return nil, fmt.Errorf("could not create browser context: %w", err)
	}

	if len(cookies) > 0 {
		if err := ctx.AddCookies(cookies); err != nil {
			ctx.Close()
			return nil, fmt.Errorf("could not add cookies: %w", err)
		}
	}
	return ctx, nil
}

// Close terminates the browser and the playwright driver. Safe to call once per manager.
func (pm *PlaywrightManager) Close() error {
	var errs []error
	if pm.browser != nil {
		if err := pm.browser.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close browser: %w", err))
		}
	}
	if pm.pw != nil {
		if err := pm.pw.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("stop playwright: %w", err))
		}
	}
	return errors.Join(errs...)
}
