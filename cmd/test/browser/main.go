package main

import (
	"fmt"
	"log"

	"x-impressions/internal/browser"
	"x-impressions/internal/config"

	"github.com/playwright-community/playwright-go"
)

// Opens a fingerprint test page with the same launch settings as the scraper.
func main() {
	fmt.Println("🌐 Testing Browser Manager...")
	cfg := config.Load()

	pm, err := browser.NewPlaywright(browser.LaunchOptions{
		Headless:  cfg.Headless,
		UserAgent: cfg.UserAgent,
		Install:   cfg.InstallBrowsers,
	})
	if err != nil {
		log.Fatalf("Failed to create Playwright: %v", err)
	}
	defer pm.Close()

	fmt.Println("✅ Playwright started")

	browserCtx, err := pm.NewContext(nil)
	if err != nil {
		log.Fatalf("Failed to create context: %v", err)
	}
	defer browserCtx.Close()

	page, err := browserCtx.NewPage()
	if err != nil {
		log.Fatalf("Failed to create page: %v", err)
	}

	fmt.Println("🔍 Navigating to bot.sannysoft.com...")
	if _, err := page.Goto("https://bot.sannysoft.com"); err != nil {
		log.Fatalf("Failed to navigate: %v", err)
	}

	webdriver, _ := page.Evaluate("navigator.webdriver")
	ua, _ := page.Evaluate("navigator.userAgent")
	fmt.Printf("✅ navigator.webdriver: %v\n", webdriver)
	fmt.Printf("✅ navigator.userAgent: %v\n", ua)

	_, err = page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String("fingerprint-test.png"),
		FullPage: playwright.Bool(true),
	})
	if err != nil {
		log.Printf("Failed to take screenshot: %v", err)
	} else {
		fmt.Println("📸 Screenshot saved: fingerprint-test.png")
	}
	fmt.Println("✨ Test complete!")
}
