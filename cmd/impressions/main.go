package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"x-impressions/internal/browser"
	"x-impressions/internal/config"
	"x-impressions/internal/database"
	"x-impressions/internal/dom"
	"x-impressions/internal/history"
	"x-impressions/internal/models"
	"x-impressions/internal/reporter"
	"x-impressions/internal/scraper"
	"x-impressions/internal/scraper/x"
	"x-impressions/internal/session"

	"github.com/playwright-community/playwright-go"
)

const dbTimeout = 15 * time.Second

var rule = strings.Repeat("=", 50)

func main() {
	//load config
	cfg := config.Load()

	fmt.Println("\n" + rule)
	fmt.Println("Starting X Post Impressions Scraper (Firefox)")
	fmt.Printf("Headless Mode: %t\n", cfg.Headless)
	fmt.Printf("Keep Browser Open: %t\n", cfg.KeepOpen)
	fmt.Println(rule + "\n")

	result, cause := run(cfg)

	previous := record(cfg, result)
	notify(cfg, result, cause, previous)

	fmt.Println("\n" + rule)
	if result != nil {
		fmt.Printf("✓ POST IMPRESSIONS: %s\n", result.Impressions)
	} else {
		fmt.Println("✗ Could not retrieve impressions")
	}
	fmt.Println(rule)
}

// run owns the browser for its whole lifetime. Every failure, panics included,
// ends as a nil result plus the cause for reporting.
func run(cfg *config.Config) (result *scraper.Result, cause error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("❌ Error occurred: %v", r)
			result, cause = nil, fmt.Errorf("panic: %v", r)
		}
	}()

	//setup context with timeout, cancelled on Ctrl+C
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	//init playwright manager
	pwManager, err := browser.NewPlaywright(browser.LaunchOptions{
		Headless:  cfg.Headless,
		UserAgent: cfg.UserAgent,
		Install:   cfg.InstallBrowsers,
	})
	if err != nil {
		log.Printf("❌ Failed to init Playwright: %v", err)
		return nil, err
	}
	//close the browser on every path, after the operator is done when keep_open is set
	defer func() {
		if cfg.KeepOpen {
			waitForOperator(os.Stdin)
		}
		if err := pwManager.Close(); err != nil {
			log.Printf("⚠️ Failed to close browser: %v", err)
		}
	}()

	//load cookies
	var cookies []playwright.OptionalCookie
	cookieFile := filepath.Join(cfg.CookiesPath, "cookies-x.json")
	if loaded, err := browser.LoadCookies(cookieFile); err != nil {
		log.Printf("⚠️ Could not load X cookies: %v. Continuing.", err)
	} else {
		log.Printf("🍪 Loaded X cookies (%d)", len(loaded))
		cookies = loaded
	}

	browserCtx, err := pwManager.NewContext(cookies)
	if err != nil {
		log.Printf("❌ Failed to create browser context: %v", err)
		return nil, err
	}

	page, err := browserCtx.NewPage()
	if err != nil {
		log.Printf("❌ Failed to create new page: %v", err)
		return nil, err
	}
	log.Println("✅ Browser initialized successfully!")

	debugger := browser.NewScreenShotDebugger(cfg.ScreenshotsDir)
	s := x.NewXScraper(cfg)
	log.Printf("▶️ Starting scraper: %s", s.Name())

	result, err = s.Scrape(ctx, dom.NewPage(page))
	switch {
	case errors.Is(err, session.ErrCredentialsRequired):
		log.Println("🔒 Login required but no credentials provided (set X_USERNAME / X_PASSWORD)")
	case errors.Is(err, session.ErrLoginFailed):
		log.Printf("❌ Login failed, cannot retrieve impressions: %v", err)
		debugger.CaptureAndLog(page, "x-login-failed", "🚨 X: Login failed")
	case err != nil:
		log.Printf("❌ Error occurred: %v", err)
	case result == nil:
		debugger.CaptureAndLog(page, "x-impressions-not-found", "🚨 X: Impressions not found")
	}

	if cfg.SnapshotDir != "" {
		if path, snapErr := browser.SaveHTML(page, cfg.SnapshotDir, "x-post"); snapErr != nil {
			log.Printf("⚠️ Failed to save page snapshot: %v", snapErr)
		} else {
			log.Printf("🗂 Page snapshot saved: %s", path)
		}
	}

	return result, err
}

func waitForOperator(in io.Reader) {
	fmt.Println("\n" + rule)
	fmt.Println("Browser will remain open. Close manually when done.")
	fmt.Println(rule)
	fmt.Print("Press Enter to close the browser...")
	bufio.NewReader(in).ReadString('\n')
}

// record stores the reading, in Postgres when DATABASE_URL is set and in the
// local history file otherwise, and returns the previous numeric reading, if any.
func record(cfg *config.Config, result *scraper.Result) (previousViews *int64) {
	if result == nil {
		return nil
	}

	snap := &models.ViewSnapshot{
		PostURL:     result.PostURL,
		Impressions: result.Impressions,
		Method:      result.Method,
		ScrapedAt:   result.ScrapedAt,
	}
	if result.Parsed {
		views := result.Views
		snap.Views = &views
	}

	var previous *models.ViewSnapshot
	if cfg.DatabaseURL != "" {
		previous = recordDB(cfg.DatabaseURL, snap)
	} else {
		store := history.NewStore(cfg.HistoryDir)
		previous = store.Latest(result.PostURL)
		if err := store.Record(*snap); err != nil {
			log.Printf("⚠️ Failed to write history: %v", err)
		} else {
			log.Printf("💾 Recorded reading in %s", cfg.HistoryDir)
		}
	}

	if previous == nil || previous.Views == nil {
		return nil
	}
	if result.Parsed {
		log.Printf("📈 %+d views since %s", result.Views-*previous.Views, previous.ScrapedAt.Format("2006-01-02 15:04"))
	}
	return previous.Views
}

func recordDB(databaseURL string, snap *models.ViewSnapshot) *models.ViewSnapshot {
	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	repo, err := database.ConnectDB(ctx, databaseURL)
	if err != nil {
		log.Printf("⚠️ Skipping history: %v", err)
		return nil
	}
	defer repo.Close()

	if err := repo.EnsureSchema(ctx); err != nil {
		log.Printf("⚠️ Skipping history: %v", err)
		return nil
	}

	previous, err := repo.LatestSnapshot(ctx, snap.PostURL)
	if err != nil {
		log.Printf("⚠️ Could not read previous snapshot: %v", err)
	}
	if _, err := repo.RecordSnapshot(ctx, snap); err != nil {
		log.Printf("⚠️ %v", err)
		return previous
	}
	log.Printf("💾 Recorded snapshot #%d", snap.ID)
	return previous
}

// notify sends the outcome to Telegram when a bot is configured.
func notify(cfg *config.Config, result *scraper.Result, cause error, previousViews *int64) {
	if !cfg.TelegramEnabled() {
		return
	}

	rep, err := reporter.NewTelegramReporter(cfg)
	if err != nil {
		log.Printf("⚠️ Failed to init Telegram reporter: %v", err)
		return
	}

	if result != nil {
		err = rep.SendResult(result, previousViews)
	} else {
		err = rep.SendFailure(cfg.PostURL, cause)
	}
	if err != nil {
		log.Printf("⚠️ Failed to send result to Telegram: %v", err)
		return
	}
	log.Println("🤖 Result sent to Telegram.")
}
