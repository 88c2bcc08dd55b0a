package browser

import (
	"math/rand"
	"time"

	"github.com/playwright-community/playwright-go"
)

// RandomDelay pauses execution for a random time between min and max (milliseconds)
func RandomDelay(min, max int) {
	if min >= max {
		time.Sleep(time.Duration(min) * time.Millisecond)
		return
	}
	duration := time.Duration(rand.Intn(max-min)+min) * time.Millisecond
	time.Sleep(duration)
}

// KeyDelay is the pause between simulated keystrokes (60-160ms)
func KeyDelay() time.Duration {
	return time.Duration(rand.Intn(100)+60) * time.Millisecond
}

// MouseJiggle simulates random mouse movements
func MouseJiggle(page playwright.Page) {
	x := float64(rand.Intn(800) + 100) //100-900
	y := float64(rand.Intn(600) + 100) //100-700

	page.Mouse().Move(x, y)
	RandomDelay(100, 300)
}

// NudgeScroll scrolls a little and comes back. X virtualizes the
// conversation view, so the main post must stay mounted.
func NudgeScroll(page playwright.Page) error {
	if err := page.Mouse().Wheel(0, 300); err != nil {
		return err
	}
	RandomDelay(400, 800)

	if err := page.Mouse().Wheel(0, -300); err != nil {
		return err
	}
	RandomDelay(300, 600)
	return nil
}
