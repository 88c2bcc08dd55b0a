// Load the post
// Detect login state
// Log in with credentials when needed
// Reload the post after login

package session

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"
)

// Page is the slice of browser behaviour the session flow needs.
type Page interface {
	Goto(ctx context.Context, url string) error
	URL() string
	Count(ctx context.Context, selector string) (int, error)
	WaitVisible(ctx context.Context, selector string, timeout time.Duration) error
	Type(ctx context.Context, selector, text string) error
	Press(ctx context.Context, selector, key string) error
	WaitForURL(ctx context.Context, pattern *regexp.Regexp, timeout time.Duration) error
}

// AuthProbe decides whether the currently loaded page belongs to an
// authenticated viewer.
type AuthProbe func(ctx context.Context, page Page) (bool, error)

// DefaultProbe checks login-flow markers in the address, then sign-in prompts,
// then the compose control. With no negative signal it assumes logged in.
func DefaultProbe(ctx context.Context, page Page) (bool, error) {
	addr := page.URL()
	for _, marker := range loginMarkers {
		if strings.Contains(addr, marker) {
			return false, nil
		}
	}

	if n, err := page.Count(ctx, SignInPrompt); err == nil && n > 0 {
		return false, nil
	}

	if n, err := page.Count(ctx, ComposeControl); err == nil && n > 0 {
		return true, nil
	}

	return true, nil
}

var homePattern = regexp.MustCompile(`(?i)home`)

// IsHome reports whether addr is where X sends a freshly logged-in user.
func IsHome(addr string) bool {
	if strings.Contains(strings.ToLower(addr), "home") {
		return true
	}
	for _, root := range homeRoots {
		if addr == root {
			return true
		}
	}
	return false
}

type Manager struct {
	Probe    AuthProbe
	LoginURL string
	// FieldTimeout bounds the wait for each login input
	FieldTimeout time.Duration
	// HomeTimeout bounds the wait for the post-login redirect
	HomeTimeout time.Duration
	// Settle is the pause after the first load; ReloadSettle after reloading post-login
	Settle       time.Duration
	ReloadSettle time.Duration
}

func NewManager() *Manager {
	return &Manager{
		Probe:        DefaultProbe,
		LoginURL:     LoginURL,
		FieldTimeout: 10 * time.Second,
		HomeTimeout:  10 * time.Second,
		Settle:       3 * time.Second,
		ReloadSettle: 5 * time.Second,
	}
}

// Ensure loads postURL and leaves the page on it with an authenticated viewer,
// logging in with creds if the probe says the viewer is anonymous.
// Returned errors wrap ErrCredentialsRequired or ErrLoginFailed for the
// corresponding terminal states.
func (m *Manager) Ensure(ctx context.Context, page Page, postURL string, creds Credentials) (State, error) {
	log.Printf("🌐 Step 1: Loading post: %s", postURL)
	if err := page.Goto(ctx, postURL); err != nil {
		return StateNotLoaded, fmt.Errorf("failed to load post: %w", err)
	}
	if err := sleep(ctx, m.Settle); err != nil {
		return StateLoaded, err
	}

	log.Println("🔐 Step 2: Checking login status...")
	loggedIn, err := m.Probe(ctx, page)
	if err != nil {
		log.Printf("⚠️ Error checking login status: %v", err)
		loggedIn = false
	}
	if loggedIn {
		log.Println("✅ Already logged in")
		return StateAuthenticated, nil
	}
	log.Println("❌ Not logged in")

	if !creds.Present() {
		log.Println("⚠️ Login required but no credentials provided")
		return StateCredentialsRequired, ErrCredentialsRequired
	}

	log.Println("🔑 Step 3: Attempting login...")
	if state, err := m.Login(ctx, page, creds); err != nil {
		return state, err
	}

	log.Printf("🔁 Step 4: Revisiting post after login: %s", postURL)
	if err := page.Goto(ctx, postURL); err != nil {
		return StateLoginSucceeded, fmt.Errorf("failed to reload post after login: %w", err)
	}
	if err := sleep(ctx, m.ReloadSettle); err != nil {
		return StateLoginSucceeded, err
	}
	return StateLoginSucceeded, nil
}

// Login runs the identifier -> secret flow once, without retry.
func (m *Manager) Login(ctx context.Context, page Page, creds Credentials) (State, error) {
	log.Println("  🌐 Navigating to X login page...")
	if err := page.Goto(ctx, m.LoginURL); err != nil {
		return StateLoginFailed, fmt.Errorf("%w: open login page: %v", ErrLoginFailed, err)
	}

	log.Println("  ⌨️ Entering username...")
	if err := m.submitField(ctx, page, UsernameInput, creds.Identifier); err != nil {
		return StateLoginFailed, err
	}

	log.Println("  ⌨️ Entering password...")
	if err := m.submitField(ctx, page, PasswordInput, creds.Secret); err != nil {
		return StateLoginFailed, err
	}

	//redirect is observable, wait for it instead of sleeping
	if err := page.WaitForURL(ctx, homePattern, m.HomeTimeout); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return StateLoginFailed, ctxErr
		}
	}

	addr := page.URL()
	if !IsHome(addr) {
		log.Printf("  ❌ Login may have failed (landed on %s)", addr)
		return StateLoginFailed, fmt.Errorf("%w: landed on %s", ErrLoginFailed, addr)
	}
	log.Println("  ✅ Login successful!")
	return StateLoginSucceeded, nil
}

func (m *Manager) submitField(ctx context.Context, page Page, selector, value string) error {
	if err := page.WaitVisible(ctx, selector, m.FieldTimeout); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %w: %s: %v", ErrLoginFailed, ErrElementTimeout, selector, err)
	}
	if err := page.Type(ctx, selector, value); err != nil {
		return fmt.Errorf("%w: typing into %s: %v", ErrLoginFailed, selector, err)
	}
	if err := page.Press(ctx, selector, "Enter"); err != nil {
		return fmt.Errorf("%w: submitting %s: %v", ErrLoginFailed, selector, err)
	}
	return nil
}

// sleep pauses for d unless ctx ends first. Only used where no page
// condition can be observed (SPA hydration, settling after reload).
func sleep(ctx context.Context, d time.Duration) error {
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
