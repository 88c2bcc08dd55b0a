package session

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const postURL = "https://x.com/someone/status/1"

var errTimeout = errors.New("timeout 10000ms exceeded")

// fakePage scripts a browser tab: selector counts, which inputs appear, and
// where submitting the password lands.
type fakePage struct {
	url      string
	counts   map[string]int
	present  map[string]bool
	landing  string
	visited  []string
	typed    map[string]string
	gotoErr  error
	urlWaits int
}

func newFakePage() *fakePage {
	return &fakePage{
		counts:  map[string]int{},
		present: map[string]bool{},
		typed:   map[string]string{},
	}
}

func (f *fakePage) Goto(_ context.Context, url string) error {
	if f.gotoErr != nil {
		return f.gotoErr
	}
	f.visited = append(f.visited, url)
	f.url = url
	return nil
}

func (f *fakePage) URL() string { return f.url }

func (f *fakePage) Count(_ context.Context, selector string) (int, error) {
	return f.counts[selector], nil
}

func (f *fakePage) WaitVisible(_ context.Context, selector string, _ time.Duration) error {
	if f.present[selector] {
		return nil
	}
	return errTimeout
}

func (f *fakePage) Type(_ context.Context, selector, text string) error {
	f.typed[selector] = text
	return nil
}

func (f *fakePage) Press(_ context.Context, selector, key string) error {
	if selector == PasswordInput && key == "Enter" {
		f.url = f.landing
	}
	return nil
}

func (f *fakePage) WaitForURL(_ context.Context, pattern *regexp.Regexp, _ time.Duration) error {
	f.urlWaits++
	if pattern.MatchString(f.url) {
		return nil
	}
	return errTimeout
}

func testManager() *Manager {
	m := NewManager()
	m.Settle = 0
	m.ReloadSettle = 0
	return m
}

func loginFlowPage(landing string) *fakePage {
	page := newFakePage()
	page.counts[SignInPrompt] = 1
	page.present[UsernameInput] = true
	page.present[PasswordInput] = true
	page.landing = landing
	return page
}

var creds = Credentials{Identifier: "someone", Secret: "hunter2"}

func TestEnsure_AlreadyAuthenticated(t *testing.T) {
	page := newFakePage()
	page.counts[ComposeControl] = 1

	state, err := testManager().Ensure(context.Background(), page, postURL, creds)

	require.NoError(t, err)
	assert.Equal(t, StateAuthenticated, state)
	assert.Equal(t, []string{postURL}, page.visited, "must not enter the login flow")
	assert.Empty(t, page.typed)
}

func TestEnsure_OptimisticDefault(t *testing.T) {
	//no negative and no positive signal
	page := newFakePage()

	state, err := testManager().Ensure(context.Background(), page, postURL, Credentials{})

	require.NoError(t, err)
	assert.Equal(t, StateAuthenticated, state)
}

func TestEnsure_CredentialsRequired(t *testing.T) {
	page := newFakePage()
	page.counts[SignInPrompt] = 2

	state, err := testManager().Ensure(context.Background(), page, postURL, Credentials{Identifier: "someone"})

	assert.ErrorIs(t, err, ErrCredentialsRequired)
	assert.Equal(t, StateCredentialsRequired, state)
	assert.NotContains(t, page.visited, LoginURL)
}

func TestEnsure_LoginSucceeds(t *testing.T) {
	page := loginFlowPage("https://x.com/home")

	state, err := testManager().Ensure(context.Background(), page, postURL, creds)

	require.NoError(t, err)
	assert.Equal(t, StateLoginSucceeded, state)
	assert.Equal(t, []string{postURL, LoginURL, postURL}, page.visited)
	assert.Equal(t, "someone", page.typed[UsernameInput])
	assert.Equal(t, "hunter2", page.typed[PasswordInput])
	assert.True(t, state.Ready())
}

func TestEnsure_LoginFailsOffHome(t *testing.T) {
	page := loginFlowPage("https://x.com/account/access")

	state, err := testManager().Ensure(context.Background(), page, postURL, creds)

	assert.ErrorIs(t, err, ErrLoginFailed)
	assert.Equal(t, StateLoginFailed, state)
	assert.Equal(t, []string{postURL, LoginURL}, page.visited, "must not reload the post")
	assert.False(t, state.Ready())
}

func TestEnsure_PasswordFieldTimeout(t *testing.T) {
	//an unusual-activity challenge replaces the password step
	page := loginFlowPage("https://x.com/home")
	page.present[PasswordInput] = false

	state, err := testManager().Ensure(context.Background(), page, postURL, creds)

	assert.Equal(t, StateLoginFailed, state)
	assert.ErrorIs(t, err, ErrLoginFailed)
	assert.ErrorIs(t, err, ErrElementTimeout)
	assert.NotContains(t, page.typed, PasswordInput)
}

func TestEnsure_LoadError(t *testing.T) {
	page := newFakePage()
	page.gotoErr = errors.New("net::ERR_NAME_NOT_RESOLVED")

	state, err := testManager().Ensure(context.Background(), page, postURL, creds)

	assert.Error(t, err)
	assert.Equal(t, StateNotLoaded, state)
}

func TestEnsure_SwappedProbe(t *testing.T) {
	page := newFakePage()
	m := testManager()
	m.Probe = func(context.Context, Page) (bool, error) {
		return false, nil
	}

	state, err := m.Ensure(context.Background(), page, postURL, Credentials{})

	assert.ErrorIs(t, err, ErrCredentialsRequired)
	assert.Equal(t, StateCredentialsRequired, state)
}

func TestEnsure_ProbeErrorMeansLoggedOut(t *testing.T) {
	page := newFakePage()
	m := testManager()
	m.Probe = func(context.Context, Page) (bool, error) {
		return true, errors.New("page crashed")
	}

	state, err := m.Ensure(context.Background(), page, postURL, Credentials{})

	assert.ErrorIs(t, err, ErrCredentialsRequired)
	assert.Equal(t, StateCredentialsRequired, state)
}

func TestDefaultProbe(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		counts map[string]int
		want   bool
	}{
		{name: "Login flow URL", url: "https://x.com/i/flow/login", want: false},
		{name: "Login redirect", url: "https://x.com/login?redirect_after_login=%2F", want: false},
		{name: "Sign in prompt", url: postURL, counts: map[string]int{SignInPrompt: 1, ComposeControl: 1}, want: false},
		{name: "Compose control", url: postURL, counts: map[string]int{ComposeControl: 1}, want: true},
		{name: "No signal", url: postURL, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := newFakePage()
			page.url = tt.url
			for sel, n := range tt.counts {
				page.counts[sel] = n
			}
			got, err := DefaultProbe(context.Background(), page)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsHome(t *testing.T) {
	assert.True(t, IsHome("https://x.com/home"))
	assert.True(t, IsHome("https://X.com/HOME?lang=en"))
	assert.True(t, IsHome("https://twitter.com/"))
	assert.True(t, IsHome("https://x.com/"))
	assert.False(t, IsHome("https://x.com/i/flow/login"))
	assert.False(t, IsHome("https://x.com/account/access"))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "CredentialsRequired", StateCredentialsRequired.String())
	assert.Equal(t, "Unknown", State(99).String())
}
