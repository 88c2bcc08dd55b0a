package session

// X login flow entry point and DOM selectors.
// These follow X's current markup; expect to touch them when login detection breaks.
const (
	LoginURL = "https://x.com/i/flow/login"

	UsernameInput = `input[autocomplete='username']`
	PasswordInput = `input[name='password']`

	// SignInPrompt matches the "Sign in"/"Log in" prompts shown to anonymous visitors
	SignInPrompt = `xpath=//*[contains(text(), 'Sign in') or contains(text(), 'Log in')]`
	// ComposeControl only renders for an authenticated viewer
	ComposeControl = `a[href='/compose/tweet'], [aria-label='Post']`
)

var loginMarkers = []string{"login", "i/flow/login"}

// site roots a successful login may land on instead of /home
var homeRoots = []string{"https://x.com/", "https://twitter.com/"}
