package main

import (
	"fmt"
	"log"
	"path/filepath"

	"x-impressions/internal/browser"
	"x-impressions/internal/config"
)

func main() {
	fmt.Println("🍪 Testing cookie loading...")

	cfg := config.Load()
	cookies, err := browser.LoadCookies(filepath.Join(cfg.CookiesPath, "cookies-x.json"))
	if err != nil {
		log.Fatalf("Failed to load cookies: %v", err)
	}

	fmt.Printf("✅ Loaded %d cookies\n", len(cookies))

	//auth_token is what keeps the X session alive
	for _, c := range cookies {
		if c.Name == "auth_token" {
			fmt.Printf("Found auth_token for %s\n", *c.Domain)
			return
		}
	}
	fmt.Println("⚠️ No auth_token cookie, expect a login")
}
