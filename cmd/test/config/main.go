package main

import (
	"fmt"

	"x-impressions/internal/config"
)

func main() {
	fmt.Println("🔧 Testing config loading...")
	cfg := config.Load()
	fmt.Printf("✅ Config loaded successfully!\n")
	fmt.Printf("   Post URL: %s\n", cfg.PostURL)
	fmt.Printf("   Headless: %t, Keep open: %t\n", cfg.Headless, cfg.KeepOpen)
	fmt.Printf("   Credentials: %t\n", cfg.Credentials().Present())
	fmt.Printf("   Telegram: %t\n", cfg.TelegramEnabled())
	fmt.Printf("   History DB: %t\n", cfg.DatabaseURL != "")
	fmt.Printf("   Cookies Path: %s\n", cfg.CookiesPath)
}
