package reporter

import (
	"fmt"
	"html"

	"x-impressions/internal/config"
	"x-impressions/internal/scraper"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type TelegramReporter struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramReporter(cfg *config.Config) (*TelegramReporter, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}

	//turn this on in case of debug
	//bot.Debug = true

	return &TelegramReporter{
		bot:    bot,
		chatID: cfg.TelegramChatID,
	}, nil
}

func (t *TelegramReporter) SendMessage(text string) error {
	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = "HTML" //use HTML for bold/italic
	msg.DisableWebPagePreview = true
	_, err := t.bot.Send(msg)
	return err
}

// SendResult reports a found count; previous may be nil.
func (t *TelegramReporter) SendResult(res *scraper.Result, previous *int64) error {
	return t.SendMessage(FormatResult(res, previous))
}

func (t *TelegramReporter) SendFailure(postURL string, cause error) error {
	return t.SendMessage(FormatFailure(postURL, cause))
}

func FormatResult(res *scraper.Result, previous *int64) string {
	text := fmt.Sprintf(
		"👀 <b>%s</b> impressions\n"+
			"🔗 <a href=\"%s\">View post</a>\n"+
			"🧭 Method: %s\n",
		html.EscapeString(res.Impressions),
		html.EscapeString(res.PostURL),
		html.EscapeString(res.Method),
	)
	if res.Parsed && previous != nil {
		text += fmt.Sprintf("📈 %+d since last run\n", res.Views-*previous)
	}
	text += fmt.Sprintf("🕒 %s", res.ScrapedAt.Format("2006-01-02 15:04:05"))
	return text
}

func FormatFailure(postURL string, cause error) string {
	reason := "no impressions shown on the page"
	if cause != nil {
		reason = cause.Error()
	}
	return fmt.Sprintf(
		"⚠️ <b>Could not retrieve impressions</b>\n🔗 <a href=\"%s\">View post</a>\n%s",
		html.EscapeString(postURL),
		html.EscapeString(reason),
	)
}
