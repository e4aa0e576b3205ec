package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Notifier sends score alerts to a Telegram chat.
type Notifier interface {
	SendMessage(text string) error
	SendScoreAlert(ticker string, finalScore, ruleScore int, events []string) error
}

// client is an implementation of Notifier.
type client struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewClient creates a new Telegram notifier client.
func NewClient(botToken string, chatID int64) (Notifier, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, err
	}
	return &client{
		bot:    bot,
		chatID: chatID,
	}, nil
}

// SendMessage sends a message to the configured Telegram chat.
func (c *client) SendMessage(text string) error {
	msg := tgbotapi.NewMessage(c.chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	_, err := c.bot.Send(msg)
	return err
}

// SendScoreAlert formats and sends a low-score alert for a ticker.
func (c *client) SendScoreAlert(ticker string, finalScore, ruleScore int, events []string) error {
	return c.SendMessage(FormatScoreAlert(ticker, finalScore, ruleScore, events))
}

// FormatScoreAlert renders a low-score alert as Telegram Markdown.
func FormatScoreAlert(ticker string, finalScore, ruleScore int, events []string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("*%s* score dropped to *%d* (rule score %d)", ticker, finalScore, ruleScore))
	for _, ev := range events {
		sb.WriteString(fmt.Sprintf("\n- %s", ev))
	}
	return sb.String()
}
