// Package telegram posts run results to a chat.
package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"go-naukri-scraper/internal/models"
	"go-naukri-scraper/internal/report"
)

// sender is the part of tgbotapi.BotAPI the bot uses.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Bot struct {
	api    sender
	chatID int64
}

func NewBot(token string, chatID int64) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}
	return &Bot{
		api:    api,
		chatID: chatID,
	}, nil
}

var markdownEscaper = strings.NewReplacer(
	"_", "\\_", "*", "\\*", "[", "\\[", "]", "\\]", "(", "\\(",
	")", "\\)", "~", "\\~", "`", "\\`", ">", "\\>", "#", "\\#",
	"+", "\\+", "-", "\\-", "=", "\\=", "|", "\\|", "{", "\\{",
	"}", "\\}", ".", "\\.", "!", "\\!",
)

// escapeMarkdown escapes every MarkdownV2 special character.
func escapeMarkdown(text string) string {
	return markdownEscaper.Replace(text)
}

func (b *Bot) send(text string, markup any) error {
	msg := tgbotapi.NewMessage(b.chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	msg.DisableWebPagePreview = true
	if markup != nil {
		msg.ReplyMarkup = markup
	}
	_, err := b.api.Send(msg)
	return err
}

// SendSummary posts the run totals. fresh is the number of listings no
// earlier run reported.
func (b *Bot) SendSummary(q models.SearchQuery, s report.Summary, fresh int) error {
	return b.send(summaryText(q, s, fresh), nil)
}

func summaryText(q models.SearchQuery, s report.Summary, fresh int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📊 *%s*\n", escapeMarkdown(q.Describe()))
	fmt.Fprintf(&sb, "Total: %d, new: %d\n", s.Total, fresh)
	if s.EarliestDate != "" {
		fmt.Fprintf(&sb, "📅 %s → %s\n", escapeMarkdown(s.EarliestDate), escapeMarkdown(s.LatestDate))
	}
	if len(s.TopCompanies) > 0 {
		sb.WriteString("\n🏢 *Top companies*\n")
		for _, c := range s.TopCompanies[:min(5, len(s.TopCompanies))] {
			fmt.Fprintf(&sb, "%s: %d\n", escapeMarkdown(c.Name), c.Count)
		}
	}
	if len(s.TopLocations) > 0 {
		sb.WriteString("\n📍 *Top locations*\n")
		for _, c := range s.TopLocations[:min(5, len(s.TopLocations))] {
			fmt.Fprintf(&sb, "%s: %d\n", escapeMarkdown(c.Name), c.Count)
		}
	}
	return sb.String()
}

// SendListing posts one listing with a button to open it.
func (b *Bot) SendListing(l models.JobListing) error {
	var markup any
	if strings.HasPrefix(l.Link, "http") {
		markup = tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonURL("🔗 View Job", l.Link)),
		)
	}
	return b.send(listingText(l), markup)
}

func listingText(l models.JobListing) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "💼 *%s*\n", escapeMarkdown(l.Title))
	fmt.Fprintf(&sb, "🏢 %s\n", escapeMarkdown(l.Company))
	fmt.Fprintf(&sb, "📍 %s\n", escapeMarkdown(l.Location))
	if l.Experience != models.NotFound("Experience") {
		fmt.Fprintf(&sb, "🎓 %s\n", escapeMarkdown(l.Experience))
	}
	if l.Salary != models.NotFound("Salary") {
		fmt.Fprintf(&sb, "💰 %s\n", escapeMarkdown(l.Salary))
	}
	if l.Skills != models.NotFound("Skills") {
		fmt.Fprintf(&sb, "📝 %s\n", escapeMarkdown(l.Skills))
	}
	fmt.Fprintf(&sb, "📅 %s\n", escapeMarkdown(l.PostedDate))
	return sb.String()
}

func (b *Bot) SendError(err error) error {
	return b.send(escapeMarkdown(fmt.Sprintf("❌ Error: %v", err)), nil)
}

func (b *Bot) SendStatus(message string) error {
	return b.send(escapeMarkdown("ℹ️ "+message), nil)
}
