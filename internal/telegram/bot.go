package telegram

import (
	"context"
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"ashvi-bot/internal/auth"
	"ashvi-bot/internal/store"
)

const (
	greetingMsg  = "👋 Namaste!\nMain Ashvi hoon — tumhari AI dost 🤖\nBas message bhejo, baat shuru!"
	apologyMsg   = "⚠️ Thoda issue aa gaya, phir try karo."
	adminOnlyMsg = "❌ Admin only"
)

// replier produces the model's answer for one inbound text.
type replier interface {
	Reply(ctx context.Context, userID int64, text string) (string, error)
}

type Bot struct {
	api       *tgbotapi.BotAPI
	s         sender
	authSvc   *auth.Service
	assistant replier
	st        *store.Store
	adminIDs  []int64
}

func New(botToken string, authSvc *auth.Service, assistant replier, st *store.Store, adminIDs []int64) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, err
	}
	return &Bot{
		api:       api,
		s:         botAPISender{api: api},
		authSvc:   authSvc,
		assistant: assistant,
		st:        st,
		adminIDs:  adminIDs,
	}, nil
}

func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for update := range updates {
		if update.Message != nil && update.Message.Text != "" {
			b.handleMessage(ctx, update.Message)
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}
	b.handleChat(ctx, msg)
}

// statsText is shared by /stats and the daily report.
func (b *Bot) statsText(ctx context.Context) (string, error) {
	total, err := b.st.TotalUsers(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to count users: %w", err)
	}
	return fmt.Sprintf("📊 Ashvi Stats\n\n👥 Total users: %d", total), nil
}

// SendDailyReport pushes the stats text to every configured admin.
func (b *Bot) SendDailyReport(ctx context.Context) error {
	text, err := b.statsText(ctx)
	if err != nil {
		return err
	}
	for _, id := range b.adminIDs {
		b.sendMessage(id, text)
	}
	return nil
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.s.Send(msg); err != nil {
		log.Printf("failed to send message: %v", err)
	}
}
