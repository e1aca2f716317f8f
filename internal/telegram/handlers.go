package telegram

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"ashvi-bot/internal/store"
)

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		b.handleStart(ctx, msg)
	case "stats":
		b.adminOnly(b.handleStats)(ctx, msg)
	case "ban":
		b.adminOnly(b.handleBan)(ctx, msg)
	case "unban":
		b.adminOnly(b.handleUnban)(ctx, msg)
	}
}

// adminOnly wraps a handler with the allow-list check. Non-admins get the
// denial message and the wrapped handler never runs.
func (b *Bot) adminOnly(h func(ctx context.Context, msg *tgbotapi.Message)) func(ctx context.Context, msg *tgbotapi.Message) {
	return func(ctx context.Context, msg *tgbotapi.Message) {
		if !b.authSvc.IsAdmin(msg.From.ID) {
			log.Printf("admin command %q denied for user %d", msg.Command(), msg.From.ID)
			b.sendMessage(msg.Chat.ID, adminOnlyMsg)
			return
		}
		h(ctx, msg)
	}
}

func (b *Bot) handleStart(ctx context.Context, msg *tgbotapi.Message) {
	if err := b.ensureSender(ctx, msg); err != nil {
		log.Printf("failed to ensure user %d: %v", msg.From.ID, err)
		return
	}
	b.sendMessage(msg.Chat.ID, greetingMsg)
}

func (b *Bot) handleStats(ctx context.Context, msg *tgbotapi.Message) {
	text, err := b.statsText(ctx)
	if err != nil {
		log.Printf("stats failed: %v", err)
		return
	}
	b.sendMessage(msg.Chat.ID, text)
}

func (b *Bot) handleBan(ctx context.Context, msg *tgbotapi.Message) {
	uid, ok := parseUserID(msg)
	if !ok {
		b.sendMessage(msg.Chat.ID, "Usage: /ban user_id")
		return
	}
	if err := b.st.SetBan(ctx, uid, true); err != nil {
		log.Printf("failed to ban user %d: %v", uid, err)
		return
	}
	b.sendMessage(msg.Chat.ID, fmt.Sprintf("🚫 User %d banned", uid))
}

func (b *Bot) handleUnban(ctx context.Context, msg *tgbotapi.Message) {
	uid, ok := parseUserID(msg)
	if !ok {
		b.sendMessage(msg.Chat.ID, "Usage: /unban user_id")
		return
	}
	if err := b.st.SetBan(ctx, uid, false); err != nil {
		log.Printf("failed to unban user %d: %v", uid, err)
		return
	}
	b.sendMessage(msg.Chat.ID, fmt.Sprintf("✅ User %d unbanned", uid))
}

func parseUserID(msg *tgbotapi.Message) (int64, bool) {
	args := strings.TrimSpace(msg.CommandArguments())
	uid, err := strconv.ParseInt(args, 10, 64)
	if err != nil {
		return 0, false
	}
	return uid, true
}

// handleChat runs one conversational turn: persist the inbound text, ask the
// assistant, persist and send the reply. Banned senders are dropped with no
// reply and no persistence.
func (b *Bot) handleChat(ctx context.Context, msg *tgbotapi.Message) {
	userID := msg.From.ID

	if err := b.ensureSender(ctx, msg); err != nil {
		log.Printf("failed to ensure user %d: %v", userID, err)
		return
	}

	banned, err := b.st.IsBanned(ctx, userID)
	if err != nil {
		log.Printf("failed to check ban for user %d: %v", userID, err)
		return
	}
	if banned {
		return
	}

	// The assistant reads history before the inbound row is written, so the
	// new text reaches the model exactly once.
	reply, err := b.assistant.Reply(ctx, userID, msg.Text)
	if err != nil {
		log.Printf("failed to generate reply for user %d: %v", userID, err)
		reply = apologyMsg
	}

	if err := b.st.SaveMessage(ctx, userID, store.RoleUser, msg.Text); err != nil {
		log.Printf("failed to save message for user %d: %v", userID, err)
		return
	}

	// The reply row is written even on the apology path.
	if err := b.st.SaveMessage(ctx, userID, store.RoleModel, reply); err != nil {
		log.Printf("failed to save reply for user %d: %v", userID, err)
		return
	}

	b.sendMessage(msg.Chat.ID, reply)
}

func (b *Bot) ensureSender(ctx context.Context, msg *tgbotapi.Message) error {
	name := msg.From.FirstName
	if name == "" {
		name = "User"
	}
	return b.st.EnsureUser(ctx, msg.From.ID, name)
}
