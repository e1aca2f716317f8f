package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"ashvi-bot/internal/assistant"
	"ashvi-bot/internal/auth"
	"ashvi-bot/internal/config"
	"ashvi-bot/internal/llm"
	"ashvi-bot/internal/scheduler"
	"ashvi-bot/internal/store"
	"ashvi-bot/internal/telegram"
)

// Fallback persona when the prompt file is missing.
const defaultSystemPrompt = `You are Ashvi — a smart, friendly AI assistant from Patna.
Speak in Hinglish.
Be honest and helpful.
Avoid unsafe or illegal content.
Correct users politely.
Remember conversation context.`

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}

	llmClient, err := llm.NewFromConfig(cfg)
	if err != nil {
		log.Fatalf("failed to create llm client: %v", err)
	}

	asst := assistant.New(llmClient, st, readSystemPrompt(cfg.SystemPromptPath), cfg.HistoryLimit)

	bot, err := telegram.New(cfg.TelegramBotToken, auth.New(cfg.AdminUsers), asst, st, cfg.AdminUsers)
	if err != nil {
		log.Fatalf("failed to create bot: %v", err)
	}

	sched := scheduler.New(cfg.DailyReportCron, bot.SendDailyReport)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	log.Println("🚀 Ashvi Bot is LIVE")
	bot.Start(context.Background())
}

func readSystemPrompt(path string) string {
	if path == "" {
		return defaultSystemPrompt
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("system prompt file not found or unreadable at %s: %v", path, err)
		return defaultSystemPrompt
	}
	return string(data)
}
