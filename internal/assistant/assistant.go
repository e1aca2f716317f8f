package assistant

import (
	"context"
	"fmt"
	"strings"

	"ashvi-bot/internal/llm"
	"ashvi-bot/internal/store"
)

// History is the slice of the store the assembler needs.
type History interface {
	History(ctx context.Context, userID int64, limit int) ([]store.Message, error)
}

// Assistant assembles the conversation context and issues one LLM call per
// Reply. It does not retry and does not cache.
type Assistant struct {
	llmClient    llm.Client
	history      History
	systemPrompt string
	historyLimit int
}

func New(llmClient llm.Client, history History, systemPrompt string, historyLimit int) *Assistant {
	return &Assistant{
		llmClient:    llmClient,
		history:      history,
		systemPrompt: systemPrompt,
		historyLimit: historyLimit,
	}
}

// Reply builds system prompt + up to historyLimit prior turns (oldest first)
// + the new text, and returns the model's trimmed answer. Errors from the
// remote call propagate to the caller.
func (a *Assistant) Reply(ctx context.Context, userID int64, text string) (string, error) {
	msgs := []llm.Message{{Role: "system", Content: a.systemPrompt}}

	prior, err := a.history.History(ctx, userID, a.historyLimit)
	if err != nil {
		return "", fmt.Errorf("failed to load history: %w", err)
	}
	for _, m := range prior {
		msgs = append(msgs, llm.Message{Role: chatRole(m.Role), Content: m.Content})
	}
	msgs = append(msgs, llm.Message{Role: "user", Content: text})

	resp, err := a.llmClient.Generate(ctx, msgs)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Content), nil
}

// chatRole maps the stored role vocabulary onto chat-completion roles.
func chatRole(stored string) string {
	if stored == store.RoleModel {
		return "assistant"
	}
	return "user"
}
