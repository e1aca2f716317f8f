package llm

import (
	"fmt"
	"strings"

	"ashvi-bot/internal/config"
)

// NewFromConfig creates the configured provider's client.
func NewFromConfig(cfg *config.Config) (Client, error) {
	switch strings.ToLower(string(cfg.LLMProvider)) {
	case string(config.ProviderOpenAI):
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required for the openai provider")
		}
		return NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel, cfg.Temperature, cfg.MaxTokens), nil
	case string(config.ProviderYandex):
		if cfg.YandexOAuthToken == "" || cfg.YandexFolderID == "" {
			return nil, fmt.Errorf("YANDEX_OAUTH_TOKEN and YANDEX_FOLDER_ID are required for the yandex provider")
		}
		return NewYandex(cfg.YandexOAuthToken, cfg.YandexFolderID)
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.LLMProvider)
	}
}
