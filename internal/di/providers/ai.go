package providers

import (
	"github.com/samber/do/v2"

	"github.com/latateni/latateni-server/internal/ai"
	"github.com/latateni/latateni-server/internal/config"
	"github.com/latateni/latateni-server/internal/logger"
)

// ProvideAIClient provides the Gemini API client.
func ProvideAIClient(i do.Injector) (*ai.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.AI.APIKey == "" {
		log.Warn("No Gemini API key configured, AI features will report an error")
	}

	return ai.NewClient(cfg.AI.Endpoint, cfg.AI.Model, cfg.AI.APIKey, log.Logger), nil
}

// ProvideAIQuota provides the persisted per-coach request quota.
func ProvideAIQuota(i do.Injector) (*ai.Quota, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return ai.NewQuota(storeHandle.Store, cfg.AI.DailyLimit, log.Logger), nil
}

// ProvideAssistant provides the coach-facing AI assistant.
func ProvideAssistant(i do.Injector) (*ai.Assistant, error) {
	client := do.MustInvoke[*ai.Client](i)
	quota := do.MustInvoke[*ai.Quota](i)
	log := do.MustInvoke[*logger.Logger](i)

	return ai.NewAssistant(client, quota, log.Logger), nil
}
