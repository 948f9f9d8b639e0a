package app

import (
	"github.com/okulpusula/pusula-backend/internal/clients/redis"
	"github.com/okulpusula/pusula-backend/internal/pkg/logger"
	"github.com/okulpusula/pusula-backend/internal/platform/mailer"
	"github.com/okulpusula/pusula-backend/internal/services"
)

type Clients struct {
	AI    services.AIClient
	Cache redis.ScoreCache
	Mail  mailer.Client
}

// wireClients builds the outbound clients. The AI client is required;
// cache and mailer degrade to nil when unconfigured.
func wireClients(log *logger.Logger) (Clients, error) {
	log.Info("Wiring clients...")

	ai, err := services.NewAIClient(log)
	if err != nil {
		return Clients{}, err
	}

	cache, err := redis.NewScoreCache(log)
	if err != nil {
		log.Warn("score cache disabled", "error", err)
		cache = nil
	}

	mail, err := mailer.NewFromEnv(log)
	if err != nil {
		log.Warn("mailer disabled", "error", err)
		mail = nil
	}

	return Clients{AI: ai, Cache: cache, Mail: mail}, nil
}
