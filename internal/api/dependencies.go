package api

import (
	"dream-analyzer/backend/internal/common"
	"dream-analyzer/backend/internal/config"
	"dream-analyzer/backend/internal/db/repositories"
	"dream-analyzer/backend/internal/metrics"
	"dream-analyzer/backend/internal/providers"
	"dream-analyzer/backend/internal/services"

	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"
)

type Repositories struct {
	UserGorm *repositories.UserRepositoryGORM
	Dreams   *repositories.DreamRepository
	Ledger   *repositories.RewardLedgerRepository
}

type Services struct {
	Cache      common.CacheInterface
	Telegram   *providers.TelegramProvider
	Membership *services.MembershipService
	Rewards    *services.RewardService
	User       *services.UserService
	Dreams     *services.DreamService
	Payments   *services.PaymentService
}

type Dependencies struct {
	Config   *config.Config
	DB       *sqlx.DB
	Metrics  *metrics.MetricsRegistry
	Repo     *Repositories
	Services *Services
}

// InitDependencies wires repositories and services over the shared connections.
// sqlxDB and gormDB must wrap the same pool.
func InitDependencies(cfg *config.Config, sqlxDB *sqlx.DB, gormDB *gorm.DB, cache common.CacheInterface, metricsReg *metrics.MetricsRegistry) (*Dependencies, error) {

	repos := &Repositories{
		UserGorm: repositories.NewUserRepositoryGORM(gormDB),
		Dreams:   repositories.NewDreamRepository(gormDB),
		Ledger:   repositories.NewRewardLedgerRepository(sqlxDB),
	}

	telegram := providers.NewTelegramProvider(cfg.TelegramAPIBaseURL, cfg.BotToken, metricsReg)
	membership := services.NewMembershipService(telegram, metricsReg)

	svcs := &Services{
		Cache:      cache,
		Telegram:   telegram,
		Membership: membership,
		Rewards: services.NewRewardService(
			repos.UserGorm,
			membership,
			services.NewRewardLedger(repos.Ledger),
			cfg.ChannelID,
			metricsReg,
		),
		User:     services.NewUserService(repos.UserGorm, cfg.SeedTokens, cfg.ChannelURL, metricsReg),
		Dreams:   services.NewDreamService(repos.Dreams, repos.UserGorm, cache, cfg.HistoryCacheTTL, metricsReg),
		Payments: services.NewPaymentService(telegram, metricsReg),
	}

	return &Dependencies{
		Config:   cfg,
		DB:       sqlxDB,
		Metrics:  metricsReg,
		Repo:     repos,
		Services: svcs,
	}, nil
}
