package di

import (
	"go.uber.org/fx"

	"github.com/savora/savora-cloud-go/internal/config"
)

// ConfigModule provides configuration dependencies
var ConfigModule = fx.Module("config",
	fx.Provide(
		config.Load,
		provideAppConfig,
		provideServerConfig,
		provideDatabaseConfig,
		provideRedisConfig,
		provideJWTConfig,
		provideSMTPConfig,
		provideReferralConfig,
	),
)

func provideAppConfig(cfg *config.Config) *config.AppConfig {
	return &cfg.App
}

func provideServerConfig(cfg *config.Config) *config.ServerConfig {
	return &cfg.Server
}

func provideDatabaseConfig(cfg *config.Config) *config.DatabaseConfig {
	return &cfg.Database
}

func provideRedisConfig(cfg *config.Config) *config.RedisConfig {
	return &cfg.Redis
}

func provideJWTConfig(cfg *config.Config) *config.JWTConfig {
	return &cfg.JWT
}

func provideSMTPConfig(cfg *config.Config) config.SMTPConfig {
	return cfg.SMTP
}

func provideReferralConfig(cfg *config.Config) config.ReferralConfig {
	return cfg.Referral
}
