package di

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/savora/savora-cloud-go/internal/config"
)

// AppModule aggregates all application modules
var AppModule = fx.Options(
	ConfigModule,
	LoggerModule,
	DatabaseModule,
	CacheModule,
	DAOModule,
	RepositoryModule,
	SecurityModule,
	ObservabilityModule,
	JobsModule,
	WebsocketModule,
	ServiceModule,
	MiddlewareModule,
	ControllerModule,
	HTTPServerModule,
)

// PrintBanner prints the application startup banner
func PrintBanner(cfg *config.Config, logger *zap.Logger) {
	logger.Info("===========================================")
	logger.Info("        Savora Cloud - Food Ordering       ")
	logger.Info("===========================================")
	logger.Info("Application Info",
		zap.String("name", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)
	logger.Info("===========================================")
}
