package di

import (
	"go.uber.org/fx"

	"github.com/savora/savora-cloud-go/internal/config"
	"github.com/savora/savora-cloud-go/internal/jobs"
	"github.com/savora/savora-cloud-go/internal/observability"
)

// ObservabilityModule provides the Prometheus metrics stack
var ObservabilityModule = fx.Module("observability",
	fx.Provide(
		provideMetricsConfig,
		observability.NewMetricsProvider,
		provideJobMetrics,
	),
)

func provideMetricsConfig(cfg *config.AppConfig) *observability.MetricsConfig {
	metricsConfig := observability.DefaultMetricsConfig()
	metricsConfig.Enabled = true
	metricsConfig.ServiceName = cfg.Name
	return metricsConfig
}

// Job metrics share the HTTP registry so one scrape covers both.
func provideJobMetrics(mp *observability.MetricsProvider) *jobs.Metrics {
	reg := mp.Registerer()
	if reg == nil {
		return nil
	}
	return jobs.NewMetrics(reg)
}
