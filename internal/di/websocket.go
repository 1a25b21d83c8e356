package di

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/savora/savora-cloud-go/internal/websocket"
)

// WebsocketModule provides the security event hub
var WebsocketModule = fx.Module("websocket",
	fx.Provide(
		websocket.NewHub,
		provideWebsocketConfig,
		websocket.NewHandler,
	),
	fx.Invoke(runHub),
)

func provideWebsocketConfig() websocket.Config {
	return websocket.DefaultConfig()
}

func runHub(lc fx.Lifecycle, hub *websocket.Hub, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("Starting websocket hub")
			go hub.Run()
			return nil
		},
	})
}
