package di

import (
	"go.uber.org/fx"

	"github.com/savora/savora-cloud-go/internal/middleware"
)

// MiddlewareModule provides middleware dependencies
var MiddlewareModule = fx.Module("middleware",
	fx.Provide(
		middleware.NewAuthMiddleware,
	),
)
