package di

import (
	"go.uber.org/fx"

	"github.com/savora/savora-cloud-go/internal/domain/service"
	"github.com/savora/savora-cloud-go/internal/domain/service/impl"
	"github.com/savora/savora-cloud-go/internal/jobs"
	"github.com/savora/savora-cloud-go/internal/websocket"
)

// ServiceModule provides the domain services
var ServiceModule = fx.Module("service",
	fx.Provide(
		impl.NewActivityService,
		impl.NewReferralService,
		impl.NewAuthService,
		impl.NewUserService,
		impl.NewSessionService,
		impl.NewContactService,
		impl.NewApplicationService,
		impl.NewMenuService,
		provideEmailDispatcher,
		provideSecurityNotifier,
	),
)

// Outbound email goes through the job queue so SMTP latency and
// failures never block a request.
func provideEmailDispatcher(jobService jobs.Service) service.EmailDispatcher {
	return jobService
}

func provideSecurityNotifier(hub *websocket.Hub) service.SecurityNotifier {
	return hub
}
