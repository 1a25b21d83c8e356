package di

import (
	"go.uber.org/fx"

	"github.com/savora/savora-cloud-go/internal/domain/repository/impl"
)

// RepositoryModule provides the repository layer
var RepositoryModule = fx.Module("repository",
	fx.Provide(
		impl.NewUserRepository,
		impl.NewContactRepository,
		impl.NewApplicationRepository,
		impl.NewMenuRepository,
	),
)
