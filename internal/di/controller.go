package di

import (
	"go.uber.org/fx"

	graphqlctrl "github.com/savora/savora-cloud-go/internal/controller/graphql"
	httpctrl "github.com/savora/savora-cloud-go/internal/controller/http"
)

// ControllerModule provides the HTTP and GraphQL controllers
var ControllerModule = fx.Module("controller",
	fx.Provide(
		httpctrl.NewAuthController,
		httpctrl.NewUserController,
		httpctrl.NewSessionController,
		httpctrl.NewActivityController,
		httpctrl.NewReferralController,
		httpctrl.NewContactController,
		httpctrl.NewApplicationController,
		httpctrl.NewMenuController,
		httpctrl.NewJobController,
		provideGraphQLConfig,
		graphqlctrl.NewResolver,
		graphqlctrl.BuildSchema,
		graphqlctrl.NewHandler,
	),
)

func provideGraphQLConfig() *graphqlctrl.GraphQLConfig {
	cfg := graphqlctrl.DefaultGraphQLConfig()
	cfg.Enabled = true
	return cfg
}
