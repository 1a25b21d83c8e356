package di

import (
	"go.uber.org/fx"

	"github.com/savora/savora-cloud-go/internal/config"
	"github.com/savora/savora-cloud-go/internal/security"
)

// SecurityModule provides security dependencies
var SecurityModule = fx.Module("security",
	fx.Provide(
		security.NewJWTProvider,
		security.NewPasswordHasher,
		security.NewSecurityService,
		provideFieldCipher,
	),
)

func provideFieldCipher(cfg config.ReferralConfig) (*security.FieldCipher, error) {
	return security.NewFieldCipher(cfg.FieldSecret)
}
