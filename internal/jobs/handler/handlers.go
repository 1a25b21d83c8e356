package handler

import (
	"context"

	"go.uber.org/zap"

	"github.com/savora/savora-cloud-go/internal/domain/service"
	"github.com/savora/savora-cloud-go/internal/jobs"
	"github.com/savora/savora-cloud-go/internal/mailer"
)

// Deps are the collaborators the job handlers act on.
type Deps struct {
	Mailer     mailer.Mailer
	Activities service.ActivityService
	Sessions   service.SessionService
	Referrals  service.ReferralService
}

// RegisterAll binds every known job type to its handler.
func RegisterAll(r *Registry, deps Deps, log *zap.Logger) {
	Register(r, jobs.TypeSendEmail, func(ctx context.Context, p jobs.EmailPayload) error {
		return deps.Mailer.Send(p.To, p.Subject, p.Body)
	})

	Register(r, jobs.TypeActivityCleanup, func(ctx context.Context, p jobs.CleanupPayload) error {
		days := p.RetentionDays
		if days <= 0 {
			days = jobs.DefaultActivityRetentionDays
		}
		removed, err := deps.Activities.CleanupOld(ctx, days)
		if err != nil {
			return err
		}
		log.Info("activity cleanup finished",
			zap.Int("retention_days", days),
			zap.Int64("removed", removed),
		)
		return nil
	})

	Register(r, jobs.TypeSessionSweep, func(ctx context.Context, _ struct{}) error {
		touched, err := deps.Sessions.SweepExpired(ctx)
		if err != nil {
			return err
		}
		log.Info("session sweep finished", zap.Int64("users_touched", touched))
		return nil
	})

	Register(r, jobs.TypeRewardNotices, func(ctx context.Context, _ struct{}) error {
		return deps.Referrals.ExpireRewardNotices(ctx)
	})

	Register(r, jobs.TypeCollectionCaps, func(ctx context.Context, _ struct{}) error {
		repaired, err := deps.Activities.EnforceCaps(ctx)
		if err != nil {
			return err
		}
		log.Info("collection cap repair finished", zap.Int("users_repaired", repaired))
		return nil
	})
}
