package service

import (
	"context"
	"time"
)

// EmailDispatcher enqueues outbound email for asynchronous delivery so that
// request handlers never block on SMTP.
type EmailDispatcher interface {
	EnqueueEmail(ctx context.Context, to, subject, body string) error
}

// SecurityNotifier pushes security-relevant events (logins, password
// changes, session terminations) to connected clients. Implementations must
// not block.
type SecurityNotifier interface {
	Publish(userID uint, eventType, message string)
}

// OTPStore keeps one-time codes keyed by purpose and identifier. Verify
// consumes the code on a match.
type OTPStore interface {
	Store(ctx context.Context, purpose, identifier, code string, ttl time.Duration) error
	Verify(ctx context.Context, purpose, identifier, code string) error
	Delete(ctx context.Context, purpose, identifier string) error
}
