package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/savora/savora-cloud-go/internal/cache"
	"github.com/savora/savora-cloud-go/internal/domain/service"
)

// SentEmail captures one enqueued email.
type SentEmail struct {
	To      string
	Subject string
	Body    string
}

// MockEmailDispatcher collects enqueued emails in memory
type MockEmailDispatcher struct {
	mu     sync.Mutex
	Emails []SentEmail

	EnqueueErr error
}

var _ service.EmailDispatcher = (*MockEmailDispatcher)(nil)

func NewMockEmailDispatcher() *MockEmailDispatcher {
	return &MockEmailDispatcher{}
}

func (m *MockEmailDispatcher) EnqueueEmail(ctx context.Context, to, subject, body string) error {
	if m.EnqueueErr != nil {
		return m.EnqueueErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Emails = append(m.Emails, SentEmail{To: to, Subject: subject, Body: body})
	return nil
}

// Sent returns a snapshot of the collected emails.
func (m *MockEmailDispatcher) Sent() []SentEmail {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SentEmail, len(m.Emails))
	copy(out, m.Emails)
	return out
}

// PublishedEvent captures one notifier publication.
type PublishedEvent struct {
	UserID  uint
	Type    string
	Message string
}

// MockSecurityNotifier collects published events in memory
type MockSecurityNotifier struct {
	mu     sync.Mutex
	Events []PublishedEvent
}

var _ service.SecurityNotifier = (*MockSecurityNotifier)(nil)

func NewMockSecurityNotifier() *MockSecurityNotifier {
	return &MockSecurityNotifier{}
}

func (m *MockSecurityNotifier) Publish(userID uint, eventType, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, PublishedEvent{UserID: userID, Type: eventType, Message: message})
}

// Published returns a snapshot of the collected events.
func (m *MockSecurityNotifier) Published() []PublishedEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]PublishedEvent, len(m.Events))
	copy(out, m.Events)
	return out
}

type storedOTP struct {
	code     string
	attempts int
	expires  time.Time
}

// MockOTPStore is an in-memory implementation of service.OTPStore with the
// same consume-on-match and attempt-budget semantics as the Redis store.
type MockOTPStore struct {
	mu    sync.Mutex
	codes map[string]*storedOTP

	StoreErr  error
	VerifyErr error
}

var _ service.OTPStore = (*MockOTPStore)(nil)

func NewMockOTPStore() *MockOTPStore {
	return &MockOTPStore{codes: make(map[string]*storedOTP)}
}

func (m *MockOTPStore) key(purpose, identifier string) string {
	return purpose + ":" + identifier
}

func (m *MockOTPStore) Store(ctx context.Context, purpose, identifier, code string, ttl time.Duration) error {
	if m.StoreErr != nil {
		return m.StoreErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.codes[m.key(purpose, identifier)] = &storedOTP{
		code:    code,
		expires: time.Now().Add(ttl),
	}
	return nil
}

func (m *MockOTPStore) Verify(ctx context.Context, purpose, identifier, code string) error {
	if m.VerifyErr != nil {
		return m.VerifyErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	key := m.key(purpose, identifier)
	stored, ok := m.codes[key]
	if !ok || time.Now().After(stored.expires) {
		delete(m.codes, key)
		return cache.ErrOTPNotFound
	}
	if stored.attempts >= cache.MaxOTPAttempts {
		delete(m.codes, key)
		return cache.ErrTooManyAttempts
	}
	if stored.code != code {
		stored.attempts++
		if stored.attempts >= cache.MaxOTPAttempts {
			delete(m.codes, key)
			return cache.ErrTooManyAttempts
		}
		return cache.ErrOTPNotFound
	}

	delete(m.codes, key)
	return nil
}

func (m *MockOTPStore) Delete(ctx context.Context, purpose, identifier string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.codes, m.key(purpose, identifier))
	return nil
}
