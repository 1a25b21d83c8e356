// Package handler registers typed job handlers on the worker pool.
package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/savora/savora-cloud-go/internal/jobs/worker"
)

// HandlerFunc processes one job with its decoded payload.
type HandlerFunc[T any] func(ctx context.Context, payload T) error

// Registry tracks the handlers bound to the pool.
type Registry struct {
	pool  *worker.Pool
	log   *zap.Logger
	mu    sync.RWMutex
	types map[string]string // job type -> payload Go type
}

// NewRegistry creates a handler registry over a worker pool.
func NewRegistry(pool *worker.Pool, log *zap.Logger) *Registry {
	return &Registry{
		pool:  pool,
		log:   log,
		types: make(map[string]string),
	}
}

// Register binds a typed handler to a job type. The wrapper decodes the
// raw payload before invoking the handler.
func Register[T any](r *Registry, jobType string, handler HandlerFunc[T]) {
	r.mu.Lock()
	var zero T
	r.types[jobType] = fmt.Sprintf("%T", zero)
	r.mu.Unlock()

	r.pool.RegisterHandler(jobType, func(ctx context.Context, data []byte) error {
		var payload T
		if err := json.Unmarshal(data, &payload); err != nil {
			return fmt.Errorf("decode %s payload: %w", jobType, err)
		}
		return handler(ctx, payload)
	})
}

// ListHandlers returns the registered job types and their payload types.
func (r *Registry) ListHandlers() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string]string, len(r.types))
	for k, v := range r.types {
		result[k] = v
	}
	return result
}
