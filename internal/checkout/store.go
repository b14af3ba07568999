package checkout

import (
	"context"

	"github.com/palstyle/storefront/internal/domain"
)

// SessionStore holds in-progress checkout sessions. Sessions are
// ephemeral by design: they live for one purchase attempt and are never
// written to durable storage.
type SessionStore interface {
	Get(ctx context.Context, id string) (*domain.CheckoutSession, error)
	Put(ctx context.Context, session *domain.CheckoutSession) error
	Delete(ctx context.Context, id string) error
	Close() error
}
