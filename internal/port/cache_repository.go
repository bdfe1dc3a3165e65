package port

import "context"

type IdempotencyStore interface {
	// SetIdempotency records a key, returns false if it already exists
	SetIdempotency(ctx context.Context, key string) (bool, error)

	// ReleaseIdempotency forgets a key so a failed request can be retried
	ReleaseIdempotency(ctx context.Context, key string) error
}
