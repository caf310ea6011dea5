package service

import (
	"context"
	"time"
)

// DefaultStoreTimeout bounds a single store operation.
const DefaultStoreTimeout = 5 * time.Second

func withStoreTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
