package service

import (
	"context"
	"time"
)

// storeTimeout bounds a persistence call with the configured deadline so no
// operation in the records core can hang indefinitely. A non-positive
// duration disables the bound (tests, CLI tools).
func storeTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}
