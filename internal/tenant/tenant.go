// Package tenant carries the active branch scope through a request's call
// chain. Every read and write in the records core is partitioned by branch;
// the scope is always supplied by the caller and never inferred from data.
package tenant

import (
	"context"
	"errors"
)

// ErrMissingScope is returned when an operation runs without a resolved
// branch. Callers must treat it as fatal for the request — there is no
// default branch and no global view.
var ErrMissingScope = errors.New("branch scope missing from request context")

// BranchID identifies one school-organization partition.
type BranchID int

type ctxKey struct{}

// WithBranch returns a child context carrying the given branch scope.
func WithBranch(ctx context.Context, id BranchID) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext resolves the active branch for the current operation.
// Fails with ErrMissingScope when the context carries no branch or an
// invalid one; downstream code must not proceed past that error.
func FromContext(ctx context.Context) (BranchID, error) {
	id, ok := ctx.Value(ctxKey{}).(BranchID)
	if !ok || id <= 0 {
		return 0, ErrMissingScope
	}
	return id, nil
}
