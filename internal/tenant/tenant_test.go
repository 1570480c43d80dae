package tenant

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext(t *testing.T) {
	t.Run("resolves the branch set on the context", func(t *testing.T) {
		ctx := WithBranch(context.Background(), 42)

		id, err := FromContext(ctx)
		require.NoError(t, err)
		assert.Equal(t, BranchID(42), id)
	})

	t.Run("fails on a bare context", func(t *testing.T) {
		_, err := FromContext(context.Background())
		assert.ErrorIs(t, err, ErrMissingScope)
	})

	t.Run("fails on a non-positive branch", func(t *testing.T) {
		_, err := FromContext(WithBranch(context.Background(), 0))
		assert.ErrorIs(t, err, ErrMissingScope)

		_, err = FromContext(WithBranch(context.Background(), -3))
		assert.ErrorIs(t, err, ErrMissingScope)
	})

	t.Run("inner scope shadows outer scope", func(t *testing.T) {
		outer := WithBranch(context.Background(), 1)
		inner := WithBranch(outer, 2)

		id, err := FromContext(inner)
		require.NoError(t, err)
		assert.Equal(t, BranchID(2), id)

		// The outer context is untouched.
		id, err = FromContext(outer)
		require.NoError(t, err)
		assert.Equal(t, BranchID(1), id)
	})
}
