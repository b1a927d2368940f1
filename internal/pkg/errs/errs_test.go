//go:build unit

package errs_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JulianHBuecher/ev-server/internal/pkg/errs"
)

func TestMark(t *testing.T) {
	t.Run("sentinel is visible to errors.Is", func(t *testing.T) {
		cause := errs.New("found 2 colliding reservations")
		err := errs.Mark(cause, errs.ErrCollision)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrCollision)
	})

	t.Run("cause stays in the chain", func(t *testing.T) {
		cause := errors.New("no rows in result set")
		err := errs.Mark(errs.Wrap(cause, "failed to load reservation"), errs.ErrNotFound)

		assert.ErrorIs(t, err, cause)
		assert.ErrorIs(t, err, errs.ErrNotFound)
	})

	t.Run("distinct sentinels never cross-match", func(t *testing.T) {
		err := errs.Mark(errs.New("station offline"), errs.ErrBackendUnreachable)

		assert.ErrorIs(t, err, errs.ErrBackendUnreachable)
		assert.NotErrorIs(t, err, errs.ErrRemoteRejected)
		assert.NotErrorIs(t, err, errs.ErrCollision)
	})

	t.Run("nil error yields the sentinel itself", func(t *testing.T) {
		err := errs.Mark(nil, errs.ErrValidation)

		assert.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("message keeps the cause text", func(t *testing.T) {
		err := errs.Mark(errs.New("found 2 colliding reservations"), errs.ErrCollision)

		assert.Contains(t, err.Error(), "found 2 colliding reservations")
	})
}

func TestWrapNil(t *testing.T) {
	assert.NoError(t, errs.Wrap(nil, "ignored"))
}
