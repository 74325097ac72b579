package voronoi

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestFatalError(t *testing.T) {
	t.Parallel()

	err := error(&FatalError{cause: errors.Wrap(ErrCapacity, "arc arena")})

	assert.Equal(t, "voronoi build failed: arc arena: capacity exhausted", err.Error())
	assert.ErrorIs(t, err, ErrFatal)
	assert.ErrorIs(t, err, ErrCapacity)
	assert.NotErrorIs(t, err, ErrNoCrossing)

	wrapped := errors.Wrap(err, "chunk 3")
	assert.ErrorIs(t, wrapped, ErrFatal)
	assert.ErrorIs(t, wrapped, ErrCapacity)
}

func TestRecoverFatal(t *testing.T) {
	t.Parallel()

	assert.NoError(t, recoverFatal(nil))

	err := recoverFatal(buildPanic{err: ErrEmptyQueue})
	assert.ErrorIs(t, err, ErrFatal)
	assert.ErrorIs(t, err, ErrEmptyQueue)

	assert.Panics(t, func() { _ = recoverFatal(42) })
}
