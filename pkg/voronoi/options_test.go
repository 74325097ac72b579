package voronoi

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0x0FACED/go-fortune-parallel/pkg/logger"
	"github.com/0x0FACED/go-fortune-parallel/pkg/metrics"
)

func TestDefaultSettings(t *testing.T) {
	t.Parallel()

	s := defaultSettings()
	assert.NotNil(t, s.log)
	assert.Nil(t, s.metrics)
	assert.InDelta(t, DefaultEventCapacityFactor, s.eventCapacityFactor, 0)
	assert.InDelta(t, DefaultRayExtentFactor, s.rayExtentFactor, 0)
}

func TestOptions_Apply(t *testing.T) {
	t.Parallel()

	log := logger.Nop()
	c := metrics.New()
	s := defaultSettings()
	for _, opt := range []Option{
		WithLogger(log),
		WithMetrics(c),
		WithEventCapacityFactor(2.5),
		WithRayExtentFactor(50),
	} {
		require.NoError(t, opt(s))
	}

	assert.Same(t, log, s.log)
	assert.Same(t, c, s.metrics)
	assert.InDelta(t, 2.5, s.eventCapacityFactor, 0)
	assert.InDelta(t, 50.0, s.rayExtentFactor, 0)
}

func TestOptions_Invalid(t *testing.T) {
	t.Parallel()

	for name, opt := range map[string]Option{
		"nil logger":      WithLogger(nil),
		"capacity below":  WithEventCapacityFactor(0.99),
		"capacity nan":    WithEventCapacityFactor(math.NaN()),
		"capacity inf":    WithEventCapacityFactor(math.Inf(1)),
		"extent below":    WithRayExtentFactor(0),
		"extent negative": WithRayExtentFactor(-10),
		"extent nan":      WithRayExtentFactor(math.NaN()),
	} {
		assert.ErrorIs(t, opt(defaultSettings()), ErrInvalidOption, name)
	}
}
