package voronoi

import (
	"math"

	"github.com/0x0FACED/go-fortune-parallel/pkg/logger"
	"github.com/0x0FACED/go-fortune-parallel/pkg/metrics"
	"github.com/pkg/errors"
)

const (
	DefaultEventCapacityFactor = 1.3
	DefaultRayExtentFactor     = 1000.0
)

type settings struct {
	log                 *logger.ZapLogger
	metrics             *metrics.Collector
	eventCapacityFactor float64
	rayExtentFactor     float64
}

// Option configures BuildDiagram.
type Option func(*settings) error

func defaultSettings() *settings {
	return &settings{
		log:                 logger.Nop(),
		eventCapacityFactor: DefaultEventCapacityFactor,
		rayExtentFactor:     DefaultRayExtentFactor,
	}
}

func WithLogger(l *logger.ZapLogger) Option {
	return func(s *settings) error {
		if l == nil {
			return errors.Wrap(ErrInvalidOption, "nil logger")
		}
		s.log = l
		return nil
	}
}

// WithMetrics records build timings and counters in c.
func WithMetrics(c *metrics.Collector) Option {
	return func(s *settings) error {
		s.metrics = c
		return nil
	}
}

// WithEventCapacityFactor sets the event queue capacity per site. Values
// below 1 cannot hold the site events.
func WithEventCapacityFactor(f float64) Option {
	return func(s *settings) error {
		if math.IsNaN(f) || math.IsInf(f, 0) || f < 1 {
			return errors.Wrapf(ErrInvalidOption, "event capacity factor %v", f)
		}
		s.eventCapacityFactor = f
		return nil
	}
}

// WithRayExtentFactor sets how far beyond the sites and bounds open rays are
// extended, in multiples of the larger side of their box.
func WithRayExtentFactor(f float64) Option {
	return func(s *settings) error {
		if math.IsNaN(f) || math.IsInf(f, 0) || f < 1 {
			return errors.Wrapf(ErrInvalidOption, "ray extent factor %v", f)
		}
		s.rayExtentFactor = f
		return nil
	}
}
