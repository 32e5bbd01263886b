package sensor

import (
	"unicode/utf8"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// MaxNameLen is the longest name, in bytes, a sensor keeps. Longer names
// are cut at construction, never in the middle of a UTF-8 character.
const MaxNameLen = 49

// ErrReleased is returned when a sensor is used after it was closed.
var ErrReleased = errors.New("sensor already released")

// Sensor is the capability set shared by every sensor variant. Recording
// a reading is variant specific; narrow with AsTemperature or AsPressure.
type Sensor interface {
	// Name returns the sensor's immutable, possibly truncated, name.
	Name() string
	Kind() Kind
	// Process runs the variant's analysis pass over its readings.
	Process() Report
	// Describe reports the sensor's state without changing it.
	Describe() Description
	// Release frees the reading history and reports how many readings
	// it freed. It may be called once.
	Release() (int, error)
	// Close is Release without the count.
	Close() error
}

// ChartWindow is how many of the most recent readings Describe returns.
const ChartWindow = 80

// Option configures a sensor at construction.
type Option func(*base)

// WithLogger sets the logger used for reading and release events.
func WithLogger(logger *zap.Logger) Option {
	return func(b *base) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// New creates a sensor of the given kind. The caller owns it until it is
// inserted into a registry.
func New(kind Kind, name string, opts ...Option) (Sensor, error) {
	switch kind {
	case KindTemperature:
		return NewTemperature(name, opts...), nil
	case KindPressure:
		return NewPressure(name, opts...), nil
	default:
		return nil, errors.Wrapf(ErrUnknownKind, "kind %d", int(kind))
	}
}

// AsTemperature narrows s to a temperature sensor.
func AsTemperature(s Sensor) (*Temperature, bool) {
	t, ok := s.(*Temperature)
	return t, ok && t != nil
}

// AsPressure narrows s to a pressure sensor.
func AsPressure(s Sensor) (*Pressure, bool) {
	p, ok := s.(*Pressure)
	return p, ok && p != nil
}

// base holds what every variant shares.
type base struct {
	name     string
	logger   *zap.Logger
	released bool
}

func newBase(kind Kind, name string, opts []Option) base {
	b := base{
		name:   truncateName(name),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&b)
	}
	b.logger = b.logger.With(zap.String("sensor", b.name), zap.Stringer("kind", kind))
	return b
}

func (b *base) Name() string {
	return b.name
}

// release marks the sensor closed and frees its readings with free,
// failing if it already was closed.
func (b *base) release(free func() int) (int, error) {
	if b.released {
		return 0, errors.Wrapf(ErrReleased, "%q", b.name)
	}
	b.released = true
	n := free()
	b.logger.Debug("sensor released", zap.Int("readings", n))
	return n, nil
}

func truncateName(name string) string {
	if len(name) <= MaxNameLen {
		return name
	}
	cut := MaxNameLen
	for cut > 0 && !utf8.RuneStart(name[cut]) {
		cut--
	}
	return name[:cut]
}
