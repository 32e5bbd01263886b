// Package registry owns the set of live sensors. Sensors are kept in
// insertion order and destroyed together when the registry is closed.
package registry

import (
	"reflect"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/luki/sensorhub/internal/sensor"
)

// ErrClosed is returned when inserting into a closed registry.
var ErrClosed = errors.New("registry closed")

// Stats counts what Close released.
type Stats struct {
	Sensors  int
	Readings int
}

// Registry is the sole owner of every sensor inserted into it.
type Registry struct {
	mu      sync.RWMutex
	sensors []sensor.Sensor
	closed  bool
	logger  *zap.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the registry logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ErrNilSensor is returned when inserting a nil sensor pointer.
var ErrNilSensor = errors.New("nil sensor")

// Insert appends s and takes ownership of it. Names need not be unique.
// A closed registry refuses s and closes it. A nil interface is ignored;
// a nil pointer of a concrete variant is refused.
func (r *Registry) Insert(s sensor.Sensor) error {
	if s == nil {
		return nil
	}
	if v := reflect.ValueOf(s); v.Kind() == reflect.Ptr && v.IsNil() {
		return errors.Wrapf(ErrNilSensor, "%T", s)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return multierr.Append(errors.Wrapf(ErrClosed, "insert %q", s.Name()), s.Close())
	}
	r.sensors = append(r.sensors, s)
	r.logger.Info("sensor registered",
		zap.String("sensor", s.Name()),
		zap.Stringer("kind", s.Kind()),
		zap.Int("count", len(r.sensors)),
	)
	return nil
}

// Lookup returns the first sensor named exactly name. The sensor stays
// owned by the registry and must not be used after Close.
func (r *Registry) Lookup(name string) (sensor.Sensor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.sensors {
		if s.Name() == name {
			return s, true
		}
	}
	return nil, false
}

// Len returns the number of owned sensors.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sensors)
}

// ProcessAll runs Process on every sensor in insertion order.
func (r *Registry) ProcessAll() []sensor.Report {
	r.mu.Lock()
	defer r.mu.Unlock()

	reports := make([]sensor.Report, 0, len(r.sensors))
	for _, s := range r.sensors {
		rep := s.Process()
		r.logger.Debug("sensor processed",
			zap.String("sensor", rep.Sensor),
			zap.Int("remaining", rep.Remaining),
		)
		reports = append(reports, rep)
	}
	return reports
}

// DescribeAll describes every sensor in insertion order.
func (r *Registry) DescribeAll() []sensor.Description {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]sensor.Description, 0, len(r.sensors))
	for _, s := range r.sensors {
		out = append(out, s.Describe())
	}
	return out
}

// Close destroys every sensor exactly once, in insertion order, and
// leaves the registry empty. Closing again is a no-op.
func (r *Registry) Close() (Stats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var (
		stats Stats
		err   error
	)
	for i, s := range r.sensors {
		readings, rerr := s.Release()
		if rerr != nil {
			err = multierr.Append(err, rerr)
		} else {
			stats.Sensors++
			stats.Readings += readings
		}
		r.logger.Debug("releasing sensor", zap.String("sensor", s.Name()), zap.Int("readings", readings))
		r.sensors[i] = nil
	}
	r.sensors = nil
	r.closed = true

	r.logger.Info("registry closed", zap.Int("sensors", stats.Sensors), zap.Int("readings", stats.Readings))
	return stats, err
}
