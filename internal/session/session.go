// Package session implements the user-facing sensor actions shared by the
// interactive menu and script mode: creating sensors, recording typed-in
// readings, processing and listing.
package session

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/luki/sensorhub/internal/registry"
	"github.com/luki/sensorhub/internal/sensor"
)

var (
	// ErrNotFound is returned when no sensor has the requested name.
	ErrNotFound = errors.New("sensor not found")
	// ErrEmptyName is returned when creating a sensor without a name.
	ErrEmptyName = errors.New("sensor name is empty")
	// ErrInvalidValue is returned when a reading cannot be parsed for the
	// sensor's kind.
	ErrInvalidValue = errors.New("invalid reading")
)

// Session owns one registry for the lifetime of a run.
type Session struct {
	reg    *registry.Registry
	logger *zap.Logger
}

// New creates a session with an empty registry.
func New(logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		reg:    registry.New(registry.WithLogger(logger.Named("registry"))),
		logger: logger,
	}
}

// Create builds a sensor of the given kind and registers it.
func (s *Session) Create(kind sensor.Kind, name string) (sensor.Sensor, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	sn, err := sensor.New(kind, name, sensor.WithLogger(s.logger.Named("sensor")))
	if err != nil {
		return nil, err
	}
	if err := s.reg.Insert(sn); err != nil {
		return nil, err
	}
	return sn, nil
}

// Record parses raw according to the named sensor's kind and records it.
func (s *Session) Record(name, raw string) (sensor.Sensor, error) {
	sn, ok := s.reg.Lookup(strings.TrimSpace(name))
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "%q", name)
	}
	raw = strings.TrimSpace(raw)

	if t, ok := sensor.AsTemperature(sn); ok {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return sn, errors.Wrapf(ErrInvalidValue, "%s wants a decimal number, got %q", sn.Kind(), raw)
		}
		return sn, t.Record(v)
	}
	if p, ok := sensor.AsPressure(sn); ok {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return sn, errors.Wrapf(ErrInvalidValue, "%s wants a whole number, got %q", sn.Kind(), raw)
		}
		return sn, p.Record(v)
	}
	return sn, errors.Wrapf(sensor.ErrUnknownKind, "%q", sn.Name())
}

// Lookup returns the first sensor with the given name.
func (s *Session) Lookup(name string) (sensor.Sensor, bool) {
	return s.reg.Lookup(name)
}

// Len returns the number of registered sensors.
func (s *Session) Len() int {
	return s.reg.Len()
}

// Process runs the analysis pass over every sensor.
func (s *Session) Process() []sensor.Report {
	return s.reg.ProcessAll()
}

// Describe lists every sensor.
func (s *Session) Describe() []sensor.Description {
	return s.reg.DescribeAll()
}

// Close releases every sensor and its readings.
func (s *Session) Close() (registry.Stats, error) {
	return s.reg.Close()
}
