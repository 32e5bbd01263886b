package sensor

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/luki/sensorhub/internal/history"
)

// Temperature is a sensor with floating point readings. Processing prunes
// the lowest reading before averaging the rest.
type Temperature struct {
	base
	readings history.List[float64]
}

// NewTemperature creates a temperature sensor.
func NewTemperature(name string, opts ...Option) *Temperature {
	return &Temperature{base: newBase(KindTemperature, name, opts)}
}

// Kind returns KindTemperature.
func (t *Temperature) Kind() Kind {
	return KindTemperature
}

// Record appends a reading.
func (t *Temperature) Record(v float64) error {
	if t.released {
		return errors.Wrapf(ErrReleased, "record on %q", t.name)
	}
	t.logger.Debug("recording reading", zap.Float64("value", v))
	t.readings.Append(v)
	return nil
}

// Len returns the number of readings held.
func (t *Temperature) Len() int {
	return t.readings.Len()
}

// Process removes the lowest reading and, if any remain, averages them.
func (t *Temperature) Process() Report {
	r := Report{Sensor: t.name, Kind: KindTemperature}
	if t.readings.Len() == 0 {
		return r
	}

	r.Removed = t.readings.RemoveMin()
	r.Remaining = t.readings.Len()
	if r.Remaining == 0 {
		r.Outcome = OutcomeExhausted
		return r
	}
	r.Outcome = OutcomePruned
	r.Average = t.readings.Average()
	return r
}

// Describe reports the name, count, latest and lowest reading, and the
// most recent ChartWindow readings.
func (t *Temperature) Describe() Description {
	d := Description{
		Name:     t.name,
		Kind:     KindTemperature,
		Readings: t.readings.Len(),
		Last:     t.readings.Last(),
		Values:   t.readings.LastN(ChartWindow),
	}
	d.Low, _ = t.readings.Min()
	return d
}

// Release frees every reading and returns how many were freed.
func (t *Temperature) Release() (int, error) {
	return t.release(t.readings.Release)
}

// Close releases every reading.
func (t *Temperature) Close() error {
	_, err := t.Release()
	return err
}
