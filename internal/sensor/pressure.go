package sensor

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/luki/sensorhub/internal/history"
)

// Pressure is a sensor with integer readings. Processing averages all
// readings with integer division and removes nothing.
type Pressure struct {
	base
	readings history.List[int]
}

// NewPressure creates a pressure sensor.
func NewPressure(name string, opts ...Option) *Pressure {
	return &Pressure{base: newBase(KindPressure, name, opts)}
}

// Kind returns KindPressure.
func (p *Pressure) Kind() Kind {
	return KindPressure
}

// Record appends a reading.
func (p *Pressure) Record(v int) error {
	if p.released {
		return errors.Wrapf(ErrReleased, "record on %q", p.name)
	}
	p.logger.Debug("recording reading", zap.Int("value", v))
	p.readings.Append(v)
	return nil
}

// Len returns the number of readings held.
func (p *Pressure) Len() int {
	return p.readings.Len()
}

// Process reports the truncated integer average of all readings.
func (p *Pressure) Process() Report {
	r := Report{Sensor: p.name, Kind: KindPressure, Remaining: p.readings.Len()}
	if r.Remaining == 0 {
		return r
	}
	r.Outcome = OutcomeAveraged
	r.Average = float64(p.readings.Average())
	return r
}

// Describe reports the name, count, latest and lowest reading, and the
// most recent ChartWindow readings.
func (p *Pressure) Describe() Description {
	d := Description{
		Name:     p.name,
		Kind:     KindPressure,
		Readings: p.readings.Len(),
		Last:     float64(p.readings.Last()),
	}
	low, _ := p.readings.Min()
	d.Low = float64(low)
	for _, v := range p.readings.LastN(ChartWindow) {
		d.Values = append(d.Values, float64(v))
	}
	return d
}

// Release frees every reading and returns how many were freed.
func (p *Pressure) Release() (int, error) {
	return p.release(p.readings.Release)
}

// Close releases every reading.
func (p *Pressure) Close() error {
	_, err := p.Release()
	return err
}
