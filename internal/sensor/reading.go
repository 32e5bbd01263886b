// Package sensor provides the built-in sensor variants and the capability
// set they share. Each sensor owns a reading history of one fixed numeric
// type: temperatures are floating point, pressures are integers.
package sensor

import (
	"fmt"
	"strconv"
)

// Outcome describes what a Process pass did.
type Outcome int

// Process outcomes.
const (
	// OutcomeEmpty means there was nothing to process.
	OutcomeEmpty Outcome = iota
	// OutcomePruned means the lowest reading was removed and the rest averaged.
	OutcomePruned
	// OutcomeExhausted means the lowest reading was removed and none remain.
	OutcomeExhausted
	// OutcomeAveraged means all readings were averaged without removal.
	OutcomeAveraged
)

// Report is the result of processing one sensor.
type Report struct {
	Sensor    string
	Kind      Kind
	Outcome   Outcome
	Removed   float64 // lowest reading dropped (Pruned, Exhausted)
	Average   float64 // Pruned, Averaged
	Remaining int     // readings left after processing
}

func (r Report) String() string {
	switch r.Outcome {
	case OutcomePruned:
		return fmt.Sprintf("%s: lowest reading (%s) removed. Remaining average: %s",
			r.Sensor, r.format(r.Removed), r.format(r.Average))
	case OutcomeExhausted:
		return fmt.Sprintf("%s: lowest reading (%s) removed. No readings remain.",
			r.Sensor, r.format(r.Removed))
	case OutcomeAveraged:
		return fmt.Sprintf("%s: average of readings: %s", r.Sensor, r.format(r.Average))
	default:
		return fmt.Sprintf("%s: no readings to process.", r.Sensor)
	}
}

func (r Report) format(v float64) string {
	return formatValue(r.Kind, v)
}

// Description is a read-only snapshot of a sensor.
type Description struct {
	Name     string
	Kind     Kind
	Readings int
	Last     float64   // most recent reading, 0 if none
	Low      float64   // lowest reading, 0 if none
	Values   []float64 // last ChartWindow readings, in recording order
}

func (d Description) String() string {
	return fmt.Sprintf("[%s sensor] ID: %s, readings: %d", d.Kind.FriendlyName(), d.Name, d.Readings)
}

func formatValue(k Kind, v float64) string {
	if k == KindPressure {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
