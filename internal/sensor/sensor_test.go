package sensor

import (
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestTemperatureProcess(t *testing.T) {
	s := NewTemperature("kitchen")
	for _, v := range []float64{5.0, 1.0, 3.0} {
		if err := s.Record(v); err != nil {
			t.Fatalf("Record(%v): %v", v, err)
		}
	}

	r := s.Process()
	if r.Outcome != OutcomePruned {
		t.Errorf("Outcome: got %v, want OutcomePruned", r.Outcome)
	}
	if r.Removed != 1.0 {
		t.Errorf("Removed: got %v, want 1", r.Removed)
	}
	if r.Average != 4.0 {
		t.Errorf("Average: got %v, want 4", r.Average)
	}
	if s.Len() != 2 || r.Remaining != 2 {
		t.Errorf("Len after process: got %d (report %d), want 2", s.Len(), r.Remaining)
	}
	if got := r.String(); got != "kitchen: lowest reading (1) removed. Remaining average: 4" {
		t.Errorf("String(): got %q", got)
	}
}

func TestTemperatureProcessUntilEmpty(t *testing.T) {
	s := NewTemperature("t1")
	_ = s.Record(2.5)

	r := s.Process()
	if r.Outcome != OutcomeExhausted || r.Removed != 2.5 || r.Remaining != 0 {
		t.Errorf("single reading: got %+v", r)
	}

	r = s.Process()
	if r.Outcome != OutcomeEmpty {
		t.Errorf("empty: got %+v", r)
	}
	if !strings.Contains(r.String(), "no readings to process") {
		t.Errorf("empty String(): got %q", r.String())
	}
}

func TestPressureProcess(t *testing.T) {
	s := NewPressure("boiler")
	_ = s.Record(3)
	_ = s.Record(4)

	r := s.Process()
	if r.Outcome != OutcomeAveraged {
		t.Errorf("Outcome: got %v, want OutcomeAveraged", r.Outcome)
	}
	if r.Average != 3 {
		t.Errorf("Average: got %v, want 3", r.Average)
	}
	if s.Len() != 2 {
		t.Errorf("Len after process: got %d, want 2", s.Len())
	}
	if got := r.String(); got != "boiler: average of readings: 3" {
		t.Errorf("String(): got %q", got)
	}

	if r := NewPressure("p").Process(); r.Outcome != OutcomeEmpty {
		t.Errorf("empty pressure: got %+v", r)
	}
}

func TestDescribe(t *testing.T) {
	s := NewTemperature("t")
	_ = s.Record(1.5)
	_ = s.Record(2.5)

	d := s.Describe()
	if d.Name != "t" || d.Kind != KindTemperature || d.Readings != 2 {
		t.Errorf("Describe(): got %+v", d)
	}
	if len(d.Values) != 2 || d.Values[0] != 1.5 {
		t.Errorf("Values: got %v", d.Values)
	}
	if s.Len() != 2 {
		t.Errorf("Describe mutated the sensor")
	}
	if got := d.String(); got != "[Temperature sensor] ID: t, readings: 2" {
		t.Errorf("String(): got %q", got)
	}

	p := NewPressure("p")
	_ = p.Record(1013)
	if d := p.Describe(); d.Readings != 1 || d.Values[0] != 1013 {
		t.Errorf("pressure Describe(): got %+v", d)
	}
}

func TestNameTruncation(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"short", "short"},
		{strings.Repeat("a", MaxNameLen), strings.Repeat("a", MaxNameLen)},
		{strings.Repeat("a", 60), strings.Repeat("a", MaxNameLen)},
		{strings.Repeat("a", 48) + "é", strings.Repeat("a", 48)},
		{"", ""},
	}
	for _, tt := range tests {
		got := NewTemperature(tt.in).Name()
		if got != tt.want {
			t.Errorf("Name() for %d-byte input = %q, want %q", len(tt.in), got, tt.want)
		}
	}
}

func TestNewAndNarrowing(t *testing.T) {
	temp, err := New(KindTemperature, "a")
	if err != nil {
		t.Fatalf("New(temperature): %v", err)
	}
	pres, err := New(KindPressure, "b")
	if err != nil {
		t.Fatalf("New(pressure): %v", err)
	}

	if _, ok := AsTemperature(temp); !ok {
		t.Error("AsTemperature(temperature) failed")
	}
	if _, ok := AsPressure(temp); ok {
		t.Error("AsPressure(temperature) succeeded")
	}
	if _, ok := AsTemperature(pres); ok {
		t.Error("AsTemperature(pressure) succeeded")
	}
	if p, ok := AsPressure(pres); !ok || p.Name() != "b" {
		t.Error("AsPressure(pressure) failed")
	}
	if _, ok := AsTemperature(nil); ok {
		t.Error("AsTemperature(nil) succeeded")
	}

	if _, err := New(Kind(42), "x"); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("New(42): got %v, want ErrUnknownKind", err)
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"temp", KindTemperature, false},
		{"Temperature", KindTemperature, false},
		{"pres", KindPressure, false},
		{" pressure ", KindPressure, false},
		{"tem", 0, true},
		{"humidity", 0, true},
		{"temps", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseKind(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseKind(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseKind(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestClose(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	s := NewPressure("p", WithLogger(zap.New(core)))
	_ = s.Record(1)
	_ = s.Record(2)

	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len after Close: got %d, want 0", s.Len())
	}
	if err := s.Close(); !errors.Is(err, ErrReleased) {
		t.Errorf("second Close: got %v, want ErrReleased", err)
	}
	if err := s.Record(3); !errors.Is(err, ErrReleased) {
		t.Errorf("Record after Close: got %v, want ErrReleased", err)
	}
	if r := s.Process(); r.Outcome != OutcomeEmpty {
		t.Errorf("Process after Close: got %+v", r)
	}

	released := logs.FilterMessage("sensor released").All()
	if len(released) != 1 {
		t.Fatalf("expected 1 release log, got %d", len(released))
	}
	if got := released[0].ContextMap()["readings"]; got != int64(2) {
		t.Errorf("release log readings: got %v, want 2", got)
	}
	if got := logs.FilterMessage("recording reading").Len(); got != 2 {
		t.Errorf("expected 2 recording logs, got %d", got)
	}
}

func TestReleaseCounts(t *testing.T) {
	s := NewTemperature("t")
	for _, v := range []float64{1, 2, 3} {
		_ = s.Record(v)
	}

	n, err := s.Release()
	if err != nil || n != 3 {
		t.Errorf("Release(): got %d, %v, want 3, nil", n, err)
	}
	n, err = s.Release()
	if n != 0 || !errors.Is(err, ErrReleased) {
		t.Errorf("second Release(): got %d, %v, want 0, ErrReleased", n, err)
	}
}

func TestDescribeLatestAndLowest(t *testing.T) {
	p := NewPressure("p")
	for _, v := range []int{1013, 998, 1005} {
		_ = p.Record(v)
	}
	d := p.Describe()
	if d.Last != 1005 || d.Low != 998 {
		t.Errorf("Last/Low: got %v/%v, want 1005/998", d.Last, d.Low)
	}

	if d := NewTemperature("empty").Describe(); d.Last != 0 || d.Low != 0 || d.Values != nil {
		t.Errorf("empty Describe(): got %+v", d)
	}

	s := NewTemperature("long")
	for i := 0; i < ChartWindow+20; i++ {
		_ = s.Record(float64(i))
	}
	d = s.Describe()
	if d.Readings != ChartWindow+20 || len(d.Values) != ChartWindow {
		t.Errorf("window: got %d readings, %d values, want %d, %d",
			d.Readings, len(d.Values), ChartWindow+20, ChartWindow)
	}
	if d.Values[0] != 20 || d.Low != 0 || d.Last != float64(ChartWindow+19) {
		t.Errorf("window bounds: first %v low %v last %v", d.Values[0], d.Low, d.Last)
	}
}
