package command

import (
	"errors"
	"strings"
	"testing"

	"github.com/luki/sensorhub/internal/sensor"
	"github.com/luki/sensorhub/internal/session"
)

func TestParse(t *testing.T) {
	tests := []struct {
		line    string
		want    Command
		wantErr error
	}{
		{"", Command{}, nil},
		{"   # comment", Command{}, nil},
		{"1 kitchen", Command{Op: OpCreate, Kind: sensor.KindTemperature, Name: "kitchen"}, nil},
		{"temp kitchen", Command{Op: OpCreate, Kind: sensor.KindTemperature, Name: "kitchen"}, nil},
		{"2 boiler", Command{Op: OpCreate, Kind: sensor.KindPressure, Name: "boiler"}, nil},
		{"Pressure boiler", Command{Op: OpCreate, Kind: sensor.KindPressure, Name: "boiler"}, nil},
		{"3 kitchen 21.5", Command{Op: OpRecord, Name: "kitchen", Value: "21.5"}, nil},
		{"record boiler 1013", Command{Op: OpRecord, Name: "boiler", Value: "1013"}, nil},
		{"4", Command{Op: OpProcess}, nil},
		{"list", Command{Op: OpList}, nil},
		{"0", Command{Op: OpQuit}, nil},
		{"1", Command{}, ErrMissingArgument},
		{"record kitchen", Command{}, ErrMissingArgument},
		{"9", Command{}, ErrUnknownCommand},
		{"delete kitchen", Command{}, ErrUnknownCommand},
	}
	for _, tt := range tests {
		got, err := Parse(tt.line)
		if tt.wantErr != nil {
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Parse(%q) error = %v, want %v", tt.line, err, tt.wantErr)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q): unexpected error %v", tt.line, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %+v, want %+v", tt.line, got, tt.want)
		}
	}
}

const testScript = `# kitchen and boiler
1 kitchen
2 boiler
3 kitchen 5.0
3 kitchen 1.0
3 kitchen 3.0
3 boiler 3
3 boiler 4
3 boiler high
3 garage 1
5
4
0
5
`

func TestRun(t *testing.T) {
	s := session.New(nil)
	var out strings.Builder

	if err := Run(strings.NewReader(testScript), s, &out); err != nil {
		t.Fatalf("Run: %v", err)
	}
	got := out.String()

	for _, want := range []string{
		"Temperature sensor 'kitchen' registered.",
		"Pressure sensor 'boiler' registered.",
		"[Temperature sensor] ID: kitchen, readings: 3",
		"[Pressure sensor] ID: boiler, readings: 2",
		"kitchen: lowest reading (1) removed. Remaining average: 4",
		"boiler: average of readings: 3",
		"invalid reading",
		"sensor not found",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q\n%s", want, got)
		}
	}

	if strings.Count(got, "--- Registered sensors ---") != 1 {
		t.Errorf("commands after quit were executed:\n%s", got)
	}

	sn, ok := s.Lookup("kitchen")
	if !ok || sn.Describe().Readings != 2 {
		t.Errorf("kitchen after run: %+v", sn)
	}
}

func TestRunReportsBadLines(t *testing.T) {
	s := session.New(nil)
	var out strings.Builder

	if err := Run(strings.NewReader("bogus\n1\n1 ok\n"), s, &out); err != nil {
		t.Fatalf("Run: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, `line 1: "bogus": unknown command`) {
		t.Errorf("missing line 1 error:\n%s", got)
	}
	if !strings.Contains(got, "line 2: 1: sensor id: missing argument") {
		t.Errorf("missing line 2 error:\n%s", got)
	}
	if s.Len() != 1 {
		t.Errorf("Len(): got %d, want 1", s.Len())
	}
}
