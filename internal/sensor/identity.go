package sensor

import (
	"strings"

	"github.com/pkg/errors"
)

// Kind identifies one of the built-in sensor variants.
type Kind int

// Supported sensor kinds.
const (
	KindTemperature Kind = iota + 1
	KindPressure
)

// kindIdentityMap maps accepted spellings to kinds.
var kindIdentityMap = []struct {
	prefix string
	kind   Kind
}{
	{"temp", KindTemperature},
	{"pres", KindPressure},
}

// ErrUnknownKind is returned for a kind outside the built-in set.
var ErrUnknownKind = errors.New("unknown sensor kind")

// ParseKind resolves a kind from its name or any prefix of at least four
// letters ("temp", "temperature", "pressure").
func ParseKind(s string) (Kind, error) {
	lower := strings.ToLower(strings.TrimSpace(s))
	for _, entry := range kindIdentityMap {
		if strings.HasPrefix(lower, entry.prefix) && strings.HasPrefix(entry.kind.String(), lower) {
			return entry.kind, nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownKind, "%q", s)
}

func (k Kind) String() string {
	switch k {
	case KindTemperature:
		return "temperature"
	case KindPressure:
		return "pressure"
	default:
		return "unknown"
	}
}

// FriendlyName returns a human-readable label for the kind.
func (k Kind) FriendlyName() string {
	switch k {
	case KindTemperature:
		return "Temperature"
	case KindPressure:
		return "Pressure"
	default:
		return "Sensor"
	}
}

// Unit returns the display unit of the kind's readings.
func (k Kind) Unit() string {
	switch k {
	case KindTemperature:
		return "°C"
	case KindPressure:
		return "hPa"
	default:
		return ""
	}
}
