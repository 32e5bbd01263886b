// Package command parses the line-oriented sensor commands used by script
// mode and runs them against a session.
//
// Each line is one command. The menu digits of the interactive mode and
// word forms are both accepted:
//
//	1 <id>          temp <id>           create a temperature sensor
//	2 <id>          pressure <id>       create a pressure sensor
//	3 <id> <value>  record <id> <value> record a reading
//	4               process             process all sensors
//	5               list                list sensors
//	0               quit                stop
package command

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/luki/sensorhub/internal/sensor"
)

// Op is a command operation.
type Op int

// Operations.
const (
	OpNone Op = iota
	OpCreate
	OpRecord
	OpProcess
	OpList
	OpQuit
)

var (
	// ErrUnknownCommand is returned for an unrecognised command word.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrMissingArgument is returned when a command lacks an argument.
	ErrMissingArgument = errors.New("missing argument")
)

// Command is one parsed line.
type Command struct {
	Op    Op
	Kind  sensor.Kind // OpCreate
	Name  string      // OpCreate, OpRecord
	Value string      // OpRecord, parsed by the session per sensor kind
}

var aliases = map[string]Op{
	"1": OpCreate, "temp": OpCreate, "temperature": OpCreate,
	"2": OpCreate, "pres": OpCreate, "pressure": OpCreate,
	"3": OpRecord, "record": OpRecord,
	"4": OpProcess, "process": OpProcess,
	"5": OpList, "list": OpList,
	"0": OpQuit, "quit": OpQuit, "exit": OpQuit,
}

// Parse parses a single line. Blank lines and lines starting with '#'
// parse as OpNone.
func Parse(line string) (Command, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return Command{}, nil
	}

	fields := strings.Fields(line)
	word := strings.ToLower(fields[0])
	op, ok := aliases[word]
	if !ok {
		return Command{}, errors.Wrapf(ErrUnknownCommand, "%q", fields[0])
	}
	args := fields[1:]

	switch op {
	case OpCreate:
		if len(args) < 1 {
			return Command{}, errors.Wrapf(ErrMissingArgument, "%s: sensor id", word)
		}
		kind := sensor.KindTemperature
		if word == "2" {
			kind = sensor.KindPressure
		} else if word != "1" {
			k, err := sensor.ParseKind(word)
			if err != nil {
				return Command{}, err
			}
			kind = k
		}
		return Command{Op: op, Kind: kind, Name: args[0]}, nil
	case OpRecord:
		if len(args) < 2 {
			return Command{}, errors.Wrapf(ErrMissingArgument, "%s: sensor id and value", word)
		}
		return Command{Op: op, Name: args[0], Value: args[1]}, nil
	default:
		return Command{Op: op}, nil
	}
}
