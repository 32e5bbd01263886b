package command

import (
	"bufio"
	"fmt"
	"io"

	"github.com/luki/sensorhub/internal/session"
)

// Run executes commands read from r until EOF or a quit command, writing
// results to w. Errors in individual lines are reported to w and do not
// stop the run; only read failures are returned.
func Run(r io.Reader, s *session.Session, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		cmd, err := Parse(scanner.Text())
		if err != nil {
			fmt.Fprintf(w, "line %d: %v\n", lineNo, err)
			continue
		}
		if cmd.Op == OpQuit {
			return nil
		}
		Exec(cmd, s, w)
	}
	return scanner.Err()
}

// Exec applies one command to the session and prints the outcome.
func Exec(cmd Command, s *session.Session, w io.Writer) {
	switch cmd.Op {
	case OpCreate:
		sn, err := s.Create(cmd.Kind, cmd.Name)
		if err != nil {
			fmt.Fprintf(w, "error: %v\n", err)
			return
		}
		fmt.Fprintf(w, "%s sensor '%s' registered.\n", sn.Kind().FriendlyName(), sn.Name())

	case OpRecord:
		sn, err := s.Record(cmd.Name, cmd.Value)
		if err != nil {
			fmt.Fprintf(w, "error: %v\n", err)
			return
		}
		fmt.Fprintf(w, "Reading %s %s recorded on %s.\n", cmd.Value, sn.Kind().Unit(), sn.Name())

	case OpProcess:
		fmt.Fprintln(w, "--- Processing sensors ---")
		for _, rep := range s.Process() {
			fmt.Fprintln(w, rep)
		}

	case OpList:
		fmt.Fprintln(w, "--- Registered sensors ---")
		for _, d := range s.Describe() {
			fmt.Fprintln(w, d)
		}
	}
}
