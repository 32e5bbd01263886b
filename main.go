// Package main is the sensorhub command: an in-memory registry of
// temperature and pressure sensors driven from an interactive menu or a
// command script.
package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/luki/sensorhub/internal/command"
	"github.com/luki/sensorhub/internal/menu"
	"github.com/luki/sensorhub/internal/registry"
	"github.com/luki/sensorhub/internal/session"
)

const (
	flagDebug   = "debug"
	flagScript  = "script"
	flagLogFile = "log-file"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:            "sensorhub",
		Usage:           "register sensors, record readings and process them",
		HideHelpCommand: true,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    flagDebug,
				Aliases: []string{"vvv"},
				EnvVars: []string{"SENSORHUB_DEBUG"},
				Usage:   "enable debug logging",
			},
			&cli.StringFlag{
				Name:    flagScript,
				Aliases: []string{"s"},
				Usage:   "run commands from `FILE` instead of the menu (- for stdin)",
			},
			&cli.StringFlag{
				Name:    flagLogFile,
				EnvVars: []string{"SENSORHUB_LOG_FILE"},
				Usage:   "write logs to `FILE`",
			},
		},
		Action: run,
	}
}

func run(c *cli.Context) error {
	script := c.String(flagScript)

	logger, err := newLogger(c.Bool(flagDebug), c.String(flagLogFile), script != "")
	if err != nil {
		return errors.Wrap(err, "cannot build logger")
	}
	defer func() { _ = logger.Sync() }()

	sess := session.New(logger)
	if script != "" {
		return runScript(c, script, sess)
	}
	return runMenu(c, sess)
}

func runScript(c *cli.Context, path string, sess *session.Session) error {
	var in io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return errors.Wrapf(err, "cannot open script %q", path)
		}
		defer f.Close()
		in = f
	}

	out := c.App.Writer
	runErr := command.Run(in, sess, out)

	stats, closeErr := sess.Close()
	printRelease(out, stats)
	if runErr != nil {
		return errors.Wrap(runErr, "reading script")
	}
	return closeErr
}

func runMenu(c *cli.Context, sess *session.Session) error {
	p := tea.NewProgram(menu.New(sess), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		_, _ = sess.Close()
		return err
	}

	m, ok := final.(menu.Model)
	if !ok {
		_, err := sess.Close()
		return err
	}
	stats, closeErr := m.Result()
	printRelease(c.App.Writer, stats)
	return closeErr
}

func printRelease(w io.Writer, stats registry.Stats) {
	fmt.Fprintf(w, "Shutting down: released %d sensors and %d readings.\n", stats.Sensors, stats.Readings)
}

// newLogger builds the console logger. The menu owns the terminal, so
// without a log file it logs nothing; scripts log to stderr.
func newLogger(debug bool, logFile string, toStderr bool) (*zap.Logger, error) {
	if logFile == "" && !toStderr {
		return zap.NewNop(), nil
	}

	cfg := zap.Config{
		Level:    zap.NewAtomicLevelAt(zap.InfoLevel),
		Encoding: "console",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "ts",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "caller",
			FunctionKey:    zapcore.OmitKey,
			MessageKey:     "msg",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
		DisableStacktrace: true,
		OutputPaths:       []string{"stderr"},
		ErrorOutputPaths:  []string{"stderr"},
	}
	if debug {
		cfg.Level.SetLevel(zap.DebugLevel)
	}
	if logFile != "" {
		cfg.OutputPaths = []string{logFile}
	}
	return cfg.Build()
}
