// Package simlog builds the structured logger shared by the simulator
// engine, config loader, and CLI, adapted from lazydocker's pkg/log:
// development mode logs JSON to a file in the config directory, production
// mode discards everything below Error.
package simlog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Logger is the type every simcore component threads through for
// diagnostics; it is exactly what simerrors.Fatal expects to log through.
type Logger = logrus.Entry

// Options controls how New builds the underlying logrus.Logger.
type Options struct {
	// Debug selects the development logger (JSON-to-file, level from
	// LOG_LEVEL) over the production logger (discard below Error).
	Debug bool
	// ConfigDir is where the development log file is written.
	ConfigDir string
	// Version, Commit, BuildDate are stamped onto every log line.
	Version, Commit, BuildDate string
}

// New builds a Logger per opts, in the style of lazydocker's NewLogger:
// pick a development-or-production base logger, force JSON formatting,
// and attach static build-info fields.
func New(opts Options) *Logger {
	var base *logrus.Logger
	if opts.Debug || os.Getenv("SIMCORE_DEBUG") == "TRUE" {
		base = newDevelopmentLogger(opts.ConfigDir)
	} else {
		base = newProductionLogger()
	}
	base.Formatter = &logrus.JSONFormatter{}

	return base.WithFields(logrus.Fields{
		"debug":     opts.Debug,
		"version":   opts.Version,
		"commit":    opts.Commit,
		"buildDate": opts.BuildDate,
	})
}

func levelFromEnv() logrus.Level {
	level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		return logrus.DebugLevel
	}
	return level
}

func newDevelopmentLogger(configDir string) *logrus.Logger {
	log := logrus.New()
	log.SetLevel(levelFromEnv())
	if configDir == "" {
		log.SetOutput(io.Discard)
		return log
	}
	file, err := os.OpenFile(filepath.Join(configDir, "simcore.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
	if err != nil {
		fmt.Println("unable to log to file:", err)
		log.SetOutput(io.Discard)
		return log
	}
	log.SetOutput(file)
	return log
}

func newProductionLogger() *logrus.Logger {
	log := logrus.New()
	log.Out = io.Discard
	log.SetLevel(logrus.ErrorLevel)
	return log
}
