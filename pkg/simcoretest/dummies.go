// Package simcoretest exports dummy constructors for use by tests in
// other packages, the same role lazydocker's pkg/commands/dummies.go
// plays for that codebase.
package simcoretest

import (
	"io"

	"github.com/sirupsen/logrus"

	"simcore/pkg/config"
	"simcore/pkg/scheduler"
	"simcore/pkg/simlog"
	"simcore/pkg/simulator"
)

// NewDummyLog returns a discard-output logger entry for tests that need a
// non-nil *simlog.Logger but don't care about its contents.
func NewDummyLog() *simlog.Logger {
	log := logrus.New()
	log.Out = io.Discard
	return log.WithField("test", "test")
}

// NewDummyAppConfig returns an AppConfig with the default UserConfig and no
// filesystem footprint (ConfigDir is left empty; callers that need a real
// directory should use t.TempDir and config.NewAppConfig directly).
func NewDummyAppConfig() *config.AppConfig {
	userConfig := config.GetDefaultConfig()
	return &config.AppConfig{
		Name:       "simcore-test",
		Version:    "unversioned",
		UserConfig: &userConfig,
	}
}

// NewDummyEngine returns a fresh Engine over a Map-backed scheduler and a
// discard logger, isolated from the process-wide façade.
func NewDummyEngine() *simulator.Engine {
	return simulator.New(scheduler.NewMapScheduler(), NewDummyLog())
}
