package app

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"simcore/pkg/config"
)

func newTestAppConfig(t *testing.T) *config.AppConfig {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("CONFIG_DIR", dir)
	cfg, err := config.NewAppConfig("simcore-test", "1.0.0", "abc", "2026-01-01", false)
	assert.NoError(t, err)
	return cfg
}

func TestNewAppBuildsEngineFromConfig(t *testing.T) {
	cfg := newTestAppConfig(t)
	a, err := NewApp(cfg)
	assert.NoError(t, err)
	assert.NotNil(t, a.Engine)
	assert.NotNil(t, a.Log)
}

func TestNewAppRejectsUnknownScheduler(t *testing.T) {
	cfg := newTestAppConfig(t)
	cfg.UserConfig.Scheduler = "bogus"
	_, err := NewApp(cfg)
	assert.Error(t, err)
}

func TestDemoScenarioOrdersEventsAndFlushesDestroy(t *testing.T) {
	cfg := newTestAppConfig(t)
	a, err := NewApp(cfg)
	assert.NoError(t, err)

	table, summary := a.DemoScenario()
	assert.Contains(t, table, "link up")
	assert.Contains(t, table, "first packet queued")
	assert.Contains(t, table, "retransmit timer")
	assert.Contains(t, table, "flush stats")
	assert.Contains(t, summary, "events")

	linkUpIdx := strings.Index(table, "link up")
	firstPacketIdx := strings.Index(table, "first packet queued")
	retransmitIdx := strings.Index(table, "retransmit timer")
	flushIdx := strings.Index(table, "flush stats")
	assert.True(t, linkUpIdx < firstPacketIdx)
	assert.True(t, firstPacketIdx < retransmitIdx)
	assert.True(t, retransmitIdx < flushIdx)
}

func TestKnownErrorMapsPermissionDenied(t *testing.T) {
	cfg := newTestAppConfig(t)
	a, err := NewApp(cfg)
	assert.NoError(t, err)

	msg, known := a.KnownError(assertError("open /x: permission denied"))
	assert.True(t, known)
	assert.Contains(t, msg, "config directory")
}

type stringError string

func (s stringError) Error() string { return string(s) }

func assertError(s string) error { return stringError(s) }
