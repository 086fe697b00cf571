package simlog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewProductionLoggerDiscardsByDefault(t *testing.T) {
	log := New(Options{Version: "1.2.3"})
	assert.NotNil(t, log)
	assert.Equal(t, "1.2.3", log.Data["version"])
}

func TestNewDevelopmentLoggerWithoutConfigDirStillUsable(t *testing.T) {
	log := New(Options{Debug: true})
	assert.NotNil(t, log)
	assert.Equal(t, true, log.Data["debug"])
}
