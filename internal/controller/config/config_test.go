package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "/dev/ttyUSB0", c.SensorPort)
	assert.Equal(t, 57600, c.SensorBaud)
	assert.Equal(t, "userdb.db", c.UserDBPath)
	assert.Equal(t, "logdb.db", c.LogDBPath)
	assert.Equal(t, "GPIO26", c.RelayPin)
	assert.Equal(t, 10*time.Second, c.GrantDuration)
	assert.Equal(t, 5*time.Second, c.DenyDuration)
	assert.Equal(t, 100*time.Millisecond, c.PollInterval)
	assert.False(t, c.ConsoleDisplay)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "/dev/ttyUSB0", cfg.SensorPort)
	assert.Equal(t, uint16(0x27), cfg.LCDAddr)
}
