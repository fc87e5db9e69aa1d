package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/autolock/internal/flagx"
	"github.com/dmitrijs2005/autolock/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "10s"
// or as integer nanoseconds. After parsing, values are copied into the
// runtime Config (which uses time.Duration).
type JsonConfig struct {
	SensorPort     string         `json:"sensor_port"`
	SensorBaud     int            `json:"sensor_baud"`
	UserDBPath     string         `json:"user_db_path"`
	LogDBPath      string         `json:"log_db_path"`
	RelayPin       string         `json:"relay_pin"`
	BusyLEDPin     string         `json:"busy_led_pin"`
	GrantLEDPin    string         `json:"grant_led_pin"`
	DenyLEDPin     string         `json:"deny_led_pin"`
	LCDBus         string         `json:"lcd_bus"`
	LCDAddr        uint16         `json:"lcd_addr"`
	LCDRows        int            `json:"lcd_rows"`
	LCDCols        int            `json:"lcd_cols"`
	ConsoleDisplay bool           `json:"console_display"`
	GrantDuration  timex.Duration `json:"grant_duration"`
	DenyDuration   timex.Duration `json:"deny_duration"`
	PollInterval   timex.Duration `json:"poll_interval"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// Lookup order for the JSON file path:
//  1. Command-line flags (-c or -config) via flagx.JsonConfigFlags().
//  2. If empty, no JSON is loaded and the function returns.
//
// Only fields present in the file override the current values. Panics on
// read or unmarshal errors (caller should recover if desired).
//
// Intended usage is: defaults -> parseJson -> parseFlags, where later
// stages override earlier ones.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.SensorPort != "" {
		cfg.SensorPort = jc.SensorPort
	}
	if jc.SensorBaud != 0 {
		cfg.SensorBaud = jc.SensorBaud
	}
	if jc.UserDBPath != "" {
		cfg.UserDBPath = jc.UserDBPath
	}
	if jc.LogDBPath != "" {
		cfg.LogDBPath = jc.LogDBPath
	}
	if jc.RelayPin != "" {
		cfg.RelayPin = jc.RelayPin
	}
	if jc.BusyLEDPin != "" {
		cfg.BusyLEDPin = jc.BusyLEDPin
	}
	if jc.GrantLEDPin != "" {
		cfg.GrantLEDPin = jc.GrantLEDPin
	}
	if jc.DenyLEDPin != "" {
		cfg.DenyLEDPin = jc.DenyLEDPin
	}
	if jc.LCDBus != "" {
		cfg.LCDBus = jc.LCDBus
	}
	if jc.LCDAddr != 0 {
		cfg.LCDAddr = jc.LCDAddr
	}
	if jc.LCDRows != 0 {
		cfg.LCDRows = jc.LCDRows
	}
	if jc.LCDCols != 0 {
		cfg.LCDCols = jc.LCDCols
	}
	if jc.ConsoleDisplay {
		cfg.ConsoleDisplay = true
	}
	if jc.GrantDuration.Duration != 0 {
		cfg.GrantDuration = jc.GrantDuration.Duration
	}
	if jc.DenyDuration.Duration != 0 {
		cfg.DenyDuration = jc.DenyDuration.Duration
	}
	if jc.PollInterval.Duration != 0 {
		cfg.PollInterval = jc.PollInterval.Duration
	}
}
