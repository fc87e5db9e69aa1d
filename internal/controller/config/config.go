package config

import "time"

// Config holds runtime settings for the ignition controller.
//
// Fields cover the four collaborator surfaces: the fingerprint sensor UART,
// the two SQLite database files, the GPIO line names, and the LCD bus.
// Durations are time.Duration values (e.g. 10*time.Second).
type Config struct {
	// Fingerprint sensor serial link.
	SensorPort string
	SensorBaud int

	// Local database files. The user store is maintained externally and
	// read-only here; the log store is append-only.
	UserDBPath string
	LogDBPath  string

	// GPIO line names as registered by the host (periph naming).
	RelayPin    string
	BusyLEDPin  string
	GrantLEDPin string
	DenyLEDPin  string

	// LCD panel over I2C. An empty bus name selects the first available
	// bus; ConsoleDisplay switches to stdout rendering for bench runs.
	LCDBus         string
	LCDAddr        uint16
	LCDRows        int
	LCDCols        int
	ConsoleDisplay bool

	// Timing of the actuation pulses and the image poll.
	GrantDuration time.Duration
	DenyDuration  time.Duration
	PollInterval  time.Duration
}

// LoadDefaults populates c with the vehicle unit's stock wiring.
func (c *Config) LoadDefaults() {
	c.SensorPort = "/dev/ttyUSB0"
	c.SensorBaud = 57600
	c.UserDBPath = "userdb.db"
	c.LogDBPath = "logdb.db"
	c.RelayPin = "GPIO26"
	c.BusyLEDPin = "GPIO27"
	c.GrantLEDPin = "GPIO22"
	c.DenyLEDPin = "GPIO17"
	c.LCDBus = ""
	c.LCDAddr = 0x27
	c.LCDRows = 4
	c.LCDCols = 20
	c.ConsoleDisplay = false
	c.GrantDuration = 10 * time.Second
	c.DenyDuration = 5 * time.Second
	c.PollInterval = 100 * time.Millisecond
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present). Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
