package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/autolock/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-p string   serial port of the fingerprint sensor
//	-u string   path to the user-credential database
//	-l string   path to the access-log database
//	-g int      grant pulse duration in seconds
//	-d int      deny pulse duration in seconds
//	-console    render the status surface to stdout instead of the LCD
//
// Note: The function filters os.Args to only include the flags it knows
// about, using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-p", "-u", "-l", "-g", "-d", "-console"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.SensorPort, "p", cfg.SensorPort, "serial port of the fingerprint sensor")
	fs.StringVar(&cfg.UserDBPath, "u", cfg.UserDBPath, "path to the user-credential database")
	fs.StringVar(&cfg.LogDBPath, "l", cfg.LogDBPath, "path to the access-log database")
	grantSecs := fs.Int("g", int(cfg.GrantDuration.Seconds()), "grant pulse duration (in seconds)")
	denySecs := fs.Int("d", int(cfg.DenyDuration.Seconds()), "deny pulse duration (in seconds)")
	fs.BoolVar(&cfg.ConsoleDisplay, "console", cfg.ConsoleDisplay, "render status to stdout instead of the LCD")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.GrantDuration = time.Duration(*grantSecs) * time.Second
	cfg.DenyDuration = time.Duration(*denySecs) * time.Second
}
