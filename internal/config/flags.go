package config

import (
	"flag"
	"os"
	"time"

	"github.com/disasterpulse/datasync/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   PostgreSQL DSN
//	-r string   remote feed base URL
//	-n string   remote feed application name
//	-a string   serving-layer base URL
//	-i int      sync interval, hours
//	-p int      retention period, days
//	-l int      disaster fetch limit
//
// Notes:
//   - The function first filters os.Args to only the flags it recognizes using
//     flagx.FilterArgs, avoiding collisions with other components.
//   - Interval flags are accepted as integers (hours/days) and then converted
//     to time.Duration values.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-r", "-n", "-a", "-i", "-p", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.ReliefWebAPIURL, "r", config.ReliefWebAPIURL, "remote feed base URL")
	fs.StringVar(&config.ReliefWebAppName, "n", config.ReliefWebAppName, "remote feed application name")
	fs.StringVar(&config.APIBaseURL, "a", config.APIBaseURL, "serving-layer base URL")

	syncIntervalHours := fs.Int("i", int(config.SyncInterval.Hours()), "sync interval (in hours)")
	retentionDays := fs.Int("p", int(config.RetentionPeriod.Hours()/24), "retention period (in days)")

	fs.IntVar(&config.DisasterLimit, "l", config.DisasterLimit, "disaster fetch limit")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.SyncInterval = time.Duration(*syncIntervalHours) * time.Hour
	config.RetentionPeriod = time.Duration(*retentionDays) * 24 * time.Hour
}
