package config

import (
	"flag"
	"io"
	"strconv"
	"time"

	"github.com/dmitrijs2005/attendance/internal/flagx"
)

var knownFlags = []string{"-a", "-t", "-l", "-d", "-p", "-lat", "-lon", "-loc", "-v"}

// parseFlags overlays cfg with command-line flags. Arguments other than
// knownFlags are dropped first with flagx.FilterArgs.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, knownFlags)

	fs := flag.NewFlagSet("attendance", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "API base URL")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	locationTimeout := fs.Int("l", int(cfg.LocationTimeout.Seconds()), "location timeout (in seconds)")
	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory")
	fs.IntVar(&cfg.HistoryPageSize, "p", cfg.HistoryPageSize, "history page size")
	fs.Func("lat", "fixed latitude", floatPtr(&cfg.Latitude))
	fs.Func("lon", "fixed longitude", floatPtr(&cfg.Longitude))
	fs.StringVar(&cfg.LocationCommand, "loc", cfg.LocationCommand, "location command")
	fs.StringVar(&cfg.LogLevel, "v", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
		case "l":
			cfg.LocationTimeout = time.Duration(*locationTimeout) * time.Second
		}
	})
}

func floatPtr(dst **float64) func(string) error {
	return func(s string) error {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		*dst = &v
		return nil
	}
}
