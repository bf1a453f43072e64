package config

import (
	"os"
	"time"

	"github.com/dmitrijs2005/attendance/internal/client/models"
	"github.com/dmitrijs2005/attendance/internal/filex"
)

// Config holds runtime settings for the attendance client.
type Config struct {
	APIBaseURL      string
	RequestTimeout  time.Duration
	LocationTimeout time.Duration
	DataDir         string
	HistoryPageSize int
	Latitude        *float64
	Longitude       *float64
	LocationCommand string
	LogLevel        string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:5001/api"
	c.RequestTimeout = 30 * time.Second
	c.LocationTimeout = 15 * time.Second
	c.DataDir = filex.DefaultDataDir()
	c.HistoryPageSize = 20
	c.LogLevel = "info"
}

// FixedLocation returns the configured coordinates when both are set.
func (c *Config) FixedLocation() (models.Coordinates, bool) {
	if c.Latitude == nil || c.Longitude == nil {
		return models.Coordinates{}, false
	}
	return models.Coordinates{Latitude: *c.Latitude, Longitude: *c.Longitude}, true
}

// LoadConfig builds a Config from defaults, environment, config file and
// the process arguments.
func LoadConfig() *Config {
	return Load(os.Args[1:])
}

// Load is LoadConfig over explicit arguments.
func Load(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseFile(cfg, args)
	parseFlags(cfg, args)
	return cfg
}
