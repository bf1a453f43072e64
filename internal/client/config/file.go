package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/attendance/internal/flagx"
	"github.com/dmitrijs2005/attendance/internal/timex"
	"gopkg.in/yaml.v2"
)

// FileConfig is the on-disk shape of the config file, JSON or YAML. Only
// keys present in the file override earlier values.
type FileConfig struct {
	APIBaseURL      string          `json:"api_base_url" yaml:"api_base_url"`
	RequestTimeout  *timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	LocationTimeout *timex.Duration `json:"location_timeout" yaml:"location_timeout"`
	DataDir         string          `json:"data_dir" yaml:"data_dir"`
	HistoryPageSize int             `json:"history_page_size" yaml:"history_page_size"`
	Latitude        *float64        `json:"latitude" yaml:"latitude"`
	Longitude       *float64        `json:"longitude" yaml:"longitude"`
	LocationCommand string          `json:"location_command" yaml:"location_command"`
	LogLevel        string          `json:"log_level" yaml:"log_level"`
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

// parseFile overlays cfg with the file named by -c/-config in args. Without
// the flag nothing happens.
func parseFile(cfg *Config, args []string) {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var fc FileConfig
	if isYAML(path) {
		err = yaml.Unmarshal(data, &fc)
	} else {
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		panic(err)
	}

	fc.apply(cfg)
}

func (fc *FileConfig) apply(cfg *Config) {
	if fc.APIBaseURL != "" {
		cfg.APIBaseURL = fc.APIBaseURL
	}
	if fc.RequestTimeout != nil {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.LocationTimeout != nil {
		cfg.LocationTimeout = fc.LocationTimeout.Duration
	}
	if fc.DataDir != "" {
		cfg.DataDir = fc.DataDir
	}
	if fc.HistoryPageSize > 0 {
		cfg.HistoryPageSize = fc.HistoryPageSize
	}
	if fc.Latitude != nil {
		cfg.Latitude = fc.Latitude
	}
	if fc.Longitude != nil {
		cfg.Longitude = fc.Longitude
	}
	if fc.LocationCommand != "" {
		cfg.LocationCommand = fc.LocationCommand
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
}
