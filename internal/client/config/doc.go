// Package config loads runtime configuration for the attendance client.
//
// Sources & precedence (later wins)
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables, optionally seeded from a .env file in the
//     working directory (existing variables are not overridden).
//  3. Optional config file selected with -c or -config. Files ending in
//     .yaml or .yml are read as YAML, anything else as JSON.
//  4. Command-line flags.
//
// Environment
//
//	ATTENDANCE_API_URL           API base URL, including the /api prefix
//	ATTENDANCE_REQUEST_TIMEOUT   request timeout, e.g. "30s"
//	ATTENDANCE_DATA_DIR          directory holding the session database
//	ATTENDANCE_LOG_LEVEL         debug, info, warn or error
//	ATTENDANCE_LOCATION_COMMAND  command printing the location as JSON
//
// Flags
//
//	-a string    API base URL
//	-t int       request timeout (seconds)
//	-l int       location timeout (seconds)
//	-d string    data directory
//	-p int       history page size
//	-lat float   fixed latitude
//	-lon float   fixed longitude
//	-loc string  location command
//	-v string    log level
//
// # File schema
//
// Durations use timex.Duration, so they can be strings like "30s" or
// integer nanoseconds:
//
//	{
//	  "api_base_url": "https://attendance.example.com/api",
//	  "request_timeout": "30s",
//	  "location_timeout": "15s",
//	  "data_dir": "/home/me/.config/attendance",
//	  "history_page_size": 20,
//	  "latitude": 51.5,
//	  "longitude": -0.12,
//	  "location_command": "termux-location -p network",
//	  "log_level": "info"
//	}
//
// Loading panics on unreadable files and malformed values, like flag
// parsing with flag.PanicOnError.
package config
