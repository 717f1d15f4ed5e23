// Package config loads runtime configuration for the moviedb CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional configuration file selected with -c or --config (see ReadFile).
//  3. Environment: MOVIEDB_* variables, plus a .env file (see LoadDotEnv).
//  4. Command-line flags (see BindFlags), which override everything else.
//
// # File schema
//
// Keys are nested by their dotted viper names. Durations are strings like
// "10s" or integer nanoseconds:
//
//	{
//	  "database": {"path": "moviedb.db"},
//	  "store":    {"kind": "sqlite"},
//	  "omdb":     {"base_url": "https://www.omdbapi.com/", "api_key": "...", "request_timeout": "10s"},
//	  "log":      {"level": "info", "file": "moviedb.log", "max_size_mb": 10, "max_backups": 3}
//	}
//
// Primary API
//
//   - type Config                           resolved settings
//   - func NewViper() *viper.Viper          defaults and env bindings
//   - func BindFlags(cmd, v) error          flags bound to viper keys
//   - func Load(v) (*Config, error)         resolve and validate
package config
