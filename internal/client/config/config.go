package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "MOVIEDB"

// Store kinds.
const (
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

// Viper keys.
const (
	KeyDatabasePath   = "database.path"
	KeyStoreKind      = "store.kind"
	KeyOMDbBaseURL    = "omdb.base_url"
	KeyOMDbAPIKey     = "omdb.api_key"
	KeyRequestTimeout = "omdb.request_timeout"
	KeyLogLevel       = "log.level"
	KeyLogFile        = "log.file"
	KeyLogMaxSizeMB   = "log.max_size_mb"
	KeyLogMaxBackups  = "log.max_backups"
)

const (
	defaultDatabasePath   = "moviedb.db"
	defaultOMDbBaseURL    = "https://www.omdbapi.com/"
	defaultRequestTimeout = 10 * time.Second
	defaultLogLevel       = "info"
	defaultLogFile        = "moviedb.log"
	defaultLogMaxSizeMB   = 10
	defaultLogMaxBackups  = 3
)

// Config holds runtime settings for the moviedb CLI.
//
// Units: RequestTimeout is a time.Duration; in files and env it may be given
// as "10s" or as integer nanoseconds.
type Config struct {
	DatabasePath string
	StoreKind    string

	OMDbBaseURL    string
	OMDbAPIKey     string
	RequestTimeout time.Duration

	LogLevel      string
	LogFile       string
	LogMaxSizeMB  int
	LogMaxBackups int
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = defaultDatabasePath
	c.StoreKind = StoreSQLite
	c.OMDbBaseURL = defaultOMDbBaseURL
	c.OMDbAPIKey = ""
	c.RequestTimeout = defaultRequestTimeout
	c.LogLevel = defaultLogLevel
	c.LogFile = defaultLogFile
	c.LogMaxSizeMB = defaultLogMaxSizeMB
	c.LogMaxBackups = defaultLogMaxBackups
}

// NewViper returns a viper instance with defaults and env bindings configured.
func NewViper() *viper.Viper {
	v := viper.New()
	ApplyDefaults(v)
	return v
}

// ApplyDefaults configures defaults and env bindings on v. Every key can be
// set from MOVIEDB_<KEY> with dots as underscores, e.g. MOVIEDB_OMDB_API_KEY.
// The API key is also read from a bare OMDB_API_KEY.
func ApplyDefaults(v *viper.Viper) {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv(KeyOMDbAPIKey, envPrefix+"_OMDB_API_KEY", "OMDB_API_KEY")

	var d Config
	d.LoadDefaults()

	v.SetDefault(KeyDatabasePath, d.DatabasePath)
	v.SetDefault(KeyStoreKind, d.StoreKind)
	v.SetDefault(KeyOMDbBaseURL, d.OMDbBaseURL)
	v.SetDefault(KeyRequestTimeout, d.RequestTimeout)
	v.SetDefault(KeyLogLevel, d.LogLevel)
	v.SetDefault(KeyLogFile, d.LogFile)
	v.SetDefault(KeyLogMaxSizeMB, d.LogMaxSizeMB)
	v.SetDefault(KeyLogMaxBackups, d.LogMaxBackups)
}

// Load reads the resolved configuration out of v and validates it.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		DatabasePath:   v.GetString(KeyDatabasePath),
		StoreKind:      strings.ToLower(strings.TrimSpace(v.GetString(KeyStoreKind))),
		OMDbBaseURL:    v.GetString(KeyOMDbBaseURL),
		OMDbAPIKey:     v.GetString(KeyOMDbAPIKey),
		RequestTimeout: v.GetDuration(KeyRequestTimeout),
		LogLevel:       v.GetString(KeyLogLevel),
		LogFile:        v.GetString(KeyLogFile),
		LogMaxSizeMB:   v.GetInt(KeyLogMaxSizeMB),
		LogMaxBackups:  v.GetInt(KeyLogMaxBackups),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the client cannot start with. A missing API
// key is allowed; catalog calls then fail with the provider's own message.
func (c *Config) Validate() error {
	switch c.StoreKind {
	case StoreSQLite:
		if strings.TrimSpace(c.DatabasePath) == "" {
			return fmt.Errorf("%s is required for the %s store", KeyDatabasePath, StoreSQLite)
		}
	case StoreMemory:
	default:
		return fmt.Errorf("%s must be %q or %q, got %q", KeyStoreKind, StoreSQLite, StoreMemory, c.StoreKind)
	}
	if strings.TrimSpace(c.OMDbBaseURL) == "" {
		return fmt.Errorf("%s is required", KeyOMDbBaseURL)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("%s must not be negative", KeyRequestTimeout)
	}
	if c.LogMaxSizeMB < 0 || c.LogMaxBackups < 0 {
		return fmt.Errorf("%s and %s must not be negative", KeyLogMaxSizeMB, KeyLogMaxBackups)
	}
	return nil
}
