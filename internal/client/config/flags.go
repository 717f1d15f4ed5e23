package config

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// BindFlags declares the persistent flags of cmd and binds them to v, so a
// flag given on the command line beats file and environment values.
//
//	-c, --config string            configuration file (JSON, YAML or TOML)
//	    --database-path string     SQLite database file
//	    --store string             sqlite | memory
//	    --omdb-url string          catalog base URL
//	    --omdb-api-key string      catalog API key
//	    --request-timeout duration catalog request timeout
//	    --log-level string         debug | info | warn | error
//	    --log-file string          log file; empty logs to stderr
func BindFlags(cmd *cobra.Command, v *viper.Viper) error {
	var d Config
	d.LoadDefaults()

	fs := cmd.PersistentFlags()
	fs.StringP("config", "c", "", "path to configuration file")
	fs.String("database-path", d.DatabasePath, "SQLite database file")
	fs.String("store", d.StoreKind, "local store engine (sqlite or memory)")
	fs.String("omdb-url", d.OMDbBaseURL, "movie catalog base URL")
	fs.String("omdb-api-key", "", "movie catalog API key")
	fs.Duration("request-timeout", d.RequestTimeout, "movie catalog request timeout")
	fs.String("log-level", d.LogLevel, "log level (debug, info, warn, error)")
	fs.String("log-file", d.LogFile, "log file path, empty for stderr")
	fs.Int("log-max-size-mb", d.LogMaxSizeMB, "log file size before rotation (MB)")
	fs.Int("log-max-backups", d.LogMaxBackups, "rotated log files to keep")

	bindings := map[string]string{
		KeyDatabasePath:   "database-path",
		KeyStoreKind:      "store",
		KeyOMDbBaseURL:    "omdb-url",
		KeyOMDbAPIKey:     "omdb-api-key",
		KeyRequestTimeout: "request-timeout",
		KeyLogLevel:       "log-level",
		KeyLogFile:        "log-file",
		KeyLogMaxSizeMB:   "log-max-size-mb",
		KeyLogMaxBackups:  "log-max-backups",
	}
	for key, name := range bindings {
		if err := v.BindPFlag(key, fs.Lookup(name)); err != nil {
			return err
		}
	}
	return nil
}
