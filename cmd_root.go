package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/blogem/reqsink/config"
)

// flagValues receives the command-line flags; only the ones actually given
// override the environment
var flagValues = config.Default()

var rootCmd = &cobra.Command{
	Use:   "reqsink",
	Short: "Capture and review arbitrary HTTP requests",
	Long: `reqsink accepts any HTTP request, keeps the most recent ones in memory
and shows them on /admin. Older requests can be archived to sqlite.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the request sink (default command)",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	addServeFlags(rootCmd.Flags())
	addServeFlags(serveCmd.Flags())
	rootCmd.AddCommand(serveCmd)
}

func addServeFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&flagValues.IPAddress, "ip-address", "i", flagValues.IPAddress, "Address to bind to")
	fs.IntVarP(&flagValues.Port, "port", "p", flagValues.Port, "Port to listen on")
	fs.IntVarP(&flagValues.RequestLimit, "req-limit", "r", flagValues.RequestLimit, "Number of requests kept in memory")
	fs.StringVarP(&flagValues.SQLitePath, "sqlite", "s", flagValues.SQLitePath, "SQLite file for evicted requests (empty discards them)")
	fs.StringVarP(&flagValues.UserTemplatesDir, "user-templates-dir", "u", flagValues.UserTemplatesDir, "Directory of user templates")
	fs.StringVarP(&flagValues.ExtraRoutes, "extra-routes", "e", flagValues.ExtraRoutes, "JSON or YAML file of route rules")
	fs.Int64Var(&flagValues.MaxBodyBytes, "max-body-bytes", flagValues.MaxBodyBytes, "Maximum request body read per request")
	fs.IntVar(&flagValues.ArchiveQueue, "archive-queue", flagValues.ArchiveQueue, "Pending eviction batches before new ones are dropped")
	fs.StringVar(&flagValues.LogLevel, "log-level", flagValues.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&flagValues.LogFormat, "log-format", flagValues.LogFormat, "Log format (text, json)")
}

// loadConfig layers the flags that were set over .env and REQSINK_* variables
func loadConfig(fs *pflag.FlagSet) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}

	fs.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "ip-address":
			cfg.IPAddress = flagValues.IPAddress
		case "port":
			cfg.Port = flagValues.Port
		case "req-limit":
			cfg.RequestLimit = flagValues.RequestLimit
		case "sqlite":
			cfg.SQLitePath = flagValues.SQLitePath
		case "user-templates-dir":
			cfg.UserTemplatesDir = flagValues.UserTemplatesDir
		case "extra-routes":
			cfg.ExtraRoutes = flagValues.ExtraRoutes
		case "max-body-bytes":
			cfg.MaxBodyBytes = flagValues.MaxBodyBytes
		case "archive-queue":
			cfg.ArchiveQueue = flagValues.ArchiveQueue
		case "log-level":
			cfg.LogLevel = flagValues.LogLevel
		case "log-format":
			cfg.LogFormat = flagValues.LogFormat
		}
	})

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("failed to validate config: %w", err)
	}
	return cfg, nil
}
