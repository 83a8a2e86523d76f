// Package cmd wires the command line surface to the extraction pipeline.
package cmd

import (
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/humanlog"
	"github.com/spf13/viper"

	"github.com/lepinkainen/foodmap/internal/cache"
	"github.com/lepinkainen/foodmap/internal/config"
)

// CLI represents the complete command structure for the foodmap application
type CLI struct {
	// Global flags
	Overwrite bool `help:"Overwrite existing markdown notes when writing them"`
	Markdown  bool `help:"Write a markdown note for each added place"`

	// Datasette flags
	Datasette   bool   `help:"Mirror the catalog into a SQLite database for Datasette"`
	DatasetteDB string `help:"Path to the mirror SQLite database file" default:"./data/foodmap.db"`

	// Cache flags
	CacheDBFile string `help:"Path to cache SQLite database file" default:"./cache.db"`
	CacheTTL    string `help:"Cache time-to-live duration (e.g., 720h for 30 days)" default:"720h"`

	Add   AddCmd   `cmd:"" help:"Extract a place from a video link and add it to the catalog"`
	List  ListCmd  `cmd:"" help:"List the places in the catalog"`
	Cache CacheCmd `cmd:"" help:"Cache maintenance"`
}

// CacheCmd groups cache maintenance subcommands
type CacheCmd struct {
	Invalidate cache.InvalidateCacheCmd `cmd:"" help:"Invalidate cached responses for a source"`
}

// Execute runs the Kong-based CLI
func Execute() {
	initLogging()
	initConfig()

	var cli CLI

	ctx := kong.Parse(&cli,
		kong.Name("foodmap"),
		kong.Description("Turn short-video food finds into a browsable place catalog."),
		kong.UsageOnError(),
	)

	updateGlobalConfig(&cli)

	if err := ctx.Run(); err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func initConfig() {
	config.SetDefaults()

	viper.AutomaticEnv()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			slog.Debug("No config file found, using defaults")
		} else {
			slog.Error("Fatal error reading config file", "error", err)
			os.Exit(1)
		}
	}
}

func updateGlobalConfig(cli *CLI) {
	viper.Set("OverwriteFiles", cli.Overwrite)
	if cli.Markdown {
		viper.Set("WriteMarkdown", true)
	}
	if cli.Datasette {
		viper.Set("Datasette", true)
	}
	viper.Set("DatasetteDB", cli.DatasetteDB)

	viper.Set("cache.dbfile", cli.CacheDBFile)
	viper.Set("cache.ttl", cli.CacheTTL)
}

func initLogging() {
	level := slog.LevelInfo
	switch strings.ToLower(os.Getenv("FOODMAP_LOG_LEVEL")) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	handler := humanlog.NewHandler(os.Stdout, &humanlog.Options{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}
