// Package config loads pipeline configuration from viper. Provider keys come
// from the environment; everything else has file-configurable defaults.
package config

import (
	"path/filepath"

	"github.com/spf13/viper"
)

// Config is the explicit configuration handed to the pipeline wiring. An
// empty API key means that provider is unconfigured and its strategy or step
// is dropped from the chain.
type Config struct {
	DeepSeekAPIKey string
	TikHubAPIKey   string
	AmapAPIKey     string

	// Model names per strategy. An empty model disables that strategy even
	// when the API key is present.
	TextModel  string
	ImageModel string
	VideoModel string

	DataDir     string
	ImageDir    string
	MarkdownDir string

	OverwriteFiles bool
	WriteMarkdown  bool
	Datasette      bool
	DatasetteDB    string

	NonInteractive bool

	// ScrapeFallback enables the headless-browser metadata fallback.
	ScrapeFallback bool
}

// SetDefaults registers every configuration default and environment binding
// with viper. Called once before Load.
func SetDefaults() {
	viper.SetDefault("DataDir", "./data/")
	viper.SetDefault("ImageDir", "./data/images/")
	viper.SetDefault("MarkdownOutputDir", "./markdown/")
	viper.SetDefault("OverwriteFiles", false)
	viper.SetDefault("WriteMarkdown", false)
	viper.SetDefault("Datasette", false)
	viper.SetDefault("DatasetteDB", "./data/foodmap.db")
	viper.SetDefault("ScrapeFallback", false)

	viper.SetDefault("TextModel", "deepseek-chat")
	viper.SetDefault("ImageModel", "")
	viper.SetDefault("VideoModel", "")

	viper.SetDefault("cache.dbfile", "./cache.db")
	viper.SetDefault("cache.ttl", "720h")

	_ = viper.BindEnv("DeepSeekAPIKey", "DEEPSEEK_API_KEY")
	_ = viper.BindEnv("TikHubAPIKey", "TIKHUB_API_KEY")
	_ = viper.BindEnv("AmapAPIKey", "AMAP_WEB_SERVICE_KEY")
}

// Load reads the current viper state into a Config.
func Load() *Config {
	return &Config{
		DeepSeekAPIKey: viper.GetString("DeepSeekAPIKey"),
		TikHubAPIKey:   viper.GetString("TikHubAPIKey"),
		AmapAPIKey:     viper.GetString("AmapAPIKey"),

		TextModel:  viper.GetString("TextModel"),
		ImageModel: viper.GetString("ImageModel"),
		VideoModel: viper.GetString("VideoModel"),

		DataDir:     viper.GetString("DataDir"),
		ImageDir:    viper.GetString("ImageDir"),
		MarkdownDir: viper.GetString("MarkdownOutputDir"),

		OverwriteFiles: viper.GetBool("OverwriteFiles"),
		WriteMarkdown:  viper.GetBool("WriteMarkdown"),
		Datasette:      viper.GetBool("Datasette"),
		DatasetteDB:    viper.GetString("DatasetteDB"),

		NonInteractive: viper.GetBool("NonInteractive"),
		ScrapeFallback: viper.GetBool("ScrapeFallback"),
	}
}

// CatalogPath is the well-known catalog file location under the data dir.
func (c *Config) CatalogPath() string {
	return filepath.Join(c.DataDir, "places.json")
}
