package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// PlaceholderAPIKey is the default Anthropic key value; it signals that the
// scan capability has not been configured.
const PlaceholderAPIKey = "YOUR_API_KEY_HERE"

// Config holds the full application configuration.
type Config struct {
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Jina      JinaConfig      `yaml:"jina" mapstructure:"jina"`
	Profile   ProfileConfig   `yaml:"profile" mapstructure:"profile"`
	Loan      LoanConfig      `yaml:"loan" mapstructure:"loan"`
	Search    SearchConfig    `yaml:"search" mapstructure:"search"`
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	Key         string `yaml:"key" mapstructure:"key"`
	VisionModel string `yaml:"vision_model" mapstructure:"vision_model"`
	ReasonModel string `yaml:"reason_model" mapstructure:"reason_model"`
	MaxTokens   int64  `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// JinaConfig holds Jina AI Search settings.
type JinaConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// ProfileConfig configures the financial profile data source.
type ProfileConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"` // "file" or "postgres"
	Path        string `yaml:"path" mapstructure:"path"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	DefaultUser string `yaml:"default_user" mapstructure:"default_user"`
}

// LoanConfig holds the synthetic loan estimate parameters.
type LoanConfig struct {
	AnnualRatePercent float64 `yaml:"annual_rate_percent" mapstructure:"annual_rate_percent"`
	TermMonths        int     `yaml:"term_months" mapstructure:"term_months"`
}

// SearchConfig configures the market price lookup.
type SearchConfig struct {
	QuerySuffix string `yaml:"query_suffix" mapstructure:"query_suffix"`
	MaxResults  int    `yaml:"max_results" mapstructure:"max_results"`
}

// StoreConfig configures the scan history database.
type StoreConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("REALITYLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("anthropic.key", PlaceholderAPIKey)
	v.SetDefault("anthropic.vision_model", "claude-sonnet-4-5-20250929")
	v.SetDefault("anthropic.reason_model", "claude-sonnet-4-5-20250929")
	v.SetDefault("anthropic.max_tokens", 1024)
	v.SetDefault("jina.base_url", "https://s.jina.ai")
	v.SetDefault("profile.driver", "file")
	v.SetDefault("profile.path", "user_db.json")
	v.SetDefault("profile.default_user", "default")
	v.SetDefault("loan.annual_rate_percent", 14.0)
	v.SetDefault("loan.term_months", 12)
	v.SetDefault("search.query_suffix", "price in india buy online amazon flipkart")
	v.SetDefault("search.max_results", 2)
	v.SetDefault("store.path", "reality-lens.db")
	v.SetDefault("server.port", 8000)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
