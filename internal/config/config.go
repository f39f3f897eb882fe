package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Generate  GenerateConfig  `yaml:"generate" mapstructure:"generate"`
	Sample    SampleConfig    `yaml:"sample" mapstructure:"sample"`
	Eval      EvalConfig      `yaml:"eval" mapstructure:"eval"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// GenerateConfig configures QA synthesis from match records.
type GenerateConfig struct {
	InDir string `yaml:"in_dir" mapstructure:"in_dir"`
	Out   string `yaml:"out" mapstructure:"out"`
}

// SampleConfig configures benchmark subset sampling.
type SampleConfig struct {
	N    int   `yaml:"n" mapstructure:"n"`
	Seed int64 `yaml:"seed" mapstructure:"seed"`
}

// EvalConfig configures the grading run.
type EvalConfig struct {
	OutDir      string  `yaml:"out_dir" mapstructure:"out_dir"`
	Concurrency int     `yaml:"concurrency" mapstructure:"concurrency"`
	RPS         float64 `yaml:"rps" mapstructure:"rps"`
	Format      string  `yaml:"format" mapstructure:"format"`
}

// AnthropicConfig holds Anthropic API settings for the generation service.
type AnthropicConfig struct {
	Key         string  `yaml:"key" mapstructure:"key"`
	Model       string  `yaml:"model" mapstructure:"model"`
	MaxTokens   int64   `yaml:"max_tokens" mapstructure:"max_tokens"`
	Temperature float64 `yaml:"temperature" mapstructure:"temperature"`
}

// StoreConfig configures the local run store.
type StoreConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
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
	v.SetEnvPrefix("CRICKETBENCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("generate.in_dir", "t20_yaml")
	v.SetDefault("generate.out", "t20_qa_all.jsonl")
	v.SetDefault("sample.n", 1000)
	v.SetDefault("sample.seed", 42)
	v.SetDefault("eval.out_dir", "out_eval")
	v.SetDefault("eval.concurrency", 4)
	v.SetDefault("eval.rps", 0)
	v.SetDefault("eval.format", "csv")
	v.SetDefault("anthropic.model", "claude-haiku-4-5-20251001")
	v.SetDefault("anthropic.max_tokens", 32)
	v.SetDefault("anthropic.temperature", 0.0)
	v.SetDefault("store.path", "cricket-bench.db")

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
