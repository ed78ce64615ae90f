package config

import (
	"fmt"
	"maps"
	"strings"

	"github.com/poiesic/rankit/ai"
	"github.com/spf13/viper"
)

// DefaultFile is the conventional settings file name.
const DefaultFile = "settings.json"

// Retrieval holds the query-time knobs.
type Retrieval struct {
	TopK            int                `mapstructure:"top_k"`
	TierMultipliers map[string]float64 `mapstructure:"tier_multipliers"`

	// Seed is recorded in the run log for provenance. A missing seed
	// stays nil and logs as "none"; retrieval itself is deterministic
	// either way.
	Seed *int64 `mapstructure:"seed"`
}

// Embedding holds the connection settings for the embedding backend.
type Embedding struct {
	Host      string `mapstructure:"host"`
	Model     string `mapstructure:"model"`
	BatchSize int    `mapstructure:"batch_size"`
}

// Config is the full settings document.
type Config struct {
	Retrieval Retrieval `mapstructure:"retrieval"`
	Embedding Embedding `mapstructure:"embedding"`
}

// Default returns the settings used when the file leaves them out.
func Default() *Config {
	aiCfg := ai.DefaultConfig()
	return &Config{
		Retrieval: Retrieval{
			TopK: 5,
			TierMultipliers: map[string]float64{
				"T1": 1.5,
				"T2": 1.0,
				"T3": 0.5,
			},
		},
		Embedding: Embedding{
			Host:      aiCfg.EmbeddingHost,
			Model:     aiCfg.EmbeddingModel,
			BatchSize: aiCfg.EmbeddingBatchSize,
		},
	}
}

// Load reads the settings file at path, applies defaults and RANKIT_*
// environment overrides, and validates the result.
func Load(path string) (*Config, error) {
	defaults := Default()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	v.SetEnvPrefix("RANKIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("retrieval.top_k", defaults.Retrieval.TopK)
	v.SetDefault("embedding.host", defaults.Embedding.Host)
	v.SetDefault("embedding.model", defaults.Embedding.Model)
	v.SetDefault("embedding.batch_size", defaults.Embedding.BatchSize)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// A multiplier table in the file replaces the defaults wholesale;
	// partial tables are not merged.
	if len(cfg.Retrieval.TierMultipliers) == 0 {
		cfg.Retrieval.TierMultipliers = maps.Clone(defaults.Retrieval.TierMultipliers)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the retrieval settings.
func (c *Config) Validate() error {
	if c.Retrieval.TopK < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidTopK, c.Retrieval.TopK)
	}
	if len(c.Retrieval.TierMultipliers) == 0 {
		return ErrNoMultipliers
	}
	for tier, mult := range c.Retrieval.TierMultipliers {
		if mult <= 0 {
			return fmt.Errorf("%w: tier %q has %v", ErrInvalidMultiplier, tier, mult)
		}
	}
	return nil
}

// EmbeddingConfig maps the embedding section onto an ai.Config.
func (c *Config) EmbeddingConfig() *ai.Config {
	return ai.NewConfig(
		ai.WithEmbeddingHost(c.Embedding.Host),
		ai.WithEmbeddingModel(c.Embedding.Model),
		ai.WithEmbeddingBatchSize(c.Embedding.BatchSize),
	)
}
