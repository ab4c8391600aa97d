package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jc-27901/reversed-minesweeper/internal/model"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// Config is the full server configuration
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Game    GameConfig    `yaml:"game"`
}

// ServerConfig holds HTTP listener settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// StorageConfig selects and configures the storage backend
type StorageConfig struct {
	Type     string `yaml:"type"` // "memory" or "redis"
	RedisURL string `yaml:"redis_url"`
}

// GameConfig holds the default parameters for new games
type GameConfig struct {
	BoardSize            int `yaml:"board_size"`
	BombCount            int `yaml:"bomb_count"`
	PieceCount           int `yaml:"piece_count"`
	DetonationIntervalMS int `yaml:"detonation_interval_ms"`
}

// DetonationInterval returns the configured interval as a duration
func (g GameConfig) DetonationInterval() time.Duration {
	return time.Duration(g.DetonationIntervalMS) * time.Millisecond
}

// GameDefaults returns the configured game parameters as the defaults
// applied to game creation requests that omit them.
func (c *Config) GameDefaults() model.GameConfig {
	return model.GameConfig{
		BoardSize:          c.Game.BoardSize,
		BombCount:          c.Game.BombCount,
		PieceCount:         c.Game.PieceCount,
		DetonationInterval: c.Game.DetonationInterval(),
	}
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "",
			Port: 8080,
		},
		Storage: StorageConfig{
			Type:     StorageTypeMemory,
			RedisURL: "redis://localhost:6379",
		},
		Game: GameConfig{
			BoardSize:            10,
			BombCount:            15,
			PieceCount:           20,
			DetonationIntervalMS: 10000,
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file,
// and environment variable overrides, in that order of precedence.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyEnv(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("RMS_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("RMS_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("STORAGE_TYPE"); v != "" {
		cfg.Storage.Type = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.Storage.RedisURL = v
	}
	applyIntEnv("RMS_BOARD_SIZE", &cfg.Game.BoardSize)
	applyIntEnv("RMS_BOMB_COUNT", &cfg.Game.BombCount)
	applyIntEnv("RMS_PIECE_COUNT", &cfg.Game.PieceCount)
	applyIntEnv("RMS_DETONATION_INTERVAL_MS", &cfg.Game.DetonationIntervalMS)
}

func applyIntEnv(key string, target *int) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*target = n
		}
	}
}

func (c *Config) validate() error {
	switch c.Storage.Type {
	case StorageTypeMemory, StorageTypeRedis:
	default:
		return fmt.Errorf("invalid storage type %q: must be %q or %q",
			c.Storage.Type, StorageTypeMemory, StorageTypeRedis)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Server.Port)
	}
	if err := c.GameDefaults().Validate(); err != nil {
		return fmt.Errorf("invalid game defaults: %w", err)
	}
	return nil
}
