package loyalty

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/pelletier/go-toml/v2"
)

func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err = toml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type Config struct {
	Log     LogConfig     `toml:"log"`
	Server  ServerConfig  `toml:"server"`
	DB      DBConfig      `toml:"db"`
	Ranking RankingConfig `toml:"ranking"`
}

type LogConfig struct {
	Level     slog.Level `toml:"level"`
	Format    string     `toml:"format"`
	AddSource bool       `toml:"add_source"`
}

type ServerConfig struct {
	Host           string   `toml:"host"`
	Port           int      `toml:"port"`
	InternalAPIKey string   `toml:"internal_api_key"`
	JWTSecret      string   `toml:"jwt_secret"`
	CORSOrigins    []string `toml:"cors_origins"`
}

type DBConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Database string `toml:"database"`
	PoolSize int    `toml:"pool_size"`
}

type RankingConfig struct {
	// CacheTTL is expressed in seconds; rankings tolerate brief staleness.
	CacheTTL  int `toml:"cache_ttl"`
	CacheSize int `toml:"cache_size"`
}

func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
