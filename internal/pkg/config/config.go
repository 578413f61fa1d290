package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	Mock    MockConfig
	Gateway GatewayConfig
	Mongo   MongoConfig
	Redis   RedisConfig
}

// MockConfig controls the simulated carrier boundary. The mock is the default
// until real SKY core credentials are provisioned.
type MockConfig struct {
	Enabled bool          `env:"USE_MOCK,   default=true"`
	Delay   time.Duration `env:"MOCK_DELAY, default=800ms"`
}

type GatewayConfig struct {
	BaseURL string        `env:"SKY_API_URL,     default=https://api.skymovel.com.br/api/v1"`
	Timeout time.Duration `env:"SKY_API_TIMEOUT, default=15s"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=skymovel"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
