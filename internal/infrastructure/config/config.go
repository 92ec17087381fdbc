package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Identity backend selection, fixed at composition time.
const (
	IdentityModeUpstream = "upstream"
	IdentityModeDemo     = "demo"
)

// Session store backends.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Session  SessionConfig
	Identity IdentityConfig
	Redis    RedisConfig
	Mongo    MongoConfig
	Notify   NotifyConfig
}

type SessionConfig struct {
	// Secret signs the session cookie. When empty an ephemeral secret is
	// generated at startup and every session dies with the process.
	Secret       string        `env:"SESSION_SECRET"`
	TTL          time.Duration `env:"SESSION_TTL,   default=12h"`
	IdentityTTL  time.Duration `env:"IDENTITY_TTL,  default=5m"`
	CookieSecure bool          `env:"COOKIE_SECURE, default=false"`
	Store        string        `env:"SESSION_STORE, default=memory"`
}

type IdentityConfig struct {
	Mode      string        `env:"IDENTITY_MODE,    default=demo"`
	URL       string        `env:"IDENTITY_URL,     default=http://localhost:9080"`
	Timeout   time.Duration `env:"IDENTITY_TIMEOUT, default=10s"`
	DemoDelay time.Duration `env:"DEMO_DELAY,       default=500ms"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

type MongoConfig struct {
	// An empty URI keeps the activity trail in memory.
	URI      string `env:"MONGO_URI"`
	Database string `env:"MONGO_DB, default=supplier_portal"`
}

type NotifyConfig struct {
	// An empty URL disables the webhook sink; the log sink always runs.
	WebhookURL string `env:"NOTIFY_WEBHOOK_URL"`
	Workers    int    `env:"NOTIFY_WORKERS, default=4"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
