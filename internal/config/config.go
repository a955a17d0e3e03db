package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"

	"resmatic/internal/auth"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort  string `env:"SERVER_PORT,default=8080"`
	DBDriver    string `env:"DB_DRIVER,default=mysql"`
	DatabaseDSN string `env:"DATABASE_DSN,default=user:password@tcp(localhost:3306)/resmatic?charset=utf8mb4&parseTime=True&loc=Local"`
	ResetDB     bool   `env:"RESET_DB,default=false"`

	RedisAddr string `env:"REDIS_ADDR,default=localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD"`
	RedisDB   int    `env:"REDIS_DB,default=0"`

	JWTAccessSecret     string `env:"JWT_ACCESS_SECRET,default=dev_access_secret"`
	JWTRefreshSecret    string `env:"JWT_REFRESH_SECRET,default=dev_refresh_secret"`
	JWTAccessExpiresIn  string `env:"JWT_ACCESS_EXPIRES_IN,default=15m"`
	JWTRefreshExpiresIn string `env:"JWT_REFRESH_EXPIRES_IN,default=7d"`
	MaxSessions         int    `env:"AUTH_MAX_SESSIONS,default=0"`
	InviteExpiresIn     string `env:"INVITE_EXPIRES_IN,default=7d"`
	BcryptCost          int    `env:"BCRYPT_COST,default=10"`

	AMQPURL     string `env:"AMQP_URL"`
	InviteQueue string `env:"INVITE_QUEUE,default=staff.invite.created"`

	LogLevel  string `env:"LOG_LEVEL,default=info"`
	LogFormat string `env:"LOG_FORMAT,default=console"`

	SwaggerHost string `env:"SWAGGER_HOST"`

	SeedAdminEmail    string `env:"SEED_ADMIN_EMAIL,default=admin@resmatic.local"`
	SeedAdminPassword string `env:"SEED_ADMIN_PASSWORD,default=password123"`

	// Parsed from the *ExpiresIn strings above.
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	InviteTTL  time.Duration
}

// Load builds Config from the environment. A .env file in the working
// directory is read first when present.
func Load(ctx context.Context) (*Config, error) {
	_ = godotenv.Load()
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom builds Config from an arbitrary lookuper.
func LoadFrom(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	if err := cfg.finalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) finalize() error {
	var err error
	if c.AccessTTL, err = auth.ParseDuration(c.JWTAccessExpiresIn); err != nil {
		return fmt.Errorf("JWT_ACCESS_EXPIRES_IN: %w", err)
	}
	if c.RefreshTTL, err = auth.ParseDuration(c.JWTRefreshExpiresIn); err != nil {
		return fmt.Errorf("JWT_REFRESH_EXPIRES_IN: %w", err)
	}
	if c.InviteTTL, err = auth.ParseDuration(c.InviteExpiresIn); err != nil {
		return fmt.Errorf("INVITE_EXPIRES_IN: %w", err)
	}
	if c.JWTAccessSecret == c.JWTRefreshSecret {
		return errors.New("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET must differ")
	}
	if c.MaxSessions < 0 {
		c.MaxSessions = 0
	}
	switch c.DBDriver {
	case "mysql", "postgres", "memory":
	default:
		return fmt.Errorf("DB_DRIVER: unsupported driver %q", c.DBDriver)
	}
	return nil
}
