package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Auth strategies.
const (
	StrategyFile     = "file"
	StrategyDatabase = "database"
)

// Token modes.
const (
	TokenPlaceholder = "placeholder"
	TokenSigned      = "signed"
)

type DBConfig struct {
	Driver         string        `mapstructure:"db_driver"`
	Host           string        `mapstructure:"db_host"`
	Port           string        `mapstructure:"db_port"`
	User           string        `mapstructure:"db_user"`
	Password       string        `mapstructure:"db_pass"`
	Name           string        `mapstructure:"db_name"`
	SSLMode        string        `mapstructure:"db_sslmode"`
	Path           string        `mapstructure:"db_path"`
	MaxOpenConns   int           `mapstructure:"db_max_open_conns"`
	ConnectTimeout time.Duration `mapstructure:"db_connect_timeout"`
	QueryTimeout   time.Duration `mapstructure:"db_query_timeout"`
}

// DSN returns the connection string for the configured driver.
func (c DBConfig) DSN() string {
	if c.Driver == "sqlite" {
		return c.Path
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, c.Port),
		Path:     "/" + c.Name,
		RawQuery: "sslmode=" + url.QueryEscape(c.SSLMode),
	}
	return u.String()
}

type Config struct {
	Port         string        `mapstructure:"port"`
	APIBaseURL   string        `mapstructure:"api_base_url"`
	AuthStrategy string        `mapstructure:"auth_strategy"`
	TokenMode    string        `mapstructure:"token_mode"`
	UsersPath    string        `mapstructure:"users_path"`
	JWTSecret    string        `mapstructure:"jwt_secret"`
	JWTTTL       time.Duration `mapstructure:"jwt_ttl"`
	SeedOnStart  bool          `mapstructure:"seed_on_start"`
	SeedFile     string        `mapstructure:"seed_file"`
	SeedPassword string        `mapstructure:"seed_password"`
	BcryptCost   int           `mapstructure:"bcrypt_cost"`
	CORSOrigins  []string      `mapstructure:"cors_origins"`
	LogLevel     string        `mapstructure:"log_level"`
	DB           DBConfig      `mapstructure:",squash"`
}

// HTTPAddr is the listen address derived from Port.
func (c Config) HTTPAddr() string {
	return ":" + c.Port
}

var defaults = map[string]interface{}{
	"port":               "8081",
	"api_base_url":       "http://localhost:8081/api",
	"auth_strategy":      StrategyFile,
	"token_mode":         TokenPlaceholder,
	"users_path":         "config/users.json",
	"jwt_secret":         "dev-secret-change-me",
	"jwt_ttl":            "24h",
	"seed_on_start":      true,
	"seed_file":          "",
	"seed_password":      "shieldops",
	"bcrypt_cost":        10,
	"cors_origins":       "*",
	"log_level":          "info",
	"db_driver":          "postgres",
	"db_host":            "localhost",
	"db_port":            "5432",
	"db_user":            "shieldops",
	"db_pass":            "shieldops",
	"db_name":            "shieldops",
	"db_sslmode":         "disable",
	"db_path":            "shieldops.db",
	"db_max_open_conns":  10,
	"db_connect_timeout": "5s",
	"db_query_timeout":   "3s",
}

// Load builds the configuration from compiled-in defaults, an optional YAML
// file named by SHIELDOPS_CONFIG and environment variables (PORT, DB_HOST, ...).
func Load() (Config, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.AutomaticEnv()

	if path := os.Getenv("SHIELDOPS_CONFIG"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.CORSOrigins = splitList(v.GetString("cors_origins"))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.AuthStrategy {
	case StrategyFile, StrategyDatabase:
	default:
		return fmt.Errorf("unknown auth strategy %q", c.AuthStrategy)
	}
	switch c.TokenMode {
	case TokenPlaceholder, TokenSigned:
	default:
		return fmt.Errorf("unknown token mode %q", c.TokenMode)
	}
	switch c.DB.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unknown db driver %q", c.DB.Driver)
	}
	if c.TokenMode == TokenSigned && c.JWTSecret == "" {
		return errors.New("jwt secret is required for signed tokens")
	}
	if c.JWTTTL <= 0 {
		return fmt.Errorf("jwt ttl must be positive, got %s", c.JWTTTL)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
