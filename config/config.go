package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Notification pipeline
	Webhook    WebhookConfig
	GitHub     GitHubConfig
	Slack      SlackConfig
	Secrets    SecretsConfig
	RouteStore RouteStoreConfig
	Phrase     PhraseConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port           int
	Mode           string
	TrustedProxies []string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool

	FilePath       string
	FileMaxSizeMB  int
	FileMaxBackups int
	FileMaxAgeDays int
}

type WebhookConfig struct {
	MaxBodyBytes int64
	AllowedIPs   []string
}

type GitHubConfig struct {
	APIBaseURL        string
	WebURL            string
	PullRequestAccept string
}

type SlackConfig struct {
	APIURL     string
	RatePerSec float64
	Burst      int
}

const (
	SecretSourceStatic = "static"
	SecretSourceGCP    = "gcp"
)

// SecretsConfig selects where the secret bundle comes from.
type SecretsConfig struct {
	Source string

	GCPProject  string
	GCPSecretID string
	GCPVersion  string
	GCPEndpoint string

	// Static values, for local runs only.
	SlackBotToken           string
	SlackSigningSecret      string
	GitHubAppID             string
	GitHubAppInstallationID string
	GitHubWebhookSecret     string
	GitHubAppPEMPath        string
}

const (
	RouteDriverSQLite = "sqlite"
	RouteDriverRedis  = "redis"
)

type RouteStoreConfig struct {
	Driver string

	SQLitePath string

	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	RedisKeyPrefix string

	CacheSize int
	CacheTTL  time.Duration
}

type PhraseConfig struct {
	// Seed for phrase selection. 0 seeds from the clock.
	Seed int64
}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, ., /etc/repoact/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/repoact/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.HTTPServer.TrustedProxies = splitList(viper.GetString("http_server.trusted_proxies"))
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")
	cfg.Logger.FilePath = viper.GetString("logger.file_path")
	cfg.Logger.FileMaxSizeMB = viper.GetInt("logger.file_max_size_mb")
	cfg.Logger.FileMaxBackups = viper.GetInt("logger.file_max_backups")
	cfg.Logger.FileMaxAgeDays = viper.GetInt("logger.file_max_age_days")

	// Webhooks
	cfg.Webhook.MaxBodyBytes = viper.GetInt64("webhook.max_body_bytes")
	// Split allowed IPs since viper might not parse array seamlessly from env
	cfg.Webhook.AllowedIPs = splitList(viper.GetString("webhook.allowed_ips"))

	// GitHub
	cfg.GitHub.APIBaseURL = viper.GetString("github.api_base_url")
	cfg.GitHub.WebURL = viper.GetString("github.web_url")
	cfg.GitHub.PullRequestAccept = viper.GetString("github.pull_request_accept")

	// Slack
	cfg.Slack.APIURL = viper.GetString("slack.api_url")
	cfg.Slack.RatePerSec = viper.GetFloat64("slack.rate_per_sec")
	cfg.Slack.Burst = viper.GetInt("slack.burst")

	// Secrets
	cfg.Secrets.Source = viper.GetString("secrets.source")
	cfg.Secrets.GCPProject = viper.GetString("secrets.gcp.project")
	cfg.Secrets.GCPSecretID = viper.GetString("secrets.gcp.secret_id")
	cfg.Secrets.GCPVersion = viper.GetString("secrets.gcp.version")
	cfg.Secrets.GCPEndpoint = viper.GetString("secrets.gcp.endpoint")
	cfg.Secrets.SlackBotToken = viper.GetString("secrets.static.slack_bot_token")
	cfg.Secrets.SlackSigningSecret = viper.GetString("secrets.static.slack_app_signing_secret")
	cfg.Secrets.GitHubAppID = viper.GetString("secrets.static.github_app_id")
	cfg.Secrets.GitHubAppInstallationID = viper.GetString("secrets.static.github_app_installation_id")
	cfg.Secrets.GitHubWebhookSecret = viper.GetString("secrets.static.github_webhook_verification_secret")
	cfg.Secrets.GitHubAppPEMPath = viper.GetString("secrets.static.github_app_pem_path")

	// Route store
	cfg.RouteStore.Driver = viper.GetString("route_store.driver")
	cfg.RouteStore.SQLitePath = viper.GetString("route_store.sqlite.path")
	cfg.RouteStore.RedisAddr = viper.GetString("route_store.redis.addr")
	cfg.RouteStore.RedisPassword = viper.GetString("route_store.redis.password")
	cfg.RouteStore.RedisDB = viper.GetInt("route_store.redis.db")
	cfg.RouteStore.RedisKeyPrefix = viper.GetString("route_store.redis.key_prefix")
	cfg.RouteStore.CacheSize = viper.GetInt("route_store.cache_size")
	cfg.RouteStore.CacheTTL = viper.GetDuration("route_store.cache_ttl")

	cfg.Phrase.Seed = viper.GetInt64("phrase.seed")

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Secrets.Source {
	case SecretSourceStatic:
	case SecretSourceGCP:
		if c.Secrets.GCPProject == "" || c.Secrets.GCPSecretID == "" {
			return fmt.Errorf("secrets.gcp.project and secrets.gcp.secret_id are required for the gcp source")
		}
	default:
		return fmt.Errorf("unknown secrets.source %q", c.Secrets.Source)
	}

	switch c.RouteStore.Driver {
	case RouteDriverSQLite:
		if c.RouteStore.SQLitePath == "" {
			return fmt.Errorf("route_store.sqlite.path is required")
		}
	case RouteDriverRedis:
		if c.RouteStore.RedisAddr == "" {
			return fmt.Errorf("route_store.redis.addr is required")
		}
	default:
		return fmt.Errorf("unknown route_store.driver %q", c.RouteStore.Driver)
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)
	viper.SetDefault("logger.file_max_size_mb", 100)
	viper.SetDefault("logger.file_max_backups", 3)
	viper.SetDefault("logger.file_max_age_days", 28)

	viper.SetDefault("webhook.max_body_bytes", 25<<20) // GitHub caps payloads at 25 MB

	viper.SetDefault("github.api_base_url", "https://api.github.com/")
	viper.SetDefault("github.web_url", "https://github.com")

	viper.SetDefault("slack.rate_per_sec", 1)
	viper.SetDefault("slack.burst", 5)

	viper.SetDefault("secrets.source", SecretSourceStatic)
	viper.SetDefault("secrets.gcp.version", "latest")

	viper.SetDefault("route_store.driver", RouteDriverSQLite)
	viper.SetDefault("route_store.sqlite.path", "data/routes.db")
	viper.SetDefault("route_store.redis.key_prefix", "repoact:")
	viper.SetDefault("route_store.cache_size", 256)
	viper.SetDefault("route_store.cache_ttl", "1m")
}
