package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config represents the application configuration structure. It contains
// settings for the environment, HTTP server, availability checker, webhook
// notifier and graceful shutdown behavior.
type Config struct {
	// Environment specifies the current running environment (development, production, etc.)
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`

	// HTTP contains all HTTP server related configurations
	HTTP struct {
		// Addr is the address and port the HTTP server will listen on
		Addr string `env:"HTTP_ADDR" env-default:":8080" yaml:"addr"`
		// ReadTimeout is the maximum duration for reading the entire request, including the body
		ReadTimeout time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"1m" yaml:"readTimeout"`
		// ReadHeaderTimeout is the amount of time allowed to read request headers
		ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" env-default:"10s" yaml:"readHeaderTimeout"`
		// WriteTimeout is the maximum duration before timing out writes of the response
		WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"2m" yaml:"writeTimeout"`
		// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled
		IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"2m" yaml:"idleTimeout"`
		// RequestTimeout is the maximum time allowed for processing a single request
		RequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT" env-default:"30s" yaml:"requestTimeout"`
		// MaxHeaderBytes controls the maximum number of bytes the server will read parsing the request header
		MaxHeaderBytes int `env:"HTTP_MAX_HEADER_BYTES" env-default:"0" yaml:"maxHeaderBytes"`
		// MetricsPath defines the URL path where metrics are exposed
		MetricsPath string `env:"HTTP_METRICS_PATH" env-default:"/metrics" yaml:"metricsPath"`
	} `yaml:"http"`

	// Checker contains the availability checker settings
	Checker struct {
		// Domains is the comma-separated list of domain names to watch
		Domains string `env:"CHECKER_DOMAINS" env-default:"" yaml:"domains"`
		// DoHEndpoint is the DNS JSON API used for lookups
		DoHEndpoint string `env:"CHECKER_DOH_ENDPOINT" env-default:"https://dns.google/resolve" yaml:"dohEndpoint"`
		// LookupTimeout bounds each outbound DoH call
		LookupTimeout time.Duration `env:"CHECKER_LOOKUP_TIMEOUT" env-default:"5s" yaml:"lookupTimeout"`
		// Concurrency is the number of parallel lookups per batch; 1 means sequential
		Concurrency int `env:"CHECKER_CONCURRENCY" env-default:"4" yaml:"concurrency"`
		// Interval is the period between scheduled batches; 0 disables the scheduler
		Interval time.Duration `env:"CHECKER_INTERVAL" env-default:"0" yaml:"interval"`
	} `yaml:"checker"`

	// Notifier contains the webhook notification settings
	Notifier struct {
		// WebhookURL is the incoming-webhook endpoint; empty disables notifications
		WebhookURL string `env:"NOTIFIER_WEBHOOK_URL" env-default:"" yaml:"webhookURL"`
		// Timeout bounds each webhook delivery
		Timeout time.Duration `env:"NOTIFIER_TIMEOUT" env-default:"10s" yaml:"timeout"`
	} `yaml:"notifier"`

	// JWT contains the API bearer-token settings
	JWT struct {
		// PublicKey is the PEM-encoded RSA public key used to verify API tokens;
		// empty disables authentication on the check endpoint
		PublicKey string `env:"JWT_PUBLIC_KEY" env-default:"" yaml:"publicKey"`
		// PrivateKey is the PEM-encoded RSA private key used by the jwt subcommand
		PrivateKey string `env:"JWT_PRIVATE_KEY" env-default:"" yaml:"privateKey"`
	} `yaml:"jwt"`

	// GracefulShutdownTimeout is the maximum duration to wait for ongoing requests to complete during shutdown
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"10s" yaml:"gracefulShutdownTimeout"` //nolint: lll
}

// Load receives the path for yaml config file and returns a filled Config struct.
func Load(configPath string) (*Config, error) {
	var cfg Config
	err := cleanenv.ReadConfig(configPath, &cfg)
	if err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}

	return &cfg, nil
}
