package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultBaseURL is used when neither the config file nor the environment names a backend.
	DefaultBaseURL = "http://localhost:3000"
	// DefaultToken is the development placeholder credential.
	DefaultToken = "api_dev_secret"
)

// Config is the top-level configuration for the admin console.
type Config struct {
	API         APIConfig         `yaml:"api"`
	Listen      ListenConfig      `yaml:"listen"`
	Display     DisplayConfig     `yaml:"display"`
	HealthCheck HealthCheckConfig `yaml:"health_check"`
}

// APIConfig describes the upstream admin backend. It is resolved once at
// startup and handed to the API client; it is never re-read afterwards.
type APIConfig struct {
	BaseURL  string        `yaml:"base_url" env:"WWS_API_BASE_URL"`
	Token    string        `yaml:"token" env:"WWS_API_TOKEN"`
	Features FeatureConfig `yaml:"features"`
}

// FeatureConfig flags backend routes that are not confirmed in every
// deployment. A disabled feature makes the client report the operation as
// not yet available instead of calling the backend.
type FeatureConfig struct {
	Devices bool `yaml:"devices" env:"WWS_API_FEATURE_DEVICES"`
	Limits  bool `yaml:"limits" env:"WWS_API_FEATURE_LIMITS"`
}

// ListenConfig defines where the console serves and how operators authenticate.
type ListenConfig struct {
	Bind          string `yaml:"bind" env:"WWS_CONSOLE_BIND"`
	Port          int    `yaml:"port" env:"WWS_CONSOLE_PORT"`
	AccessKey     string `yaml:"access_key" env:"WWS_CONSOLE_ACCESS_KEY"`
	AccessKeyHash string `yaml:"access_key_hash" env:"WWS_CONSOLE_ACCESS_KEY_HASH"`
	TLSCert       string `yaml:"tls_cert"`
	TLSKey        string `yaml:"tls_key"`
}

// DisplayConfig tunes the derived views. It is the only section that is
// hot-reloaded.
type DisplayConfig struct {
	LimitWarningPercent float64           `yaml:"limit_warning_percent"`
	StatusLabels        map[string]string `yaml:"status_labels"`
}

// HealthCheckConfig controls the backend reachability probe behind /ready.
type HealthCheckConfig struct {
	Timeout          time.Duration `yaml:"timeout"`
	FailureThreshold int           `yaml:"failure_threshold"`
}

// TLSEnabled returns true if both TLS cert and key paths are configured.
func (lc ListenConfig) TLSEnabled() bool {
	return lc.TLSCert != "" && lc.TLSKey != ""
}

// AuthEnabled reports whether the console requires an access key.
func (lc ListenConfig) AuthEnabled() bool {
	return lc.AccessKey != "" || lc.AccessKeyHash != ""
}

// Redacted returns a copy of the APIConfig with the token masked.
func (a APIConfig) Redacted() APIConfig {
	c := a
	if c.Token != "" {
		c.Token = "***REDACTED***"
	}
	return c
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// substituteEnvVars replaces ${VAR_NAME} patterns with environment variable values.
func substituteEnvVars(data []byte) []byte {
	return envVarPattern.ReplaceAllFunc(data, func(match []byte) []byte {
		varName := envVarPattern.FindSubmatch(match)[1]
		if val, ok := os.LookupEnv(string(varName)); ok {
			return []byte(val)
		}
		return match
	})
}

// Load reads and parses a YAML config file with env var substitution, then
// applies WWS_* environment overrides and built-in fallbacks. An empty path
// skips the file and resolves everything from the environment.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}

		data = substituteEnvVars(data)

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = DefaultBaseURL
	}
	if cfg.API.Token == "" {
		cfg.API.Token = DefaultToken
	}
	if cfg.Listen.Bind == "" {
		cfg.Listen.Bind = "127.0.0.1"
	}
	if cfg.Listen.Port == 0 {
		cfg.Listen.Port = 8080
	}
	if cfg.Display.LimitWarningPercent == 0 {
		cfg.Display.LimitWarningPercent = 80
	}
	if cfg.HealthCheck.Timeout == 0 {
		cfg.HealthCheck.Timeout = 3 * time.Second
	}
	if cfg.HealthCheck.FailureThreshold == 0 {
		cfg.HealthCheck.FailureThreshold = 1
	}
}

func validate(cfg *Config) error {
	u, err := url.Parse(cfg.API.BaseURL)
	if err != nil {
		return fmt.Errorf("api.base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api.base_url %q: scheme must be http or https", cfg.API.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("api.base_url %q: host is required", cfg.API.BaseURL)
	}
	if cfg.Listen.Port < 0 || cfg.Listen.Port > 65535 {
		return fmt.Errorf("listen.port %d out of range", cfg.Listen.Port)
	}
	if cfg.Listen.AccessKey != "" && cfg.Listen.AccessKeyHash != "" {
		return fmt.Errorf("listen: access_key and access_key_hash are mutually exclusive")
	}
	if (cfg.Listen.TLSCert == "") != (cfg.Listen.TLSKey == "") {
		return fmt.Errorf("listen: tls_cert and tls_key must be set together")
	}
	if p := cfg.Display.LimitWarningPercent; p < 0 || p > 100 {
		return fmt.Errorf("display.limit_warning_percent %v must be between 0 and 100", p)
	}
	if cfg.HealthCheck.Timeout < 0 || cfg.HealthCheck.FailureThreshold < 0 {
		return fmt.Errorf("health_check: timeout and failure_threshold must not be negative")
	}
	return nil
}

// Watcher watches a config file for changes and calls the callback with the new config.
type Watcher struct {
	path     string
	callback func(*Config)
	watcher  *fsnotify.Watcher
	mu       sync.Mutex
	stopCh   chan struct{}
}

// NewWatcher creates a new config file watcher.
func NewWatcher(path string, callback func(*Config)) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}

	if err := w.Add(path); err != nil {
		w.Close()
		return nil, fmt.Errorf("watching config file: %w", err)
	}

	cw := &Watcher{
		path:     path,
		callback: callback,
		watcher:  w,
		stopCh:   make(chan struct{}),
	}

	go cw.run()
	return cw, nil
}

func (cw *Watcher) run() {
	// Debounce timer to avoid rapid reloads
	var debounce *time.Timer
	for {
		select {
		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				if debounce != nil {
					debounce.Stop()
				}
				debounce = time.AfterFunc(500*time.Millisecond, func() {
					cw.reload()
				})
			}
		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("config watcher error", "err", err)
		case <-cw.stopCh:
			if debounce != nil {
				debounce.Stop()
			}
			return
		}
	}
}

func (cw *Watcher) reload() {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	cfg, err := Load(cw.path)
	if err != nil {
		slog.Error("config hot-reload failed", "err", err)
		return
	}

	slog.Info("configuration reloaded", "path", cw.path)
	cw.callback(cfg)
}

// Stop stops the config watcher.
func (cw *Watcher) Stop() error {
	close(cw.stopCh)
	return cw.watcher.Close()
}
