package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds runtime configuration loaded from an optional YAML file and
// environment variables. Environment variables win over the file.
type Config struct {
	DatabaseURL       string
	SessionSecret     string
	SessionIssuer     string
	SessionTTLSeconds int64
	CookieSecure      bool
	Port              string
	LogDir            string
	LogRetentionDays  int
	MetricsDiskPath   string
	CorsOrigins       []string
}

type fileConfig struct {
	Database struct {
		URL string `yaml:"url"`
	} `yaml:"database"`
	Session struct {
		Secret     string `yaml:"secret"`
		Issuer     string `yaml:"issuer"`
		TTLSeconds int64  `yaml:"ttl_seconds"`
		Secure     bool   `yaml:"cookie_secure"`
	} `yaml:"session"`
	Server struct {
		Port        string   `yaml:"port"`
		CorsOrigins []string `yaml:"cors_origins"`
	} `yaml:"server"`
	Log struct {
		Dir           string `yaml:"dir"`
		RetentionDays int    `yaml:"retention_days"`
	} `yaml:"log"`
	Metrics struct {
		DiskPath string `yaml:"disk_path"`
	} `yaml:"metrics"`
}

// Load reads CONFIG_FILE (if set) and then the environment. It panics when a
// required value is missing from both.
func Load() Config {
	file, err := readFile(os.Getenv("CONFIG_FILE"))
	if err != nil {
		panic(err.Error())
	}
	return Config{
		DatabaseURL:       mustEnv("DATABASE_URL", file.Database.URL),
		SessionSecret:     mustEnv("SESSION_SECRET", file.Session.Secret),
		SessionIssuer:     envOr("SESSION_ISSUER", orString(file.Session.Issuer, "gym")),
		SessionTTLSeconds: int64(envOrInt("SESSION_TTL_SECONDS", int(orInt64(file.Session.TTLSeconds, 86400)))),
		CookieSecure:      envOrBool("COOKIE_SECURE", file.Session.Secure),
		Port:              envOr("PORT", orString(file.Server.Port, "8080")),
		LogDir:            envOr("LOG_DIR", orString(file.Log.Dir, "storage/logs")),
		LogRetentionDays:  envOrInt("LOG_RETENTION_DAYS", orInt(file.Log.RetentionDays, 7)),
		MetricsDiskPath:   envOr("METRICS_DISK_PATH", orString(file.Metrics.DiskPath, "/")),
		CorsOrigins:       orSlice(parseCSV(envOr("CORS_ORIGINS", "")), file.Server.CorsOrigins),
	}
}

func readFile(path string) (fileConfig, error) {
	var cfg fileConfig
	path = strings.TrimSpace(path)
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config file: %w", err)
	}
	return cfg, nil
}

func mustEnv(key, fallback string) string {
	value := envOr(key, strings.TrimSpace(fallback))
	if value == "" {
		panic("missing env var: " + key)
	}
	return value
}

func envOr(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func envOrInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(key string, fallback bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		value := strings.TrimSpace(part)
		if value != "" {
			items = append(items, value)
		}
	}
	return items
}

func orString(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return strings.TrimSpace(value)
}

func orInt(value, fallback int) int {
	if value <= 0 {
		return fallback
	}
	return value
}

func orInt64(value, fallback int64) int64 {
	if value <= 0 {
		return fallback
	}
	return value
}

func orSlice(value, fallback []string) []string {
	if len(value) == 0 {
		return fallback
	}
	return value
}
