package config

import (
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/guttosm/salespulse/internal/normalize"
)

// Config holds the full application configuration loaded from environment
// variables or a .env file.
//
// Example .env:
//
//	SERVER_PORT=8080
//	TASK_API_URL=http://localhost:5000
//	TASK_API_TIMEOUT=10s
//	NORMALIZE_POLICY=skip
//	CHART_WIDTH=800
//	CHART_HEIGHT=300
//	HISTOGRAM_BINS=10
//	REDIS_URL=localhost:6379
//	CACHE_TTL=10m
//	CORS_ORIGINS=*
type Config struct {
	Server    ServerConfig
	TaskAPI   TaskAPIConfig
	Dashboard DashboardConfig
	Redis     RedisConfig
	Log       LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port           string
	RequestTimeout time.Duration
	RateLimit      int // requests per minute per client IP; 0 disables
	CORSOrigins    []string
}

// TaskAPIConfig points at the task API the dashboard reads from.
type TaskAPIConfig struct {
	URL     string
	Timeout time.Duration
}

// DashboardConfig tunes normalization and chart layout.
//
// Fields:
//   - Policy: what to do with malformed records ("skip" or "abort").
//   - ChartWidth / ChartHeight: outer chart size in pixels.
//   - HistogramBins: number of price bins.
type DashboardConfig struct {
	Policy        normalize.Policy
	ChartWidth    int
	ChartHeight   int
	HistogramBins int
}

// RedisConfig enables the dataset cache when URL is set.
type RedisConfig struct {
	URL string
	TTL time.Duration
}

// LogConfig drives the global logger.
type LogConfig struct {
	Level  string
	Pretty bool
}

// AppConfig is the globally accessible configuration instance, populated once
// by LoadConfig.
var AppConfig Config

// LoadConfig initializes the global AppConfig.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env (if present; never overrides the real environment).
//  3. Environment variables.
//
// Fatal exit:
//   - If a value is missing or invalid, validateConfig() terminates the app
//     with a descriptive log message.
func LoadConfig() {
	_ = godotenv.Load() // ignore error if no .env

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("REQUEST_TIMEOUT", "10s")
	viper.SetDefault("RATE_LIMIT", 120)
	viper.SetDefault("CORS_ORIGINS", "*")

	viper.SetDefault("TASK_API_URL", "http://localhost:5000")
	viper.SetDefault("TASK_API_TIMEOUT", "10s")

	viper.SetDefault("NORMALIZE_POLICY", string(normalize.PolicySkip))
	viper.SetDefault("CHART_WIDTH", 800)
	viper.SetDefault("CHART_HEIGHT", 300)
	viper.SetDefault("HISTOGRAM_BINS", 10)

	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("CACHE_TTL", "10m")

	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_PRETTY", false)

	viper.AutomaticEnv()

	AppConfig = Config{
		Server: ServerConfig{
			Port:           viper.GetString("SERVER_PORT"),
			RequestTimeout: viper.GetDuration("REQUEST_TIMEOUT"),
			RateLimit:      viper.GetInt("RATE_LIMIT"),
			CORSOrigins:    splitList(viper.GetString("CORS_ORIGINS")),
		},
		TaskAPI: TaskAPIConfig{
			URL:     strings.TrimRight(viper.GetString("TASK_API_URL"), "/"),
			Timeout: viper.GetDuration("TASK_API_TIMEOUT"),
		},
		Dashboard: DashboardConfig{
			Policy:        policyValue(viper.GetString("NORMALIZE_POLICY")),
			ChartWidth:    viper.GetInt("CHART_WIDTH"),
			ChartHeight:   viper.GetInt("CHART_HEIGHT"),
			HistogramBins: viper.GetInt("HISTOGRAM_BINS"),
		},
		Redis: RedisConfig{
			URL: viper.GetString("REDIS_URL"),
			TTL: viper.GetDuration("CACHE_TTL"),
		},
		Log: LogConfig{
			Level:  viper.GetString("LOG_LEVEL"),
			Pretty: viper.GetBool("LOG_PRETTY"),
		},
	}

	validateConfig()
}

// policyValue returns the parsed policy, or the raw value when it does not
// parse so that Problems reports it.
func policyValue(raw string) normalize.Policy {
	if p, err := normalize.ParsePolicy(raw); err == nil {
		return p
	}
	return normalize.Policy(raw)
}

// validateConfig terminates the application with log.Fatalf when the
// configuration has problems.
func validateConfig() {
	if problems := AppConfig.Problems(); len(problems) > 0 {
		log.Fatalf("❌ Invalid configuration: %s\n", strings.Join(problems, "; "))
	}
}

// Problems lists every missing or invalid setting.
func (c Config) Problems() []string {
	var problems []string

	if c.Server.Port == "" {
		problems = append(problems, "SERVER_PORT is required")
	}
	if c.Server.RequestTimeout <= 0 {
		problems = append(problems, "REQUEST_TIMEOUT must be positive")
	}
	if c.TaskAPI.URL == "" {
		problems = append(problems, "TASK_API_URL is required")
	} else if u, err := url.Parse(c.TaskAPI.URL); err != nil || u.Scheme == "" || u.Host == "" {
		problems = append(problems, fmt.Sprintf("TASK_API_URL %q is not an absolute URL", c.TaskAPI.URL))
	}
	if c.TaskAPI.Timeout <= 0 {
		problems = append(problems, "TASK_API_TIMEOUT must be positive")
	}
	if _, err := normalize.ParsePolicy(string(c.Dashboard.Policy)); err != nil {
		problems = append(problems, "NORMALIZE_POLICY: "+err.Error())
	}
	if c.Dashboard.ChartWidth < 200 || c.Dashboard.ChartHeight < 150 {
		problems = append(problems, "CHART_WIDTH must be >= 200 and CHART_HEIGHT >= 150")
	}
	if c.Dashboard.HistogramBins < 1 {
		problems = append(problems, "HISTOGRAM_BINS must be at least 1")
	}
	if c.Redis.URL != "" && c.Redis.TTL < 0 {
		problems = append(problems, "CACHE_TTL must not be negative")
	}

	return problems
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
