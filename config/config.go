package config

import (
	"log/slog"
	"os"
	"strconv"
)

const (
	EnvDevelopment = "DEV"
	EnvProduction  = "PROD"
)

const (
	// RunModeSchedule keeps the process alive and runs digests on Schedule.
	RunModeSchedule = "schedule"
	// RunModeOnce runs a single digest pass and exits.
	RunModeOnce = "once"
)

const (
	DefaultSchedule = "0 0 10 * * *"
	DefaultSMTPPort = 587
	DefaultHTTPAddr = ":8080"
)

type AppConfig struct {
	Endpoint       string // content API base URL, used as a prefix
	APIKey         string
	Schedule       string // cron expression, seconds field optional
	Sender         string
	SMTPHost       string
	SMTPPort       int
	SMTPUser       string
	SMTPPassword   string
	ProxyURL       string
	RunMode        string // RunModeSchedule or RunModeOnce
	HTTPAddr       string
	PushgatewayURL string
	TriggerKey     string // required in x-api-key for POST /run
	AppEnv         string // EnvDevelopment or EnvProduction
	LogLevel       slog.Level
}

// Load reads the configuration from the environment. Missing connection
// settings are reported but not enforced; they fail later when used.
func Load() AppConfig {
	cfg := AppConfig{}

	cfg.AppEnv = os.Getenv("APP_ENV")
	cfg.Endpoint = loadExpected("ENDPOINT")
	cfg.APIKey = loadExpected("KEY")
	cfg.Sender = loadExpected("SENDER")
	cfg.SMTPHost = loadExpected("SMTP_SERVER")
	cfg.SMTPUser = loadExpected("SMTP_USER")
	cfg.SMTPPassword = loadExpected("SMTP_PWD")
	cfg.ProxyURL = os.Getenv("PROXY_URL")
	cfg.PushgatewayURL = os.Getenv("PUSHGATEWAY_URL")
	cfg.TriggerKey = os.Getenv("TRIGGER_KEY")
	if cfg.TriggerKey == "" {
		slog.Warn("TRIGGER_KEY not set, manual trigger disabled")
	}
	cfg.HTTPAddr = loadOptional("HTTP_ADDR", DefaultHTTPAddr)
	cfg.Schedule = loadOptional("DIGESTS_SCHEDULE", loadOptional("DIGESTS_NCRON", DefaultSchedule))

	cfg.RunMode = loadOptional("RUN_MODE", RunModeSchedule)
	if cfg.RunMode != RunModeSchedule && cfg.RunMode != RunModeOnce {
		slog.Warn("Invalid RUN_MODE, using default", "value", cfg.RunMode, "default", RunModeSchedule)
		cfg.RunMode = RunModeSchedule
	}

	port, err := strconv.Atoi(loadOptional("SMTP_PORT", strconv.Itoa(DefaultSMTPPort)))
	if err != nil || port <= 0 {
		slog.Warn("Invalid SMTP_PORT, using default", "default", DefaultSMTPPort)
		port = DefaultSMTPPort
	}
	cfg.SMTPPort = port

	lvlString := loadOptional("LOG_LEVEL", "INFO")
	cfg.LogLevel, err = parseLogLevel(lvlString)
	if err != nil {
		slog.Error("Invalid LOG_LEVEL", "error", err)
		cfg.LogLevel = slog.LevelInfo
	}

	return cfg
}

func parseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	var err = level.UnmarshalText([]byte(s))
	return level, err
}

func loadExpected(key string) string {
	value := os.Getenv(key)
	if value == "" {
		slog.Warn("Expected env var not set", "key", key)
	}
	return value
}

func loadOptional(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func (c AppConfig) IsProduction() bool {
	return c.AppEnv == EnvProduction
}
