package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// This package wraps zerolog so every component logs structured JSON the same way.

// ---- Configuration ----

// Config selects level, destination and timestamp format.
type Config struct {
	Level      string `yaml:"level"`
	Debug      bool   `yaml:"debug"`
	Output     string `yaml:"output"`
	TimeFormat string `yaml:"time_format"`
}

// DefaultConfig is the built-in configuration; it does not read the environment.
func DefaultConfig() Config {
	return Config{Level: "info", Output: "stderr"}
}

// ApplyEnv overrides fields whose LOG_LEVEL, DEBUG, LOG_OUTPUT or LOG_TIME_FORMAT variable is set.
func (config Config) ApplyEnv() Config {
	config.Level = envOrDefault("LOG_LEVEL", config.Level)
	if _, ok := os.LookupEnv("DEBUG"); ok {
		config.Debug = envBool("DEBUG")
	}
	config.Output = envOrDefault("LOG_OUTPUT", config.Output)
	config.TimeFormat = envOrDefault("LOG_TIME_FORMAT", config.TimeFormat)
	return config
}

var globalLogger = zerolog.New(os.Stderr).With().Timestamp().Logger()

// ---- Setup ----

// Init replaces the global logger; the report goes to stdout so logs default to stderr.
func Init(config Config) error {
	var output io.Writer = os.Stderr
	if config.Output == "stdout" {
		output = os.Stdout
	}

	level := zerolog.InfoLevel
	if config.Debug {
		level = zerolog.DebugLevel
	} else if config.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(config.Level))
		if err != nil {
			return err
		}
		level = parsed
	}

	if config.TimeFormat != "" {
		zerolog.TimeFieldFormat = config.TimeFormat
	} else {
		zerolog.TimeFieldFormat = time.RFC3339
	}

	globalLogger = New(output, level)
	log.Logger = globalLogger
	return nil
}

// New builds a timestamped logger writing to output.
func New(output io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

// Get returns the current global logger.
func Get() zerolog.Logger {
	return globalLogger
}

// WithComponent tags log lines with the emitting component.
func WithComponent(component string) zerolog.Logger {
	return globalLogger.With().Str("component", component).Logger()
}

// ---- Env helpers ----

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envBool(key string) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
