package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config holds logging configuration
type Config struct {
	Level  string // trace, debug, info, warn, error, fatal, panic
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// DefaultConfig returns a sensible default logging configuration
func DefaultConfig() Config {
	return Config{
		Level:  "info",
		Format: "json",
		Output: "stdout",
	}
}

// Setup initializes the global logger with the provided configuration
func Setup(config Config) error {
	level, err := zerolog.ParseLevel(strings.ToLower(config.Level))
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(level)

	var output io.Writer
	switch config.Output {
	case "stdout", "":
		output = os.Stdout
	case "stderr":
		output = os.Stderr
	default:
		file, err := os.OpenFile(config.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return err
		}
		output = file
	}

	if strings.ToLower(config.Format) == "console" {
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.RFC3339,
		}
	}

	log.Logger = zerolog.New(output).With().
		Timestamp().
		Logger()

	return nil
}

// WithComponent returns a logger tagged with a component name
func WithComponent(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}
