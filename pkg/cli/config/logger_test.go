package config_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/md5calc/pkg/cli/config"
)

func TestLogger_Configure(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		wantErr bool
	}{
		{name: "Valid level: debug", level: "debug"},
		{name: "Valid level: DEBUG (case insensitive)", level: "DEBUG"},
		{name: "Valid level: info", level: "info"},
		{name: "Valid level: INFO", level: "INFO"},
		{name: "Valid level: warn", level: "warn"},
		{name: "Valid level: WARN", level: "WARN"},
		{name: "Valid level: error", level: "error"},
		{name: "Valid level: ERROR", level: "ERROR"},
		{name: "Invalid level: invalid", level: "invalid", wantErr: true},
		{name: "Invalid level: empty string", level: "", wantErr: true},
		{name: "Invalid level: random", level: "random", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := &config.Logger{
				Level:  tt.level,
				Format: "console",
			}
			logger.SetWriter(&bytes.Buffer{})

			result, err := logger.Configure()
			if tt.wantErr {
				gt.Error(t, err)
				return
			}

			gt.NoError(t, err)
			gt.Value(t, result).NotNil()
		})
	}
}

func TestLogger_Configure_Format(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		wantErr bool
	}{
		{name: "console format", format: "console"},
		{name: "default format", format: ""},
		{name: "JSON format", format: "json"},
		{name: "unknown format", format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := &config.Logger{
				Level:  "info",
				Format: tt.format,
			}
			logger.SetWriter(&buf)

			result, err := logger.Configure()
			if tt.wantErr {
				gt.Error(t, err)
				return
			}
			gt.NoError(t, err)

			result.Info("test log message")
			gt.True(t, strings.Contains(buf.String(), "test log message"))
		})
	}
}

func TestLogger_Configure_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := &config.Logger{
		Level:  "warn",
		Format: "json",
	}
	logger.SetWriter(&buf)

	result, err := logger.Configure()
	gt.NoError(t, err)

	result.Info("info message")
	result.Warn("warn message")

	gt.False(t, strings.Contains(buf.String(), "info message"))
	gt.True(t, strings.Contains(buf.String(), "warn message"))
}

func TestLogger_Configure_RedactSecret(t *testing.T) {
	var buf bytes.Buffer
	logger := &config.Logger{
		Level:  "info",
		Format: "json",
	}
	logger.SetWriter(&buf)

	result, err := logger.Configure()
	gt.NoError(t, err)

	sentryCfg := &config.Sentry{
		DSN: "https://public@sentry.example.com/1",
		Env: "test",
	}
	result.Info("config", slog.Any("sentry", sentryCfg))

	gt.False(t, strings.Contains(buf.String(), "sentry.example.com"))
	gt.True(t, strings.Contains(buf.String(), "test"))
}

func TestLogger_Flags(t *testing.T) {
	logger := &config.Logger{}
	flags := logger.Flags()

	gt.Array(t, flags).Length(2)

	flagNames := make(map[string]bool)
	for _, flag := range flags {
		names := flag.Names()
		if len(names) > 0 {
			flagNames[names[0]] = true
		}
	}

	gt.True(t, flagNames["log-level"])
	gt.True(t, flagNames["log-format"])
}
