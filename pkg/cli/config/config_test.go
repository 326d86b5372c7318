package config_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/md5calc/pkg/cli/config"
)

func TestDigest_Validate(t *testing.T) {
	tests := []struct {
		name        string
		maxParallel int
		wantErr     bool
	}{
		{name: "unlimited", maxParallel: 0},
		{name: "bounded", maxParallel: 4},
		{name: "negative", maxParallel: -1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Digest{MaxParallel: tt.maxParallel}
			err := cfg.Validate()
			if tt.wantErr {
				gt.Error(t, err)
			} else {
				gt.NoError(t, err)
			}
		})
	}
}

func TestSentry_Configure_Disabled(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	cfg := &config.Sentry{}
	gt.NoError(t, cfg.Configure(logger))
	gt.String(t, buf.String()).Contains("Sentry is disabled")
}

func TestServer_Flags(t *testing.T) {
	cfg := &config.Server{}
	flags := cfg.Flags()

	names := map[string]bool{}
	for _, f := range flags {
		names[f.Names()[0]] = true
	}
	gt.True(t, names["addr"])
	gt.True(t, names["max-upload-memory"])
}
