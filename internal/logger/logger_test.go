package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_FormatAutoDetection(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		wantJSON    bool
	}{
		{name: "production uses json", environment: "production", wantJSON: true},
		{name: "development uses pretty", environment: "development"},
		{name: "test uses pretty", environment: "test"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := New(Config{Level: slog.LevelInfo, Environment: tt.environment, Writer: &buf})
			log.Info("catalog ready")

			if tt.wantJSON {
				assert.Contains(t, buf.String(), `"msg":"catalog ready"`)
			} else {
				assert.Contains(t, buf.String(), colorBold+"catalog ready"+colorReset)
			}
		})
	}
}

func TestNew_ExplicitFormatWins(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Format: "json", Environment: "development", Writer: &buf})
	log.Info("x")

	assert.Contains(t, buf.String(), `"msg":"x"`)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"nonsense", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.input))
		})
	}
}

func TestPrettyHandler_Handle(t *testing.T) {
	var buf bytes.Buffer
	h := NewPrettyHandler(&buf, nil)

	r := slog.NewRecord(time.Date(2024, 1, 2, 13, 14, 15, 0, time.UTC), slog.LevelWarn, "slow store", 0)
	r.AddAttrs(slog.Duration("took", 2*time.Second), slog.Int("items", 3))
	require.NoError(t, h.Handle(context.Background(), r))

	out := buf.String()
	assert.Contains(t, out, "13:14:15")
	assert.Contains(t, out, "WRN")
	assert.Contains(t, out, "slow store")
	assert.Contains(t, out, "took=2s")
	assert.Contains(t, out, "items=3")
}

func TestPrettyHandler_Enabled(t *testing.T) {
	h := NewPrettyHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn})

	assert.False(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, h.Enabled(context.Background(), slog.LevelError))
}

func TestPrettyHandler_WithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewPrettyHandler(&buf, nil)).
		With("component", "store").
		WithGroup("book").
		With("id", "book-1")

	log.Info("replaced", "seq", 4)

	out := buf.String()
	assert.Contains(t, out, "component=store")
	assert.Contains(t, out, "book.id=book-1")
	assert.Contains(t, out, "book.seq=4")
}

func TestLogger_Helpers(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Format: "json", Writer: &buf})

	log.WithComponent("api").WithError(errors.New("disk gone")).WithField("kind", "book").Error("list failed")

	out := buf.String()
	assert.Contains(t, out, `"component":"api"`)
	assert.Contains(t, out, `"error":"disk gone"`)
	assert.Contains(t, out, `"kind":"book"`)
}

func TestContext(t *testing.T) {
	base := Discard()
	tagged := base.WithField("request_id", "r-1")

	ctx := NewContext(context.Background(), tagged)

	assert.Same(t, tagged, FromContext(ctx, base))
	assert.Same(t, base, FromContext(context.Background(), base))
}
