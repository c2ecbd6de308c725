package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerLevelAndFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, zerolog.InfoLevel).With(String("component", "opensea"))

	l.Debug("hidden")
	l.Info("fetched", Int("status", 200), Float64("floor", 12.5), Duration("took", time.Second))
	l.Error("failed", Error(errors.New("boom")))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var first map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "fetched", first["message"])
	assert.Equal(t, "opensea", first["component"])
	assert.Equal(t, 200.0, first["status"])
	assert.Equal(t, 12.5, first["floor"])

	var second map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.Equal(t, "boom", second["error"])
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(&Config{Level: "loud"})
	assert.Error(t, err)

	l, err := New(&Config{Level: "WARN", Format: "console", Output: "stderr", NoColor: true})
	require.NoError(t, err)
	assert.NotNil(t, l)
}

func TestCollectWarnOptIn(t *testing.T) {
	pub := &capturePublisher{}
	l := NewNop()
	l.AddCollector(&CollectionConfig{TimeInterval: time.Hour, CountThreshold: 10, Publisher: pub, CollectWarn: true})

	l.Warn("redis unavailable")
	l.Info("ignored")
	assert.Equal(t, 1, l.collector().Pending())

	l.RemoveCollector()
	entries := pub.all()
	require.Len(t, entries, 1)
	assert.Equal(t, "warn", entries[0].Level)
	assert.Contains(t, entries[0].Caller, "logger_test.go")
}
