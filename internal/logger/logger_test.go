package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogLevels(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{DebugLevel, "DEBUG"},
		{InfoLevel, "INFO"},
		{WarnLevel, "WARN"},
		{ErrorLevel, "ERROR"},
		{FatalLevel, "FATAL"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.level.String())
		})
	}
}

func TestStructuredLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&buf, WarnLevel)

	log.Debug("debug message")
	assert.Empty(t, buf.String(), "debug should be filtered at warn level")

	log.Info("info message")
	assert.Empty(t, buf.String(), "info should be filtered at warn level")

	log.Warn("warn message")
	assert.NotEmpty(t, buf.String(), "warn should be logged at warn level")
}

func TestStructuredLoggerFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&buf, InfoLevel)

	log.Info("test message",
		String("app_id", "f911842b-5b3d-4c59-b5d1-4adb8f71557b"),
		Int("status", 200),
		Error(errors.New("boom")),
	)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "test message", entry["message"])
	assert.Equal(t, "f911842b-5b3d-4c59-b5d1-4adb8f71557b", entry["app_id"])
	assert.Equal(t, float64(200), entry["status"])
	assert.Equal(t, "boom", entry["error"])
	assert.NotNil(t, entry["timestamp"])
	assert.NotNil(t, entry["caller"])
}

func TestNewDefaultLoggerHonorsEnvLevel(t *testing.T) {
	t.Setenv("TSAR_LOG_LEVEL", "DEBUG")
	log := NewDefaultLogger()
	assert.Equal(t, DebugLevel, log.level)
}

func TestNewNopDiscardsEverything(t *testing.T) {
	log := NewNop()
	log.Debug("should not appear")
	log.Info("should not appear")
	log.Warn("should not appear")
}

func TestFieldConstructors(t *testing.T) {
	t.Run("StringField", func(t *testing.T) {
		field := String("key", "value")
		assert.Equal(t, "key", field.Key)
		assert.Equal(t, "value", field.Value)
	})

	t.Run("IntField", func(t *testing.T) {
		field := Int("count", 42)
		assert.Equal(t, "count", field.Key)
		assert.Equal(t, 42, field.Value)
	})

	t.Run("ErrorField", func(t *testing.T) {
		err := errors.New("test error")
		field := Error(err)
		assert.Equal(t, "error", field.Key)
		assert.Equal(t, "test error", field.Value)

		field = Error(nil)
		assert.Equal(t, "error", field.Key)
		assert.Nil(t, field.Value)
	})
}
