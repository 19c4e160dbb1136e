package logger

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name   string
		cfg    Config
		debug  bool
		errors bool
	}{
		{"Debug console", Config{Level: "debug", Format: "console"}, true, true},
		{"Info json", Config{Level: "info", Format: "json"}, false, true},
		{"Error console", Config{Level: "error", Format: "console"}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(&tt.cfg)
			assert.NoError(t, err)
			assert.NotNil(t, l)
			assert.Equal(t, tt.debug, l.Core().Enabled(zapcore.DebugLevel))
			assert.Equal(t, tt.errors, l.Core().Enabled(zapcore.ErrorLevel))
		})
	}
}

func TestNewRunID(t *testing.T) {
	id := NewRunID()
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
	assert.NotEqual(t, id, NewRunID())
}

// TestWithRunID tests that the run_id field is attached to every entry.
func TestWithRunID(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := WithRunID(zap.New(core), "run-1")

	l.Info("hello")

	entries := logs.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, "run-1", entries[0].ContextMap()["run_id"])

	assert.Same(t, l, WithRunID(l, ""))
}
