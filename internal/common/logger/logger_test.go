package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		level    string
		expected zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"INFO", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
		{"verbose", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			l, err := New(Options{Level: tt.level, Format: "json"})
			require.NoError(t, err)
			assert.True(t, l.Core().Enabled(tt.expected))
			if tt.expected > zapcore.DebugLevel {
				assert.False(t, l.Core().Enabled(tt.expected-1))
			}
		})
	}
}

func TestNew_BadOutputPath(t *testing.T) {
	_, err := New(Options{Level: "info", OutputPaths: []string{"/nonexistent-dir/out.log"}})
	assert.Error(t, err)

	l := NewStructured(Options{Level: "info", OutputPaths: []string{"/nonexistent-dir/out.log"}})
	assert.NotNil(t, l)
	l.Info("dropped", nil)
}

func TestZapWrapper_Fields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewZapAdapter(zap.New(core)).WithFields(map[string]interface{}{"taskType": "evaluate-eligibility"})

	log.WithError(errors.New("boom")).Warn("lookup failed", map[string]interface{}{
		"applicantId": "A-1",
		"cause":       errors.New("timeout"),
	})
	log.Debug("scored", map[string]interface{}{"approvalProbability": 48})

	require.Equal(t, 2, logs.Len())

	first := logs.All()[0]
	assert.Equal(t, zapcore.WarnLevel, first.Level)
	ctx := first.ContextMap()
	assert.Equal(t, "evaluate-eligibility", ctx["taskType"])
	assert.Equal(t, "A-1", ctx["applicantId"])
	assert.Equal(t, "boom", ctx["error"])
	assert.Equal(t, "timeout", ctx["cause"])

	second := logs.All()[1]
	assert.Equal(t, int64(48), second.ContextMap()["approvalProbability"])
}

func TestNoOpLogger(t *testing.T) {
	l := NewNoOpLogger()
	assert.NotPanics(t, func() {
		l.WithFields(nil).WithError(errors.New("x")).Error("nothing", nil)
	})
}
