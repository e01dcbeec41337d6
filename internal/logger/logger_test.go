package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestInit(t *testing.T) {
	tests := []struct {
		name          string
		level         string
		expectedError bool
		expectedLevel zapcore.Level
	}{
		{name: "info", level: "info", expectedLevel: zapcore.InfoLevel},
		{name: "debug", level: "debug", expectedLevel: zapcore.DebugLevel},
		{name: "error", level: "error", expectedLevel: zapcore.ErrorLevel},
		{name: "invalid level", level: "loud", expectedError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Init(tt.level)
			if tt.expectedError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, Logger.Core().Enabled(tt.expectedLevel))
			assert.False(t, Logger.Core().Enabled(tt.expectedLevel-1))
		})
	}
}
