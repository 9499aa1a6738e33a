// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		verbose  bool
		enabled  []zapcore.Level
		disabled []zapcore.Level
	}{
		{
			name:     "quiet",
			enabled:  []zapcore.Level{zapcore.WarnLevel, zapcore.ErrorLevel},
			disabled: []zapcore.Level{zapcore.DebugLevel, zapcore.InfoLevel},
		},
		{
			name:    "verbose",
			verbose: true,
			enabled: []zapcore.Level{zapcore.DebugLevel, zapcore.InfoLevel, zapcore.WarnLevel},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := New(tt.verbose)
			require.NoError(t, err)
			for _, lvl := range tt.enabled {
				assert.True(t, log.Core().Enabled(lvl), "%s should be enabled", lvl)
			}
			for _, lvl := range tt.disabled {
				assert.False(t, log.Core().Enabled(lvl), "%s should be disabled", lvl)
			}
		})
	}
}
