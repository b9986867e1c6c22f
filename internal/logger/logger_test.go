package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitialize(t *testing.T) {
	tests := []struct {
		name       string
		jsonOutput bool
		verbose    bool
		wantLevel  zapcore.Level
	}{
		{name: "console", wantLevel: zapcore.InfoLevel},
		{name: "console verbose", verbose: true, wantLevel: zapcore.DebugLevel},
		{name: "json", jsonOutput: true, wantLevel: zapcore.InfoLevel},
		{name: "json verbose", jsonOutput: true, verbose: true, wantLevel: zapcore.DebugLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, Initialize(tt.jsonOutput, tt.verbose))
			assert.Equal(t, tt.jsonOutput, JSONOutput)
			assert.True(t, Desugar().Core().Enabled(tt.wantLevel))
			assert.False(t, Desugar().Core().Enabled(tt.wantLevel-1))
		})
	}
}

func TestHelpers(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := Logger
	t.Cleanup(func() { Logger = l })
	Logger = zap.New(core).Sugar()

	Debugw("package rendered", "package", "example.com/billing")
	Infow("file updated", "path", "dbtype_gen.go")
	Warnw("stale file")
	Errorw("check failed")
	Sync()

	require.Equal(t, 4, logs.Len())
	assert.Equal(t, "example.com/billing", logs.All()[0].ContextMap()["package"])
	assert.Equal(t, zapcore.ErrorLevel, logs.All()[3].Level)
}
