package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew_Modes(t *testing.T) {
	dev, err := New("dev")
	require.NoError(t, err)
	assert.True(t, dev.SugaredLogger.Desugar().Core().Enabled(zapcore.DebugLevel))

	prod, err := New("PROD")
	require.NoError(t, err)
	assert.False(t, prod.SugaredLogger.Desugar().Core().Enabled(zapcore.DebugLevel))
	assert.True(t, prod.SugaredLogger.Desugar().Core().Enabled(zapcore.InfoLevel))
}

func TestNop_With(t *testing.T) {
	l := Nop().With("design", "North Pit")
	assert.NotPanics(t, func() {
		l.Info("designed", "holes", 12)
		l.Warn("layout limited", "shown", 50)
		l.Sync()
	})
}
