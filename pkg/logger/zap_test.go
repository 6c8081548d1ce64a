package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("warn"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("nonsense"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel(""))
}

func TestNewZapLogger(t *testing.T) {
	for _, cfg := range []*ZapLoggerConfig{
		{IsDevelopment: true, Encoding: "console", Level: "debug"},
		{Encoding: "json", Level: "info", DisableCaller: true, DisableStacktrace: true},
	} {
		l := NewZapLogger(cfg)
		assert.NotNil(t, l)
		l.With(zap.String("component", "test")).Debug("hello")
	}
}

func TestNop(t *testing.T) {
	l := NewNop()
	l.Info("discarded", zap.Int("n", 1))
	assert.NoError(t, l.Sync())
}
