package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestDebugSwitch(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(zapcore.AddSync(&buf))
	t.Cleanup(func() {
		SetDebug(false)
		SetOutput(zapcore.AddSync(os.Stderr))
	})

	Debug("hidden %d", 1)
	assert.Empty(t, buf.String())

	SetDebug(true)
	Debug("visible %d", 2)
	assert.Contains(t, buf.String(), "visible 2")
	assert.Contains(t, buf.String(), `"level":"debug"`)
}

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(zapcore.AddSync(&buf))
	t.Cleanup(func() { SetOutput(zapcore.AddSync(os.Stderr)) })

	Info("info %s", "a")
	Warn("warn %s", "b")
	Error("error %s", "c")

	out := buf.String()
	assert.Contains(t, out, "info a")
	assert.Contains(t, out, "warn b")
	assert.Contains(t, out, "error c")
}
