package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name      string
		debug     bool
		levelName string
		wantInfo  bool
		wantWarn  bool
		wantDebug bool
	}{
		{name: "default is warn", wantWarn: true},
		{name: "debug flag", debug: true, wantInfo: true, wantWarn: true, wantDebug: true},
		{name: "env info", levelName: "INFO", wantInfo: true, wantWarn: true},
		{name: "env error", levelName: "error"},
		{name: "env warning alias", levelName: "Warning", wantWarn: true},
		{name: "unknown keeps default", levelName: "loud", wantWarn: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := newLogger(&buf, tt.debug, tt.levelName)

			log.Debug("debug-line")
			log.Info("info-line")
			log.Warn("warn-line")

			out := buf.String()
			assert.Equal(t, tt.wantDebug, bytes.Contains([]byte(out), []byte("debug-line")))
			assert.Equal(t, tt.wantInfo, bytes.Contains([]byte(out), []byte("info-line")))
			assert.Equal(t, tt.wantWarn, bytes.Contains([]byte(out), []byte("warn-line")))
			assert.NotContains(t, out, "time=")
		})
	}
}

func TestSourcePath(t *testing.T) {
	assert.Equal(t, "internal/usecase/session.go", sourcePath("/home/dev/src/weightvote-cli/internal/usecase/session.go"))
	assert.Equal(t, "internal/cli/root.go", sourcePath("/build/internal/cli/root.go"))
	assert.Equal(t, "cli/main.go", sourcePath("/go/pkg/mod/weightvote-cli@v0.1.0/cli/main.go"))
}

func TestDebugAddsSource(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, true, "").Debug("with-source")
	assert.Contains(t, buf.String(), "source=internal/logging/logger_test.go:")
}
