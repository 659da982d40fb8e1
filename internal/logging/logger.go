package logging

import (
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/wire"
	"github.com/weightvote/weightvote-cli/internal/domain/config"
)

// LevelEnv selects the log level: debug, info, warn or error
const LevelEnv = "WVOTE_LOG_LEVEL"

var LoggingSet = wire.NewSet(
	NewLogger,
)

var levelNames = map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

// NewLogger writes to stderr. Warnings and errors only, unless --debug or
// WVOTE_LOG_LEVEL says otherwise.
func NewLogger(cfg *config.RuntimeConfig) *slog.Logger {
	return newLogger(os.Stderr, cfg.Debug, os.Getenv(LevelEnv))
}

func newLogger(w io.Writer, debug bool, levelName string) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	if l, ok := levelNames[strings.ToLower(levelName)]; ok {
		level = l
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:       level,
		AddSource:   debug,
		ReplaceAttr: dropTime,
	}))
}

func dropTime(_ []string, a slog.Attr) slog.Attr {
	switch a.Key {
	case slog.TimeKey:
		return slog.Attr{}
	case slog.SourceKey:
		if src, ok := a.Value.Any().(*slog.Source); ok {
			src.File = sourcePath(src.File)
		}
	}
	return a
}

// sourcePath keeps the part of a source file path below the module root
func sourcePath(file string) string {
	file = filepath.ToSlash(file)
	if _, rel, ok := strings.Cut(file, "/internal/"); ok {
		return "internal/" + rel
	}
	return path.Join(path.Base(path.Dir(file)), path.Base(file))
}
