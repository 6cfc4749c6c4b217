package logging

import (
	"io"
	"log/slog"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logFileMaxSizeMB  = 15
	logFileMaxBackups = 3
	logFileMaxAgeDays = 28
)

// New builds a JSON logger. Records go to a rotated file when path is set,
// otherwise to fallback. The returned closer releases the file.
func New(path string, level slog.Level, fallback io.Writer) (*slog.Logger, io.Closer) {
	w := fallback
	var closer io.Closer = nopCloser{}

	if path != "" {
		file := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    logFileMaxSizeMB,
			MaxBackups: logFileMaxBackups,
			MaxAge:     logFileMaxAgeDays,
			Compress:   true,
		}
		w = file
		closer = file
	}

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})

	return slog.New(handler), closer
}

type nopCloser struct{}

func (nopCloser) Close() error {
	return nil
}
