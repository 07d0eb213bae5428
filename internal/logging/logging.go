package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

const permission = 0644

// Logger pairs a zerolog logger with the file it writes to, if any
type Logger struct {
	zerolog.Logger
	file *os.File
}

// Options controls where and how much is logged
type Options struct {
	Path   string    // log file; takes precedence over Writer
	Writer io.Writer // used when Path is empty; nil discards output
	Level  string    // zerolog level name, "" means info
}

// New builds a timestamped JSON logger.
// The terminal belongs to the UI, so output goes to a file or an explicit writer only.
func New(opts Options) (*Logger, error) {
	level := zerolog.InfoLevel
	if opts.Level != "" {
		parsed, err := zerolog.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
		level = parsed
	}

	l := &Logger{}
	writer := opts.Writer
	if opts.Path != "" {
		if err := os.MkdirAll(filepath.Dir(opts.Path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		file, err := os.OpenFile(opts.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, permission)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		l.file = file
		writer = zerolog.SyncWriter(file)
	}
	if writer == nil {
		writer = io.Discard
	}

	l.Logger = zerolog.New(writer).Level(level).With().Timestamp().Logger()
	return l, nil
}

// Close closes the log file
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}
