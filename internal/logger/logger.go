package logger

import (
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

const (
	FormatPretty = "pretty"
	FormatJSON   = "json"
)

var levels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// ValidLevels lists the accepted level names, sorted
var ValidLevels = strings.Join(slices.Sorted(maps.Keys(levels)), "|")

type Options struct {
	Level      string    // debug|error|info|warn
	Format     string    // pretty (default) or json
	Writer     io.Writer // default: os.Stdout
	TimeFormat string    // pretty only, default time.DateTime
}

// ParseLevel maps a level name to its slog level
func ParseLevel(name string) (slog.Level, error) {
	level, ok := levels[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("invalid log level: %s. Valid log levels are: %s", name, ValidLevels)
	}
	return level, nil
}

// New builds the process logger. It is passed explicitly to components
// rather than looked up globally.
func New(opts Options) (*slog.Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	writer := opts.Writer
	if writer == nil {
		writer = os.Stdout
	}

	var handler slog.Handler
	switch strings.ToLower(opts.Format) {
	case "", FormatPretty:
		timeFormat := opts.TimeFormat
		if timeFormat == "" {
			timeFormat = time.DateTime
		}
		handler = tint.NewHandler(writer, &tint.Options{
			Level:      level,
			TimeFormat: timeFormat,
			NoColor:    !isTerminal(writer),
		})
	case FormatJSON:
		handler = slog.NewJSONHandler(writer, &slog.HandlerOptions{Level: level})
	default:
		return nil, fmt.Errorf("invalid log format: %s. Valid log formats are: %s|%s", opts.Format, FormatJSON, FormatPretty)
	}

	return slog.New(handler), nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
