package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// New builds the process logger and installs it as the global zerolog logger.
//
// The level parameter can be one of: trace, debug, info, warn, error, fatal.
// When pretty is set, output goes through a human-readable console writer
// instead of JSON.
func New(level string, pretty bool) (zerolog.Logger, error) {
	var w io.Writer = os.Stdout
	if pretty {
		w = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.DateTime}
	}
	return NewWithWriter(w, level)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(w io.Writer, level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Logger{}, err
	}

	l := zerolog.New(w).
		With().
		Timestamp().
		Logger().
		Level(lvl)

	log.Logger = l
	zerolog.DefaultContextLogger = &l

	return l, nil
}
