package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/heroiclabs/nakama-common/runtime"
	"github.com/rs/zerolog"
)

const (
	MatchIDKey = "matchID"
	SeatKey    = "seat"
	UserIDKey  = "userID"
	RoundKey   = "round"
)

func IsColorLoggingEnabled() bool {
	v := os.Getenv("COLORIZE_LOG")
	if v == "" {
		return true
	}
	return v == "1" || strings.ToLower(v) == "true"
}

// GetZeroLogger returns a console logger tagged with name. A nil out writes to stdout.
func GetZeroLogger(name string, out io.Writer) *zerolog.Logger {
	if out == nil {
		out = os.Stdout
	}
	output := zerolog.ConsoleWriter{Out: out, NoColor: !IsColorLoggingEnabled(), TimeFormat: time.RFC3339}
	logger := zerolog.New(output).With().Timestamp().Str("logger", name).Logger()
	return &logger
}

// RuntimeLogger adapts a zerolog.Logger to runtime.Logger so the game code can run outside
// of a Nakama process (simulations, tests).
type RuntimeLogger struct {
	zl     zerolog.Logger
	fields map[string]interface{}
}

var _ runtime.Logger = (*RuntimeLogger)(nil)

// NewRuntimeLogger wraps zl.
func NewRuntimeLogger(zl zerolog.Logger) *RuntimeLogger {
	return &RuntimeLogger{zl: zl, fields: map[string]interface{}{}}
}

// Nop returns a logger that discards everything.
func Nop() *RuntimeLogger {
	return NewRuntimeLogger(zerolog.Nop())
}

func (l *RuntimeLogger) Debug(format string, v ...interface{}) { l.zl.Debug().Msgf(format, v...) }
func (l *RuntimeLogger) Info(format string, v ...interface{})  { l.zl.Info().Msgf(format, v...) }
func (l *RuntimeLogger) Warn(format string, v ...interface{})  { l.zl.Warn().Msgf(format, v...) }
func (l *RuntimeLogger) Error(format string, v ...interface{}) { l.zl.Error().Msgf(format, v...) }

func (l *RuntimeLogger) WithField(key string, v interface{}) runtime.Logger {
	return l.WithFields(map[string]interface{}{key: v})
}

func (l *RuntimeLogger) WithFields(fields map[string]interface{}) runtime.Logger {
	merged := make(map[string]interface{}, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &RuntimeLogger{zl: l.zl.With().Fields(fields).Logger(), fields: merged}
}

func (l *RuntimeLogger) Fields() map[string]interface{} {
	return l.fields
}
