package logger_test

import (
	"bytes"
	"errors"
	"io"
	"log"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/typed/logger"
)

var (
	logLevelRegexp = regexp.MustCompile(`\[[A-Z]+\]`)
	fpRegexp       = regexp.MustCompile(`logger/logger_test\.go:\d+`)
	msgRegexp      = regexp.MustCompile(`'(.*)'`)
)

func newTestLogger(w io.Writer) *log.Logger {
	return log.New(w, "", 0)
}

func TestNewLogLevel(t *testing.T) {
	for _, tc := range []struct {
		val      string
		expected logger.LogLevel
	}{
		{"DEBUG", logger.LogLevelDebug},
		{"INFO", logger.LogLevelInfo},
		{"WARN", logger.LogLevelWarn},
		{"ERROR", logger.LogLevelError},
		{"FATAL", logger.LogLevelFatal},
		{"debug", logger.LogLevelUnk},
		{"", logger.LogLevelUnk},
	} {
		t.Run(tc.val, func(t *testing.T) {
			require.Equal(t, tc.expected, logger.NewLogLevel(tc.val))
		})
	}
}

func TestColorLogger(t *testing.T) {
	for _, tc := range []struct {
		name  string
		level logger.LogLevel
		fn    func(l logger.Logger, msg string)
		tag   string
		ok    bool
	}{
		{"Debug", logger.LogLevelDebug, func(l logger.Logger, msg string) { l.Debug(msg, nil) }, "[DEBUG]", true},
		{"Debug-Filtered", logger.LogLevelInfo, func(l logger.Logger, msg string) { l.Debug(msg, nil) }, "", false},
		{"Info", logger.LogLevelInfo, func(l logger.Logger, msg string) { l.Info(msg, nil) }, "[INFO]", true},
		{"Warn", logger.LogLevelInfo, func(l logger.Logger, msg string) { l.Warn(msg, nil) }, "[WARN]", true},
		{"Warn-Filtered", logger.LogLevelError, func(l logger.Logger, msg string) { l.Warn(msg, nil) }, "", false},
		{"Error", logger.LogLevelError, func(l logger.Logger, msg string) { l.Error(msg, nil) }, "[ERROR]", true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			b := new(bytes.Buffer)
			l := logger.NewColorLogger(logger.WithLevel(tc.level), logger.WithLogger(newTestLogger(b)))

			// Act
			tc.fn(l, "such fun")

			// Assert
			if !tc.ok {
				require.Zero(t, b.Len())
				return
			}

			out := b.String()
			require.Equal(t, tc.tag, logLevelRegexp.FindString(out))
			require.Equal(t, "such fun", msgRegexp.FindStringSubmatch(out)[1])
		})
	}
}

func TestColorLoggerCaller(t *testing.T) {
	// Arrange
	b := new(bytes.Buffer)
	l := logger.NewColorLogger(logger.WithLogger(newTestLogger(b)))

	// Act
	l.Info("where am i", nil)

	// Assert
	require.Regexp(t, fpRegexp, b.String())

	// Arrange
	b.Reset()

	// Act
	l.Info("somewhere else", &logger.LogContext{Caller: "elsewhere.go:1", Error: errors.New("oops")})

	// Assert
	require.Contains(t, b.String(), "elsewhere.go:1")
	require.Contains(t, b.String(), `log_context: {"error":"oops"}`)
}

func TestColorLoggerAddSkip(t *testing.T) {
	// Arrange
	l := logger.NewColorLogger(logger.WithSkip(1))

	// Act
	actual := l.AddSkip(3)

	// Assert
	require.Equal(t, 1, l.Skip())
	require.Equal(t, 3, actual.Skip())
}
