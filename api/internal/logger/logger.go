package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Logger writes JSON lines to stdout at info level until SetLevel is called.
var Logger = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02T15:04:05.000Z07:00"})
	return l
}

// SetLevel accepts debug|info|warn|error; anything else means info.
func SetLevel(level string) {
	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil || lvl > logrus.DebugLevel || lvl < logrus.ErrorLevel {
		lvl = logrus.InfoLevel
	}
	Logger.SetLevel(lvl)
}

func WithFields(fields logrus.Fields) *logrus.Entry { return Logger.WithFields(fields) }
func WithField(key string, v any) *logrus.Entry     { return Logger.WithField(key, v) }
func WithError(err error) *logrus.Entry             { return Logger.WithError(err) }

func Info(msg string) { Logger.Info(msg) }
func Warn(msg string) { Logger.Warn(msg) }

func Fatalf(format string, args ...any) { Logger.Fatalf(format, args...) }
