package logger

import (
	"testing"

	"github.com/sirupsen/logrus"
)

func TestSetLevel(t *testing.T) {
	t.Cleanup(func() { Logger.SetLevel(logrus.InfoLevel) })
	cases := map[string]logrus.Level{
		"debug":   logrus.DebugLevel,
		" WARN ":  logrus.WarnLevel,
		"warning": logrus.WarnLevel,
		"error":   logrus.ErrorLevel,
		"trace":   logrus.InfoLevel,
		"bogus":   logrus.InfoLevel,
		"panic":   logrus.InfoLevel,
		"":        logrus.InfoLevel,
	}
	for in, want := range cases {
		SetLevel(in)
		if got := Logger.GetLevel(); got != want {
			t.Errorf("SetLevel(%q) -> %s, want %s", in, got, want)
		}
	}
}
