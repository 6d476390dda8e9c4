package utils

import (
	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// SetupLogger configures the standard logrus logger: JSON in production, text otherwise
// An unknown level falls back to info
func SetupLogger(isProd bool, level string) {
	if isProd {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.WithField("level", level).Warn("Unknown log level, using info")
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)
}
