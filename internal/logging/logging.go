package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// SetupLogging builds the service logger and points the logrus standard
// logger at the same formatter and level. An unknown level falls back to info.
func SetupLogging(level string) *logrus.Logger {
	parsedLevel, err := logrus.ParseLevel(level)
	if err != nil {
		parsedLevel = logrus.InfoLevel
	}

	formatter := &logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyLevel: "loglevel",
		},
	}

	logger := logrus.Logger{
		Formatter: formatter,
		Out:       os.Stdout,
		Hooks:     make(logrus.LevelHooks),
		Level:     parsedLevel,
	}

	logrus.SetFormatter(formatter)
	logrus.SetLevel(parsedLevel)

	if err != nil {
		logger.WithError(err).Warn("Logging.SetupLogging.unknownLevel")
	}
	return &logger
}
