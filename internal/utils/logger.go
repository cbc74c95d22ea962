package utils

import (
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

var logger = logrus.New()

// InitLogger configures the shared structured logger. Called once from main;
// tests can leave the defaults.
func InitLogger(level string) {
	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)
	logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
	})
}

// Log returns the shared logger instance.
func Log() *logrus.Logger {
	return logger
}

// LogEvent emits a standardized business event with module/action/request_id.
// Avoid logging sensitive payload; message should be summarized.
func LogEvent(requestID, module, action, message string) {
	logger.WithFields(logrus.Fields{
		"module":     strings.ToLower(module),
		"action":     action,
		"request_id": strings.TrimSpace(requestID),
	}).Info(message)
}
