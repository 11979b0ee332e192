// Package logging holds the logger shared by the readelf packages.
package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

const DefaultLogLevel = logrus.InfoLevel

// DefaultLogger writes text records to stderr. Packages derive their own
// entry from it with a LogSubsys field.
var DefaultLogger = initializeDefaultLogger()

func initializeDefaultLogger() *logrus.Logger {
	logger := logrus.New()
	logger.Out = os.Stderr
	logger.SetLevel(DefaultLogLevel)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	return logger
}

// ToggleDebugLogs switches DefaultLogger between debug and the default level.
func ToggleDebugLogs(debug bool) {
	if debug {
		DefaultLogger.SetLevel(logrus.DebugLevel)
	} else {
		DefaultLogger.SetLevel(DefaultLogLevel)
	}
}
