// SPDX-License-Identifier: EPL-2.0

// Package logging configures the process-wide logrus logger.
package logging

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// Setup sets the level and destination of the standard logger. Levels are
// the logrus names: trace, debug, info, warn, error, fatal, panic.
func Setup(level string, out io.Writer) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}

	logrus.SetLevel(lvl)
	logrus.SetOutput(out)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		DisableColors:   true,
		TimestampFormat: "15:04:05.000",
	})

	return nil
}

// Fields returns an entry tagged with the emitting component.
func Fields(component string) *logrus.Entry {
	return logrus.WithField("component", component)
}
