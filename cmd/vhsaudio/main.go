// SPDX-License-Identifier: EPL-2.0

// Command vhsaudio runs audio files through a VHS tape deck emulation.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

var version = "dev"

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		logrus.WithError(err).Error("vhsaudio failed")
		os.Exit(1)
	}
}
