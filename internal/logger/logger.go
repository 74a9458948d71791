// Package logger configures the logrus standard logger for the dmr command.
package logger

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Options controls how log entries are emitted.
type Options struct {
	// Verbose enables debug logging, which includes every fetch the resolver makes.
	Verbose bool
	// DisableColor turns off level colors.
	DisableColor bool
	// Output defaults to stderr when nil, leaving stdout free for command output.
	Output io.Writer
}

// Init applies options to the logrus standard logger.
func Init(options Options) {
	if options.Verbose {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}

	if options.Output != nil {
		logrus.SetOutput(options.Output)
	}

	logrus.SetFormatter(&Formatter{
		DisableColor: options.DisableColor,
	})
}
