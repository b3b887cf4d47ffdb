package main

import (
	"io"
	"strings"

	log "github.com/sirupsen/logrus"
)

// initLogger configures the global logrus logger for CLI output
func initLogger(out io.Writer, level string) {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetOutput(out)
	log.SetLevel(parseLogLevel(level))
}

func parseLogLevel(level string) log.Level {
	level = strings.ToUpper(level)
	switch {
	case level == "DEBUG":
		return log.DebugLevel
	case level == "INFO":
		return log.InfoLevel
	case level == "WARN":
		return log.WarnLevel
	default:
		return log.ErrorLevel
	}
}
