package cli

import (
	"github.com/untillpro/goutils/logger"
)

// LogLevel maps the -v count and --quiet onto a logger level: warnings by
// default, info at -v, verbose at -vv and trace beyond. Quiet keeps errors only.
func LogLevel(verbosity int, quiet bool) logger.TLogLevel {
	if quiet {
		return logger.LogLevelError
	}

	switch {
	case verbosity <= 0:
		return logger.LogLevelWarning
	case verbosity == 1:
		return logger.LogLevelInfo
	case verbosity == 2:
		return logger.LogLevelVerbose
	default:
		return logger.LogLevelTrace
	}
}

// SetupLogging applies LogLevel to the global logger.
func SetupLogging(verbosity int, quiet bool) {
	logger.SetLogLevel(LogLevel(verbosity, quiet))
}
