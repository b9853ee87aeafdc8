package controller

import (
	"deployctl/internal/tui/model"
	"deployctl/pkg/logging"
)

const controllerSubsystem = "Controller"
const pollerSubsystem = "Poller"
const progressSubsystem = "Progress"

// LogInfo logs an informational message through pkg/logging. In TUI mode the entry
// comes back as a NewLogEntryMsg and lands in the activity log.
func LogInfo(subsystem string, format string, a ...interface{}) {
	logging.Info(subsystem, format, a...)
}

// LogDebug logs a debug-level message. It respects the TUI model's DebugMode flag.
func LogDebug(m *model.Model, subsystem string, format string, a ...interface{}) {
	if m != nil && m.DebugMode {
		logging.Debug(subsystem, format, a...)
	}
}

// LogWarn logs a warning message.
func LogWarn(subsystem string, format string, a ...interface{}) {
	logging.Warn(subsystem, format, a...)
}

// LogError logs an error message together with err.
func LogError(subsystem string, err error, format string, a ...interface{}) {
	logging.Error(subsystem, err, format, a...)
}
