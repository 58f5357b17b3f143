package logger

import "sync/atomic"

var globalLogger atomic.Pointer[Logger]

// Info logs through the global logger.
func Info(msg string, fields ...map[string]interface{}) {
	GetGlobalLogger().Info(msg, fields...)
}
