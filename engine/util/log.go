package util

import "fmt"

var GLOBAL_LOG_LEVEL = LogLevelInfo
var GLOBAL_LOG_CATEGORIES = LogOpenGL | LogText | LogIO | LogSystem

type LogLevel int

const (
	LogLevelError LogLevel = 1 << iota
	LogLevelWarning
	LogLevelDebug
	LogLevelInfo
)

type LogCategory int

const (
	LogOpenGL LogCategory = 1 << iota
	LogText
	LogIO
	LogSystem
	LogInput
)

// ParseLogLevel maps a config value to a level. Unknown names return false.
func ParseLogLevel(name string) (LogLevel, bool) {
	switch name {
	case "error":
		return LogLevelError, true
	case "warning":
		return LogLevelWarning, true
	case "debug":
		return LogLevelDebug, true
	case "info":
		return LogLevelInfo, true
	}
	return 0, false
}

var logOutput = func(txt string) {
	println(txt)
}

func log(cat LogCategory, lvl LogLevel, txt string) {
	if lvl > GLOBAL_LOG_LEVEL {
		return
	}
	if GLOBAL_LOG_CATEGORIES&cat == 0 {
		return
	}
	logOutput(txt)
}

func LogGlInfo(txt string) {
	log(LogOpenGL, LogLevelInfo, txt)
}

func LogGlDebug(txt string) {
	log(LogOpenGL, LogLevelDebug, txt)
}

func LogGlError(txt string) {
	log(LogOpenGL, LogLevelError, txt)
}

func LogGlWarning(txt string) {
	log(LogOpenGL, LogLevelWarning, txt)
}

func LogTextInfo(txt string) {
	log(LogText, LogLevelInfo, txt)
}

func LogTextDebug(txt string) {
	log(LogText, LogLevelDebug, txt)
}

func LogTextError(txt string) {
	log(LogText, LogLevelError, txt)
}

func LogIOError(txt string) {
	log(LogIO, LogLevelError, txt)
}

func LogIOInfo(txt string) {
	log(LogIO, LogLevelInfo, txt)
}

func LogSystemInfo(txt string) {
	log(LogSystem, LogLevelInfo, txt)
}

func LogInputDebug(txt string) {
	log(LogInput, LogLevelDebug, txt)
}

// Logf formats like fmt.Sprintf before filtering, for call sites that log
// through one of the functions above.
func Logf(logFunc func(string), format string, args ...any) {
	logFunc(fmt.Sprintf(format, args...))
}
