package common

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"
)

// Level tells interceptors how a line was produced.
type Level int

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarning
	LevelError
)

var (
	logsource  = make(logwriters)
	logbarrier = sync.WaitGroup{}

	// logInterceptor lets a full-screen UI capture log lines instead of
	// having them written over the alternate screen.
	logInterceptor func(level Level, message string) bool
	logMu          sync.RWMutex
)

// SetLogInterceptor installs a function that sees every accepted log line.
// Returning true marks the line as handled and suppresses normal output.
func SetLogInterceptor(interceptor func(level Level, message string) bool) {
	logMu.Lock()
	logInterceptor = interceptor
	logMu.Unlock()
}

// ClearLogInterceptor removes the current log interceptor
func ClearLogInterceptor() {
	logMu.Lock()
	logInterceptor = nil
	logMu.Unlock()
}

func interceptLog(level Level, message string) bool {
	logMu.RLock()
	interceptor := logInterceptor
	logMu.RUnlock()

	if interceptor != nil {
		return interceptor(level, message)
	}
	return false
}

type logwriter func() (*os.File, string)
type logwriters chan logwriter

func loggerLoop(writers logwriters) {
	var stamp string
	line := uint64(0)
	for {
		line += 1
		todo, ok := <-writers
		if !ok {
			continue
		}
		out, message := todo()

		if TraceFlag() {
			stamp = time.Now().Format("02.150405.000 ")
		} else if LogLinenumbers {
			stamp = fmt.Sprintf("%3d ", line)
		} else {
			stamp = ""
		}
		fmt.Fprintf(out, "%s%s\n", stamp, message)
		out.Sync()
		logbarrier.Done()
	}
}

func init() {
	go loggerLoop(logsource)
}

func AcceptableOutput(message string) bool {
	for _, fragment := range LogHides {
		if strings.Contains(message, fragment) {
			return false
		}
	}
	return true
}

func printout(level Level, out *os.File, message string) {
	if !AcceptableOutput(message) {
		return
	}
	if interceptLog(level, message) {
		return
	}
	logbarrier.Add(1)
	logsource <- func() (*os.File, string) {
		return out, message
	}
}

func Fatal(context string, err error) {
	if err != nil {
		printout(LevelError, os.Stderr, fmt.Sprintf("Fatal [%s]: %v", context, err))
	}
}

func Error(context string, err error) {
	if err != nil && !Silent() {
		printout(LevelError, os.Stderr, fmt.Sprintf("Error [%s]: %v", context, err))
	}
}

func Uncritical(context string, err error) {
	if err != nil && !Silent() {
		printout(LevelWarning, os.Stderr, fmt.Sprintf("Warning [%s; not critical]: %v", context, err))
	}
}

func Log(format string, details ...interface{}) {
	if !Silent() {
		prefix := ""
		if DebugFlag() || TraceFlag() {
			prefix = "[N] "
		}
		printout(LevelInfo, os.Stderr, fmt.Sprintf(prefix+format, details...))
	}
}

func Debug(format string, details ...interface{}) error {
	if DebugFlag() {
		printout(LevelDebug, os.Stderr, fmt.Sprintf("[D] "+format, details...))
	}
	return nil
}

func Trace(format string, details ...interface{}) error {
	if TraceFlag() {
		printout(LevelTrace, os.Stderr, fmt.Sprintf("[T] "+format, details...))
	}
	return nil
}

func Stdout(format string, details ...interface{}) {
	message := format
	if len(details) > 0 {
		message = fmt.Sprintf(format, details...)
	}
	if AcceptableOutput(message) {
		fmt.Fprint(os.Stdout, message)
		os.Stdout.Sync()
	}
}

func WaitLogs() {
	defer Timeline("wait logs done")

	runtime.Gosched()
	logbarrier.Wait()
}
