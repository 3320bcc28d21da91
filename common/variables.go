package common

import (
	"fmt"
	"runtime"
	"strings"
	"sync/atomic"
	"time"
)

const (
	Version = `v0.4.2`
)

var (
	Product        = SakdashMode()
	LogLinenumbers bool
	LogHides       []string
	When           int64

	verbosity atomic.Int32
	Identities = make(chan uint64)
)

type Verbosity int32

const (
	Normal Verbosity = iota
	Silently
	Debugging
	Tracing
)

func init() {
	When = time.Now().Unix()
	go identityProvider(Identities)
}

func identityProvider(sink chan uint64) {
	counter := uint64(0)
	for {
		counter += 1
		sink <- counter
	}
}

func DefineVerbosity(silent, debug, trace bool) {
	override := Normal
	switch {
	case trace:
		override = Tracing
	case debug:
		override = Debugging
	case silent:
		override = Silently
	}
	verbosity.Store(int32(override))
}

func Silent() bool {
	return Verbosity(verbosity.Load()) == Silently
}

func DebugFlag() bool {
	return Verbosity(verbosity.Load()) >= Debugging
}

func TraceFlag() bool {
	return Verbosity(verbosity.Load()) >= Tracing
}

func UserAgent() string {
	return fmt.Sprintf("%s/%s (%s %s)", Product.Name(), Version, runtime.GOOS, runtime.GOARCH)
}

type ExitCode struct {
	Code    int
	Message string
}

func (it ExitCode) ShowMessage() {
	if len(strings.TrimSpace(it.Message)) > 0 {
		Log("%s", it.Message)
	}
}

func Exit(code int, format string, rest ...interface{}) {
	var message string
	if len(format) > 0 {
		message = fmt.Sprintf(format, rest...)
	}
	panic(ExitCode{
		Code:    code,
		Message: message,
	})
}
