package common_test

import (
	"testing"
	"time"

	"github.com/joshyorko/sakdash/common"
	"github.com/joshyorko/sakdash/hamlet"
)

func TestCanUseStopwatch(t *testing.T) {
	must_be, wont_be := hamlet.Specifications(t)

	sut := common.Stopwatch("hello")
	wont_be.Nil(sut)
	limit := common.Duration(10 * time.Millisecond)
	must_be.True(sut.Report() < limit)
}

func TestDurationPrintsAsSeconds(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	must_be.Equal("1.500", common.Duration(1500*time.Millisecond).String())
	must_be.Equal(int64(1500), common.Duration(1500*time.Millisecond).Milliseconds())
}

func TestVerbosityLevels(t *testing.T) {
	must_be, wont_be := hamlet.Specifications(t)
	defer common.DefineVerbosity(false, false, false)

	common.DefineVerbosity(false, false, true)
	must_be.True(common.TraceFlag())
	must_be.True(common.DebugFlag())
	wont_be.True(common.Silent())

	common.DefineVerbosity(true, false, false)
	must_be.True(common.Silent())
	wont_be.True(common.DebugFlag())
}

func TestExitPanicsWithExitCode(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	must_be.Panic(func() { common.Exit(3, "bad %s", "thing") })

	defer func() {
		code, ok := recover().(common.ExitCode)
		must_be.True(ok)
		must_be.Equal(3, code.Code)
		must_be.Equal("bad thing", code.Message)
	}()
	common.Exit(3, "bad %s", "thing")
}
