package pretty

import (
	"sync"
	"time"

	"github.com/joshyorko/sakdash/common"
)

var (
	brailleFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	asciiFrames   = []string{"|", "/", "-", "\\"}
)

// Spinner animates a one line waiting message on interactive terminals. It
// only appears when the work lasts longer than its delay.
type Spinner struct {
	sync.Mutex
	message string
	frames  []string
	delay   time.Duration
	started bool
	shown   bool
	done    chan struct{}
	stopped chan struct{}
}

func NewSpinner(message string) *Spinner {
	frames := brailleFrames
	if Mode == ColorModeNone {
		frames = asciiFrames
	}
	return &Spinner{
		message: message,
		frames:  frames,
		delay:   500 * time.Millisecond,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

func (it *Spinner) Start() {
	it.Lock()
	defer it.Unlock()

	if it.started {
		return
	}
	it.started = true
	if !Interactive {
		common.Trace("Spinner skipped (non-interactive mode): %s", it.message)
		close(it.stopped)
		return
	}
	go it.animate()
}

func (it *Spinner) Update(message string) {
	it.Lock()
	defer it.Unlock()

	it.message = message
}

func (it *Spinner) Frame(at int) string {
	return it.frames[at%len(it.frames)]
}

func (it *Spinner) animate() {
	defer close(it.stopped)

	select {
	case <-it.done:
		return
	case <-time.After(it.delay):
	}

	it.Lock()
	it.shown = true
	it.Unlock()
	common.Stdout("%s", csi("?25l"))

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for at := 0; ; at++ {
		it.Lock()
		message := it.message
		it.Unlock()
		common.Stdout("\r%s%s %s", csi("0K"), it.Frame(at), message)
		select {
		case <-it.done:
			return
		case <-ticker.C:
		}
	}
}

// Stop ends the animation and, if the spinner was visible, leaves a final
// status line behind.
func (it *Spinner) Stop(success bool) {
	it.Lock()
	if !it.started {
		it.Unlock()
		return
	}
	select {
	case <-it.done:
		it.Unlock()
		return
	default:
		close(it.done)
	}
	it.Unlock()

	<-it.stopped
	it.Lock()
	shown, message := it.shown, it.message
	it.Unlock()
	if !shown {
		return
	}
	status, color := "✓", Green
	if !success {
		status, color = "✗", Red
	}
	if Mode == ColorModeNone {
		status = map[bool]string{true: "[OK]", false: "[FAIL]"}[success]
	}
	common.Stdout("\r%s%s%s %s%s\n%s", csi("0K"), color, status, message, Reset, csi("?25h"))
}
