package interactive

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const maxToasts = 3

// ToastType defines the type of toast notification
type ToastType int

const (
	ToastInfo ToastType = iota
	ToastSuccess
	ToastWarning
	ToastError
)

// Toast represents a notification structure
type Toast struct {
	ID        int64
	Type      ToastType
	Message   string
	StartTime time.Time
	Duration  time.Duration
}

// ToastMsg is sent to trigger a new toast
type ToastMsg struct {
	Type     ToastType
	Message  string
	Duration time.Duration
}

// ToastTimeoutMsg is sent when a toast expires
type ToastTimeoutMsg struct {
	ID int64
}

// ShowToast creates a command to show a toast
func ShowToast(msg string, t ToastType) tea.Cmd {
	return func() tea.Msg {
		return ToastMsg{
			Type:     t,
			Message:  msg,
			Duration: 3 * time.Second,
		}
	}
}

// ShowErrorToast is a helper for error messages
func ShowErrorToast(msg string) tea.Cmd {
	return ShowToast(msg, ToastError)
}

// ShowSuccessToast is a helper for success messages
func ShowSuccessToast(msg string) tea.Cmd {
	return ShowToast(msg, ToastSuccess)
}

// ShowInfoToast is a helper for info messages
func ShowInfoToast(msg string) tea.Cmd {
	return ShowToast(msg, ToastInfo)
}

// ShowWarningToast is a helper for warning messages
func ShowWarningToast(msg string) tea.Cmd {
	return ShowToast(msg, ToastWarning)
}

// toasts is the stack of visible notifications, oldest first.
type toasts struct {
	counter int64
	active  []Toast
}

// push shows a toast and schedules its removal.
func (it *toasts) push(msg ToastMsg) tea.Cmd {
	it.counter += 1
	duration := msg.Duration
	if duration <= 0 {
		duration = 3 * time.Second
	}
	toast := Toast{
		ID:        it.counter,
		Type:      msg.Type,
		Message:   msg.Message,
		StartTime: time.Now(),
		Duration:  duration,
	}
	it.active = append(it.active, toast)
	if len(it.active) > maxToasts {
		it.active = it.active[len(it.active)-maxToasts:]
	}
	id := toast.ID
	return tea.Tick(duration, func(time.Time) tea.Msg {
		return ToastTimeoutMsg{ID: id}
	})
}

func (it *toasts) expire(id int64) {
	kept := it.active[:0]
	for _, toast := range it.active {
		if toast.ID != id {
			kept = append(kept, toast)
		}
	}
	it.active = kept
}

func (it *toasts) Len() int {
	return len(it.active)
}

func (it *toasts) render(styles *Styles) string {
	if len(it.active) == 0 {
		return ""
	}
	rendered := make([]string, 0, len(it.active))
	for _, toast := range it.active {
		rendered = append(rendered, styles.ToastStyle(toast.Type).Render(toastIcon(toast.Type)+" "+toast.Message))
	}
	return lipgloss.JoinVertical(lipgloss.Right, rendered...)
}

func toastIcon(kind ToastType) string {
	icons := []string{"i", "✓", "!", "✗"}
	if !Iconic {
		icons = []string{"i", "+", "!", "x"}
	}
	if int(kind) < len(icons) {
		return icons[kind]
	}
	return " "
}
