package interactive

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/joshyorko/sakdash/logbuf"
)

// levelStyle picks the color of a log level icon
func levelStyle(level logbuf.LogLevel, styles *Styles) lipgloss.Style {
	switch level {
	case logbuf.LogTrace, logbuf.LogDebug:
		return styles.Subtle
	case logbuf.LogInfo:
		return styles.Info
	case logbuf.LogWarn:
		return styles.Warning
	case logbuf.LogError:
		return styles.Error
	default:
		return styles.ListItem
	}
}

// FormatLogEntry returns a formatted log line using interactive.Styles
func FormatLogEntry(e logbuf.LogEntry, styles *Styles, showTime bool) string {
	var b strings.Builder

	if showTime {
		b.WriteString(styles.Subtle.Render(e.Time.Format("15:04:05")))
		b.WriteString(" ")
	}

	b.WriteString(levelStyle(e.Level, styles).Render(e.Level.Icon()))
	b.WriteString(" ")

	if e.Source != "" {
		b.WriteString(styles.Accent.Render("[" + e.Source + "]"))
		b.WriteString(" ")
	}

	message := styles.ListItem
	if e.Level == logbuf.LogError {
		message = styles.Error
	}
	b.WriteString(message.UnsetPadding().Render(e.Message))

	return b.String()
}

// FormatLogStats returns a formatted stats summary using interactive.Styles
func FormatLogStats(lb *logbuf.LogBuffer, styles *Styles) string {
	stats := lb.Stats()
	if stats.Total == 0 {
		return styles.Subtle.Render("No entries")
	}

	parts := []string{styles.Info.Render(fmt.Sprintf("%d total", stats.Total))}
	if stats.Errors > 0 {
		parts = append(parts, styles.Error.Render(fmt.Sprintf("%d errors", stats.Errors)))
	}
	if stats.Warns > 0 {
		parts = append(parts, styles.Warning.Render(fmt.Sprintf("%d warnings", stats.Warns)))
	}
	if stats.Debugs+stats.Traces > 0 {
		parts = append(parts, styles.Subtle.Render(fmt.Sprintf("%d debug", stats.Debugs+stats.Traces)))
	}

	return strings.Join(parts, styles.Divider.Render(" │ "))
}
