package msg

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultToastDuration is how long toasts stay visible unless specified.
const DefaultToastDuration = 2 * time.Second

// ToastMsg displays a temporary message.
type ToastMsg struct {
	Message  string
	Duration time.Duration
	IsError  bool // true for error toasts (red), false for success (green)
}

// ToastExpiredMsg clears the toast with the matching sequence number.
type ToastExpiredMsg struct {
	Seq int
}

// ShowToast returns a command to show a toast message.
func ShowToast(message string, duration time.Duration) tea.Cmd {
	return func() tea.Msg {
		return ToastMsg{
			Message:  message,
			Duration: duration,
		}
	}
}

// ShowErrorToast returns a command to show an error toast.
func ShowErrorToast(message string) tea.Cmd {
	return func() tea.Msg {
		return ToastMsg{
			Message:  message,
			Duration: 2 * DefaultToastDuration,
			IsError:  true,
		}
	}
}

// ExpireToast schedules the removal of toast seq after d.
func ExpireToast(seq int, d time.Duration) tea.Cmd {
	if d <= 0 {
		d = DefaultToastDuration
	}
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ToastExpiredMsg{Seq: seq}
	})
}
