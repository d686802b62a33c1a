// Package notify surfaces transient success and error messages to the
// operator. Messages are presentation only: they are neither persisted nor
// readable by other components.
package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Status colors, adaptive to light and dark terminals.
//
//nolint:gochecknoglobals // styling palette
var (
	colorSuccess = lipgloss.AdaptiveColor{Light: "#86b300", Dark: "#c2d94c"}
	colorError   = lipgloss.AdaptiveColor{Light: "#f07171", Dark: "#f07178"}

	successStyle = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError).Bold(true)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
)

// Toaster prints styled one-line toasts.
type Toaster struct {
	mu  sync.Mutex
	out io.Writer
}

// NewToaster writes toasts to out, usually os.Stderr.
func NewToaster(out io.Writer) *Toaster {
	return &Toaster{out: out}
}

// Success prints a success toast.
func (t *Toaster) Success(msg string) {
	t.print(successStyle.Render(iconSuccess + " " + msg))
}

// Error prints an error toast.
func (t *Toaster) Error(msg string) {
	t.print(errorStyle.Render(iconError + " " + msg))
}

func (t *Toaster) print(line string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	_, _ = fmt.Fprintln(t.out, line)
}

// Level tells success and error messages apart.
type Level string

// Levels.
const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Message is one recorded notification.
type Message struct {
	Level Level
	Text  string
}

// Recorder keeps every notification in memory.
type Recorder struct {
	mu       sync.Mutex
	messages []Message
}

// Success records a success message.
func (r *Recorder) Success(msg string) {
	r.record(LevelSuccess, msg)
}

// Error records an error message.
func (r *Recorder) Error(msg string) {
	r.record(LevelError, msg)
}

func (r *Recorder) record(level Level, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.messages = append(r.messages, Message{Level: level, Text: msg})
}

// Messages returns a copy of the recorded messages.
func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]Message(nil), r.messages...)
}

// Count returns the number of messages recorded at level.
func (r *Recorder) Count(level Level) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0

	for _, m := range r.messages {
		if m.Level == level {
			n++
		}
	}

	return n
}

// Discard drops every message.
type Discard struct{}

// Success does nothing.
func (Discard) Success(string) {}

// Error does nothing.
func (Discard) Error(string) {}
