// Package notify delivers the transient, user-visible messages that report
// the outcome of an action. Nothing here blocks or asks for confirmation.
package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

type Notification struct {
	Title       string
	Description string
	Variant     Variant
}

// Notifier shows notifications to the user.
type Notifier interface {
	Notify(n Notification)
}

// Info builds a default notification.
func Info(title, description string) Notification {
	return Notification{Title: title, Description: description, Variant: VariantDefault}
}

// Failure builds a destructive notification.
func Failure(title, description string) Notification {
	return Notification{Title: title, Description: description, Variant: VariantDestructive}
}

var (
	styleTitle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#8ec07c")).Bold(true)
	styleDestructive = lipgloss.NewStyle().Foreground(lipgloss.Color("#fb4934")).Bold(true)
	styleDescription = lipgloss.NewStyle().Foreground(lipgloss.Color("#928374"))
)

// WriterNotifier renders each notification as one styled line.
type WriterNotifier struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriterNotifier(w io.Writer) *WriterNotifier {
	return &WriterNotifier{w: w}
}

func (n *WriterNotifier) Notify(note Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()

	title := styleTitle.Render(note.Title)
	if note.Variant == VariantDestructive {
		title = styleDestructive.Render(note.Title)
	}
	if note.Description == "" {
		fmt.Fprintln(n.w, title)
		return
	}
	fmt.Fprintf(n.w, "%s %s\n", title, styleDescription.Render(note.Description))
}

// Recorder keeps every notification in memory.
type Recorder struct {
	mu    sync.Mutex
	notes []Notification
}

func (r *Recorder) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, n)
}

// All returns a copy of the recorded notifications in arrival order.
func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.notes...)
}

// Discard drops every notification.
type Discard struct{}

func (Discard) Notify(Notification) {}
