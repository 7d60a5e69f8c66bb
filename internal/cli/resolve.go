package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kampus/tugasin/internal/domain"
)

var (
	errUnknownID   = errors.New("not found")
	errAmbiguousID = errors.New("is ambiguous")
)

// resolveID maps a full id or a unique id prefix to the full id. The tables
// print eight-character prefixes, so those are what users type.
func resolveID[T any](kind, input string, items []T, idOf func(T) string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("%s ID is required", kind)
	}

	for _, it := range items {
		if idOf(it) == input {
			return input, nil
		}
	}

	var matches []string
	for _, it := range items {
		if id := idOf(it); strings.HasPrefix(id, input) {
			matches = append(matches, id)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%s %w: %q", kind, errUnknownID, input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%s ID prefix %q %w (%d matches)", kind, input, errAmbiguousID, len(matches))
	}
}

func resolveTask(app *App, input string) (domain.Task, error) {
	id, err := resolveID("task", input, app.Store.Tasks(), func(t domain.Task) string { return t.ID })
	if err != nil {
		return domain.Task{}, err
	}
	t, _ := app.Store.Task(id)
	return t, nil
}

func resolveSubTask(t domain.Task, input string) (string, error) {
	return resolveID("subtask", input, t.SubTasks, func(st domain.SubTask) string { return st.ID })
}

func resolveAttachment(t domain.Task, input string) (string, error) {
	return resolveID("attachment", input, t.Attachments, func(a domain.Attachment) string { return a.ID })
}

func resolveNote(app *App, input string) (domain.Note, error) {
	id, err := resolveID("note", input, app.Store.Notes(), func(n domain.Note) string { return n.ID })
	if err != nil {
		return domain.Note{}, err
	}
	n, _ := app.Store.Note(id)
	return n, nil
}

func resolveEvent(app *App, input string) (string, error) {
	return resolveID("event", input, app.Store.Events(), func(e domain.CalendarEvent) string { return e.ID })
}

func resolveTodo(app *App, input string) (string, error) {
	return resolveID("todo", input, app.Todos.Items(), func(t domain.Todo) string { return t.ID })
}
