// Package remote mirrors the todo list held by the remote API. The server is
// authoritative: every mutation is followed by a full refetch, and local
// items only change when that refetch succeeds.
package remote

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/kampus/tugasin/internal/domain"
	"github.com/kampus/tugasin/internal/notify"
	"github.com/kampus/tugasin/internal/todoapi"
	"golang.org/x/sync/errgroup"
)

const defaultConcurrency = 4

// TodoList mirrors the server todo list. Every mutation goes to the API
// first and the list is refetched afterwards; it is safe for concurrent use.
type TodoList struct {
	api         todoapi.Client
	notifier    notify.Notifier
	concurrency int

	locks idLocks

	// issued numbers every refetch at the moment it starts; applied is the
	// newest number whose result replaced items.
	issued atomic.Uint64

	mu      sync.Mutex
	items   []domain.Todo
	applied uint64
}

// Option configures a TodoList.
type Option func(*TodoList)

// WithConcurrency bounds the parallel deletes of ClearChecked.
func WithConcurrency(n int) Option {
	return func(l *TodoList) {
		if n > 0 {
			l.concurrency = n
		}
	}
}

// NewTodoList starts with an empty list; call Refresh to load it.
func NewTodoList(api todoapi.Client, notifier notify.Notifier, opts ...Option) *TodoList {
	if notifier == nil {
		notifier = notify.Discard{}
	}
	l := &TodoList{
		api:         api,
		notifier:    notifier,
		concurrency: defaultConcurrency,
		items:       []domain.Todo{},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Items returns a copy of the last successfully fetched list.
func (l *TodoList) Items() []domain.Todo {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]domain.Todo{}, l.items...)
}

// Item looks up a todo in the last fetched list.
func (l *TodoList) Item(id string) (domain.Todo, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, t := range l.items {
		if t.ID == id {
			return t, true
		}
	}
	return domain.Todo{}, false
}

// Refresh replaces the local list with the server's.
func (l *TodoList) Refresh(ctx context.Context, token string) error {
	if err := l.resync(ctx, token); err != nil {
		return l.fail("Could not load todos", err)
	}
	return nil
}

// Add creates a todo. Blank text is rejected before any request is made.
func (l *TodoList) Add(ctx context.Context, token, text string) error {
	if err := domain.ValidateTodoText(text); err != nil {
		return err
	}
	if _, err := l.api.CreateTodo(ctx, token, strings.TrimSpace(text)); err != nil {
		return l.fail("Could not add todo", err)
	}
	if err := l.resync(ctx, token); err != nil {
		return l.fail("Could not refresh todos", err)
	}
	return nil
}

// Edit changes the text and keeps the checklist flag. Unknown ids and
// unchanged text are no-ops.
func (l *TodoList) Edit(ctx context.Context, token, id, text string) error {
	if err := domain.ValidateTodoText(text); err != nil {
		return err
	}
	text = strings.TrimSpace(text)

	unlock := l.locks.lock(id)
	defer unlock()

	current, ok := l.Item(id)
	if !ok || current.Text == text {
		return nil
	}
	return l.update(ctx, token, id, text, current.OnCheckList, "Could not update todo")
}

// Toggle flips the checklist flag on the server.
func (l *TodoList) Toggle(ctx context.Context, token, id string) error {
	unlock := l.locks.lock(id)
	defer unlock()

	current, ok := l.Item(id)
	if !ok {
		return nil
	}
	return l.update(ctx, token, id, current.Text, !current.OnCheckList, "Could not update todo")
}

// Delete removes a todo. Unknown ids are sent anyway since the server may
// know an item the local list has not fetched yet.
func (l *TodoList) Delete(ctx context.Context, token, id string) error {
	unlock := l.locks.lock(id)
	defer unlock()

	if _, err := l.api.DeleteTodo(ctx, token, id); err != nil {
		return l.fail("Could not delete todo", err)
	}
	if err := l.resync(ctx, token); err != nil {
		return l.fail("Could not refresh todos", err)
	}
	return nil
}

// ClearChecked deletes every checked todo in parallel and refetches once.
// It returns how many deletes succeeded.
func (l *TodoList) ClearChecked(ctx context.Context, token string) (int, error) {
	var checked []string
	for _, t := range l.Items() {
		if t.OnCheckList {
			checked = append(checked, t.ID)
		}
	}
	if len(checked) == 0 {
		return 0, nil
	}

	var deleted atomic.Int32
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.concurrency)
	for _, id := range checked {
		g.Go(func() error {
			unlock := l.locks.lock(id)
			defer unlock()
			if _, err := l.api.DeleteTodo(gctx, token, id); err != nil {
				return fmt.Errorf("deleting todo %s: %w", id, err)
			}
			deleted.Add(1)
			return nil
		})
	}
	groupErr := g.Wait()

	// Resync even after a partial failure so the deletes that made it show.
	resyncErr := l.resync(ctx, token)
	if err := errors.Join(groupErr, resyncErr); err != nil {
		return int(deleted.Load()), l.fail("Could not clear checked todos", err)
	}
	return int(deleted.Load()), nil
}

func (l *TodoList) update(ctx context.Context, token, id, text string, checked bool, title string) error {
	if _, err := l.api.UpdateTodo(ctx, token, id, text, checked); err != nil {
		return l.fail(title, err)
	}
	if err := l.resync(ctx, token); err != nil {
		return l.fail("Could not refresh todos", err)
	}
	return nil
}

// resync fetches the whole list. A response that comes back after a newer
// one was applied is dropped.
func (l *TodoList) resync(ctx context.Context, token string) error {
	gen := l.issued.Add(1)
	todos, err := l.api.GetTodos(ctx, token)
	if err != nil {
		return err
	}
	if todos == nil {
		todos = []domain.Todo{}
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if gen < l.applied {
		return nil
	}
	l.items = todos
	l.applied = gen
	return nil
}

// fail notifies the user and hands err back to the caller.
func (l *TodoList) fail(title string, err error) error {
	l.notifier.Notify(notify.Failure(title, Describe(err)))
	return err
}

// Describe turns an API error into a sentence fit for a notification.
func Describe(err error) string {
	switch {
	case errors.Is(err, todoapi.ErrUnauthorized):
		return "Your session is no longer valid. Please log in again."
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "The request was cancelled."
	case todoapi.IsConnectionError(err):
		return "Could not reach the server. Check your connection."
	default:
		return err.Error()
	}
}
