package remote

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/kampus/tugasin/internal/domain"
	"github.com/kampus/tugasin/internal/notify"
	"github.com/kampus/tugasin/internal/todoapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI is an in-memory todo server. Unset hooks behave like a healthy
// server.
type fakeAPI struct {
	mu     sync.Mutex
	todos  []domain.Todo
	nextID int
	calls  []string

	getErr    error
	createErr error
	updateErr error
	deleteErr map[string]error

	// beforeGet runs at the start of GetTodos with the call number.
	beforeGet func(n int)
	gets      int
}

var _ todoapi.Client = (*fakeAPI)(nil)

func (f *fakeAPI) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeAPI) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeAPI) Register(context.Context, string, string, string) (*todoapi.AuthData, error) {
	return nil, errors.New("not used")
}

func (f *fakeAPI) Login(context.Context, string, string) (*todoapi.AuthData, error) {
	return nil, errors.New("not used")
}

func (f *fakeAPI) Logout(context.Context, string, string) error { return nil }

func (f *fakeAPI) GetTodos(_ context.Context, token string) ([]domain.Todo, error) {
	f.mu.Lock()
	f.gets++
	n := f.gets
	hook := f.beforeGet
	f.mu.Unlock()
	if hook != nil {
		hook(n)
	}

	f.record("get")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	return append([]domain.Todo{}, f.todos...), nil
}

func (f *fakeAPI) CreateTodo(_ context.Context, _ string, text string) (*todoapi.Envelope, error) {
	f.record("create:" + text)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	f.todos = append(f.todos, domain.Todo{ID: fmt.Sprintf("t%d", f.nextID), Text: text})
	return &todoapi.Envelope{Message: "created"}, nil
}

func (f *fakeAPI) UpdateTodo(_ context.Context, _ string, id, text string, checked bool) (*todoapi.Envelope, error) {
	f.record(fmt.Sprintf("update:%s:%s:%t", id, text, checked))
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	for i := range f.todos {
		if f.todos[i].ID == id {
			f.todos[i].Text = text
			f.todos[i].OnCheckList = checked
		}
	}
	return &todoapi.Envelope{}, nil
}

func (f *fakeAPI) DeleteTodo(_ context.Context, _ string, id string) (*todoapi.Envelope, error) {
	f.record("delete:" + id)
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.deleteErr[id]; err != nil {
		return nil, err
	}
	kept := f.todos[:0]
	for _, t := range f.todos {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	f.todos = kept
	return &todoapi.Envelope{}, nil
}

func seeded(todos ...domain.Todo) *fakeAPI {
	return &fakeAPI{todos: todos, nextID: len(todos)}
}

func TestRefresh_ReplacesItems(t *testing.T) {
	api := seeded(domain.Todo{ID: "t1", Text: "Buy paper"})
	list := NewTodoList(api, nil)

	assert.Empty(t, list.Items())
	require.NoError(t, list.Refresh(context.Background(), "tok"))
	assert.Equal(t, []domain.Todo{{ID: "t1", Text: "Buy paper"}}, list.Items())
}

func TestAdd_CreatesThenResyncs(t *testing.T) {
	api := seeded()
	list := NewTodoList(api, nil)

	require.NoError(t, list.Add(context.Background(), "tok", "  Print notes "))

	assert.Equal(t, []string{"create:Print notes", "get"}, api.Calls())
	require.Len(t, list.Items(), 1)
	assert.Equal(t, "Print notes", list.Items()[0].Text)
}

func TestAdd_BlankTextNeverReachesServer(t *testing.T) {
	api := seeded()
	rec := &notify.Recorder{}
	list := NewTodoList(api, rec)

	err := list.Add(context.Background(), "tok", "   ")
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, api.Calls())
	assert.Empty(t, rec.All())
}

func TestMutationFailure_NotifiesAndSkipsResync(t *testing.T) {
	api := seeded(domain.Todo{ID: "t1", Text: "Old"})
	rec := &notify.Recorder{}
	list := NewTodoList(api, rec)
	ctx := context.Background()
	require.NoError(t, list.Refresh(ctx, "tok"))
	before := list.Items()

	api.createErr = &todoapi.APIError{StatusCode: 500, Message: "boom"}
	err := list.Add(ctx, "tok", "New")
	require.Error(t, err)

	assert.Equal(t, before, list.Items())
	assert.Equal(t, []string{"get", "create:New"}, api.Calls(), "no resync after a failed mutation")

	notes := rec.All()
	require.Len(t, notes, 1)
	assert.Equal(t, notify.VariantDestructive, notes[0].Variant)
	assert.Equal(t, "Could not add todo", notes[0].Title)
	assert.Contains(t, notes[0].Description, "boom")
}

func TestRefreshFailure_KeepsPreviousList(t *testing.T) {
	api := seeded(domain.Todo{ID: "t1", Text: "Keep"})
	rec := &notify.Recorder{}
	list := NewTodoList(api, rec)
	ctx := context.Background()
	require.NoError(t, list.Refresh(ctx, "tok"))

	api.getErr = &todoapi.APIError{StatusCode: 401}
	err := list.Refresh(ctx, "tok")
	require.ErrorIs(t, err, todoapi.ErrUnauthorized)

	assert.Equal(t, []domain.Todo{{ID: "t1", Text: "Keep"}}, list.Items())
	require.Len(t, rec.All(), 1)
	assert.Contains(t, rec.All()[0].Description, "log in again")
}

func TestToggle_RoundTripsChecklistFlag(t *testing.T) {
	api := seeded(domain.Todo{ID: "t1", Text: "Read"})
	list := NewTodoList(api, nil)
	ctx := context.Background()
	require.NoError(t, list.Refresh(ctx, "tok"))

	require.NoError(t, list.Toggle(ctx, "tok", "t1"))
	item, ok := list.Item("t1")
	require.True(t, ok)
	assert.True(t, item.OnCheckList)

	require.NoError(t, list.Toggle(ctx, "tok", "t1"))
	item, _ = list.Item("t1")
	assert.False(t, item.OnCheckList)

	assert.Contains(t, api.Calls(), "update:t1:Read:true")
	assert.Contains(t, api.Calls(), "update:t1:Read:false")
}

func TestEdit_KeepsFlagAndSkipsNoops(t *testing.T) {
	api := seeded(domain.Todo{ID: "t1", Text: "Draft", OnCheckList: true})
	list := NewTodoList(api, nil)
	ctx := context.Background()
	require.NoError(t, list.Refresh(ctx, "tok"))

	require.NoError(t, list.Edit(ctx, "tok", "t1", "Draft"))
	require.NoError(t, list.Edit(ctx, "tok", "missing", "Anything"))
	assert.Equal(t, []string{"get"}, api.Calls())

	require.NoError(t, list.Edit(ctx, "tok", "t1", "Final"))
	assert.Equal(t, []string{"get", "update:t1:Final:true", "get"}, api.Calls())

	assert.ErrorIs(t, list.Edit(ctx, "tok", "t1", ""), domain.ErrValidation)
}

func TestDelete_Resyncs(t *testing.T) {
	api := seeded(domain.Todo{ID: "t1", Text: "A"}, domain.Todo{ID: "t2", Text: "B"})
	list := NewTodoList(api, nil)
	ctx := context.Background()
	require.NoError(t, list.Refresh(ctx, "tok"))

	require.NoError(t, list.Delete(ctx, "tok", "t1"))
	assert.Equal(t, []domain.Todo{{ID: "t2", Text: "B"}}, list.Items())
}

func TestClearChecked_DeletesInParallelAndResyncsOnce(t *testing.T) {
	api := seeded(
		domain.Todo{ID: "t1", Text: "A", OnCheckList: true},
		domain.Todo{ID: "t2", Text: "B"},
		domain.Todo{ID: "t3", Text: "C", OnCheckList: true},
	)
	list := NewTodoList(api, nil, WithConcurrency(2))
	ctx := context.Background()
	require.NoError(t, list.Refresh(ctx, "tok"))

	n, err := list.ClearChecked(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []domain.Todo{{ID: "t2", Text: "B"}}, list.Items())

	gets := 0
	for _, c := range api.Calls() {
		if c == "get" {
			gets++
		}
	}
	assert.Equal(t, 2, gets)
}

func TestClearChecked_PartialFailureStillResyncs(t *testing.T) {
	api := seeded(
		domain.Todo{ID: "t1", Text: "A", OnCheckList: true},
		domain.Todo{ID: "t2", Text: "B", OnCheckList: true},
	)
	api.deleteErr = map[string]error{"t2": &todoapi.APIError{StatusCode: 404}}
	rec := &notify.Recorder{}
	list := NewTodoList(api, rec, WithConcurrency(1))
	ctx := context.Background()
	require.NoError(t, list.Refresh(ctx, "tok"))

	n, err := list.ClearChecked(ctx, "tok")
	require.Error(t, err)
	assert.LessOrEqual(t, n, 1)
	require.Len(t, rec.All(), 1)
	assert.Equal(t, "Could not clear checked todos", rec.All()[0].Title)

	for _, item := range list.Items() {
		assert.NotEqual(t, "t1", item.ID, "successful deletes are visible after resync")
	}
}

func TestResync_DropsStaleResponse(t *testing.T) {
	api := seeded(domain.Todo{ID: "t1", Text: "v1"})
	list := NewTodoList(api, nil)
	ctx := context.Background()

	slowStarted := make(chan struct{})
	release := make(chan struct{})
	api.beforeGet = func(n int) {
		if n == 1 {
			close(slowStarted)
			<-release
		}
	}

	done := make(chan error, 1)
	go func() { done <- list.Refresh(ctx, "tok") }()
	<-slowStarted

	// The second fetch starts later and sees v2; the first one is released
	// afterwards and reads older data.
	api.mu.Lock()
	api.todos = []domain.Todo{{ID: "t1", Text: "v2"}}
	api.mu.Unlock()
	require.NoError(t, list.Refresh(ctx, "tok"))
	assert.Equal(t, "v2", list.Items()[0].Text)

	api.mu.Lock()
	api.todos = []domain.Todo{{ID: "t1", Text: "stale"}}
	api.mu.Unlock()
	close(release)
	require.NoError(t, <-done)

	assert.Equal(t, "v2", list.Items()[0].Text, "an older fetch must not overwrite a newer one")
}

func TestSameIDMutationsAreSerialized(t *testing.T) {
	api := seeded(domain.Todo{ID: "t1", Text: "Read"})
	list := NewTodoList(api, nil)
	ctx := context.Background()
	require.NoError(t, list.Refresh(ctx, "tok"))

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, list.Toggle(ctx, "tok", "t1"))
		}()
	}
	wg.Wait()

	// Each toggle sees the result of the previous one, so four toggles
	// land back on unchecked.
	item, ok := list.Item("t1")
	require.True(t, ok)
	assert.False(t, item.OnCheckList)
	assert.Equal(t, 0, list.locks.size())
}

func TestIDLocks_BlocksSameID(t *testing.T) {
	var locks idLocks
	unlock := locks.lock("a")

	acquired := make(chan struct{})
	go func() {
		u := locks.lock("a")
		close(acquired)
		u()
	}()

	otherDone := make(chan struct{})
	go func() {
		locks.lock("b")()
		close(otherDone)
	}()
	<-otherDone

	select {
	case <-acquired:
		t.Fatal("second lock on the same id must wait")
	case <-time.After(20 * time.Millisecond):
	}
	unlock()
	<-acquired
}

func TestDescribe(t *testing.T) {
	assert.Contains(t, Describe(&todoapi.APIError{StatusCode: 403}), "log in again")
	assert.Contains(t, Describe(context.Canceled), "cancelled")
	assert.Equal(t, "plain", Describe(errors.New("plain")))
}
