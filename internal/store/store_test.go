package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/kampus/tugasin/internal/domain"
	"github.com/kampus/tugasin/internal/repository"
	"github.com/kampus/tugasin/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var storeNow = time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)

func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newTestStore(t *testing.T) (*Store, *testutil.MemorySnapshots) {
	t.Helper()
	repo := testutil.NewMemorySnapshots()
	s := New(repo, domain.Snapshot{User: domain.DefaultUser()},
		WithClock(testutil.FixedClock(storeNow, time.Minute)),
		WithIDGenerator(seqIDs()),
	)
	return s, repo
}

func TestOpen_SeedsSampleDataOnFirstRun(t *testing.T) {
	repo := testutil.NewMemorySnapshots()
	ctx := context.Background()

	s, err := Open(ctx, repo, WithClock(func() time.Time { return storeNow }))
	require.NoError(t, err)

	assert.Len(t, s.Tasks(), 3)
	assert.Len(t, s.Notes(), 2)
	assert.Empty(t, s.Events())
	assert.Equal(t, "Student User", s.User().Name)
	assert.Equal(t, 1, repo.Saves())

	// Second open reads the persisted snapshot instead of reseeding.
	again, err := Open(ctx, repo)
	require.NoError(t, err)
	assert.Equal(t, s.Tasks()[0].ID, again.Tasks()[0].ID)
	assert.Equal(t, 1, repo.Saves())
}

func TestOpen_PropagatesLoadFailure(t *testing.T) {
	_, err := Open(context.Background(), brokenRepo{})
	require.Error(t, err)
	assert.False(t, errors.Is(err, repository.ErrNotFound))
}

func TestOpen_CorruptSnapshot(t *testing.T) {
	ctx := context.Background()
	records := repository.NewSQLiteRecordRepo(testutil.NewTestDB(t))
	require.NoError(t, records.Put(ctx, repository.SnapshotRecord, []byte("{not json")))
	snapshots := repository.NewSnapshotRepo(records)
	obs := &recordingObserver{}

	s, err := Open(ctx, snapshots, WithClock(func() time.Time { return storeNow }), WithObserver(obs))
	require.NoError(t, err)
	assert.Len(t, s.Tasks(), 3, "reseeded with sample data")

	stored, err := snapshots.Load(ctx)
	require.NoError(t, err, "damaged record should be overwritten")
	assert.Len(t, stored.Tasks, 3)

	events := obs.all()
	require.Len(t, events, 1)
	assert.Equal(t, "recover_snapshot", events[0].Op)
	assert.ErrorIs(t, events[0].Err, repository.ErrCorruptRecord)
}

type brokenRepo struct{}

func (brokenRepo) Load(context.Context) (*domain.Snapshot, error) {
	return nil, fmt.Errorf("disk on fire")
}

func (brokenRepo) Save(context.Context, *domain.Snapshot) error { return nil }

func TestAddTask_AppliesDefaultsAndPersists(t *testing.T) {
	s, repo := newTestStore(t)
	ctx := context.Background()

	task, err := s.AddTask(ctx, domain.TaskDraft{
		Title:    "  Essay draft ",
		DueDate:  storeNow,
		SubTasks: []domain.SubTask{{Title: "Outline"}},
		Tags:     []string{"essay", "essay", " writing "},
	})
	require.NoError(t, err)

	assert.Equal(t, "Essay draft", task.Title)
	assert.Equal(t, domain.PriorityMedium, task.Priority)
	assert.Equal(t, domain.CategoryAcademic, task.Category)
	assert.Equal(t, domain.StatusPending, task.Status)
	assert.Equal(t, []string{"essay", "writing"}, task.Tags)
	require.Len(t, task.SubTasks, 1)
	assert.NotEmpty(t, task.SubTasks[0].ID)

	require.NotNil(t, repo.Last())
	assert.Len(t, repo.Last().Tasks, 1)
}

func TestAddTask_RejectsShortTitleWithoutSaving(t *testing.T) {
	s, repo := newTestStore(t)

	_, err := s.AddTask(context.Background(), domain.TaskDraft{Title: "x", DueDate: storeNow})
	require.ErrorIs(t, err, domain.ErrValidation)

	assert.Empty(t, s.Tasks())
	assert.Equal(t, 0, repo.Saves())
}

func TestAddThenDeleteTask_RestoresCollection(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.AddTask(ctx, testutil.NewTestDraft("Keep me"))
	require.NoError(t, err)
	before := s.Tasks()

	added, err := s.AddTask(ctx, testutil.NewTestDraft("Temporary"))
	require.NoError(t, err)
	require.NoError(t, s.DeleteTask(ctx, added.ID))

	assert.Equal(t, before, s.Tasks())
}

func TestUpdateTask_UnknownIDIsSilentNoop(t *testing.T) {
	s, repo := newTestStore(t)
	ctx := context.Background()

	_, err := s.AddTask(ctx, testutil.NewTestDraft("Existing"))
	require.NoError(t, err)
	before := s.Tasks()
	saves := repo.Saves()

	title := "Renamed"
	require.NoError(t, s.UpdateTask(ctx, "missing", domain.TaskPatch{Title: &title}))
	require.NoError(t, s.DeleteTask(ctx, "missing"))
	require.NoError(t, s.CompleteTask(ctx, "missing"))

	assert.Equal(t, before, s.Tasks())
	assert.Equal(t, saves, repo.Saves())
}

func TestUpdateTask_MergesOnlyGivenFields(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	task, err := s.AddTask(ctx, domain.TaskDraft{
		Title:       "Lab report",
		Description: "Chemistry",
		DueDate:     storeNow,
		Priority:    domain.PriorityLow,
	})
	require.NoError(t, err)

	priority := domain.PriorityHigh
	tags := []string{"lab"}
	require.NoError(t, s.UpdateTask(ctx, task.ID, domain.TaskPatch{Priority: &priority, Tags: &tags}))

	got, ok := s.Task(task.ID)
	require.True(t, ok)
	assert.Equal(t, domain.PriorityHigh, got.Priority)
	assert.Equal(t, []string{"lab"}, got.Tags)
	assert.Equal(t, "Chemistry", got.Description)
	assert.Equal(t, "Lab report", got.Title)
}

func TestCompleteTask_ChangesOnlyStatus(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	task, err := s.AddTask(ctx, domain.TaskDraft{
		Title:    "Project",
		DueDate:  storeNow,
		Status:   domain.StatusInProgress,
		SubTasks: []domain.SubTask{{Title: "a"}, {Title: "b"}},
	})
	require.NoError(t, err)

	require.NoError(t, s.CompleteTask(ctx, task.ID))

	got, _ := s.Task(task.ID)
	want := task
	want.Status = domain.StatusCompleted
	assert.Equal(t, want, got)
	assert.False(t, got.SubTasks[0].Completed, "subtasks are not completed implicitly")
}

func TestSubTasks_AddToggleDelete(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	task, err := s.AddTask(ctx, testutil.NewTestDraft("With steps"))
	require.NoError(t, err)

	subID, err := s.AddSubTask(ctx, task.ID, " Step one ")
	require.NoError(t, err)
	require.NotEmpty(t, subID)

	got, _ := s.Task(task.ID)
	require.Len(t, got.SubTasks, 1)
	assert.Equal(t, "Step one", got.SubTasks[0].Title)
	assert.False(t, got.SubTasks[0].Completed)

	require.NoError(t, s.ToggleSubTask(ctx, task.ID, subID))
	got, _ = s.Task(task.ID)
	assert.True(t, got.SubTasks[0].Completed)

	require.NoError(t, s.ToggleSubTask(ctx, task.ID, subID))
	got, _ = s.Task(task.ID)
	assert.False(t, got.SubTasks[0].Completed, "double toggle restores the flag")

	require.NoError(t, s.DeleteSubTask(ctx, task.ID, subID))
	got, _ = s.Task(task.ID)
	assert.Empty(t, got.SubTasks)
}

func TestAddSubTask_UnknownTask(t *testing.T) {
	s, repo := newTestStore(t)

	id, err := s.AddSubTask(context.Background(), "missing", "Step")
	require.NoError(t, err)
	assert.Empty(t, id)
	assert.Equal(t, 0, repo.Saves())

	_, err = s.AddSubTask(context.Background(), "missing", "  ")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAttachments_AddAndRemove(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	task, err := s.AddTask(ctx, testutil.NewTestDraft("Slides"))
	require.NoError(t, err)

	_, err = s.AddAttachment(ctx, task.ID, domain.Attachment{Name: "deck.pdf"})
	require.ErrorIs(t, err, domain.ErrValidation)

	id, err := s.AddAttachment(ctx, task.ID, domain.Attachment{Name: "deck.pdf", URL: "file:///tmp/deck.pdf", Type: "application/pdf"})
	require.NoError(t, err)

	got, _ := s.Task(task.ID)
	require.Len(t, got.Attachments, 1)
	assert.Equal(t, id, got.Attachments[0].ID)

	require.NoError(t, s.RemoveAttachment(ctx, task.ID, id))
	got, _ = s.Task(task.ID)
	assert.Empty(t, got.Attachments)
}

func TestNotes_TimestampsAreMonotonic(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	note, err := s.AddNote(ctx, domain.NoteDraft{Title: "Lecture", Content: "Week 1"})
	require.NoError(t, err)
	assert.Equal(t, note.CreatedAt, note.UpdatedAt)
	assert.Equal(t, domain.CategoryAcademic, note.Category)

	content := "Week 1, revised"
	require.NoError(t, s.UpdateNote(ctx, note.ID, domain.NotePatch{Content: &content}))
	first, ok := s.Note(note.ID)
	require.True(t, ok)
	assert.True(t, first.UpdatedAt.After(first.CreatedAt))
	assert.Equal(t, note.CreatedAt, first.CreatedAt)

	// An empty patch still refreshes updatedAt.
	require.NoError(t, s.UpdateNote(ctx, note.ID, domain.NotePatch{}))
	second, _ := s.Note(note.ID)
	assert.True(t, second.UpdatedAt.After(first.UpdatedAt))
	assert.Equal(t, content, second.Content)

	require.NoError(t, s.DeleteNote(ctx, note.ID))
	_, ok = s.Note(note.ID)
	assert.False(t, ok)
}

func TestEvents_CRUD(t *testing.T) {
	s, repo := newTestStore(t)
	ctx := context.Background()

	taskID := "t-1"
	event, err := s.AddEvent(ctx, domain.EventDraft{
		Title:  "Midterm",
		Start:  storeNow,
		End:    storeNow.Add(2 * time.Hour),
		TaskID: &taskID,
	})
	require.NoError(t, err)
	require.NotNil(t, event.TaskID)

	saves := repo.Saves()
	early := storeNow.Add(-time.Hour)
	err = s.UpdateEvent(ctx, event.ID, domain.EventPatch{End: &early})
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, saves, repo.Saves())

	later := storeNow.Add(3 * time.Hour)
	require.NoError(t, s.UpdateEvent(ctx, event.ID, domain.EventPatch{End: &later, ClearTaskID: true}))
	events := s.Events()
	require.Len(t, events, 1)
	assert.Equal(t, later, events[0].End)
	assert.Nil(t, events[0].TaskID)

	require.NoError(t, s.DeleteEvent(ctx, event.ID))
	assert.Empty(t, s.Events())
}

func TestUpdateEvent_InvalidPatchIsObservedAsRejection(t *testing.T) {
	obs := &recordingObserver{}
	s := New(testutil.NewMemorySnapshots(), domain.Snapshot{User: domain.DefaultUser()},
		WithClock(testutil.FixedClock(storeNow, time.Minute)),
		WithIDGenerator(seqIDs()),
		WithObserver(obs),
	)
	ctx := context.Background()
	event, err := s.AddEvent(ctx, domain.EventDraft{Title: "Lab", Start: storeNow, End: storeNow.Add(time.Hour)})
	require.NoError(t, err)

	early := storeNow.Add(-time.Hour)
	err = s.UpdateEvent(ctx, event.ID, domain.EventPatch{End: &early})
	require.ErrorIs(t, err, domain.ErrValidation)

	events := obs.all()
	require.Len(t, events, 2)
	last := events[1]
	assert.Equal(t, "update_event", last.Op)
	assert.Equal(t, event.ID, last.ID)
	assert.False(t, last.Applied)
	assert.ErrorIs(t, last.Err, domain.ErrValidation)
	assert.Equal(t, storeNow.Add(time.Hour), s.Events()[0].End)
}

type recordingObserver struct {
	mu     sync.Mutex
	events []MutationEvent
}

func (o *recordingObserver) ObserveMutation(_ context.Context, e MutationEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) all() []MutationEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]MutationEvent(nil), o.events...)
}

func TestToggleTheme_RoundTrip(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	theme, err := s.ToggleTheme(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeDark, theme)

	theme, err = s.ToggleTheme(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeLight, theme)
	assert.Equal(t, domain.ThemeLight, s.User().Theme)
}

func TestUpdateUser_MergesProfile(t *testing.T) {
	s, repo := newTestStore(t)
	ctx := context.Background()

	name := "Siti Rahma"
	require.NoError(t, s.UpdateUser(ctx, domain.UserPatch{Name: &name}))
	assert.Equal(t, "Siti Rahma", s.User().Name)
	assert.Equal(t, "student@example.com", s.User().Email)
	assert.Equal(t, "Siti Rahma", repo.Last().User.Name)

	bad := "nope"
	assert.ErrorIs(t, s.UpdateUser(ctx, domain.UserPatch{Email: &bad}), domain.ErrValidation)
}

func TestMutation_RollsBackOnSaveFailure(t *testing.T) {
	s, repo := newTestStore(t)
	ctx := context.Background()

	task, err := s.AddTask(ctx, testutil.NewTestDraft("Stable"))
	require.NoError(t, err)
	before := s.Snapshot()

	repo.FailNextSave(fmt.Errorf("injected save failure"))
	err = s.CompleteTask(ctx, task.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "injected save failure")

	assert.Equal(t, before, s.Snapshot(), "state must be unchanged after a failed save")
	assert.Equal(t, domain.StatusPending, repo.Last().Tasks[0].Status)

	repo.FailNextSave(fmt.Errorf("injected save failure"))
	_, err = s.AddTask(ctx, testutil.NewTestDraft("Lost"))
	require.Error(t, err)
	assert.Len(t, s.Tasks(), 1)
}

func TestReaders_ReturnCopies(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.AddTask(ctx, domain.TaskDraft{Title: "Aliasing", DueDate: storeNow, Tags: []string{"a"}})
	require.NoError(t, err)

	tasks := s.Tasks()
	tasks[0].Tags[0] = "mutated"
	tasks[0].Title = "mutated"

	fresh := s.Tasks()
	assert.Equal(t, "Aliasing", fresh[0].Title)
	assert.Equal(t, []string{"a"}, fresh[0].Tags)
}

func TestLogObserver_WritesMutations(t *testing.T) {
	var buf bytes.Buffer
	repo := testutil.NewMemorySnapshots()
	s := New(repo, domain.Snapshot{User: domain.DefaultUser()}, WithObserver(NewLogObserver(&buf)))

	_, err := s.AddTask(context.Background(), testutil.NewTestDraft("Logged"))
	require.NoError(t, err)
	require.NoError(t, s.DeleteTask(context.Background(), "missing"))

	out := buf.String()
	assert.Contains(t, out, "op=add_task")
	assert.Contains(t, out, "applied=true")
	assert.Contains(t, out, "op=delete_task")
	assert.Contains(t, out, "applied=false")
}

func TestSampleSnapshot_Contents(t *testing.T) {
	snap := SampleSnapshot(storeNow, seqIDs())

	require.Len(t, snap.Tasks, 3)
	first := snap.Tasks[0]
	assert.Equal(t, "Complete Programming Assignment", first.Title)
	assert.Equal(t, storeNow.AddDate(0, 0, 1), first.DueDate)
	require.Len(t, first.SubTasks, 3)
	assert.True(t, first.SubTasks[0].Completed)
	assert.Equal(t, domain.StatusInProgress, snap.Tasks[1].Status)

	require.Len(t, snap.Notes, 2)
	assert.Equal(t, storeNow, snap.Notes[0].CreatedAt)
	assert.Equal(t, domain.ThemeLight, snap.User.Theme)
}
