package tasks_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/tasks"
)

type taskSink struct {
	saved [][]model.Task
	err   error
}

func (sink *taskSink) SaveTasks(list []model.Task) error {
	sink.saved = append(sink.saved, list)
	return sink.err
}

func (sink *taskSink) last() []model.Task {
	if len(sink.saved) == 0 {
		return nil
	}
	return sink.saved[len(sink.saved)-1]
}

type completionCounter struct {
	count int
}

func (counter *completionCounter) RecordTaskCompleted() {
	counter.count++
}

var frozen = time.Date(2026, time.October, 17, 10, 30, 0, 0, time.UTC)

func newStore(initial []model.Task) (*tasks.Store, *taskSink, *completionCounter) {
	sink := &taskSink{}
	counter := &completionCounter{}
	store := tasks.New(initial, tasks.Options{
		Saver:    sink,
		Recorder: counter,
		Now:      func() time.Time { return frozen },
	})
	return store, sink, counter
}

func texts(list []model.Task) []string {
	out := make([]string, 0, len(list))
	for _, task := range list {
		out = append(out, task.Text)
	}
	return out
}

func Test_Store_Add_Trims_And_Creates_Task(t *testing.T) {
	t.Parallel()

	store, sink, _ := newStore(nil)

	task, ok := store.Add("  buy milk  ")

	require.True(t, ok)
	want := model.Task{
		ID:        frozen.UnixMilli(),
		Text:      "buy milk",
		CreatedAt: frozen,
	}
	if diff := cmp.Diff(want, task); diff != "" {
		t.Fatalf("task mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []model.Task{want}, store.List())
	assert.Equal(t, []model.Task{want}, sink.last())
}

func Test_Store_Add_Ignores_Blank_Text(t *testing.T) {
	t.Parallel()

	store, sink, _ := newStore(nil)

	for _, text := range []string{"", "   ", "\t\n"} {
		_, ok := store.Add(text)
		assert.False(t, ok, "text %q", text)
	}

	assert.Zero(t, store.Len())
	assert.Empty(t, sink.saved, "no-op adds must not persist")
}

func Test_Store_Add_Prepends_With_Unique_Ids(t *testing.T) {
	t.Parallel()

	store, _, _ := newStore(nil)

	first, _ := store.Add("first")
	second, _ := store.Add("second")
	third, _ := store.Add("third")

	assert.Equal(t, []string{"third", "second", "first"}, texts(store.List()))
	assert.Equal(t, first.ID+1, second.ID, "same-millisecond ids are bumped")
	assert.Equal(t, second.ID+1, third.ID)
}

func Test_Store_Add_Never_Reuses_Persisted_Ids(t *testing.T) {
	t.Parallel()

	existing := model.Task{ID: frozen.UnixMilli() + 50, Text: "from the future", CreatedAt: frozen}
	store, _, _ := newStore([]model.Task{existing})

	task, _ := store.Add("new")

	assert.Equal(t, existing.ID+1, task.ID)
}

func Test_Store_Toggle_Counts_Only_Completion(t *testing.T) {
	t.Parallel()

	store, sink, counter := newStore(nil)
	task, _ := store.Add("write report")

	require.True(t, store.Toggle(task.ID))
	got, _ := store.Get(task.ID)
	assert.True(t, got.Completed)
	assert.Equal(t, 1, counter.count)

	require.True(t, store.Toggle(task.ID))
	got, _ = store.Get(task.ID)
	assert.False(t, got.Completed)
	assert.Equal(t, 1, counter.count, "un-completing never decrements")

	assert.Len(t, sink.saved, 3, "add and both toggles persist")
	assert.False(t, sink.last()[0].Completed)
}

func Test_Store_Toggle_Unknown_Id_Is_Noop(t *testing.T) {
	t.Parallel()

	store, sink, counter := newStore(nil)
	store.Add("only")

	assert.False(t, store.Toggle(42))
	assert.Zero(t, counter.count)
	assert.Len(t, sink.saved, 1)
}

func Test_Store_Remove_Deletes_Matching_Task(t *testing.T) {
	t.Parallel()

	store, sink, _ := newStore(nil)
	keep, _ := store.Add("keep")
	drop, _ := store.Add("drop")

	require.True(t, store.Remove(drop.ID))
	assert.False(t, store.Remove(drop.ID))

	assert.Equal(t, []model.Task{keep}, store.List())
	assert.Equal(t, []model.Task{keep}, sink.last())
	assert.Len(t, sink.saved, 3)
}

func Test_Store_List_Returns_Copy(t *testing.T) {
	t.Parallel()

	store, _, _ := newStore(nil)
	task, _ := store.Add("original")

	list := store.List()
	list[0].Text = "mutated"

	got, _ := store.Get(task.ID)
	assert.Equal(t, "original", got.Text)
}

func Test_Store_Preserves_Pomodoro_Field(t *testing.T) {
	t.Parallel()

	legacy := model.Task{ID: 7, Text: "legacy", Pomodoros: 3, CreatedAt: frozen}
	store, sink, _ := newStore([]model.Task{legacy})

	store.Toggle(7)

	assert.Equal(t, 3, sink.last()[0].Pomodoros)
}

func Test_Store_Mutates_Even_When_Save_Fails(t *testing.T) {
	t.Parallel()

	store, sink, _ := newStore(nil)
	sink.err = errors.New("quota exceeded")

	_, ok := store.Add("still here")

	require.True(t, ok)
	assert.Equal(t, 1, store.Len())
}
