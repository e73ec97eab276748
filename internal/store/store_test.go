package store

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"todolite/internal/model"
)

// fakePersister records saves and can be primed with load data or a save
// failure.
type fakePersister struct {
	loaded  []model.Todo
	saved   [][]model.Todo
	saveErr error
}

func (f *fakePersister) Load() []model.Todo {
	if f.loaded == nil {
		return []model.Todo{}
	}
	return f.loaded
}

func (f *fakePersister) Save(todos []model.Todo) error {
	snapshot := make([]model.Todo, len(todos))
	copy(snapshot, todos)
	f.saved = append(f.saved, snapshot)
	return f.saveErr
}

func newTestStore(p *fakePersister) *Store {
	s := New(p, zap.NewNop())
	s.Initialize()
	return s
}

func TestAddAppendsTrimmed(t *testing.T) {
	p := &fakePersister{}
	s := newTestStore(p)

	s.Add("  Buy milk  ")

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Buy milk", items[0].Text)
	assert.False(t, items[0].Completed)
	assert.Positive(t, items[0].ID)
	require.Len(t, p.saved, 1, "add must write through")
}

func TestAddEmptyIsNoOp(t *testing.T) {
	p := &fakePersister{}
	s := newTestStore(p)

	s.Add("")
	s.Add("   ")
	s.Add("\t\n")

	assert.Zero(t, s.Len())
	assert.Empty(t, p.saved, "a rejected add must not write")
}

func TestAddKeepsInsertionOrder(t *testing.T) {
	s := newTestStore(&fakePersister{})

	s.Add("one")
	s.Add("two")
	s.Add("three")

	items := s.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "one", items[0].Text)
	assert.Equal(t, "two", items[1].Text)
	assert.Equal(t, "three", items[2].Text)
}

func TestIDsMonotonicWithinSameMillisecond(t *testing.T) {
	s := newTestStore(&fakePersister{})
	frozen := time.UnixMilli(1_700_000_000_000)
	s.now = func() time.Time { return frozen }

	s.Add("first")
	s.Add("second")
	s.Add("third")

	items := s.Items()
	require.Len(t, items, 3)
	assert.Equal(t, frozen.UnixMilli(), items[0].ID)
	assert.Equal(t, frozen.UnixMilli()+1, items[1].ID)
	assert.Equal(t, frozen.UnixMilli()+2, items[2].ID)
}

func TestIDsStayAboveLoadedOnes(t *testing.T) {
	// A persisted id from the "future" must not be reissued.
	future := time.Now().Add(time.Hour).UnixMilli()
	p := &fakePersister{loaded: []model.Todo{{ID: future, Text: "from the future"}}}
	s := newTestStore(p)

	s.Add("new")

	items := s.Items()
	require.Len(t, items, 2)
	assert.Greater(t, items[1].ID, future)
}

func TestToggleFlipsOnlyMatch(t *testing.T) {
	p := &fakePersister{}
	s := newTestStore(p)
	s.Add("a")
	s.Add("b")
	s.Add("c")
	before := s.Items()

	s.Toggle(before[1].ID)

	after := s.Items()
	require.Len(t, after, 3)
	assert.False(t, after[0].Completed)
	assert.True(t, after[1].Completed)
	assert.False(t, after[2].Completed)
	// order untouched
	for i := range before {
		assert.Equal(t, before[i].ID, after[i].ID)
		assert.Equal(t, before[i].Text, after[i].Text)
	}

	s.Toggle(before[1].ID)
	assert.False(t, s.Items()[1].Completed, "toggle flips back")
}

func TestToggleUnknownIDIsNoOp(t *testing.T) {
	p := &fakePersister{}
	s := newTestStore(p)
	s.Add("a")
	writes := len(p.saved)

	s.Toggle(999)

	assert.Equal(t, writes, len(p.saved), "a no-op must not write")
	assert.False(t, s.Items()[0].Completed)
}

func TestDeleteRemovesExactlyOne(t *testing.T) {
	s := newTestStore(&fakePersister{})
	s.Add("a")
	s.Add("b")
	s.Add("c")
	target := s.Items()[1].ID

	s.Delete(target)

	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].Text)
	assert.Equal(t, "c", items[1].Text)
}

func TestDeleteUnknownIDIsNoOp(t *testing.T) {
	p := &fakePersister{}
	s := newTestStore(p)
	s.Add("a")
	writes := len(p.saved)

	s.Delete(42)

	assert.Equal(t, 1, s.Len())
	assert.Equal(t, writes, len(p.saved))
}

func TestSubscribersSeePersistedSnapshot(t *testing.T) {
	p := &fakePersister{}
	s := newTestStore(p)

	var fromSub []model.Todo
	var writesAtNotify int
	unsubscribe := s.Subscribe(func(todos []model.Todo) {
		fromSub = todos
		writesAtNotify = len(p.saved)
	})

	s.Add("watch me")

	require.Len(t, fromSub, 1)
	assert.Equal(t, "watch me", fromSub[0].Text)
	assert.Equal(t, 1, writesAtNotify, "notify must run after the write")

	// snapshots do not alias the store
	fromSub[0].Text = "mutated"
	assert.Equal(t, "watch me", s.Items()[0].Text)

	unsubscribe()
	s.Add("silent")
	require.Len(t, fromSub, 1, "unsubscribed callbacks must not fire")
}

func TestSubscribersRunInOrder(t *testing.T) {
	s := newTestStore(&fakePersister{})

	var order []int
	s.Subscribe(func([]model.Todo) { order = append(order, 1) })
	s.Subscribe(func([]model.Todo) { order = append(order, 2) })
	s.Subscribe(func([]model.Todo) { order = append(order, 3) })

	s.Add("x")

	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestSaveFailureKeepsMutation(t *testing.T) {
	p := &fakePersister{saveErr: errors.New("disk full")}
	s := newTestStore(p)

	notified := false
	s.Subscribe(func([]model.Todo) { notified = true })

	s.Add("still here")

	assert.Equal(t, 1, s.Len(), "memory stays authoritative")
	assert.True(t, notified, "subscribers fire even when the mirror fails")
}

func TestItemsReturnsCopy(t *testing.T) {
	s := newTestStore(&fakePersister{})
	s.Add("original")

	items := s.Items()
	items[0].Text = "tampered"

	assert.Equal(t, "original", s.Items()[0].Text)
}

func TestFullLifecycleScenario(t *testing.T) {
	p := &fakePersister{}
	s := newTestStore(p)
	require.Zero(t, s.Len())

	s.Add("Buy milk")
	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Buy milk", items[0].Text)
	assert.False(t, items[0].Completed)

	s.Toggle(items[0].ID)
	assert.True(t, s.Items()[0].Completed)

	s.Delete(items[0].ID)
	assert.Zero(t, s.Len())
	require.NotEmpty(t, p.saved)
	assert.Empty(t, p.saved[len(p.saved)-1], "final persisted state is the empty list")
}
