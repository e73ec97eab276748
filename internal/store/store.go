package store

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"todolite/internal/model"
)

// Persister is the durable mirror of the collection. Load never fails (the
// adapter recovers locally); Save may, and the store decides what that means.
type Persister interface {
	Load() []model.Todo
	Save([]model.Todo) error
}

// Subscriber receives a snapshot of the collection after a mutation has been
// written through.
type Subscriber func([]model.Todo)

// Store owns the authoritative in-memory collection. It is the only thing
// allowed to mutate it; everything else gets copies. Every mutation writes
// the full collection through to the persister before subscribers run.
//
// Single-threaded by design, like the UI event loop driving it. No locking.
type Store struct {
	persister Persister
	logger    *zap.Logger

	todos  []model.Todo
	lastID int64

	subs    map[int]Subscriber
	nextSub int

	now func() time.Time
}

func New(p Persister, logger *zap.Logger) *Store {
	return &Store{
		persister: p,
		logger:    logger,
		todos:     []model.Todo{},
		subs:      map[int]Subscriber{},
		now:       time.Now,
	}
}

// Initialize populates the collection from the persister. Call once per
// session, before any mutation.
func (s *Store) Initialize() {
	s.todos = s.persister.Load()
	for _, t := range s.todos {
		if t.ID > s.lastID {
			s.lastID = t.ID
		}
	}
}

// Items returns a copy of the collection in insertion order.
func (s *Store) Items() []model.Todo {
	out := make([]model.Todo, len(s.todos))
	copy(out, s.todos)
	return out
}

// Len reports the current collection size.
func (s *Store) Len() int { return len(s.todos) }

// Subscribe registers fn to run after each persisted mutation, in
// subscription order. The returned func unregisters it.
func (s *Store) Subscribe(fn Subscriber) (unsubscribe func()) {
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() { delete(s.subs, id) }
}

// Add appends a new todo with the trimmed text. Empty or whitespace-only
// input is silently ignored; the caller gets no feedback by contract.
func (s *Store) Add(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	s.todos = append(s.todos, model.Todo{
		ID:   s.nextID(),
		Text: text,
	})
	s.persistAndNotify()
}

// Toggle flips the completed flag on the todo with the given id. An unknown
// id is a no-op, not an error.
func (s *Store) Toggle(id int64) {
	for i := range s.todos {
		if s.todos[i].ID == id {
			s.todos[i].Completed = !s.todos[i].Completed
			s.persistAndNotify()
			return
		}
	}
}

// Delete removes the todo with the given id. An unknown id is a no-op.
// Deletion is permanent; there is no trash and no undo.
func (s *Store) Delete(id int64) {
	for i := range s.todos {
		if s.todos[i].ID == id {
			s.todos = append(s.todos[:i], s.todos[i+1:]...)
			s.persistAndNotify()
			return
		}
	}
}

// nextID issues a time-derived id, clamped to stay strictly above the last
// one issued so rapid adds inside the same millisecond cannot collide.
func (s *Store) nextID() int64 {
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

// persistAndNotify writes the collection through, then runs subscribers with
// a snapshot. A write failure is logged and otherwise swallowed: memory is
// authoritative, the mirror is best-effort, and subscribers still see the
// mutation.
func (s *Store) persistAndNotify() {
	if err := s.persister.Save(s.todos); err != nil {
		s.logger.Error("persist todos", zap.Error(err))
	}
	if len(s.subs) == 0 {
		return
	}
	snapshot := s.Items()
	for id := 0; id < s.nextSub; id++ {
		if fn, ok := s.subs[id]; ok {
			fn(snapshot)
		}
	}
}
