package todos

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memStore is an in-memory Store that records write batches and can be told
// to fail.
type memStore struct {
	mu      sync.Mutex
	todos   map[primitive.ObjectID]Todo
	saves   int
	batches [][]Todo

	findErr error
	saveErr error
}

var _ Store = (*memStore)(nil)

func newMemStore() *memStore {
	return &memStore{todos: map[primitive.ObjectID]Todo{}}
}

func (m *memStore) FindByID(_ context.Context, id primitive.ObjectID) (*Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.findErr != nil {
		return nil, m.findErr
	}
	t, ok := m.todos[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (m *memStore) Find(_ context.Context, filter Filter) ([]Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.findErr != nil {
		return nil, m.findErr
	}

	out := []Todo{}
	for _, t := range m.todos {
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if filter.DueBefore != nil && !t.DueDatetime.Before(*filter.DueBefore) {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreationDatetime.Equal(out[j].CreationDatetime) {
			return out[i].ID.Hex() < out[j].ID.Hex()
		}
		return out[i].CreationDatetime.Before(out[j].CreationDatetime)
	})
	return out, nil
}

func (m *memStore) Save(_ context.Context, todo *Todo) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.saveErr != nil {
		return m.saveErr
	}
	if todo.ID.IsZero() {
		todo.ID = primitive.NewObjectID()
	}
	m.todos[todo.ID] = *todo
	m.saves++
	return nil
}

func (m *memStore) SaveMany(_ context.Context, todos []Todo) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.saveErr != nil {
		return m.saveErr
	}
	batch := make([]Todo, len(todos))
	copy(batch, todos)
	m.batches = append(m.batches, batch)
	for _, t := range todos {
		m.todos[t.ID] = t
	}
	return nil
}

func (m *memStore) get(id primitive.ObjectID) Todo {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.todos[id]
}

// put stores t directly, bypassing the service.
func (m *memStore) put(t Todo) Todo {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t.ID.IsZero() {
		t.ID = primitive.NewObjectID()
	}
	m.todos[t.ID] = t
	return t
}

// testClock is a settable clock for WithClock.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func (m *memStore) setFindErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.findErr = err
}
