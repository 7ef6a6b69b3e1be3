// Package tasklist owns the in-memory task collection, the monotonic id
// counter, and the change subscribers.
//
// Every mutating operation runs to completion on the caller's goroutine in
// three steps: mutate in-memory state, persist the full collection and
// counter through the adapter, then invoke every subscriber. A mutex makes
// each operation atomic, so subscribers observe operations in invocation
// order and always after the corresponding write was issued.
package tasklist

import (
	"context"
	"strings"
	"sync"
	"time"

	"tasklist/internal/model"
	"tasklist/internal/persist"
)

const (
	keyItems  = "items"
	keyNextID = "nextId"
)

type List struct {
	mu      sync.Mutex
	adapter *persist.Adapter
	tasks   []model.Task
	nextID  int64
	subs    map[int64]func()
	subSeq  int64
	now     func() time.Time
}

// New loads the task collection and counter from the adapter, defaulting to
// an empty list and a counter of 1.
func New(ctx context.Context, adapter *persist.Adapter) *List {
	l := &List{
		adapter: adapter,
		tasks:   []model.Task{},
		nextID:  1,
		subs:    make(map[int64]func()),
		now:     time.Now,
	}

	var tasks []model.Task
	if adapter.Load(ctx, keyItems, &tasks) && tasks != nil {
		l.tasks = tasks
	}

	var next int64
	if adapter.Load(ctx, keyNextID, &next) && next >= 1 {
		l.nextID = next
	}

	// The counter must stay strictly greater than every stored id, even if
	// it was lost or went stale relative to the items key.
	for _, t := range l.tasks {
		if t.ID >= l.nextID {
			l.nextID = t.ID + 1
		}
	}

	return l
}

// Add appends a task with the trimmed text. Empty or whitespace-only text is
// a no-op: nothing is stored, persisted, or notified.
func (l *List) Add(ctx context.Context, text string) (model.Task, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Task{}, false
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	task := model.Task{
		ID:        l.nextID,
		Text:      text,
		CreatedAt: l.now(),
	}
	l.nextID++
	l.tasks = append(l.tasks, task)
	l.commit(ctx)
	return task, true
}

// Toggle flips the completed flag of the task with the given id. An unknown
// id is a full no-op: no persistence, no notification.
func (l *List) Toggle(ctx context.Context, id int64) (model.Task, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.tasks {
		if l.tasks[i].ID == id {
			l.tasks[i].Completed = !l.tasks[i].Completed
			l.commit(ctx)
			return l.tasks[i], true
		}
	}
	return model.Task{}, false
}

// Update replaces the task's text with the trimmed value. A missing id or
// empty/whitespace-only text is a full no-op.
func (l *List) Update(ctx context.Context, id int64, text string) (model.Task, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Task{}, false
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.tasks {
		if l.tasks[i].ID == id {
			l.tasks[i].Text = text
			l.commit(ctx)
			return l.tasks[i], true
		}
	}
	return model.Task{}, false
}

// Delete removes the task with the given id, preserving the order of the
// rest. A miss still re-persists and notifies; the rewritten state is
// identical, so the redundant save is harmless.
func (l *List) Delete(ctx context.Context, id int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	found := false
	kept := l.tasks[:0]
	for _, t := range l.tasks {
		if t.ID == id {
			found = true
			continue
		}
		kept = append(kept, t)
	}
	l.tasks = kept
	l.commit(ctx)
	return found
}

// ClearCompleted removes every completed task, preserving the relative order
// of the survivors. It returns the number of removed tasks.
func (l *List) ClearCompleted(ctx context.Context) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	kept := l.tasks[:0]
	for _, t := range l.tasks {
		if t.Completed {
			removed++
			continue
		}
		kept = append(kept, t)
	}
	l.tasks = kept
	l.commit(ctx)
	return removed
}

// ClearAll empties the list. The id counter is not reset.
func (l *List) ClearAll(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.tasks = l.tasks[:0]
	l.commit(ctx)
}

// Replace swaps the entire collection for the imported one, keeping the
// imported ids as-is. The counter becomes one more than the highest imported
// id but never decreases, so ids issued later cannot collide. Returns the
// number of imported tasks.
func (l *List) Replace(ctx context.Context, tasks []model.Task) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.tasks = append([]model.Task{}, tasks...)
	for _, t := range l.tasks {
		if t.ID >= l.nextID {
			l.nextID = t.ID + 1
		}
	}
	l.commit(ctx)
	return len(l.tasks)
}

// Tasks returns a copy of the collection in insertion order.
func (l *List) Tasks() []model.Task {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]model.Task, len(l.tasks))
	copy(out, l.tasks)
	return out
}

// Get returns the task with the given id.
func (l *List) Get(id int64) (model.Task, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, t := range l.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return model.Task{}, false
}

// Counts returns the number of active and completed tasks.
func (l *List) Counts() (active, completed int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, t := range l.tasks {
		if t.Completed {
			completed++
		} else {
			active++
		}
	}
	return active, completed
}

func (l *List) ActiveCount() int {
	active, _ := l.Counts()
	return active
}

func (l *List) CompletedCount() int {
	_, completed := l.Counts()
	return completed
}

// Subscribe registers fn to run after every mutating operation, including
// ones that changed nothing. The returned function unregisters it.
// Callbacks run with the list lock held and must not call back into the
// list.
func (l *List) Subscribe(fn func()) (unsubscribe func()) {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := l.subSeq
	l.subSeq++
	l.subs[id] = fn
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.subs, id)
	}
}

// commit persists the full collection and counter, then notifies
// subscribers. Must be called with l.mu held.
func (l *List) commit(ctx context.Context) {
	l.adapter.Save(ctx, keyItems, l.tasks)
	l.adapter.Save(ctx, keyNextID, l.nextID)
	for _, fn := range l.subs {
		fn()
	}
}
