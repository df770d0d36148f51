package client

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"sync"
	"time"
)

// ErrConfirmRequired is returned when Delete is called on a task that has not
// been staged first. Destructive actions take two steps by contract.
var ErrConfirmRequired = errors.New("delete not confirmed: stage the task first")

// TaskStore mirrors the server's task list. Mutations are optimistic in the
// sense that the store is updated from the server's response payload rather
// than a re-fetch.
type TaskStore struct {
	client *Client

	mu      sync.RWMutex
	tasks   map[string]*Task
	order   []string
	staged  map[string]struct{}
	fetched bool
}

func NewTaskStore(c *Client) *TaskStore {
	return &TaskStore{
		client: c,
		tasks:  make(map[string]*Task),
		staged: make(map[string]struct{}),
	}
}

// Refresh replaces the local list with the server's, applying the filter
// server-side.
func (ts *TaskStore) Refresh(ctx context.Context, filter TaskFilter) ([]*Task, error) {
	q := url.Values{}
	if filter.Status != "" {
		q.Set("status", filter.Status)
	}
	if filter.Category != "" {
		q.Set("category", filter.Category)
	}
	if filter.StartDate != nil {
		q.Set("startDate", filter.StartDate.Format(time.RFC3339))
	}
	if filter.EndDate != nil {
		q.Set("endDate", filter.EndDate.Format(time.RFC3339))
	}
	path := "/api/planning/tasks"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var fetched []*Task
	if err := ts.client.do(ctx, http.MethodGet, path, nil, &fetched); err != nil {
		return nil, err
	}

	ts.mu.Lock()
	ts.tasks = make(map[string]*Task, len(fetched))
	ts.order = ts.order[:0]
	for _, t := range fetched {
		ts.tasks[t.ID] = t
		ts.order = append(ts.order, t.ID)
	}
	ts.fetched = true
	ts.mu.Unlock()
	return fetched, nil
}

func (ts *TaskStore) Create(ctx context.Context, in NewTask) (*Task, error) {
	var created Task
	if err := ts.client.do(ctx, http.MethodPost, "/api/planning/tasks", in, &created); err != nil {
		return nil, err
	}
	ts.mu.Lock()
	ts.tasks[created.ID] = &created
	ts.order = append(ts.order, created.ID)
	ts.mu.Unlock()
	return &created, nil
}

func (ts *TaskStore) Update(ctx context.Context, taskID string, update TaskUpdate) (*Task, error) {
	var updated Task
	if err := ts.client.do(ctx, http.MethodPut, "/api/planning/tasks/"+taskID, update, &updated); err != nil {
		return nil, err
	}
	ts.mu.Lock()
	ts.tasks[updated.ID] = &updated
	ts.mu.Unlock()
	return &updated, nil
}

func (ts *TaskStore) SetStatus(ctx context.Context, taskID, status string) (*Task, error) {
	return ts.Update(ctx, taskID, TaskUpdate{Status: &status})
}

// StageDelete marks a task for deletion; the actual Delete call only goes
// through after this confirmation step.
func (ts *TaskStore) StageDelete(taskID string) {
	ts.mu.Lock()
	ts.staged[taskID] = struct{}{}
	ts.mu.Unlock()
}

// UnstageDelete cancels a pending confirmation.
func (ts *TaskStore) UnstageDelete(taskID string) {
	ts.mu.Lock()
	delete(ts.staged, taskID)
	ts.mu.Unlock()
}

func (ts *TaskStore) Delete(ctx context.Context, taskID string) error {
	ts.mu.Lock()
	_, confirmed := ts.staged[taskID]
	ts.mu.Unlock()
	if !confirmed {
		return ErrConfirmRequired
	}
	if err := ts.client.do(ctx, http.MethodDelete, "/api/planning/tasks/"+taskID, nil, nil); err != nil {
		return err
	}
	ts.mu.Lock()
	delete(ts.staged, taskID)
	delete(ts.tasks, taskID)
	for i, id := range ts.order {
		if id == taskID {
			ts.order = append(ts.order[:i], ts.order[i+1:]...)
			break
		}
	}
	ts.mu.Unlock()
	return nil
}

func (ts *TaskStore) Get(taskID string) (*Task, bool) {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	t, ok := ts.tasks[taskID]
	return t, ok
}

func (ts *TaskStore) All() []*Task {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	out := make([]*Task, 0, len(ts.order))
	for _, id := range ts.order {
		if t, ok := ts.tasks[id]; ok {
			out = append(out, t)
		}
	}
	return out
}
