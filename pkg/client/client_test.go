package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

// fakeAPI is a minimal in-memory stand-in for the server, enough to drive
// the client through auth, tasks, and settings.
type fakeAPI struct {
	t        *testing.T
	token    string
	tasks    map[string]*Task
	nextID   int
	settings AccessibilitySettings
}

func newFakeAPI(t *testing.T) *fakeAPI {
	return &fakeAPI{
		t:     t,
		token: "test-token",
		tasks: map[string]*Task{},
		settings: AccessibilitySettings{
			Theme:      "light",
			FontFamily: "professional",
			FontSize:   100,
		},
	}
}

func (f *fakeAPI) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/register", f.auth)
	mux.HandleFunc("POST /api/auth/login", f.auth)
	mux.HandleFunc("GET /api/planning/tasks", f.requireAuth(f.listTasks))
	mux.HandleFunc("POST /api/planning/tasks", f.requireAuth(f.createTask))
	mux.HandleFunc("PUT /api/planning/tasks/{id}", f.requireAuth(f.updateTask))
	mux.HandleFunc("DELETE /api/planning/tasks/{id}", f.requireAuth(f.deleteTask))
	mux.HandleFunc("GET /api/accessibility/settings", f.requireAuth(f.getSettings))
	mux.HandleFunc("PUT /api/accessibility/settings", f.requireAuth(f.putSettings))
	return mux
}

func (f *fakeAPI) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+f.token {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]string{"message": "no token provided", "code": "missing_token"},
			})
			return
		}
		next(w, r)
	}
}

func (f *fakeAPI) auth(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	json.NewDecoder(r.Body).Decode(&req)
	json.NewEncoder(w).Encode(map[string]any{
		"token": f.token,
		"user":  User{ID: "u1", Email: req.Email, Username: "tester"},
	})
}

func (f *fakeAPI) listTasks(w http.ResponseWriter, r *http.Request) {
	out := []*Task{}
	status := r.URL.Query().Get("status")
	for _, task := range f.tasks {
		if status != "" && task.Status != status {
			continue
		}
		out = append(out, task)
	}
	json.NewEncoder(w).Encode(out)
}

func (f *fakeAPI) createTask(w http.ResponseWriter, r *http.Request) {
	var in NewTask
	json.NewDecoder(r.Body).Decode(&in)
	f.nextID++
	task := &Task{
		ID:          fmt.Sprintf("task-%d", f.nextID),
		UserID:      "u1",
		Title:       in.Title,
		EnergyLevel: in.EnergyLevel,
		Category:    in.Category,
		Status:      "pending",
	}
	f.tasks[task.ID] = task
	json.NewEncoder(w).Encode(task)
}

func (f *fakeAPI) updateTask(w http.ResponseWriter, r *http.Request) {
	task, ok := f.tasks[r.PathValue("id")]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"message": "task not found", "code": "task_not_found"},
		})
		return
	}
	var in TaskUpdate
	json.NewDecoder(r.Body).Decode(&in)
	if in.Status != nil {
		task.Status = *in.Status
	}
	if in.Title != nil {
		task.Title = *in.Title
	}
	json.NewEncoder(w).Encode(task)
}

func (f *fakeAPI) deleteTask(w http.ResponseWriter, r *http.Request) {
	delete(f.tasks, r.PathValue("id"))
	json.NewEncoder(w).Encode(map[string]string{"message": "Task deleted successfully"})
}

func (f *fakeAPI) getSettings(w http.ResponseWriter, _ *http.Request) {
	json.NewEncoder(w).Encode(f.settings)
}

func (f *fakeAPI) putSettings(w http.ResponseWriter, r *http.Request) {
	var in SettingsUpdate
	json.NewDecoder(r.Body).Decode(&in)
	if in.Theme != nil {
		f.settings.Theme = *in.Theme
	}
	if in.FontSize != nil {
		f.settings.FontSize = *in.FontSize
	}
	json.NewEncoder(w).Encode(f.settings)
}

func newTestClient(t *testing.T) (*Client, *fakeAPI) {
	t.Helper()
	api := newFakeAPI(t)
	srv := httptest.NewServer(api.handler())
	t.Cleanup(srv.Close)
	session := NewSession(filepath.Join(t.TempDir(), "session.json"))
	return New(srv.URL, session), api
}

func TestLoginPersistsSession(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	user, err := c.Login(ctx, "alex@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.Email != "alex@example.com" {
		t.Fatalf("user = %+v", user)
	}
	if !c.Session().Authenticated() {
		t.Fatalf("session should be authenticated after login")
	}

	// A fresh session restored from the same file picks up the token.
	restored := NewSession(c.Session().tokenPath)
	if err := restored.Hydrate(); err != nil {
		t.Fatalf("hydrate: %v", err)
	}
	if restored.Token() != c.Session().Token() {
		t.Fatalf("restored token %q != %q", restored.Token(), c.Session().Token())
	}
	if restored.User() == nil || restored.User().Email != "alex@example.com" {
		t.Fatalf("restored user = %+v", restored.User())
	}
}

func TestLogoutClearsSessionFile(t *testing.T) {
	c, _ := newTestClient(t)

	if _, err := c.Register(context.Background(), "a@b.c", "correct-horse", "a"); err != nil {
		t.Fatalf("register: %v", err)
	}
	path := c.Session().tokenPath
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("session file missing after register: %v", err)
	}

	if err := c.Logout(); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if c.Session().Authenticated() {
		t.Fatalf("session still authenticated after logout")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("session file should be removed, stat err = %v", err)
	}
	if err := c.Logout(); err != nil {
		t.Fatalf("second logout should be a no-op, got %v", err)
	}
}

func TestHydrateMissingFileIsLoggedOut(t *testing.T) {
	session := NewSession(filepath.Join(t.TempDir(), "absent.json"))
	if err := session.Hydrate(); err != nil {
		t.Fatalf("hydrate with no file: %v", err)
	}
	if session.Authenticated() {
		t.Fatalf("session should stay logged out")
	}
}

func TestTaskStoreTracksServerState(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()
	if _, err := c.Login(ctx, "tasks@example.com", "pw-long-enough"); err != nil {
		t.Fatalf("login: %v", err)
	}

	store := NewTaskStore(c)
	created, err := store.Create(ctx, NewTask{Title: "Pay bills", EnergyLevel: "low"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if got, ok := store.Get(created.ID); !ok || got.Status != "pending" {
		t.Fatalf("store after create: %+v ok=%v", got, ok)
	}

	if _, err := store.SetStatus(ctx, created.ID, "completed"); err != nil {
		t.Fatalf("set status: %v", err)
	}
	if got, _ := store.Get(created.ID); got.Status != "completed" {
		t.Fatalf("store not updated from server payload: %+v", got)
	}

	tasks, err := store.Refresh(ctx, TaskFilter{Status: "completed"})
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != created.ID {
		t.Fatalf("filtered refresh = %+v", tasks)
	}
}

func TestDeleteRequiresStagedConfirmation(t *testing.T) {
	c, api := newTestClient(t)
	ctx := context.Background()
	if _, err := c.Login(ctx, "del@example.com", "pw-long-enough"); err != nil {
		t.Fatalf("login: %v", err)
	}

	store := NewTaskStore(c)
	created, err := store.Create(ctx, NewTask{Title: "Doomed"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := store.Delete(ctx, created.ID); !errors.Is(err, ErrConfirmRequired) {
		t.Fatalf("unstaged delete err = %v, want ErrConfirmRequired", err)
	}
	if _, ok := api.tasks[created.ID]; !ok {
		t.Fatalf("server row must survive an unconfirmed delete")
	}

	store.StageDelete(created.ID)
	store.UnstageDelete(created.ID)
	if err := store.Delete(ctx, created.ID); !errors.Is(err, ErrConfirmRequired) {
		t.Fatalf("unstaged after cancel err = %v, want ErrConfirmRequired", err)
	}

	store.StageDelete(created.ID)
	if err := store.Delete(ctx, created.ID); err != nil {
		t.Fatalf("confirmed delete: %v", err)
	}
	if _, ok := store.Get(created.ID); ok {
		t.Fatalf("task still in local store after delete")
	}
	if _, ok := api.tasks[created.ID]; ok {
		t.Fatalf("task still on server after delete")
	}
}

func TestSettingsStoreSaveMergesServerState(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()
	if _, err := c.Login(ctx, "settings@example.com", "pw-long-enough"); err != nil {
		t.Fatalf("login: %v", err)
	}

	store := NewSettingsStore(c)
	if store.Current() != nil {
		t.Fatalf("store should start empty")
	}

	theme := "dark"
	saved, err := store.Save(ctx, SettingsUpdate{Theme: &theme})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.Theme != "dark" || saved.FontSize != 100 {
		t.Fatalf("saved = %+v", saved)
	}
	if store.Current().Theme != "dark" {
		t.Fatalf("current = %+v", store.Current())
	}
}

func TestAPIErrorCarriesEnvelope(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()
	if _, err := c.Login(ctx, "err@example.com", "pw-long-enough"); err != nil {
		t.Fatalf("login: %v", err)
	}

	store := NewTaskStore(c)
	_, err := store.Update(ctx, "missing", TaskUpdate{})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.Status != http.StatusNotFound || apiErr.Code != "task_not_found" {
		t.Fatalf("apiErr = %+v", apiErr)
	}
}

func TestHydratePopulatesStores(t *testing.T) {
	c, api := newTestClient(t)
	ctx := context.Background()
	if _, err := c.Login(ctx, "hydrate@example.com", "pw-long-enough"); err != nil {
		t.Fatalf("login: %v", err)
	}
	seed := NewTaskStore(c)
	if _, err := seed.Create(ctx, NewTask{Title: "Existing"}); err != nil {
		t.Fatalf("seed task: %v", err)
	}
	api.settings.Theme = "dark"

	// Second client sharing the session file, as on app restart.
	restarted := New(c.baseURL, NewSession(c.Session().tokenPath))
	state, err := Hydrate(ctx, restarted)
	if err != nil {
		t.Fatalf("hydrate: %v", err)
	}
	if got := state.Tasks.All(); len(got) != 1 || got[0].Title != "Existing" {
		t.Fatalf("hydrated tasks = %+v", got)
	}
	if state.Settings.Current() == nil || state.Settings.Current().Theme != "dark" {
		t.Fatalf("hydrated settings = %+v", state.Settings.Current())
	}
}

func TestHydrateWithoutTokenSkipsFetch(t *testing.T) {
	api := newFakeAPI(t)
	srv := httptest.NewServer(api.handler())
	t.Cleanup(srv.Close)

	c := New(srv.URL, NewSession(filepath.Join(t.TempDir(), "none.json")))
	state, err := Hydrate(context.Background(), c)
	if err != nil {
		t.Fatalf("hydrate: %v", err)
	}
	if len(state.Tasks.All()) != 0 || state.Settings.Current() != nil {
		t.Fatalf("logged-out hydrate should leave stores empty")
	}
}
