package client

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// State bundles the per-user stores a client application works with.
type State struct {
	Tasks    *TaskStore
	Settings *SettingsStore
}

// Hydrate restores the session from disk and, when a token is present, loads
// tasks and settings concurrently. Callers get fully-populated stores or an
// error; there is no partially-hydrated success.
func Hydrate(ctx context.Context, c *Client) (*State, error) {
	if err := c.Session().Hydrate(); err != nil {
		return nil, err
	}
	state := &State{
		Tasks:    NewTaskStore(c),
		Settings: NewSettingsStore(c),
	}
	if !c.Session().Authenticated() {
		return state, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := state.Tasks.Refresh(gctx, TaskFilter{})
		return err
	})
	g.Go(func() error {
		_, err := state.Settings.Refresh(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return state, nil
}
