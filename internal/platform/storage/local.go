package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yungbote/divergex-backend/internal/platform/envutil"
	"github.com/yungbote/divergex-backend/internal/platform/logger"
)

// localStore writes under MEDIA_ROOT; the router serves that directory at
// /media so the returned URLs resolve against the API host.
type localStore struct {
	root    string
	baseURL string
	log     *logger.Logger
}

func newLocalStore(baseLog *logger.Logger) (Store, error) {
	root := envutil.GetEnv("MEDIA_ROOT", "./media")
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create media root %q: %w", root, err)
	}
	return &localStore{
		root:    root,
		baseURL: strings.TrimRight(envutil.GetEnv("MEDIA_BASE_URL", "/media"), "/"),
		log:     baseLog.With("store", "local"),
	}, nil
}

func (ls *localStore) Put(_ context.Context, key string, data []byte, _ string) (string, error) {
	path := filepath.Join(ls.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create media dir for %q: %w", key, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write media file %q: %w", key, err)
	}
	return ls.PublicURL(key), nil
}

func (ls *localStore) Delete(_ context.Context, key string) error {
	path := filepath.Join(ls.root, filepath.FromSlash(key))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove media file %q: %w", key, err)
	}
	return nil
}

func (ls *localStore) PublicURL(key string) string {
	return ls.baseURL + "/" + key
}
