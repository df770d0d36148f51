package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/yungbote/divergex-backend/internal/platform/logger"
)

func newTestStore(t *testing.T) (Store, string) {
	t.Helper()
	root := t.TempDir()
	t.Setenv("STORAGE_MODE", "local")
	t.Setenv("MEDIA_ROOT", root)

	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	store, err := New(context.Background(), log)
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	return store, root
}

func TestLocalStorePutWritesFileAndURL(t *testing.T) {
	store, root := newTestStore(t)

	url, err := store.Put(context.Background(), "visual_summary/u1/1.png", []byte("payload"), "image/png")
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if url != "/media/visual_summary/u1/1.png" {
		t.Fatalf("url = %q", url)
	}

	data, err := os.ReadFile(filepath.Join(root, "visual_summary", "u1", "1.png"))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "payload" {
		t.Fatalf("content = %q", data)
	}
}

func TestLocalStorePutOverwrites(t *testing.T) {
	store, root := newTestStore(t)
	ctx := context.Background()

	if _, err := store.Put(ctx, "k.txt", []byte("one"), "text/plain"); err != nil {
		t.Fatalf("first put: %v", err)
	}
	if _, err := store.Put(ctx, "k.txt", []byte("two"), "text/plain"); err != nil {
		t.Fatalf("second put: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(root, "k.txt"))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "two" {
		t.Fatalf("content = %q, want latest write", data)
	}
}

func TestLocalStoreDeleteIsIdempotent(t *testing.T) {
	store, root := newTestStore(t)
	ctx := context.Background()

	if _, err := store.Put(ctx, "gone.txt", []byte("x"), "text/plain"); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := store.Delete(ctx, "gone.txt"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "gone.txt")); !os.IsNotExist(err) {
		t.Fatalf("file should be removed, stat err = %v", err)
	}
	if err := store.Delete(ctx, "gone.txt"); err != nil {
		t.Fatalf("second delete should be a no-op, got %v", err)
	}
}

func TestNewRejectsUnknownMode(t *testing.T) {
	t.Setenv("STORAGE_MODE", "ftp")
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	if _, err := New(context.Background(), log); err == nil {
		t.Fatalf("unknown STORAGE_MODE should fail")
	}
}
