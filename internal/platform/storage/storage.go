package storage

import (
	"context"
	"fmt"

	"github.com/yungbote/divergex-backend/internal/platform/envutil"
	"github.com/yungbote/divergex-backend/internal/platform/logger"
)

// Store persists rendered media and hands back the URL clients fetch it from.
type Store interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
}

// New selects the backing store from STORAGE_MODE: "gcs" for a Cloud Storage
// bucket, "local" (the default) for a directory served under /media.
func New(ctx context.Context, baseLog *logger.Logger) (Store, error) {
	mode := envutil.GetEnv("STORAGE_MODE", "local")
	switch mode {
	case "gcs":
		return newGCSStore(ctx, baseLog)
	case "local":
		return newLocalStore(baseLog)
	default:
		return nil, fmt.Errorf("unknown STORAGE_MODE %q", mode)
	}
}
