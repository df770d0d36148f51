package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/yungbote/divergex-backend/internal/platform/logger"
)

type gcsStore struct {
	client     *gcs.Client
	bucketName string
	cdnDomain  string
	log        *logger.Logger
}

func newGCSStore(ctx context.Context, baseLog *logger.Logger) (Store, error) {
	storeLog := baseLog.With("store", "gcs")
	bucket := os.Getenv("GCS_BUCKET_NAME")
	if bucket == "" {
		return nil, fmt.Errorf("missing env var GCS_BUCKET_NAME")
	}
	cdnDomain := os.Getenv("CDN_DOMAIN")
	saPath := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS_JSON")
	var (
		client *gcs.Client
		err    error
	)
	if saPath != "" {
		client, err = gcs.NewClient(ctx, option.WithCredentialsFile(saPath), option.WithScopes(gcs.ScopeReadWrite))
	} else {
		storeLog.Warn("GOOGLE_APPLICATION_CREDENTIALS_JSON not set, relying on ambient credentials")
		client, err = gcs.NewClient(ctx, option.WithScopes(gcs.ScopeReadWrite))
	}
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return &gcsStore{
		client:     client,
		bucketName: bucket,
		cdnDomain:  cdnDomain,
		log:        storeLog,
	}, nil
}

func (gs *gcsStore) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()
	w := gs.client.Bucket(gs.bucketName).Object(key).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("write object %q: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("close writer for %q: %w", key, err)
	}
	return gs.PublicURL(key), nil
}

func (gs *gcsStore) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := gs.client.Bucket(gs.bucketName).Object(key).Delete(ctx); err != nil {
		return fmt.Errorf("delete object %q: %w", key, err)
	}
	return nil
}

func (gs *gcsStore) PublicURL(key string) string {
	if gs.cdnDomain != "" {
		return fmt.Sprintf("https://%s/%s", gs.cdnDomain, key)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", gs.bucketName, key)
}
