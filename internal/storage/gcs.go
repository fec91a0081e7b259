package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

const uploadTimeout = 2 * time.Minute

// GCSAvatarStore keeps avatars in a Google Cloud Storage bucket.
type GCSAvatarStore struct {
	client  *storage.Client
	bucket  string
	baseURL string
}

// NewGCSAvatarStore opens a storage client. With an empty credentialsFile
// Application Default Credentials are used. Objects are served from
// baseURL, or from storage.googleapis.com when baseURL is empty.
func NewGCSAvatarStore(ctx context.Context, bucket, baseURL, credentialsFile string) (*GCSAvatarStore, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	if baseURL == "" {
		baseURL = "https://storage.googleapis.com/" + bucket
	}
	return &GCSAvatarStore{client: client, bucket: bucket, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Put uploads data under key.
func (s *GCSAvatarStore) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	w := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = "public, max-age=86400"

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("write object %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalize upload %s: %w", key, err)
	}
	return s.baseURL + "/" + key, nil
}

// Delete removes the object under key. Missing objects are not an error.
func (s *GCSAvatarStore) Delete(ctx context.Context, key string) error {
	err := s.client.Bucket(s.bucket).Object(key).Delete(ctx)
	if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	return nil
}

// Close releases the storage client.
func (s *GCSAvatarStore) Close() error {
	return s.client.Close()
}
