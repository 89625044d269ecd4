package history

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
)

// GCSArchive implements Archive using Google Cloud Storage.
type GCSArchive struct {
	client *gcs.Client
	bucket string
}

// NewGCSArchive creates a GCS-backed Archive.
// It uses Application Default Credentials (works with Workload Identity, SA keys, gcloud auth).
func NewGCSArchive(ctx context.Context, bucket string) (*GCSArchive, error) {
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create gcs client: %w", err)
	}
	return &GCSArchive{client: client, bucket: bucket}, nil
}

// Put writes a report blob.
func (a *GCSArchive) Put(ctx context.Context, ref string, data []byte) error {
	w := a.client.Bucket(a.bucket).Object(ref).NewWriter(ctx)
	w.ContentType = "application/json"
	if _, err := w.Write(data); err != nil {
		w.Close()
		return fmt.Errorf("gcs write %s: %w", ref, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("gcs close %s: %w", ref, err)
	}
	return nil
}

// Get reads a report blob.
func (a *GCSArchive) Get(ctx context.Context, ref string) ([]byte, error) {
	r, err := a.client.Bucket(a.bucket).Object(ref).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("gcs read %s: %w", ref, err)
	}
	defer r.Close()
	return io.ReadAll(r)
}

// List iterates the objects under prefix. GCS returns names in lexical order.
func (a *GCSArchive) List(ctx context.Context, prefix string) ([]string, error) {
	var refs []string
	it := a.client.Bucket(a.bucket).Objects(ctx, &gcs.Query{Prefix: prefix})
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("gcs list %s: %w", prefix, err)
		}
		if strings.HasSuffix(attrs.Name, ".json") {
			refs = append(refs, attrs.Name)
		}
	}
	return refs, nil
}

// Close releases the client.
func (a *GCSArchive) Close() error {
	return a.client.Close()
}
