// Package history records analysis results: the full JSON report goes to a
// blob archive (local directory, S3 or GCS) and a summary row goes to
// Postgres.
package history

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/config"
)

// Archive abstracts blob storage for JSON reports.
type Archive interface {
	Put(ctx context.Context, ref string, data []byte) error
	Get(ctx context.Context, ref string) ([]byte, error)
	// List returns the refs under prefix in lexical order.
	List(ctx context.Context, prefix string) ([]string, error)
}

// Ref returns the archive key of a report: <subject>/<kind>/<id>.json.
func Ref(subject, kind, id string) string {
	return subject + "/" + kind + "/" + id + ".json"
}

// Prefix returns the archive prefix of a subject, narrowed to kind when set.
func Prefix(subject, kind string) string {
	if kind == "" {
		return subject + "/"
	}
	return subject + "/" + kind + "/"
}

// ParseRef splits a ref built by Ref.
func ParseRef(ref string) (subject, kind, id string, ok bool) {
	parts := strings.Split(ref, "/")
	if len(parts) != 3 || !strings.HasSuffix(parts[2], ".json") {
		return "", "", "", false
	}
	id = strings.TrimSuffix(parts[2], ".json")
	if parts[0] == "" || parts[1] == "" || id == "" {
		return "", "", "", false
	}
	return parts[0], parts[1], id, true
}

// LocalArchive implements Archive using the local filesystem.
// Useful for development and testing.
type LocalArchive struct {
	BaseDir string
}

// NewLocalArchive creates a LocalArchive rooted at the given directory.
func NewLocalArchive(baseDir string) *LocalArchive {
	return &LocalArchive{BaseDir: baseDir}
}

func (a *LocalArchive) path(ref string) string {
	return filepath.Join(a.BaseDir, filepath.FromSlash(ref))
}

// Put stores a report blob.
func (a *LocalArchive) Put(ctx context.Context, ref string, data []byte) error {
	path := a.path(ref)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Get retrieves a report blob.
func (a *LocalArchive) Get(ctx context.Context, ref string) ([]byte, error) {
	return os.ReadFile(a.path(ref))
}

// List walks the directory of prefix. A missing directory lists nothing.
func (a *LocalArchive) List(ctx context.Context, prefix string) ([]string, error) {
	dir := strings.TrimSuffix(prefix, "/")
	root := a.path(dir)
	var refs []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return fs.SkipAll
			}
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}
		rel, err := filepath.Rel(a.BaseDir, path)
		if err != nil {
			return err
		}
		refs = append(refs, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", prefix, err)
	}
	sort.Strings(refs)
	return refs, nil
}

// OpenArchive builds the archive selected by cfg.Backend.
func OpenArchive(ctx context.Context, cfg config.ArchiveConfig) (Archive, error) {
	switch cfg.Backend {
	case "local", "":
		return NewLocalArchive(cfg.Dir), nil
	case "s3":
		return NewS3Archive(ctx, S3Config{
			Bucket:    cfg.Bucket,
			Region:    cfg.Region,
			Endpoint:  cfg.Endpoint,
			AccessKey: cfg.AccessKey,
			SecretKey: cfg.SecretKey,
		})
	case "gcs":
		return NewGCSArchive(ctx, cfg.Bucket)
	}
	return nil, fmt.Errorf("unknown archive backend %q", cfg.Backend)
}
