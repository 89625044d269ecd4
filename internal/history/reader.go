package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// Finder looks up summary rows by ID. *Store is the production implementation.
type Finder interface {
	Get(ctx context.Context, id string) (*Record, error)
}

// Entry is one recorded result: the summary row and the archived report.
type Entry struct {
	Record   Record    `json:"record"`
	Envelope *Envelope `json:"envelope"`
}

// Reader reads recorded results back. With an index it resolves IDs through
// Postgres; without one it searches the archive of its subject.
type Reader struct {
	archive Archive
	index   Finder
	subject string
}

// NewReader creates a Reader. index may be nil.
func NewReader(archive Archive, index Finder, subject string) *Reader {
	return &Reader{archive: archive, index: index, subject: subject}
}

// ReadEnvelope loads and decodes the envelope at ref. The envelope must
// describe the ref it was stored under.
func ReadEnvelope(ctx context.Context, a Archive, ref string) (*Envelope, error) {
	data, err := a.Get(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", ref, err)
	}
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode %s: %w", ref, err)
	}
	if got := Ref(env.Subject, env.Kind, env.ID); got != ref {
		return nil, fmt.Errorf("envelope at %s describes %s", ref, got)
	}
	return &env, nil
}

// Show returns the result recorded under id.
func (r *Reader) Show(ctx context.Context, id string) (*Entry, error) {
	if r.index != nil {
		rec, err := r.index.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		env, err := ReadEnvelope(ctx, r.archive, rec.ArchiveRef)
		if err != nil {
			return nil, err
		}
		return &Entry{Record: *rec, Envelope: env}, nil
	}

	ref, err := r.find(ctx, id)
	if err != nil {
		return nil, err
	}
	env, err := ReadEnvelope(ctx, r.archive, ref)
	if err != nil {
		return nil, err
	}
	return &Entry{Record: env.Record(), Envelope: env}, nil
}

func (r *Reader) find(ctx context.Context, id string) (string, error) {
	refs, err := r.archive.List(ctx, Prefix(r.subject, ""))
	if err != nil {
		return "", err
	}
	for _, ref := range refs {
		if _, _, refID, ok := ParseRef(ref); ok && refID == id {
			return ref, nil
		}
	}
	return "", fmt.Errorf("analysis result %s: %w", id, ErrNotFound)
}

// Recent lists the newest archived results of the subject, narrowed to kind
// when set, at most limit. It reads every envelope under the prefix, so it
// suits archives without an index.
func (r *Reader) Recent(ctx context.Context, kind string, limit int) ([]Record, error) {
	if limit < 1 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}
	refs, err := r.archive.List(ctx, Prefix(r.subject, kind))
	if err != nil {
		return nil, err
	}

	var (
		records []Record
		errs    []error
	)
	for _, ref := range refs {
		if _, _, _, ok := ParseRef(ref); !ok {
			continue
		}
		env, err := ReadEnvelope(ctx, r.archive, ref)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		records = append(records, env.Record())
	}
	if len(records) == 0 && len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	if len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}
