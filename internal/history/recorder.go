package history

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/lethanhdatit/v0-bocmenh-sub002/internal/logging"
	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/analysis"
	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/scoring"
)

// Index stores summary rows. *Store is the production implementation.
type Index interface {
	Insert(ctx context.Context, r *Record) error
}

// Recorder writes reports to an archive and, when an index is configured,
// a summary row. Both writes run concurrently.
type Recorder struct {
	archive Archive
	index   Index
	subject string
	log     *slog.Logger
	now     func() time.Time
}

// NewRecorder creates a Recorder. index may be nil to archive only.
func NewRecorder(archive Archive, index Index, subject string) *Recorder {
	return &Recorder{
		archive: archive,
		index:   index,
		subject: subject,
		log:     logging.New("history"),
		now:     time.Now,
	}
}

// Envelope is the archived form of a report.
type Envelope struct {
	ID           string          `json:"id"`
	Subject      string          `json:"subject"`
	Kind         string          `json:"kind"`
	RecordedAt   time.Time       `json:"recorded_at"`
	Overall      *int            `json:"overall,omitempty"`
	Rating       string          `json:"rating,omitempty"`
	RulesVersion int64           `json:"rules_version"`
	Request      json.RawMessage `json:"request"`
	Report       json.RawMessage `json:"report"`
}

// Record returns the summary row the envelope was archived with.
func (e *Envelope) Record() Record {
	return Record{
		ID:           e.ID,
		Subject:      e.Subject,
		Kind:         e.Kind,
		Overall:      e.Overall,
		Rating:       e.Rating,
		RulesVersion: e.RulesVersion,
		ArchiveRef:   Ref(e.Subject, e.Kind, e.ID),
		Request:      e.Request,
		CreatedAt:    e.RecordedAt,
	}
}

// Record stores report under kind. request describes the inputs that
// produced it.
func (r *Recorder) Record(ctx context.Context, kind string, request, report any) (*Record, error) {
	reqJSON, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	repJSON, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}

	id := uuid.New().String()
	rec := &Record{
		ID:         id,
		Subject:    r.subject,
		Kind:       kind,
		ArchiveRef: Ref(r.subject, kind, id),
		Request:    reqJSON,
		CreatedAt:  r.now().UTC(),
	}
	rec.Overall, rec.Rating, rec.RulesVersion = summarize(report)

	blob, err := json.MarshalIndent(Envelope{
		ID:           id,
		Subject:      r.subject,
		Kind:         kind,
		RecordedAt:   rec.CreatedAt,
		Overall:      rec.Overall,
		Rating:       rec.Rating,
		RulesVersion: rec.RulesVersion,
		Request:      reqJSON,
		Report:       repJSON,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal envelope: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := r.archive.Put(gctx, rec.ArchiveRef, blob); err != nil {
			return fmt.Errorf("archive %s: %w", rec.ArchiveRef, err)
		}
		return nil
	})
	if r.index != nil {
		g.Go(func() error {
			return r.index.Insert(gctx, rec)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	r.log.Info("recorded analysis", "id", id, "kind", kind, "ref", rec.ArchiveRef)
	return rec, nil
}

// summarize extracts the headline score of a report.
func summarize(report any) (overall *int, rating string, version int64) {
	scored := func(s *scoring.Result, v int64) (*int, string, int64) {
		o := s.Overall
		return &o, s.Rating, v
	}
	switch v := report.(type) {
	case *analysis.DirectionReport:
		return scored(v.Score, v.RulesVersion)
	case *analysis.CornerReport:
		return scored(v.Score, v.RulesVersion)
	case *analysis.DayReport:
		return scored(v.Score, v.RulesVersion)
	case *analysis.DirectionSummary:
		if len(v.Directions) > 0 {
			return scored(v.Directions[0].Score, v.RulesVersion)
		}
		return nil, "", v.RulesVersion
	case []*analysis.DayReport:
		if len(v) > 0 {
			return scored(v[0].Score, v[0].RulesVersion)
		}
	case []analysis.MonthRanking:
		for _, m := range v {
			if len(m.Days) > 0 {
				return nil, "", m.Days[0].RulesVersion
			}
		}
	case *analysis.ChartReport:
		return nil, "", v.RulesVersion
	case *analysis.PersonalReport:
		return nil, "", v.RulesVersion
	}
	return nil, "", 0
}
