package memo

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/lethanhdatit/v0-bocmenh-sub002/internal/logging"
	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/analysis"
	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/indicator"
)

// Engine wraps the day-level analyses with result caches. Cached reports are
// shared between callers and must be treated as read-only.
type Engine struct {
	inner  *analysis.Engine
	day    *Cache[*analysis.DayReport]
	ranked *Cache[[]*analysis.DayReport]
	log    *slog.Logger
}

// Wrap returns a caching view of e holding up to size entries per cache.
func Wrap(e *analysis.Engine, size int) *Engine {
	return &Engine{
		inner:  e,
		day:    NewCache[*analysis.DayReport](size),
		ranked: NewCache[[]*analysis.DayReport](size),
		log:    logging.New("memo"),
	}
}

// Unwrap returns the underlying engine.
func (m *Engine) Unwrap() *analysis.Engine {
	return m.inner
}

func (m *Engine) version() int64 {
	return m.inner.Rules().Version
}

func profileKey(p *indicator.Profile) string {
	if p == nil {
		return "-"
	}
	return fmt.Sprintf("%d/%d/%d/%s/%s", p.BirthYear, p.BirthMonth, p.BirthDay, p.Category, p.Event)
}

// DayQuality is analysis.Engine.DayQuality with caching.
func (m *Engine) DayQuality(date time.Time, event indicator.EventCategory) (*analysis.DayReport, error) {
	key := Key("day", m.version(), date.Format(analysis.DateLayout), event)
	if rep, ok := m.day.Get(key); ok {
		return rep, nil
	}
	rep, err := m.inner.DayQuality(date, event)
	if err != nil {
		return nil, err
	}
	m.day.Put(key, rep)
	return rep, nil
}

// DateCompatibility is analysis.Engine.DateCompatibility with caching.
func (m *Engine) DateCompatibility(p indicator.Profile, date time.Time, event indicator.EventCategory) (*analysis.DayReport, error) {
	key := Key("date", m.version(), profileKey(&p), date.Format(analysis.DateLayout), event)
	if rep, ok := m.day.Get(key); ok {
		return rep, nil
	}
	rep, err := m.inner.DateCompatibility(p, date, event)
	if err != nil {
		return nil, err
	}
	m.day.Put(key, rep)
	return rep, nil
}

// BestDays is analysis.Engine.BestDays with caching.
func (m *Engine) BestDays(year, month int, event indicator.EventCategory, p *indicator.Profile, limit int) ([]*analysis.DayReport, error) {
	key := Key("best", m.version(), year, month, event, profileKey(p), limit)
	if days, ok := m.ranked.Get(key); ok {
		m.log.Debug("best days served from cache", "year", year, "month", month)
		return days, nil
	}
	days, err := m.inner.BestDays(year, month, event, p, limit)
	if err != nil {
		return nil, err
	}
	m.ranked.Put(key, days)
	return days, nil
}

// Stats sums hits and misses over both caches.
func (m *Engine) Stats() (hits, misses int) {
	h1, m1 := m.day.Stats()
	h2, m2 := m.ranked.Stats()
	return h1 + h2, m1 + m2
}
