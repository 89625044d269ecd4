package rules

import (
	"fmt"
	"sync/atomic"
)

// Snapshot is one immutable version of the rule base.
type Snapshot struct {
	Version int64
	Rules   *RuleSet
}

// Store publishes rule snapshots. Readers take one snapshot per computation so
// a concurrent Replace is never observed half-applied.
type Store struct {
	current atomic.Pointer[Snapshot]
}

// NewStore validates rs and publishes it as version 1.
func NewStore(rs *RuleSet) (*Store, error) {
	if err := rs.Validate(); err != nil {
		return nil, fmt.Errorf("validating rules: %w", err)
	}
	s := &Store{}
	s.current.Store(&Snapshot{Version: 1, Rules: rs})
	return s, nil
}

// MustDefault returns a store holding the built-in rule base. The defaults are
// fixed tables, so a validation failure here is a bug and panics.
func MustDefault() *Store {
	s, err := NewStore(Default())
	if err != nil {
		panic(err)
	}
	return s
}

// Current returns the latest published snapshot.
func (s *Store) Current() *Snapshot {
	return s.current.Load()
}

// Replace validates rs and publishes it under the next version number.
func (s *Store) Replace(rs *RuleSet) (*Snapshot, error) {
	if err := rs.Validate(); err != nil {
		return nil, fmt.Errorf("validating rules: %w", err)
	}
	for {
		old := s.current.Load()
		next := &Snapshot{Version: old.Version + 1, Rules: rs}
		if s.current.CompareAndSwap(old, next) {
			return next, nil
		}
	}
}
