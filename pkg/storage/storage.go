// Package storage keeps packed teams in a pebble database keyed by KSUID.
package storage

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/segmentio/ksuid"
	"go.uber.org/zap"

	"github.com/ssargent/pokepack/pkg/codec"
	"github.com/ssargent/pokepack/pkg/logging"
)

// ErrNotFound is returned for ids with no stored team.
var ErrNotFound = errors.New("team not found")

var teamPrefix = []byte("team/")

// Team summarises a stored envelope.
type Team struct {
	ID      ksuid.KSUID `json:"id"`
	Created time.Time   `json:"created"`
	Records int         `json:"records"`
}

// TeamStore persists teams as checksummed envelopes.
type TeamStore struct {
	db     *pebble.DB
	codec  *codec.EnvelopeCodec
	logger *zap.Logger
}

// Option configures a TeamStore.
type Option func(*TeamStore)

// WithLogger sets the store logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *TeamStore) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewTeamStore opens (or creates) the database at path.
func NewTeamStore(path string, opts ...Option) (*TeamStore, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open team store: %w", err)
	}
	s := &TeamStore{
		db:     db,
		codec:  codec.NewEnvelopeCodec(),
		logger: logging.Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// ParseID parses the string form of a team id.
func ParseID(s string) (ksuid.KSUID, error) {
	id, err := ksuid.Parse(s)
	if err != nil {
		return ksuid.Nil, fmt.Errorf("invalid team id %q: %w", s, err)
	}
	return id, nil
}

func teamKey(id ksuid.KSUID) []byte {
	return append(append([]byte{}, teamPrefix...), id.Bytes()...)
}

// Create stores records under a new id.
func (s *TeamStore) Create(records []codec.Packed) (ksuid.KSUID, error) {
	data, err := s.codec.Encode(records)
	if err != nil {
		return ksuid.Nil, err
	}

	id := ksuid.New()
	b := s.db.NewBatch()
	defer b.Close()
	if err := b.Set(teamKey(id), data, nil); err != nil {
		return ksuid.Nil, fmt.Errorf("failed to store team: %w", err)
	}
	for _, code := range speciesCodes(records) {
		if err := b.Set(speciesKey(code, id), nil, nil); err != nil {
			return ksuid.Nil, fmt.Errorf("failed to index team: %w", err)
		}
	}
	if err := b.Commit(pebble.Sync); err != nil {
		return ksuid.Nil, fmt.Errorf("failed to store team: %w", err)
	}

	s.logger.Debug("stored team", zap.Stringer("id", id), zap.Int("records", len(records)))
	return id, nil
}

// Read loads and verifies the envelope stored under id.
func (s *TeamStore) Read(id ksuid.KSUID) (*codec.Envelope, error) {
	value, closer, err := s.db.Get(teamKey(id))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read team: %w", err)
	}
	data := bytes.Clone(value)
	if err := closer.Close(); err != nil {
		return nil, err
	}

	e, err := s.codec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("team %s: %w", id, err)
	}
	if err := e.Validate(); err != nil {
		s.logger.Error("corrupt team envelope", zap.Stringer("id", id), zap.Error(err))
		return nil, fmt.Errorf("team %s: %w", id, err)
	}
	return e, nil
}

// Delete removes the team stored under id along with its index entries.
func (s *TeamStore) Delete(id ksuid.KSUID) error {
	key := teamKey(id)
	value, closer, err := s.db.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("failed to read team: %w", err)
	}
	data := bytes.Clone(value)
	closer.Close()

	b := s.db.NewBatch()
	defer b.Close()
	if err := b.Delete(key, nil); err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}
	// a corrupt envelope leaves stale index entries; FindBySpecies skips them
	if e, err := s.codec.Decode(data); err == nil {
		for _, code := range speciesCodes(e.Records) {
			if err := b.Delete(speciesKey(code, id), nil); err != nil {
				return fmt.Errorf("failed to delete team: %w", err)
			}
		}
	}
	if err := b.Commit(pebble.Sync); err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}
	return nil
}

// List returns up to limit teams, oldest first. A limit of zero or less
// returns every team.
func (s *TeamStore) List(limit int) ([]Team, error) {
	var teams []Team
	err := s.scan(teamPrefix, func(id ksuid.KSUID, value []byte) bool {
		e, err := s.codec.Decode(value)
		if err != nil {
			s.logger.Warn("skipping unreadable team", zap.Stringer("id", id), zap.Error(err))
			return true
		}
		teams = append(teams, Team{ID: id, Created: e.Created(), Records: int(e.Count)})
		return limit <= 0 || len(teams) < limit
	})
	return teams, err
}

// Count returns the number of stored teams.
func (s *TeamStore) Count() (int, error) {
	n := 0
	err := s.scan(teamPrefix, func(ksuid.KSUID, []byte) bool {
		n++
		return true
	})
	return n, err
}

// scan visits every key under prefix whose suffix is a KSUID.
func (s *TeamStore) scan(prefix []byte, fn func(id ksuid.KSUID, value []byte) bool) error {
	iter, err := s.db.NewIter(&pebble.IterOptions{LowerBound: prefix, UpperBound: prefixEnd(prefix)})
	if err != nil {
		return fmt.Errorf("failed to open iterator: %w", err)
	}
	defer iter.Close()

	for iter.First(); iter.Valid(); iter.Next() {
		id, err := ksuid.FromBytes(iter.Key()[len(prefix):])
		if err != nil {
			continue
		}
		if !fn(id, iter.Value()) {
			break
		}
	}
	return iter.Error()
}

// prefixEnd returns the smallest key greater than every key starting with
// prefix, or nil when there is none.
func prefixEnd(prefix []byte) []byte {
	end := append([]byte{}, prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return end[:i+1]
		}
	}
	return nil
}

// Close closes the underlying database.
func (s *TeamStore) Close() error {
	return s.db.Close()
}
