package storage

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"
	"github.com/segmentio/ksuid"
	"go.uber.org/zap"

	"github.com/ssargent/pokepack/pkg/codec"
)

// Species index entries are speciesPrefix + code (2 bytes, big endian) +
// team id, with an empty value. Big endian keeps one code's entries
// contiguous and ordered by id.
var speciesPrefix = []byte("species/")

func speciesKey(code uint16, id ksuid.KSUID) []byte {
	key := speciesCodePrefix(code)
	return append(key, id.Bytes()...)
}

func speciesCodePrefix(code uint16) []byte {
	key := make([]byte, len(speciesPrefix), len(speciesPrefix)+2+len(ksuid.Nil))
	copy(key, speciesPrefix)
	return binary.BigEndian.AppendUint16(key, code)
}

// speciesCodes returns the distinct non-zero species codes in records.
func speciesCodes(records []codec.Packed) []uint16 {
	seen := make(map[uint16]bool, len(records))
	var codes []uint16
	for _, p := range records {
		code := codec.Unpack(p).Species
		if code == 0 || seen[code] {
			continue
		}
		seen[code] = true
		codes = append(codes, code)
	}
	return codes
}

// FindBySpecies returns the teams containing the species code, oldest first.
// Index entries whose team is gone or unreadable are skipped.
func (s *TeamStore) FindBySpecies(code uint16) ([]Team, error) {
	var ids []ksuid.KSUID
	err := s.scan(speciesCodePrefix(code), func(id ksuid.KSUID, _ []byte) bool {
		ids = append(ids, id)
		return true
	})
	if err != nil {
		return nil, err
	}

	teams := make([]Team, 0, len(ids))
	for _, id := range ids {
		t, err := s.summary(id)
		if errors.Is(err, ErrNotFound) {
			s.logger.Debug("skipping stale species index entry", zap.Stringer("id", id), zap.Uint16("species", code))
			continue
		}
		if err != nil {
			s.logger.Warn("skipping unreadable team", zap.Stringer("id", id), zap.Error(err))
			continue
		}
		teams = append(teams, t)
	}
	return teams, nil
}

func (s *TeamStore) summary(id ksuid.KSUID) (Team, error) {
	value, closer, err := s.db.Get(teamKey(id))
	if errors.Is(err, pebble.ErrNotFound) {
		return Team{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return Team{}, fmt.Errorf("failed to read team: %w", err)
	}
	defer closer.Close()

	e, err := s.codec.Decode(value)
	if err != nil {
		return Team{}, err
	}
	return Team{ID: id, Created: e.Created(), Records: int(e.Count)}, nil
}
