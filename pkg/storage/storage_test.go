package storage

import (
	"errors"
	"os"
	"testing"

	"github.com/cockroachdb/pebble"
	"github.com/segmentio/ksuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/pokepack/pkg/codec"
)

func newTestStore(t *testing.T) *TeamStore {
	t.Helper()
	tmpDir, err := os.MkdirTemp("", "pokepack_storage_test")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	s, err := NewTeamStore(tmpDir)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func team(species ...uint16) []codec.Packed {
	out := make([]codec.Packed, len(species))
	for i, sp := range species {
		out[i] = codec.Pack(codec.Record{Species: sp, Level: 50})
	}
	return out
}

func TestTeamStore_CreateRead(t *testing.T) {
	s := newTestStore(t)

	records := team(25, 445, 1)
	id, err := s.Create(records)
	require.NoError(t, err)
	assert.NotEqual(t, ksuid.Nil, id)

	e, err := s.Read(id)
	require.NoError(t, err)
	assert.Equal(t, records, e.Records)
	assert.Equal(t, uint16(3), e.Count)
}

func TestTeamStore_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Read(ksuid.New())
	assert.True(t, errors.Is(err, ErrNotFound))

	err = s.Delete(ksuid.New())
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestTeamStore_Delete(t *testing.T) {
	s := newTestStore(t)

	id, err := s.Create(team(25))
	require.NoError(t, err)

	require.NoError(t, s.Delete(id))
	_, err = s.Read(id)
	assert.True(t, errors.Is(err, ErrNotFound))

	n, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestTeamStore_ListAndCount(t *testing.T) {
	s := newTestStore(t)

	n, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	ids := make(map[ksuid.KSUID]int)
	for i := 1; i <= 4; i++ {
		species := make([]uint16, i)
		id, err := s.Create(team(species...))
		require.NoError(t, err)
		ids[id] = i
	}

	n, err = s.Count()
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	all, err := s.List(0)
	require.NoError(t, err)
	require.Len(t, all, 4)
	for _, tm := range all {
		assert.Equal(t, ids[tm.ID], tm.Records)
		assert.False(t, tm.Created.IsZero())
	}

	some, err := s.List(2)
	require.NoError(t, err)
	assert.Len(t, some, 2)
}

func TestTeamStore_Corruption(t *testing.T) {
	s := newTestStore(t)

	id, err := s.Create(team(25, 26))
	require.NoError(t, err)

	key := teamKey(id)
	value, closer, err := s.db.Get(key)
	require.NoError(t, err)
	data := append([]byte{}, value...)
	require.NoError(t, closer.Close())

	data[len(data)-1] ^= 0xFF
	require.NoError(t, s.db.Set(key, data, pebble.Sync))

	_, err = s.Read(id)
	assert.True(t, errors.Is(err, codec.ErrChecksum))

	require.NoError(t, s.db.Set(key, data[:10], pebble.Sync))
	_, err = s.Read(id)
	assert.True(t, errors.Is(err, codec.ErrEnvelope))

	teams, err := s.List(0)
	require.NoError(t, err)
	assert.Empty(t, teams)
}

func TestTeamStore_Reopen(t *testing.T) {
	dir := t.TempDir()

	s, err := NewTeamStore(dir)
	require.NoError(t, err)
	id, err := s.Create(team(150))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = NewTeamStore(dir)
	require.NoError(t, err)
	defer s.Close()

	e, err := s.Read(id)
	require.NoError(t, err)
	assert.Equal(t, team(150), e.Records)
}

func TestParseID(t *testing.T) {
	id := ksuid.New()

	got, err := ParseID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = ParseID("not-a-ksuid")
	assert.Error(t, err)
}

func TestTeamStore_FindBySpecies(t *testing.T) {
	s := newTestStore(t)

	a, err := s.Create(team(25, 445))
	require.NoError(t, err)
	b, err := s.Create(team(25, 25, 6))
	require.NoError(t, err)
	_, err = s.Create(team(0, 0))
	require.NoError(t, err)

	found, err := s.FindBySpecies(25)
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.ElementsMatch(t, []ksuid.KSUID{a, b}, []ksuid.KSUID{found[0].ID, found[1].ID})

	found, err = s.FindBySpecies(445)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, a, found[0].ID)
	assert.Equal(t, 2, found[0].Records)

	found, err = s.FindBySpecies(0)
	require.NoError(t, err)
	assert.Empty(t, found, "absent species are not indexed")

	require.NoError(t, s.Delete(a))
	found, err = s.FindBySpecies(25)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, b, found[0].ID)

	found, err = s.FindBySpecies(445)
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestTeamStore_FindBySpeciesCodeBoundary(t *testing.T) {
	s := newTestStore(t)

	// 255 and 511 end in 0xFF, so their scan bound carries into the high byte
	low, err := s.Create(team(255))
	require.NoError(t, err)
	high, err := s.Create(team(256, 511))
	require.NoError(t, err)

	found, err := s.FindBySpecies(255)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, low, found[0].ID)

	found, err = s.FindBySpecies(511)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, high, found[0].ID)
}

func TestTeamStore_StaleIndexEntry(t *testing.T) {
	s := newTestStore(t)

	id, err := s.Create(team(25))
	require.NoError(t, err)
	require.NoError(t, s.db.Delete(teamKey(id), pebble.Sync))

	found, err := s.FindBySpecies(25)
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestPrefixEnd(t *testing.T) {
	assert.Equal(t, []byte("team0"), prefixEnd([]byte("team/")))
	assert.Equal(t, []byte{0x01, 0x02}, prefixEnd([]byte{0x01, 0x01, 0xFF}))
	assert.Nil(t, prefixEnd([]byte{0xFF, 0xFF}))
}
