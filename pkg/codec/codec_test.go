package codec

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/pokepack/pkg/dex"
	"github.com/ssargent/pokepack/pkg/paste"
)

func testDex() *dex.Dex {
	return dex.Build(dex.Sources{
		dex.Species:   {"", "Bulbasaur", "Pikachu", "Garchomp"},
		dex.Items:     {"", "Leftovers", "Light Ball", "Choice Scarf"},
		dex.Abilities: {"", "Static", "Lightning Rod", "Rough Skin"},
		dex.Moves:     {"", "Protect", "Fake Out", "Volt Tackle", "Iron Tail", "Earthquake"},
		dex.Natures:   {"", "Adamant", "Jolly", "Timid"},
		dex.Teras:     {"", "Electric", "Ground", "Steel"},
	})
}

func pikachuSet() paste.Set {
	s := paste.NewSet()
	s.Species = "pikachu"
	s.Gender = "m"
	s.Item = "light ball"
	s.Ability = "Lightning Rod"
	s.Level = 50
	s.Shiny = true
	s.Tera = "Electric"
	s.EVs.Put(paste.HP, 4)
	s.EVs.Put(paste.Atk, 252)
	s.EVs.Put(paste.Spe, 252)
	s.Nature = "Jolly"
	s.IVs.Put(paste.SpA, 0)
	s.Moves = []string{"Fake Out", "Volt Tackle", "Iron Tail", "Protect"}
	return s
}

func TestCodec_Encode(t *testing.T) {
	c := New(testDex())

	r := c.Encode(pikachuSet())

	assert.Equal(t, Record{
		Species: 2,
		Gender:  GenderMale,
		Item:    2,
		Ability: 2,
		Level:   50,
		Shiny:   true,
		Tera:    1,
		EVs:     Stats{4, 252, 0, 0, 0, 252},
		Nature:  2,
		IVs:     Stats{31, 31, 31, 0, 31, 31},
		Moves:   [MaxMoves]uint16{2, 3, 4, 1},
	}, r)
}

func TestCodec_CaseInsensitive(t *testing.T) {
	c := New(testDex())

	lower := pikachuSet()
	upper := pikachuSet()
	upper.Species = "PIKACHU"
	upper.Item = "LIGHT BALL"
	upper.Ability = "lightning rod"
	upper.Tera = "eLeCtRiC"
	upper.Nature = "JOLLY"
	upper.Moves = []string{"fake out", "VOLT TACKLE", "iron tail", "protect"}
	upper.Gender = "M"

	assert.Equal(t, c.Encode(lower), c.Encode(upper))
}

func TestCodec_UnknownNamesFallBackToZero(t *testing.T) {
	c := New(testDex())

	s := pikachuSet()
	s.Species = "missingno"
	s.Item = "master ball"
	s.Ability = "wonder guard"
	s.Tera = "shadow"
	s.Nature = "grumpy"
	s.Moves = []string{"Splash", "Protect"}

	r := c.Encode(s)
	assert.Equal(t, uint16(0), r.Species)
	assert.Equal(t, uint16(0), r.Item)
	assert.Equal(t, uint16(0), r.Ability)
	assert.Equal(t, uint8(0), r.Tera)
	assert.Equal(t, uint8(0), r.Nature)
	assert.Equal(t, [MaxMoves]uint16{0, 1, 0, 0}, r.Moves)
}

func TestCodec_Gender(t *testing.T) {
	c := New(testDex())

	tests := []struct {
		in      string
		code    uint8
		decoded string
	}{
		{"m", GenderMale, "m"},
		{"M", GenderMale, "m"},
		{"f", GenderFemale, "f"},
		{"F", GenderFemale, "f"},
		{"", GenderNone, ""},
		{"x", GenderNone, ""},
		{"male", GenderNone, ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			s := pikachuSet()
			s.Gender = tt.in
			r := c.Encode(s)
			assert.Equal(t, tt.code, r.Gender)

			back, err := c.Decode(r)
			require.NoError(t, err)
			assert.Equal(t, tt.decoded, back.Gender)
		})
	}
}

func TestCodec_NumericFallbacks(t *testing.T) {
	c := New(testDex())

	t.Run("absent level round trips as absent", func(t *testing.T) {
		s := pikachuSet()
		s.Level = 0
		r := c.Encode(s)
		assert.Equal(t, uint8(0), r.Level)
		back, err := c.Decode(r)
		require.NoError(t, err)
		assert.Equal(t, 0, back.Level)
	})

	t.Run("level outside a byte is zero", func(t *testing.T) {
		s := pikachuSet()
		s.Level = 300
		assert.Equal(t, uint8(0), c.Encode(s).Level)
		s.Level = -5
		assert.Equal(t, uint8(0), c.Encode(s).Level)
	})

	t.Run("stat defaults", func(t *testing.T) {
		s := paste.NewSet()
		s.Species = "bulbasaur"
		r := c.Encode(s)
		assert.Equal(t, Stats{0, 0, 0, 0, 0, 0}, r.EVs)
		assert.Equal(t, Stats{31, 31, 31, 31, 31, 31}, r.IVs)
	})

	t.Run("stat outside a byte is zero", func(t *testing.T) {
		s := pikachuSet()
		s.EVs.Put(paste.Def, 300)
		s.IVs.Put(paste.Spe, -1)
		r := c.Encode(s)
		assert.Equal(t, uint8(0), r.EVs[paste.Def])
		assert.Equal(t, uint8(0), r.IVs[paste.Spe])
	})

	t.Run("iv wider than five bits is kept for validation", func(t *testing.T) {
		s := pikachuSet()
		s.IVs.Put(paste.HP, 40)
		r := c.Encode(s)
		assert.Equal(t, uint8(40), r.IVs[paste.HP])
		assert.True(t, errors.Is(r.Validate(), ErrOutOfRange))
	})
}

func TestCodec_Moves(t *testing.T) {
	c := New(testDex())

	t.Run("fewer than four are zero padded", func(t *testing.T) {
		s := pikachuSet()
		s.Moves = []string{"Protect"}
		r := c.Encode(s)
		assert.Equal(t, [MaxMoves]uint16{1, 0, 0, 0}, r.Moves)

		back, err := c.Decode(r)
		require.NoError(t, err)
		assert.Equal(t, []string{"Protect"}, back.Moves)
	})

	t.Run("only the first four are kept", func(t *testing.T) {
		s := pikachuSet()
		s.Moves = []string{"Fake Out", "Volt Tackle", "Iron Tail", "Protect", "Earthquake"}
		r := c.Encode(s)
		assert.Equal(t, [MaxMoves]uint16{2, 3, 4, 1}, r.Moves)
	})

	t.Run("interior unknown move keeps its slot", func(t *testing.T) {
		s := pikachuSet()
		s.Moves = []string{"Protect", "Splash", "Earthquake"}
		back, err := c.Decode(c.Encode(s))
		require.NoError(t, err)
		assert.Equal(t, []string{"Protect", "", "Earthquake"}, back.Moves)
	})

	t.Run("no moves", func(t *testing.T) {
		s := pikachuSet()
		s.Moves = nil
		back, err := c.Decode(c.Encode(s))
		require.NoError(t, err)
		assert.Empty(t, back.Moves)
	})
}

func TestCodec_Decode(t *testing.T) {
	c := New(testDex())

	s, err := c.Decode(c.Encode(pikachuSet()))
	require.NoError(t, err)

	assert.Equal(t, "Pikachu", s.Species)
	assert.Equal(t, "m", s.Gender)
	assert.Equal(t, "Light Ball", s.Item)
	assert.Equal(t, "Lightning Rod", s.Ability)
	assert.Equal(t, 50, s.Level)
	assert.True(t, s.Shiny)
	assert.Equal(t, "Electric", s.Tera)
	assert.Equal(t, "Jolly", s.Nature)
	assert.Equal(t, []string{"Fake Out", "Volt Tackle", "Iron Tail", "Protect"}, s.Moves)
	assert.Equal(t, 252, s.EVs.Get(paste.Atk))
	assert.Equal(t, 0, s.IVs.Get(paste.SpA))
	assert.Equal(t, 31, s.IVs.Get(paste.HP))
}

func TestCodec_DecodeOutOfRange(t *testing.T) {
	c := New(testDex())

	tests := []struct {
		name   string
		record Record
	}{
		{"species", Record{Species: 4}},
		{"item", Record{Item: 900}},
		{"ability", Record{Ability: 10}},
		{"tera", Record{Tera: 19}},
		{"nature", Record{Nature: 25}},
		{"move", Record{Moves: [MaxMoves]uint16{0, 0, 6, 0}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Decode(tt.record)
			require.Error(t, err)
			assert.True(t, errors.Is(err, dex.ErrCodeOutOfRange))
		})
	}

	_, err := c.DecodeAll([]Record{{}, {Species: 99}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "record 2")
}

func TestCodec_EncodeDecodeEncodeIsStable(t *testing.T) {
	c := New(testDex())

	sets := []paste.Set{pikachuSet(), paste.NewSet()}
	sets[1].Species = "Garchomp"
	sets[1].Gender = "f"
	sets[1].Item = "Choice Scarf"
	sets[1].Moves = []string{"Earthquake"}

	for _, s := range sets {
		r := c.Encode(s)
		back, err := c.Decode(r)
		require.NoError(t, err)
		assert.Equal(t, r, c.Encode(back))
		assert.Equal(t, r, Unpack(Pack(r)))
	}
}

func TestCodec_WithDefaultDex(t *testing.T) {
	d, err := dex.Default()
	require.NoError(t, err)
	c := New(d)

	sets, err := paste.Parse(`Pikachu @ Light Ball
Ability: Lightning Rod
EVs: 252 Atk / 252 Spe
Jolly Nature
- Volt Tackle
- Protect`)
	require.NoError(t, err)

	r := c.Encode(sets[0])
	assert.Equal(t, uint16(25), r.Species)
	assert.NoError(t, r.Validate())

	back, err := c.Decode(r)
	require.NoError(t, err)
	assert.Equal(t, "Pikachu", back.Species)
	assert.Equal(t, "Light Ball", back.Item)
	assert.Equal(t, []string{"Volt Tackle", "Protect"}, back.Moves)
}
