package pack

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ssargent/pokepack/pkg/codec"
	"github.com/ssargent/pokepack/pkg/dex"
	"github.com/ssargent/pokepack/pkg/paste"
	"github.com/ssargent/pokepack/pkg/transform"
)

// teamPaste is already in canonical form, so it formats back byte for byte.
const teamPaste = `Pikachu (M) @ Light Ball
Ability: Lightning Rod
Level: 50
Shiny: Yes
Tera Type: Electric
EVs: 4 HP / 252 Atk / 252 Spe
Jolly Nature
IVs: 0 SpA
- Fake Out
- Volt Tackle
- Iron Tail
- Protect

Garchomp (F) @ Choice Scarf
Ability: Rough Skin
Level: 100
Tera Type: Ground
EVs: 252 Atk / 4 SpD / 252 Spe
Adamant Nature
IVs: 30 Def
- Earthquake
- Stone Edge
- Iron Head
- Fire Fang
`

func newPacker(t *testing.T, opts ...Option) *Packer {
	t.Helper()
	d, err := dex.Default()
	require.NoError(t, err)
	return New(d, opts...)
}

func TestPacker_TwoBlockScenario(t *testing.T) {
	p := newPacker(t)

	packed, err := p.PasteToRecords(teamPaste)
	require.NoError(t, err)
	require.Len(t, packed, 2)
	assert.Len(t, transform.Join(packed), 42)

	first := codec.Unpack(packed[0])
	second := codec.Unpack(packed[1])
	assert.Equal(t, uint16(25), first.Species)
	assert.Equal(t, uint16(274), second.Species)

	text, err := p.PasteToText(teamPaste, transform.Hex)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, 84, len(lines[0])+len(lines[1]))
	assert.Equal(t, strings.ToUpper(text), text)
}

func TestPacker_RoundTrip(t *testing.T) {
	p := newPacker(t)

	for _, f := range transform.Formats {
		t.Run(f.String(), func(t *testing.T) {
			text, err := p.PasteToText(teamPaste, f)
			require.NoError(t, err)

			back, err := p.TextToPaste(text, f)
			require.NoError(t, err)
			assert.Equal(t, teamPaste, back)

			detected, err := p.TextToPaste(text, "")
			require.NoError(t, err)
			assert.Equal(t, teamPaste, detected)
		})
	}
}

func TestPacker_RecordsToSets(t *testing.T) {
	p := newPacker(t)

	packed, err := p.PasteToRecords(teamPaste)
	require.NoError(t, err)

	sets, err := p.RecordsToSets(packed)
	require.NoError(t, err)
	require.Len(t, sets, 2)
	assert.Equal(t, "Pikachu", sets[0].Species)
	assert.Equal(t, "Garchomp", sets[1].Species)
	assert.Equal(t, 30, sets[1].IVs.Get(paste.Def))
	assert.Equal(t, []string{"Earthquake", "Stone Edge", "Iron Head", "Fire Fang"}, sets[1].Moves)
}

func TestPacker_ParseErrors(t *testing.T) {
	p := newPacker(t)

	tests := []struct {
		name string
		text string
		want error
	}{
		{"empty input", "", paste.ErrEmptyInput},
		{"missing name", "Ability: Levitate\n- Protect", paste.ErrMissingName},
		{"malformed stats", "Pikachu\nEVs: 252SpA", paste.ErrMalformedStats},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.PasteToRecords(tt.text)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)

			_, err = p.Inspect(tt.text)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestPacker_TextErrors(t *testing.T) {
	p := newPacker(t)

	_, err := p.TextToPaste("XYZ", transform.Hex)
	assert.True(t, errors.Is(err, transform.ErrInvalidText))

	_, err = p.TextToPaste(strings.Repeat("00", 20), transform.Hex)
	assert.True(t, errors.Is(err, transform.ErrPackedLength))

	var bad codec.Packed
	bad[0] = 0xFF // species code 2047 is outside the bundled table
	_, err = p.RecordsToPaste([]codec.Packed{bad})
	assert.True(t, errors.Is(err, dex.ErrCodeOutOfRange))
}

func TestPacker_StrictRanges(t *testing.T) {
	wide := "Pikachu\nLevel: 200\nIVs: 40 HP"

	t.Run("lenient truncates and warns", func(t *testing.T) {
		core, logs := observer.New(zap.WarnLevel)
		p := newPacker(t, WithLogger(zap.New(core)))

		packed, err := p.PasteToRecords(wide)
		require.NoError(t, err)
		r := codec.Unpack(packed[0])
		assert.Equal(t, uint8(200&0x7F), r.Level)
		assert.Equal(t, uint8(40&0x1F), r.IVs[paste.HP])
		assert.Equal(t, 1, logs.FilterMessage("value truncated to fit packed field").Len())
	})

	t.Run("strict rejects", func(t *testing.T) {
		p := newPacker(t, WithStrictRanges(true))
		assert.True(t, p.Strict())

		_, err := p.PasteToRecords(wide)
		require.Error(t, err)
		assert.True(t, errors.Is(err, codec.ErrOutOfRange))
		assert.Contains(t, err.Error(), "set 1")
	})
}

func TestPacker_Inspect(t *testing.T) {
	p := newPacker(t)

	out, err := p.Inspect(teamPaste + "\nMew\nLevel: 250")
	require.NoError(t, err)
	require.Len(t, out, 3)

	assert.Equal(t, "Pikachu (M) @ Light Ball", strings.SplitN(out[0].Set.String(), "\n", 2)[0])
	assert.Equal(t, uint16(25), out[0].Record.Species)
	assert.Equal(t, codec.Pack(out[0].Record), out[0].Packed)
	assert.NoError(t, out[0].Truncated)

	assert.Equal(t, uint16(151), out[2].Record.Species)
	assert.True(t, errors.Is(out[2].Truncated, codec.ErrOutOfRange))
}

func TestRatio(t *testing.T) {
	assert.Equal(t, 0.0, Ratio("abc", ""))
	assert.Equal(t, 2.0, Ratio("abcd", "ab"))
	assert.InDelta(t, 0.5, Ratio("a", "ab"), 1e-9)
}
