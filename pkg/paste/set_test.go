package paste

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatBlock_String(t *testing.T) {
	evs := NewStatBlock(KindEffort)
	assert.Equal(t, "", evs.String())

	evs.Put(HP, 4)
	evs.Put(SpA, 252)
	evs.Put(Spe, 252)
	evs.Put(Def, 0)
	assert.Equal(t, "EVs: 4 HP / 252 SpA / 252 Spe", evs.String())

	ivs := NewStatBlock(KindPotential)
	ivs.Put(HP, 31)
	assert.Equal(t, "", ivs.String())
	ivs.Put(Atk, 0)
	assert.Equal(t, "IVs: 0 Atk", ivs.String())
}

func TestSet_String(t *testing.T) {
	s := NewSet()
	s.Species = "Garchomp"
	s.Gender = "f"
	s.Item = "Choice Scarf"
	s.Ability = "Rough Skin"
	s.Level = 50
	s.Shiny = true
	s.Tera = "Steel"
	s.EVs.Put(Atk, 252)
	s.EVs.Put(Spe, 252)
	s.Nature = "Jolly"
	s.IVs.Put(Def, 30)
	s.Moves = []string{"Earthquake", "", "Dragon Claw"}

	want := `Garchomp (F) @ Choice Scarf
Ability: Rough Skin
Level: 50
Shiny: Yes
Tera Type: Steel
EVs: 252 Atk / 252 Spe
Jolly Nature
IVs: 30 Def
- Earthquake
- Dragon Claw`
	assert.Equal(t, want, s.String())
}

func TestSet_StringMinimal(t *testing.T) {
	s := NewSet()
	s.Species = "Ditto"
	assert.Equal(t, "Ditto", s.String())
}

func TestFormat_ReparsesToSameSets(t *testing.T) {
	sets, err := Parse(twoSetPaste)
	require.NoError(t, err)

	again, err := Parse(Format(sets))
	require.NoError(t, err)
	require.Len(t, again, len(sets))

	for i := range sets {
		assert.Equal(t, sets[i].Species, again[i].Species)
		assert.Equal(t, sets[i].Gender, again[i].Gender)
		assert.Equal(t, sets[i].Item, again[i].Item)
		assert.Equal(t, sets[i].Level, again[i].Level)
		assert.Equal(t, sets[i].Shiny, again[i].Shiny)
		assert.Equal(t, sets[i].Moves, again[i].Moves)
		for s := Stat(0); s < NumStats; s++ {
			assert.Equal(t, sets[i].EVs.Get(s), again[i].EVs.Get(s))
			assert.Equal(t, sets[i].IVs.Get(s), again[i].IVs.Get(s))
		}
	}
}

func TestStat_String(t *testing.T) {
	assert.Equal(t, "SpD", SpD.String())
	assert.Equal(t, "Stat(9)", Stat(9).String())

	s, ok := parseStat("spe")
	assert.True(t, ok)
	assert.Equal(t, Spe, s)
	_, ok = parseStat("speed")
	assert.False(t, ok)
}
