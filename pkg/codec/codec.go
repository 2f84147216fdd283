package codec

import (
	"fmt"
	"strings"

	"github.com/ssargent/pokepack/pkg/dex"
	"github.com/ssargent/pokepack/pkg/paste"
)

// Codec maps sets to records using one vocabulary.
type Codec struct {
	dex *dex.Dex
}

// New creates a codec over d. d must not be nil.
func New(d *dex.Dex) *Codec {
	return &Codec{dex: d}
}

// Encode resolves s into a Record. It never fails; see the package
// documentation for the fallbacks applied to unknown or out of range input.
func (c *Codec) Encode(s paste.Set) Record {
	r := Record{
		Species: uint16(c.code(dex.Species, s.Species)),
		Gender:  encodeGender(s.Gender),
		Item:    uint16(c.code(dex.Items, s.Item)),
		Ability: uint16(c.code(dex.Abilities, s.Ability)),
		Level:   byteOrZero(s.Level),
		Shiny:   s.Shiny,
		Tera:    uint8(c.code(dex.Teras, s.Tera)),
		EVs:     encodeStats(s.EVs),
		Nature:  uint8(c.code(dex.Natures, s.Nature)),
		IVs:     encodeStats(s.IVs),
	}
	for i, m := range s.Moves {
		if i == MaxMoves {
			break
		}
		r.Moves[i] = uint16(c.code(dex.Moves, m))
	}
	return r
}

// EncodeAll encodes sets in order.
func (c *Codec) EncodeAll(sets []paste.Set) []Record {
	records := make([]Record, len(sets))
	for i, s := range sets {
		records[i] = c.Encode(s)
	}
	return records
}

// Decode turns a Record back into a set with display names. It fails only
// when a code is outside the loaded vocabulary.
func (c *Codec) Decode(r Record) (paste.Set, error) {
	s := paste.NewSet()
	var err error

	if s.Species, err = c.dex.Name(dex.Species, int(r.Species)); err != nil {
		return paste.Set{}, err
	}
	if s.Item, err = c.dex.Name(dex.Items, int(r.Item)); err != nil {
		return paste.Set{}, err
	}
	if s.Ability, err = c.dex.Name(dex.Abilities, int(r.Ability)); err != nil {
		return paste.Set{}, err
	}
	if s.Tera, err = c.dex.Name(dex.Teras, int(r.Tera)); err != nil {
		return paste.Set{}, err
	}
	if s.Nature, err = c.dex.Name(dex.Natures, int(r.Nature)); err != nil {
		return paste.Set{}, err
	}

	s.Gender = decodeGender(r.Gender)
	s.Level = int(r.Level)
	s.Shiny = r.Shiny
	for i := range r.EVs {
		s.EVs.Put(paste.Stat(i), int(r.EVs[i]))
		s.IVs.Put(paste.Stat(i), int(r.IVs[i]))
	}

	moves := make([]string, MaxMoves)
	for i, code := range r.Moves {
		if moves[i], err = c.dex.Name(dex.Moves, int(code)); err != nil {
			return paste.Set{}, fmt.Errorf("move %d: %w", i+1, err)
		}
	}
	// trailing padding carries no information
	for len(moves) > 0 && moves[len(moves)-1] == "" {
		moves = moves[:len(moves)-1]
	}
	s.Moves = moves

	return s, nil
}

// DecodeAll decodes records in order, stopping at the first failure.
func (c *Codec) DecodeAll(records []Record) ([]paste.Set, error) {
	sets := make([]paste.Set, len(records))
	for i, r := range records {
		s, err := c.Decode(r)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
		sets[i] = s
	}
	return sets, nil
}

// code is the case-insensitive lookup with the unknown-name fallback.
func (c *Codec) code(cat dex.Category, name string) int {
	code, _ := c.dex.Code(cat, name)
	return code
}

func encodeGender(g string) uint8 {
	switch strings.ToLower(g) {
	case "m":
		return GenderMale
	case "f":
		return GenderFemale
	default:
		return GenderNone
	}
}

func decodeGender(g uint8) string {
	switch g {
	case GenderMale:
		return "m"
	case GenderFemale:
		return "f"
	default:
		return ""
	}
}

func encodeStats(b paste.StatBlock) Stats {
	var st Stats
	for i := range st {
		st[i] = byteOrZero(b.Get(paste.Stat(i)))
	}
	return st
}

// byteOrZero narrows n to a byte, mapping anything outside 0..255 to 0.
func byteOrZero(n int) uint8 {
	if n < 0 || n > 255 {
		return 0
	}
	return uint8(n)
}
