package codec

import (
	"errors"
	"fmt"

	"github.com/ssargent/pokepack/pkg/paste"
)

// Field widths in bits.
const (
	SpeciesBits = 11
	GenderBits  = 2
	ItemBits    = 10
	AbilityBits = 9
	LevelBits   = 7
	ShinyBits   = 1
	TeraBits    = 5
	EVBits      = 8
	NatureBits  = 5
	IVBits      = 5
	MoveBits    = 10
)

const (
	// PackedSize is the length of one packed record.
	PackedSize = 21
	// MaxMoves is the number of move slots in a record.
	MaxMoves = 4
)

// Gender codes.
const (
	GenderMale   uint8 = 0
	GenderFemale uint8 = 1
	GenderNone   uint8 = 2
)

// Packed is the wire form of one Record.
type Packed [PackedSize]byte

// Stats holds six stat values in paste.Stat order.
type Stats [paste.NumStats]uint8

// Record is a set with every field reduced to a small unsigned integer.
type Record struct {
	Species uint16
	Gender  uint8
	Item    uint16
	Ability uint16
	Level   uint8
	Shiny   bool
	Tera    uint8
	EVs     Stats
	Nature  uint8
	IVs     Stats
	Moves   [MaxMoves]uint16
}

// ErrOutOfRange marks a Record field that does not fit its packed width.
var ErrOutOfRange = errors.New("value exceeds field width")

// RangeError reports one field that Pack would truncate.
type RangeError struct {
	Field string
	Value uint64
	Bits  int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s: %d does not fit in %d bits", e.Field, e.Value, e.Bits)
}

func (e *RangeError) Unwrap() error {
	return ErrOutOfRange
}

// Validate reports every field whose value is wider than its packed field.
// It returns nil when Pack would be lossless.
func (r Record) Validate() error {
	var errs []error
	check := func(field string, v uint64, bits int) {
		if v > maxValue(bits) {
			errs = append(errs, &RangeError{Field: field, Value: v, Bits: bits})
		}
	}

	check("species", uint64(r.Species), SpeciesBits)
	check("gender", uint64(r.Gender), GenderBits)
	check("item", uint64(r.Item), ItemBits)
	check("ability", uint64(r.Ability), AbilityBits)
	check("level", uint64(r.Level), LevelBits)
	check("tera", uint64(r.Tera), TeraBits)
	for i, ev := range r.EVs {
		check("ev "+paste.Stat(i).String(), uint64(ev), EVBits)
	}
	check("nature", uint64(r.Nature), NatureBits)
	for i, iv := range r.IVs {
		check("iv "+paste.Stat(i).String(), uint64(iv), IVBits)
	}
	for i, m := range r.Moves {
		check(fmt.Sprintf("move %d", i+1), uint64(m), MoveBits)
	}

	return errors.Join(errs...)
}

func maxValue(bits int) uint64 {
	return 1<<bits - 1
}
