package pack

import (
	"github.com/ssargent/pokepack/pkg/codec"
	"github.com/ssargent/pokepack/pkg/paste"
)

// Inspection shows one creature at every stage of the encoding.
type Inspection struct {
	Set    paste.Set
	Record codec.Record
	Packed codec.Packed
	// Truncated holds the range error when a value did not fit its field.
	Truncated error
}

// Inspect parses text and reports each set with its codes and packed bytes.
// Range problems are reported per inspection regardless of strict mode.
func (p *Packer) Inspect(text string) ([]Inspection, error) {
	sets, err := paste.Parse(text)
	if err != nil {
		return nil, err
	}

	out := make([]Inspection, len(sets))
	for i, s := range sets {
		r := p.codec.Encode(s)
		out[i] = Inspection{
			Set:       s,
			Record:    r,
			Packed:    codec.Pack(r),
			Truncated: r.Validate(),
		}
	}
	return out, nil
}
