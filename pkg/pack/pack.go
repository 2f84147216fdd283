// Package pack wires the paste parser, the codec and the text transforms
// into the end-to-end conversions used by the CLI and the HTTP API.
package pack

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ssargent/pokepack/pkg/codec"
	"github.com/ssargent/pokepack/pkg/dex"
	"github.com/ssargent/pokepack/pkg/logging"
	"github.com/ssargent/pokepack/pkg/paste"
	"github.com/ssargent/pokepack/pkg/transform"
)

// Packer converts team pastes to packed records and back. It is safe for
// concurrent use.
type Packer struct {
	dex    *dex.Dex
	codec  *codec.Codec
	strict bool
	logger *zap.Logger
}

// Option configures a Packer.
type Option func(*Packer)

// WithStrictRanges makes encoding fail when a value does not fit its
// packed field instead of silently truncating it.
func WithStrictRanges(strict bool) Option {
	return func(p *Packer) {
		p.strict = strict
	}
}

// WithLogger sets the logger. The default is logging.Logger().
func WithLogger(l *zap.Logger) Option {
	return func(p *Packer) {
		if l != nil {
			p.logger = l
		}
	}
}

// New creates a Packer over d.
func New(d *dex.Dex, opts ...Option) *Packer {
	p := &Packer{
		dex:    d,
		codec:  codec.New(d),
		logger: logging.Logger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Dex returns the vocabulary the packer resolves names against.
func (p *Packer) Dex() *dex.Dex {
	return p.dex
}

// Strict reports whether range validation is enabled.
func (p *Packer) Strict() bool {
	return p.strict
}

// PasteToRecords parses text and packs one record per set.
func (p *Packer) PasteToRecords(text string) ([]codec.Packed, error) {
	sets, err := paste.Parse(text)
	if err != nil {
		return nil, err
	}
	return p.SetsToRecords(sets)
}

// SetsToRecords packs already parsed sets.
func (p *Packer) SetsToRecords(sets []paste.Set) ([]codec.Packed, error) {
	packed := make([]codec.Packed, len(sets))
	for i, s := range sets {
		r, err := p.encode(s)
		if err != nil {
			return nil, fmt.Errorf("set %d: %w", i+1, err)
		}
		packed[i] = codec.Pack(r)
	}
	p.logger.Debug("packed team", zap.Int("sets", len(sets)))
	return packed, nil
}

// PasteToText parses text and renders the packed records in format f.
func (p *Packer) PasteToText(text string, f transform.Format) (string, error) {
	packed, err := p.PasteToRecords(text)
	if err != nil {
		return "", err
	}
	return transform.Encode(packed, f), nil
}

// RecordsToSets unpacks and decodes records.
func (p *Packer) RecordsToSets(packed []codec.Packed) ([]paste.Set, error) {
	records := make([]codec.Record, len(packed))
	for i, b := range packed {
		records[i] = codec.Unpack(b)
	}
	sets, err := p.codec.DecodeAll(records)
	if err != nil {
		return nil, err
	}
	p.logger.Debug("unpacked team", zap.Int("records", len(packed)))
	return sets, nil
}

// RecordsToPaste unpacks records and formats them as paste text.
func (p *Packer) RecordsToPaste(packed []codec.Packed) (string, error) {
	sets, err := p.RecordsToSets(packed)
	if err != nil {
		return "", err
	}
	return paste.Format(sets), nil
}

// TextToPaste decodes text in format f and formats the records as paste
// text. An empty format tries hex, then base64.
func (p *Packer) TextToPaste(text string, f transform.Format) (string, error) {
	var (
		packed []codec.Packed
		err    error
	)
	if f == "" {
		packed, f, err = transform.Detect(text)
	} else {
		packed, err = transform.Decode(text, f)
	}
	if err != nil {
		return "", err
	}
	p.logger.Debug("decoded text", zap.Stringer("format", f), zap.Int("records", len(packed)))
	return p.RecordsToPaste(packed)
}

func (p *Packer) encode(s paste.Set) (codec.Record, error) {
	r := p.codec.Encode(s)
	if err := r.Validate(); err != nil {
		if p.strict {
			return codec.Record{}, err
		}
		p.logger.Warn("value truncated to fit packed field",
			zap.String("species", s.Species),
			zap.Error(err))
	}
	return r, nil
}

// Ratio is the size of the original text over the size of its encoded
// form. It is 0 when encoded is empty.
func Ratio(original, encoded string) float64 {
	if len(encoded) == 0 {
		return 0
	}
	return float64(len(original)) / float64(len(encoded))
}
