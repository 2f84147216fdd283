// Package transform turns packed records into line-oriented text and back.
//
// Each record becomes one line: uppercase hex (42 characters) or standard
// base64 (28 characters). Decoding is tolerant of blank lines
// and surrounding whitespace, and does not require one record per line:
// the decoded bytes are concatenated and then split into 21-byte records.
package transform

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/ssargent/pokepack/pkg/codec"
)

// Format selects the text encoding of packed records.
type Format string

const (
	Hex    Format = "hex"
	Base64 Format = "base64"
)

var (
	ErrInvalidText  = errors.New("invalid encoded text")
	ErrPackedLength = errors.New("packed length is not a multiple of record size")
	ErrFormat       = errors.New("unknown text format")
)

// Formats lists the supported text encodings.
var Formats = []Format{Hex, Base64}

// ParseFormat accepts "hex" or "base64" in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case Hex, Base64:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrFormat, s)
	}
}

func (f Format) String() string {
	return string(f)
}

// Encode renders one line per record, each terminated by '\n'. An unknown
// format renders as hex.
func Encode(records []codec.Packed, f Format) string {
	var b strings.Builder
	for _, p := range records {
		switch f {
		case Base64:
			b.WriteString(base64.StdEncoding.EncodeToString(p[:]))
		default:
			b.WriteString(strings.ToUpper(hex.EncodeToString(p[:])))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Decode parses text produced by Encode. Blank lines are skipped and lines
// are trimmed. Hex is accepted in either case.
func Decode(text string, f Format) ([]codec.Packed, error) {
	var raw []byte
	for n, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var (
			b   []byte
			err error
		)
		switch f {
		case Hex:
			b, err = hex.DecodeString(line)
		case Base64:
			b, err = base64.StdEncoding.DecodeString(line)
		default:
			return nil, fmt.Errorf("%w: %q", ErrFormat, string(f))
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidText, n+1, err)
		}
		raw = append(raw, b...)
	}
	return Split(raw)
}

// Split cuts raw bytes into packed records.
func Split(b []byte) ([]codec.Packed, error) {
	if len(b)%codec.PackedSize != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrPackedLength, len(b))
	}
	records := make([]codec.Packed, len(b)/codec.PackedSize)
	for i := range records {
		copy(records[i][:], b[i*codec.PackedSize:])
	}
	return records, nil
}

// Join concatenates packed records.
func Join(records []codec.Packed) []byte {
	b := make([]byte, 0, len(records)*codec.PackedSize)
	for _, p := range records {
		b = append(b, p[:]...)
	}
	return b
}

// Detect decodes text as hex, falling back to base64, and reports the
// format that succeeded.
func Detect(text string) ([]codec.Packed, Format, error) {
	records, hexErr := Decode(text, Hex)
	if hexErr == nil {
		return records, Hex, nil
	}
	records, b64Err := Decode(text, Base64)
	if b64Err == nil {
		return records, Base64, nil
	}
	return nil, "", fmt.Errorf("neither hex nor base64: %w", errors.Join(hexErr, b64Err))
}
