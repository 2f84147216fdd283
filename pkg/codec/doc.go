// Package codec converts parsed sets to and from pokepack's fixed-width
// binary form.
//
// Encoding happens in two steps. Codec.Encode resolves a paste.Set against
// the vocabulary in a dex.Dex and produces a Record, whose categorical fields
// are numeric codes. Pack then lays the Record out as a 21-byte Packed value.
// Unpack and Codec.Decode reverse the two steps.
//
// # Packed Format
//
// Fields are written most significant first, big-endian, in three groups:
//
//	bytes  0..4   species(11) gender(2) item(10) ability(9)              32 bits
//	byte   4      level(7) shiny(1)                                      8 bits
//	bytes  5..21  tera(5) ev[hp..spe](8x6) nature(5) iv[hp..spe](5x6)
//	              move[1..4](10x4)                                     128 bits
//
// Gender is 0 for male, 1 for female and 2 when unspecified. A level of 0
// means no level was given. Missing moves are written as code 0.
//
// For every field within its width, Unpack(Pack(r)) == r. Pack never fails:
// a value wider than its field loses its high bits. Record.Validate reports
// such values when the caller wants to reject them instead.
//
// # Lossy Encoding
//
// Encode is deliberately forgiving:
//   - names missing from the vocabulary encode as code 0
//   - gender other than "m" or "f" encodes as unspecified
//   - level and stat values outside 0..255 encode as 0
//   - stats the paste left out use 0 for EVs and 31 for IVs
//   - only the first four moves are kept
//
// None of these are errors. Decode fails only when a code has no entry in
// the loaded vocabulary, which means the data was packed with a different
// one.
//
// # Envelopes
//
// EnvelopeCodec frames a whole team for storage:
//
//	[CRC32(4)][Count(2)][Timestamp(8)][Count x Packed]
//
// The header is little-endian and the checksum covers everything after the
// CRC field.
//
// # Thread Safety
//
// Codec and EnvelopeCodec hold no mutable state and are safe for concurrent
// use. Pack and Unpack are pure functions.
package codec
