package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"math"
	"time"
)

// EnvelopeHeaderSize is CRC32(4) + Count(2) + Timestamp(8).
const EnvelopeHeaderSize = 14

var (
	ErrEnvelope = errors.New("malformed envelope")
	ErrChecksum = errors.New("envelope checksum mismatch")
)

// Envelope is a stored team: its packed records plus integrity metadata.
type Envelope struct {
	CRC32     uint32   // checksum over everything after this field
	Count     uint16   // number of records
	Timestamp uint64   // Unix nanoseconds at creation
	Records   []Packed // Count records
}

// NewEnvelope wraps records with the current timestamp. The checksum is
// filled in by EnvelopeCodec.Encode.
func NewEnvelope(records []Packed) (*Envelope, error) {
	if len(records) > math.MaxUint16 {
		return nil, fmt.Errorf("%w: %d records exceeds %d", ErrEnvelope, len(records), math.MaxUint16)
	}
	return &Envelope{
		Count:     uint16(len(records)),
		Timestamp: uint64(time.Now().UnixNano()),
		Records:   records,
	}, nil
}

// Size returns the encoded length of the envelope.
func (e *Envelope) Size() int {
	return EnvelopeHeaderSize + len(e.Records)*PackedSize
}

// Validate checks the envelope against its checksum.
func (e *Envelope) Validate() error {
	if sum := e.calculateCRC32(); e.CRC32 != sum {
		return fmt.Errorf("%w: %d != %d", ErrChecksum, e.CRC32, sum)
	}
	return nil
}

// Created returns the envelope timestamp as a time.
func (e *Envelope) Created() time.Time {
	return time.Unix(0, int64(e.Timestamp))
}

func (e *Envelope) calculateCRC32() uint32 {
	crc := crc32.NewIEEE()
	var hdr [EnvelopeHeaderSize - 4]byte
	binary.LittleEndian.PutUint16(hdr[0:2], e.Count)
	binary.LittleEndian.PutUint64(hdr[2:10], e.Timestamp)
	crc.Write(hdr[:])
	for _, p := range e.Records {
		crc.Write(p[:])
	}
	return crc.Sum32()
}

// EnvelopeCodec serializes envelopes.
type EnvelopeCodec struct{}

// NewEnvelopeCodec creates a new envelope codec.
func NewEnvelopeCodec() *EnvelopeCodec {
	return &EnvelopeCodec{}
}

// Encode frames records as [CRC32(4)][Count(2)][Timestamp(8)][records].
func (c *EnvelopeCodec) Encode(records []Packed) ([]byte, error) {
	e, err := NewEnvelope(records)
	if err != nil {
		return nil, err
	}
	e.CRC32 = e.calculateCRC32()

	buf := make([]byte, e.Size())
	binary.LittleEndian.PutUint32(buf[0:], e.CRC32)
	binary.LittleEndian.PutUint16(buf[4:], e.Count)
	binary.LittleEndian.PutUint64(buf[6:], e.Timestamp)
	for i, p := range e.Records {
		copy(buf[EnvelopeHeaderSize+i*PackedSize:], p[:])
	}
	return buf, nil
}

// Decode parses an envelope. It checks lengths but not the checksum; call
// Validate for that.
func (c *EnvelopeCodec) Decode(data []byte) (*Envelope, error) {
	if len(data) < EnvelopeHeaderSize {
		return nil, fmt.Errorf("%w: data too short for header", ErrEnvelope)
	}

	e := &Envelope{
		CRC32:     binary.LittleEndian.Uint32(data[0:4]),
		Count:     binary.LittleEndian.Uint16(data[4:6]),
		Timestamp: binary.LittleEndian.Uint64(data[6:14]),
	}
	want := EnvelopeHeaderSize + int(e.Count)*PackedSize
	if len(data) != want {
		return nil, fmt.Errorf("%w: length %d, header declares %d", ErrEnvelope, len(data), want)
	}

	e.Records = make([]Packed, e.Count)
	for i := range e.Records {
		copy(e.Records[i][:], data[EnvelopeHeaderSize+i*PackedSize:])
	}
	return e, nil
}
