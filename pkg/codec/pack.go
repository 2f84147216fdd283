package codec

import "encoding/binary"

// uint128 is the accumulator for the 16-byte field group.
type uint128 struct {
	hi, lo uint64
}

// push shifts the accumulator left by bits and ORs v into the low bits.
// bits must be in 1..63.
func (u uint128) push(bits int, v uint64) uint128 {
	return uint128{
		hi: u.hi<<bits | u.lo>>(64-bits),
		lo: u.lo<<bits | v&maxValue(bits),
	}
}

// pop returns the low bits of the accumulator and the accumulator shifted
// right by bits.
func (u uint128) pop(bits int) (uint64, uint128) {
	v := u.lo & maxValue(bits)
	return v, uint128{
		hi: u.hi >> bits,
		lo: u.lo>>bits | u.hi<<(64-bits),
	}
}

func (u uint128) putBytes(b []byte) {
	binary.BigEndian.PutUint64(b[0:8], u.hi)
	binary.BigEndian.PutUint64(b[8:16], u.lo)
}

func uint128FromBytes(b []byte) uint128 {
	return uint128{
		hi: binary.BigEndian.Uint64(b[0:8]),
		lo: binary.BigEndian.Uint64(b[8:16]),
	}
}

func push32(acc uint32, bits int, v uint32) uint32 {
	return acc<<bits | v&uint32(maxValue(bits))
}

func pop32(acc uint32, bits int) (uint32, uint32) {
	return acc & uint32(maxValue(bits)), acc >> bits
}

// Pack lays r out in its 21-byte wire form. Values wider than their field
// lose their high bits.
func Pack(r Record) Packed {
	var p Packed

	var head uint32
	head = push32(head, SpeciesBits, uint32(r.Species))
	head = push32(head, GenderBits, uint32(r.Gender))
	head = push32(head, ItemBits, uint32(r.Item))
	head = push32(head, AbilityBits, uint32(r.Ability))
	binary.BigEndian.PutUint32(p[0:4], head)

	var shiny uint32
	if r.Shiny {
		shiny = 1
	}
	level := push32(0, LevelBits, uint32(r.Level))
	level = push32(level, ShinyBits, shiny)
	p[4] = byte(level)

	var body uint128
	body = body.push(TeraBits, uint64(r.Tera))
	for _, ev := range r.EVs {
		body = body.push(EVBits, uint64(ev))
	}
	body = body.push(NatureBits, uint64(r.Nature))
	for _, iv := range r.IVs {
		body = body.push(IVBits, uint64(iv))
	}
	for _, m := range r.Moves {
		body = body.push(MoveBits, uint64(m))
	}
	body.putBytes(p[5:PackedSize])

	return p
}

// Unpack reads a Record back out of its wire form. Every byte sequence
// unpacks to some Record.
func Unpack(p Packed) Record {
	var r Record
	var v uint64

	body := uint128FromBytes(p[5:PackedSize])
	for i := MaxMoves - 1; i >= 0; i-- {
		v, body = body.pop(MoveBits)
		r.Moves[i] = uint16(v)
	}
	for i := len(r.IVs) - 1; i >= 0; i-- {
		v, body = body.pop(IVBits)
		r.IVs[i] = uint8(v)
	}
	v, body = body.pop(NatureBits)
	r.Nature = uint8(v)
	for i := len(r.EVs) - 1; i >= 0; i-- {
		v, body = body.pop(EVBits)
		r.EVs[i] = uint8(v)
	}
	v, _ = body.pop(TeraBits)
	r.Tera = uint8(v)

	shiny, level := pop32(uint32(p[4]), ShinyBits)
	r.Shiny = shiny == 1
	level, _ = pop32(level, LevelBits)
	r.Level = uint8(level)

	head := binary.BigEndian.Uint32(p[0:4])
	var f uint32
	f, head = pop32(head, AbilityBits)
	r.Ability = uint16(f)
	f, head = pop32(head, ItemBits)
	r.Item = uint16(f)
	f, head = pop32(head, GenderBits)
	r.Gender = uint8(f)
	f, _ = pop32(head, SpeciesBits)
	r.Species = uint16(f)

	return r
}
