package codec_test

import (
	"fmt"

	"github.com/ssargent/pokepack/pkg/codec"
)

func ExamplePack() {
	r := codec.Record{
		Species: 25,
		Gender:  codec.GenderMale,
		Level:   50,
		Shiny:   true,
		IVs:     codec.Stats{31, 31, 31, 31, 31, 31},
	}

	p := codec.Pack(r)
	fmt.Println(len(p))
	fmt.Println(codec.Unpack(p) == r)
	// Output:
	// 21
	// true
}

func ExampleEnvelopeCodec() {
	c := codec.NewEnvelopeCodec()
	records := []codec.Packed{codec.Pack(codec.Record{Species: 25})}

	data, err := c.Encode(records)
	if err != nil {
		fmt.Println("encode:", err)
		return
	}

	e, err := c.Decode(data)
	if err != nil {
		fmt.Println("decode:", err)
		return
	}
	fmt.Println(len(data), e.Count, e.Validate() == nil)
	// Output: 35 1 true
}
