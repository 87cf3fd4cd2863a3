package strmark

import (
	"math/bits"

	"github.com/yyyoichi/bitstream-go"
	"github.com/yyyoichi/trendmark/internal/bitconv"
)

// codec maps bytes to alphabet symbols, width bits per symbol, most
// significant bit first. The last symbol is zero padded.
type codec struct {
	alphabet []rune
	index    map[rune]int
	width    int
}

func newCodec(alphabet []rune) codec {
	index := make(map[rune]int, len(alphabet))
	for i, r := range alphabet {
		index[r] = i
	}
	return codec{
		alphabet: alphabet,
		index:    index,
		width:    bits.TrailingZeros(uint(len(alphabet))),
	}
}

// symbols returns the number of symbols needed for n bytes.
func (c codec) symbols(n int) int {
	return (n*8 + c.width - 1) / c.width
}

func (c codec) encode(data []byte) []rune {
	if len(data) == 0 {
		return []rune{}
	}
	w := bitstream.NewBitWriter[uint64](0, 0)
	for _, v := range data {
		w.Write8(0, 8, v)
	}
	total := len(data) * 8
	r := bitstream.NewBitReader(w.Data(), 0, 0)
	r.SetBits(total)

	out := make([]rune, c.symbols(len(data)))
	for i := range out {
		var sym int
		for j := range c.width {
			sym <<= 1
			if at := i*c.width + j; at < total {
				if bit, _ := r.ReadBitAt(at); bit {
					sym |= 1
				}
			}
		}
		out[i] = c.alphabet[sym]
	}
	return out
}

// decode expects every rune of symbols to be in the alphabet. Trailing
// bits that do not fill a byte are dropped.
func (c codec) decode(symbols []rune) []byte {
	values := make([]int, len(symbols))
	for i, s := range symbols {
		values[i] = c.index[s]
	}
	return bitconv.BoolsToBytes(bitconv.SymbolsToBools(values, c.width))
}

func (c codec) contains(r rune) bool {
	_, ok := c.index[r]
	return ok
}
