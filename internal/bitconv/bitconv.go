// Package bitconv converts fixed-width symbols to bits and bytes.
// Bits are ordered most significant first.
package bitconv

// BoolsToBytes packs bits into bytes. Trailing bits that do not fill a
// whole byte are dropped.
func BoolsToBytes(bits []bool) []byte {
	out := make([]byte, len(bits)/8)
	for i := range out {
		var v byte
		for _, bit := range bits[i*8 : i*8+8] {
			v <<= 1
			if bit {
				v |= 1
			}
		}
		out[i] = v
	}
	return out
}

// SymbolsToBools expands every symbol into its low width bits.
func SymbolsToBools(symbols []int, width int) []bool {
	bits := make([]bool, 0, len(symbols)*width)
	for _, s := range symbols {
		for j := width - 1; j >= 0; j-- {
			bits = append(bits, (s>>uint(j))&1 == 1)
		}
	}
	return bits
}
