package digest

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCRC32(t *testing.T) {
	test := []struct {
		data []byte
		exp  uint32
	}{
		{data: []byte{}, exp: 0},
		{data: []byte("123456789"), exp: 0xcbf43926},
		{data: []byte("The quick brown fox jumps over the lazy dog"), exp: 0x414fa339},
	}
	for _, tt := range test {
		assert.Equal(t, tt.exp, CRC32(tt.data))
	}
}

func TestSHA3256(t *testing.T) {
	test := []struct {
		data []byte
		exp  string
	}{
		{data: []byte{}, exp: "a7ffc6f8bf1ed76651c14756a061d662f580ff4de43b49fa82d80a4b80f8434a"},
		{data: []byte("abc"), exp: "3a985da74fe225b2045c172d6bd390bd855f086e3e9d525b46bfe24511431532"},
	}
	for _, tt := range test {
		h := SHA3256(tt.data)
		assert.Len(t, h, SHA3256Size)
		assert.Equal(t, tt.exp, hex.EncodeToString(h))
	}
}
