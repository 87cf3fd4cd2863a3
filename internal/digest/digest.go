package digest

import (
	"hash/crc32"

	"golang.org/x/crypto/sha3"
)

const (
	// CRC32Size is the width of a CRC32 checksum in bytes.
	CRC32Size = 4
	// SHA3256Size is the width of a SHA3-256 digest in bytes.
	SHA3256Size = 32
)

// CRC32 returns the IEEE CRC32 checksum of b.
func CRC32(b []byte) uint32 {
	return crc32.ChecksumIEEE(b)
}

// SHA3256 returns the SHA3-256 digest of b.
func SHA3256(b []byte) []byte {
	h := sha3.Sum256(b)
	return h[:]
}
