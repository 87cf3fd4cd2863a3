package trendmark

import (
	"fmt"

	"github.com/yyyoichi/trendmark/internal/digest"
)

// Tag is the first byte of a Trendmark. It selects the variant and with it
// the layout of every following field. Tag values are wire constants.
type Tag uint8

// Uncompressed variants count up from 0, compressed ones down from 254.
const (
	TagRaw          Tag = 0
	TagSized        Tag = 1
	TagCRC32        Tag = 2
	TagSizedCRC32   Tag = 3
	TagSHA3256      Tag = 4
	TagSizedSHA3256 Tag = 5

	TagCompressedSizedSHA3256 Tag = 249
	TagCompressedSHA3256      Tag = 250
	TagCompressedSizedCRC32   Tag = 251
	TagCompressedCRC32        Tag = 252
	TagCompressedSized        Tag = 253
	TagCompressedRaw          Tag = 254
)

const (
	// TagSize is the number of bytes used by the tag.
	TagSize = 1
	// SizeSize is the width of the little-endian uint32 size field. The
	// size counts every byte of the Trendmark, the tag included.
	SizeSize = 4
	// ChecksumSize is the width of the little-endian CRC32 field.
	ChecksumSize = digest.CRC32Size
	// HashSize is the width of the SHA3-256 field.
	HashSize = digest.SHA3256Size
	// Placeholder fills the checksum or hash field while that field is
	// computed.
	Placeholder byte = 0
)

type capability uint8

const (
	capSized capability = 1 << iota
	capCRC32
	capSHA3256
	capCompressed
)

// format is the static description of one variant.
type format struct {
	tag  Tag
	name string
	caps capability
}

var formats = map[Tag]format{
	TagRaw:                    {TagRaw, "RawWatermark", 0},
	TagSized:                  {TagSized, "SizedWatermark", capSized},
	TagCRC32:                  {TagCRC32, "CRC32Watermark", capCRC32},
	TagSizedCRC32:             {TagSizedCRC32, "SizedCRC32Watermark", capSized | capCRC32},
	TagSHA3256:                {TagSHA3256, "SHA3256Watermark", capSHA3256},
	TagSizedSHA3256:           {TagSizedSHA3256, "SizedSHA3256Watermark", capSized | capSHA3256},
	TagCompressedSizedSHA3256: {TagCompressedSizedSHA3256, "CompressedSizedSHA3256Watermark", capCompressed | capSized | capSHA3256},
	TagCompressedSHA3256:      {TagCompressedSHA3256, "CompressedSHA3256Watermark", capCompressed | capSHA3256},
	TagCompressedSizedCRC32:   {TagCompressedSizedCRC32, "CompressedSizedCRC32Watermark", capCompressed | capSized | capCRC32},
	TagCompressedCRC32:        {TagCompressedCRC32, "CompressedCRC32Watermark", capCompressed | capCRC32},
	TagCompressedSized:        {TagCompressedSized, "CompressedSizedWatermark", capCompressed | capSized},
	TagCompressedRaw:          {TagCompressedRaw, "CompressedRawWatermark", capCompressed},
}

// Tags returns every known tag in ascending order.
func Tags() []Tag {
	return []Tag{
		TagRaw, TagSized, TagCRC32, TagSizedCRC32, TagSHA3256, TagSizedSHA3256,
		TagCompressedSizedSHA3256, TagCompressedSHA3256, TagCompressedSizedCRC32,
		TagCompressedCRC32, TagCompressedSized, TagCompressedRaw,
	}
}

// TagFor returns the tag of the variant with the given capabilities.
// Checksum and hash are exclusive; asking for both returns false.
func TagFor(compressed, sized, crc32, sha3256 bool) (Tag, bool) {
	if crc32 && sha3256 {
		return 0, false
	}
	var caps capability
	if compressed {
		caps |= capCompressed
	}
	if sized {
		caps |= capSized
	}
	if crc32 {
		caps |= capCRC32
	}
	if sha3256 {
		caps |= capSHA3256
	}
	for _, t := range Tags() {
		if formats[t].caps == caps {
			return t, true
		}
	}
	return 0, false
}

// Known reports whether t maps to a variant.
func (t Tag) Known() bool {
	_, ok := formats[t]
	return ok
}

func (t Tag) Sized() bool      { return formats[t].has(capSized) }
func (t Tag) CRC32() bool      { return formats[t].has(capCRC32) }
func (t Tag) SHA3256() bool    { return formats[t].has(capSHA3256) }
func (t Tag) Compressed() bool { return formats[t].has(capCompressed) }

func (t Tag) String() string {
	if f, ok := formats[t]; ok {
		return f.name
	}
	return fmt.Sprintf("unknown(%d)", uint8(t))
}

func (f format) has(c capability) bool {
	return f.caps&c != 0
}

func (f format) source() string {
	return Source + "." + f.name
}

// Range is a half-open byte range [Start, End) within a Trendmark.
type Range struct {
	Start, End int
}

func (r Range) Len() int {
	return r.End - r.Start
}

func (f format) sizeRange() Range {
	return Range{TagSize, TagSize + SizeSize}
}

func (f format) checksumRange() Range {
	start := TagSize
	if f.has(capSized) {
		start += SizeSize
	}
	return Range{start, start + ChecksumSize}
}

func (f format) hashRange() Range {
	start := TagSize
	if f.has(capSized) {
		start += SizeSize
	}
	return Range{start, start + HashSize}
}

// headerSize is the offset of the payload.
func (f format) headerSize() int {
	n := TagSize
	if f.has(capSized) {
		n += SizeSize
	}
	if f.has(capCRC32) {
		n += ChecksumSize
	}
	if f.has(capSHA3256) {
		n += HashSize
	}
	return n
}
