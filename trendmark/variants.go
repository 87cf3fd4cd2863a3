package trendmark

var (
	_ Trendmark   = (*RawWatermark)(nil)
	_ Trendmark   = (*SizedWatermark)(nil)
	_ Sized       = (*SizedWatermark)(nil)
	_ Trendmark   = (*CRC32Watermark)(nil)
	_ Checksummed = (*CRC32Watermark)(nil)
	_ Trendmark   = (*SizedCRC32Watermark)(nil)
	_ Sized       = (*SizedCRC32Watermark)(nil)
	_ Checksummed = (*SizedCRC32Watermark)(nil)
	_ Trendmark   = (*SHA3256Watermark)(nil)
	_ Hashed      = (*SHA3256Watermark)(nil)
	_ Trendmark   = (*SizedSHA3256Watermark)(nil)
	_ Sized       = (*SizedSHA3256Watermark)(nil)
	_ Hashed      = (*SizedSHA3256Watermark)(nil)
	_ Trendmark   = (*CompressedRawWatermark)(nil)
	_ Compressed  = (*CompressedRawWatermark)(nil)
	_ Trendmark   = (*CompressedSizedWatermark)(nil)
	_ Sized       = (*CompressedSizedWatermark)(nil)
	_ Compressed  = (*CompressedSizedWatermark)(nil)
	_ Trendmark   = (*CompressedCRC32Watermark)(nil)
	_ Checksummed = (*CompressedCRC32Watermark)(nil)
	_ Compressed  = (*CompressedCRC32Watermark)(nil)
	_ Trendmark   = (*CompressedSizedCRC32Watermark)(nil)
	_ Sized       = (*CompressedSizedCRC32Watermark)(nil)
	_ Checksummed = (*CompressedSizedCRC32Watermark)(nil)
	_ Compressed  = (*CompressedSizedCRC32Watermark)(nil)
	_ Trendmark   = (*CompressedSHA3256Watermark)(nil)
	_ Hashed      = (*CompressedSHA3256Watermark)(nil)
	_ Compressed  = (*CompressedSHA3256Watermark)(nil)
	_ Trendmark   = (*CompressedSizedSHA3256Watermark)(nil)
	_ Sized       = (*CompressedSizedSHA3256Watermark)(nil)
	_ Hashed      = (*CompressedSizedSHA3256Watermark)(nil)
	_ Compressed  = (*CompressedSizedSHA3256Watermark)(nil)
)

// RawWatermark carries the payload unchanged.
type RawWatermark struct {
	*core
}

// NewRaw builds a RawWatermark holding content.
func NewRaw(content []byte) *RawWatermark {
	return wrap(build(formats[TagRaw], content)).(*RawWatermark)
}

// RawFromString builds a RawWatermark holding the UTF-8 bytes of text.
func RawFromString(text string) *RawWatermark {
	return NewRaw([]byte(text))
}

// SizedWatermark prefixes the payload with the total length.
type SizedWatermark struct {
	*core
	sizeField
}

// NewSized builds a SizedWatermark holding content.
func NewSized(content []byte) *SizedWatermark {
	return wrap(build(formats[TagSized], content)).(*SizedWatermark)
}

// SizedFromString builds a SizedWatermark holding the UTF-8 bytes of text.
func SizedFromString(text string) *SizedWatermark {
	return NewSized([]byte(text))
}

// CRC32Watermark protects the payload with a CRC32 checksum.
type CRC32Watermark struct {
	*core
	checksumField
}

// NewCRC32 builds a CRC32Watermark holding content.
func NewCRC32(content []byte) *CRC32Watermark {
	return wrap(build(formats[TagCRC32], content)).(*CRC32Watermark)
}

// CRC32FromString builds a CRC32Watermark holding the UTF-8 bytes of text.
func CRC32FromString(text string) *CRC32Watermark {
	return NewCRC32([]byte(text))
}

// SizedCRC32Watermark carries the total length and a CRC32 checksum.
type SizedCRC32Watermark struct {
	*core
	sizeField
	checksumField
}

// NewSizedCRC32 builds a SizedCRC32Watermark holding content.
func NewSizedCRC32(content []byte) *SizedCRC32Watermark {
	return wrap(build(formats[TagSizedCRC32], content)).(*SizedCRC32Watermark)
}

// SizedCRC32FromString builds a SizedCRC32Watermark holding the UTF-8 bytes of text.
func SizedCRC32FromString(text string) *SizedCRC32Watermark {
	return NewSizedCRC32([]byte(text))
}

// SHA3256Watermark protects the payload with a SHA3-256 hash.
type SHA3256Watermark struct {
	*core
	hashField
}

// NewSHA3256 builds a SHA3256Watermark holding content.
func NewSHA3256(content []byte) *SHA3256Watermark {
	return wrap(build(formats[TagSHA3256], content)).(*SHA3256Watermark)
}

// SHA3256FromString builds a SHA3256Watermark holding the UTF-8 bytes of text.
func SHA3256FromString(text string) *SHA3256Watermark {
	return NewSHA3256([]byte(text))
}

// SizedSHA3256Watermark carries the total length and a SHA3-256 hash.
type SizedSHA3256Watermark struct {
	*core
	sizeField
	hashField
}

// NewSizedSHA3256 builds a SizedSHA3256Watermark holding content.
func NewSizedSHA3256(content []byte) *SizedSHA3256Watermark {
	return wrap(build(formats[TagSizedSHA3256], content)).(*SizedSHA3256Watermark)
}

// SizedSHA3256FromString builds a SizedSHA3256Watermark holding the UTF-8 bytes of text.
func SizedSHA3256FromString(text string) *SizedSHA3256Watermark {
	return NewSizedSHA3256([]byte(text))
}

// CompressedRawWatermark stores the deflated payload.
type CompressedRawWatermark struct {
	*core
	compressedField
}

// NewCompressedRaw builds a CompressedRawWatermark holding content.
func NewCompressedRaw(content []byte) *CompressedRawWatermark {
	return wrap(build(formats[TagCompressedRaw], content)).(*CompressedRawWatermark)
}

// CompressedRawFromString builds a CompressedRawWatermark holding the UTF-8 bytes of text.
func CompressedRawFromString(text string) *CompressedRawWatermark {
	return NewCompressedRaw([]byte(text))
}

// CompressedSizedWatermark stores the total length and the deflated payload.
type CompressedSizedWatermark struct {
	*core
	sizeField
	compressedField
}

// NewCompressedSized builds a CompressedSizedWatermark holding content.
func NewCompressedSized(content []byte) *CompressedSizedWatermark {
	return wrap(build(formats[TagCompressedSized], content)).(*CompressedSizedWatermark)
}

// CompressedSizedFromString builds a CompressedSizedWatermark holding the UTF-8 bytes of text.
func CompressedSizedFromString(text string) *CompressedSizedWatermark {
	return NewCompressedSized([]byte(text))
}

// CompressedCRC32Watermark stores a CRC32 checksum and the deflated payload.
type CompressedCRC32Watermark struct {
	*core
	checksumField
	compressedField
}

// NewCompressedCRC32 builds a CompressedCRC32Watermark holding content.
func NewCompressedCRC32(content []byte) *CompressedCRC32Watermark {
	return wrap(build(formats[TagCompressedCRC32], content)).(*CompressedCRC32Watermark)
}

// CompressedCRC32FromString builds a CompressedCRC32Watermark holding the UTF-8 bytes of text.
func CompressedCRC32FromString(text string) *CompressedCRC32Watermark {
	return NewCompressedCRC32([]byte(text))
}

// CompressedSizedCRC32Watermark stores the total length, a CRC32 checksum and the deflated payload.
type CompressedSizedCRC32Watermark struct {
	*core
	sizeField
	checksumField
	compressedField
}

// NewCompressedSizedCRC32 builds a CompressedSizedCRC32Watermark holding content.
func NewCompressedSizedCRC32(content []byte) *CompressedSizedCRC32Watermark {
	return wrap(build(formats[TagCompressedSizedCRC32], content)).(*CompressedSizedCRC32Watermark)
}

// CompressedSizedCRC32FromString builds a CompressedSizedCRC32Watermark holding the UTF-8 bytes of text.
func CompressedSizedCRC32FromString(text string) *CompressedSizedCRC32Watermark {
	return NewCompressedSizedCRC32([]byte(text))
}

// CompressedSHA3256Watermark stores a SHA3-256 hash and the deflated payload.
type CompressedSHA3256Watermark struct {
	*core
	hashField
	compressedField
}

// NewCompressedSHA3256 builds a CompressedSHA3256Watermark holding content.
func NewCompressedSHA3256(content []byte) *CompressedSHA3256Watermark {
	return wrap(build(formats[TagCompressedSHA3256], content)).(*CompressedSHA3256Watermark)
}

// CompressedSHA3256FromString builds a CompressedSHA3256Watermark holding the UTF-8 bytes of text.
func CompressedSHA3256FromString(text string) *CompressedSHA3256Watermark {
	return NewCompressedSHA3256([]byte(text))
}

// CompressedSizedSHA3256Watermark stores the total length, a SHA3-256 hash and the deflated payload.
type CompressedSizedSHA3256Watermark struct {
	*core
	sizeField
	hashField
	compressedField
}

// NewCompressedSizedSHA3256 builds a CompressedSizedSHA3256Watermark holding content.
func NewCompressedSizedSHA3256(content []byte) *CompressedSizedSHA3256Watermark {
	return wrap(build(formats[TagCompressedSizedSHA3256], content)).(*CompressedSizedSHA3256Watermark)
}

// CompressedSizedSHA3256FromString builds a CompressedSizedSHA3256Watermark holding the UTF-8 bytes of text.
func CompressedSizedSHA3256FromString(text string) *CompressedSizedSHA3256Watermark {
	return NewCompressedSizedSHA3256([]byte(text))
}

// wrap returns the variant type selected by the format of c.
func wrap(c *core) Trendmark {
	switch c.format.tag {
	case TagRaw:
		return &RawWatermark{c}
	case TagSized:
		return &SizedWatermark{c, sizeField{c}}
	case TagCRC32:
		return &CRC32Watermark{c, checksumField{c}}
	case TagSizedCRC32:
		return &SizedCRC32Watermark{c, sizeField{c}, checksumField{c}}
	case TagSHA3256:
		return &SHA3256Watermark{c, hashField{c}}
	case TagSizedSHA3256:
		return &SizedSHA3256Watermark{c, sizeField{c}, hashField{c}}
	case TagCompressedRaw:
		return &CompressedRawWatermark{c, compressedField{c}}
	case TagCompressedSized:
		return &CompressedSizedWatermark{c, sizeField{c}, compressedField{c}}
	case TagCompressedCRC32:
		return &CompressedCRC32Watermark{c, checksumField{c}, compressedField{c}}
	case TagCompressedSizedCRC32:
		return &CompressedSizedCRC32Watermark{c, sizeField{c}, checksumField{c}, compressedField{c}}
	case TagCompressedSHA3256:
		return &CompressedSHA3256Watermark{c, hashField{c}, compressedField{c}}
	case TagCompressedSizedSHA3256:
		return &CompressedSizedSHA3256Watermark{c, sizeField{c}, hashField{c}, compressedField{c}}
	default:
		panic("trendmark: unknown tag " + c.format.tag.String())
	}
}
