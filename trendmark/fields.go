package trendmark

import "github.com/yyyoichi/trendmark/status"

// Sized is implemented by variants carrying a size field.
type Sized interface {
	Trendmark
	SizeRange() Range
	// ExtractSize returns the size stored in the size field.
	ExtractSize() status.Result[uint32]
	// ValidateSize warns when the stored size differs from the length.
	ValidateSize() *status.Status
}

// Checksummed is implemented by variants carrying a CRC32 checksum.
type Checksummed interface {
	Trendmark
	ChecksumRange() Range
	ExtractChecksum() status.Result[uint32]
	// CalculateChecksum computes the checksum over the raw bytes with the
	// checksum field replaced by Placeholder bytes.
	CalculateChecksum() status.Result[uint32]
	// UpdateChecksum overwrites the checksum field with CalculateChecksum.
	UpdateChecksum() *status.Status
	ValidateChecksum() *status.Status
}

// Hashed is implemented by variants carrying a SHA3-256 hash.
type Hashed interface {
	Trendmark
	HashRange() Range
	ExtractHash() status.Result[[]byte]
	// CalculateHash computes the hash over the raw bytes with the hash field
	// replaced by Placeholder bytes.
	CalculateHash() status.Result[[]byte]
	// UpdateHash overwrites the hash field with CalculateHash.
	UpdateHash() *status.Status
	ValidateHash() *status.Status
}

// Compressed is implemented by variants storing a deflated payload.
type Compressed interface {
	Trendmark
	// ValidateCompression reports an error if the payload does not inflate.
	ValidateCompression() *status.Status
}

type sizeField struct{ c *core }

func (f sizeField) SizeRange() Range                   { return f.c.format.sizeRange() }
func (f sizeField) ExtractSize() status.Result[uint32] { return f.c.extractSize() }
func (f sizeField) ValidateSize() *status.Status       { return f.c.validateSize() }

type checksumField struct{ c *core }

func (f checksumField) ChecksumRange() Range                     { return f.c.format.checksumRange() }
func (f checksumField) ExtractChecksum() status.Result[uint32]   { return f.c.extractChecksum() }
func (f checksumField) CalculateChecksum() status.Result[uint32] { return f.c.calculateChecksum() }
func (f checksumField) UpdateChecksum() *status.Status           { return f.c.updateChecksum() }
func (f checksumField) ValidateChecksum() *status.Status         { return f.c.validateChecksum() }

type hashField struct{ c *core }

func (f hashField) HashRange() Range                     { return f.c.format.hashRange() }
func (f hashField) ExtractHash() status.Result[[]byte]   { return f.c.extractHash() }
func (f hashField) CalculateHash() status.Result[[]byte] { return f.c.calculateHash() }
func (f hashField) UpdateHash() *status.Status           { return f.c.updateHash() }
func (f hashField) ValidateHash() *status.Status         { return f.c.validateHash() }

type compressedField struct{ c *core }

func (f compressedField) ValidateCompression() *status.Status { return f.c.validateCompression() }
