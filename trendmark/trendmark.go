// Package trendmark implements the Trendmark format: a watermark envelope
// whose first byte is a tag selecting optional size, integrity and
// compression fields.
//
// Layout, fields present depending on the tag:
//
//	[tag(1)] [size(4) LE] [CRC32(4) LE | SHA3-256(32)] [payload, raw deflate if compressed]
//
// The size counts the whole Trendmark. Checksum and hash are computed over
// the whole Trendmark with their own field replaced by zero bytes.
package trendmark

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/yyyoichi/trendmark/internal/compress"
	"github.com/yyyoichi/trendmark/internal/digest"
	"github.com/yyyoichi/trendmark/mark"
	"github.com/yyyoichi/trendmark/status"
)

// Source is the event source used by package-level operations.
const Source = "Trendmark"

// Trendmark is one of the twelve variants of this package. Capability
// specific operations are available through Sized, Checksummed, Hashed and
// Compressed.
type Trendmark interface {
	mark.Envelope
	// Tag returns the tag constant of the variant.
	Tag() Tag
	// Source returns the event source name of the variant.
	Source() string
	// ExtractTag returns the tag byte stored in the content.
	ExtractTag() status.Result[Tag]
	// Bytes returns a copy of the raw bytes.
	Bytes() []byte
	// SetBytes replaces the raw bytes without validating them.
	SetBytes(raw []byte)
	Len() int
	// Content returns the decoded payload.
	Content() status.Result[[]byte]
	// Validate checks the raw bytes against the layout of the variant.
	Validate() *status.Status
	// Equal reports whether other is the same variant with the same bytes.
	Equal(other Trendmark) bool
	Watermark() mark.Watermark
	String() string

	base() *core
}

// Builder produces a finished Trendmark.
type Builder interface {
	Finish() Trendmark
}

type core struct {
	format format
	raw    []byte
}

// Parse decodes input as the Trendmark variant selected by its first byte
// and validates it. Warnings are kept with the value; any error event
// drops it.
func Parse(input []byte) status.Result[Trendmark] {
	if len(input) < TagSize {
		return status.Fail[Trendmark](Source, status.NotEnoughData{MinimumBytes: TagSize})
	}
	f, ok := formats[Tag(input[0])]
	if !ok {
		return status.Fail[Trendmark](Source, status.UnknownTag{Tag: input[0]})
	}
	tm := wrap(&core{format: f, raw: bytes.Clone(input)})
	return status.Into(tm.Validate(), tm)
}

// FromWatermark parses the bytes of w.
func FromWatermark(w mark.Watermark) status.Result[Trendmark] {
	return Parse(w.Bytes())
}

// Build creates a new Trendmark of the variant tag holding payload.
func Build(tag Tag, payload []byte) status.Result[Trendmark] {
	f, ok := formats[tag]
	if !ok {
		return status.Fail[Trendmark](Source, status.UnknownTag{Tag: uint8(tag)})
	}
	return status.Success(wrap(build(f, payload)))
}

// BuildString creates a new Trendmark of the variant tag holding the UTF-8
// bytes of text.
func BuildString(tag Tag, text string) status.Result[Trendmark] {
	return Build(tag, []byte(text))
}

// Wrap interprets raw as the variant tag without validating it.
func Wrap(tag Tag, raw []byte) status.Result[Trendmark] {
	f, ok := formats[tag]
	if !ok {
		return status.Fail[Trendmark](Source, status.UnknownTag{Tag: uint8(tag)})
	}
	return status.Success(wrap(&core{format: f, raw: bytes.Clone(raw)}))
}

func build(f format, payload []byte) *core {
	if f.has(capCompressed) {
		payload = compress.Deflate(payload)
	}
	offset := f.headerSize()
	raw := make([]byte, offset+len(payload))
	raw[0] = byte(f.tag)
	if f.has(capSized) {
		r := f.sizeRange()
		binary.LittleEndian.PutUint32(raw[r.Start:r.End], uint32(len(raw)))
	}
	// checksum and hash fields stay Placeholder until updated
	copy(raw[offset:], payload)

	c := &core{format: f, raw: raw}
	if f.has(capCRC32) {
		_ = c.updateChecksum()
	}
	if f.has(capSHA3256) {
		_ = c.updateHash()
	}
	return c
}

func (c *core) base() *core {
	return c
}

func (c *core) Tag() Tag {
	return c.format.tag
}

func (c *core) Source() string {
	return c.format.source()
}

func (c *core) ExtractTag() status.Result[Tag] {
	if len(c.raw) < TagSize {
		return status.Fail[Tag](c.Source(), status.IncompleteTag{TagSize: TagSize})
	}
	return status.Success(Tag(c.raw[0]))
}

func (c *core) Bytes() []byte {
	return bytes.Clone(c.raw)
}

func (c *core) SetBytes(raw []byte) {
	c.raw = bytes.Clone(raw)
}

func (c *core) Len() int {
	return len(c.raw)
}

func (c *core) Key() string {
	return string(rune(c.format.tag)) + ":" + string(c.raw)
}

func (c *core) Watermark() mark.Watermark {
	return mark.New(c.raw)
}

func (c *core) Equal(other Trendmark) bool {
	if other == nil {
		return false
	}
	o := other.base()
	return c.format.tag == o.format.tag && bytes.Equal(c.raw, o.raw)
}

func (c *core) String() string {
	return c.Source() + "(" + hex.EncodeToString(c.raw) + ")"
}

func (c *core) Content() status.Result[[]byte] {
	offset := c.format.headerSize()
	if len(c.raw) < offset {
		return status.Fail[[]byte](c.Source(), status.NotEnoughData{MinimumBytes: offset})
	}
	payload := bytes.Clone(c.raw[offset:])
	if !c.format.has(capCompressed) {
		return status.Success(payload)
	}
	out, err := compress.Inflate(payload)
	if err != nil {
		return status.Fail[[]byte](c.Source(), status.DecompressionFailed{Reason: err.Error()})
	}
	return status.Success(out)
}

// Validate runs, in order: the tag check, then the size, checksum, hash and
// decompression checks of the capabilities the variant has. Every check
// runs; their events accumulate.
func (c *core) Validate() *status.Status {
	if len(c.raw) < TagSize {
		return status.New(status.NewError(c.Source(), status.IncompleteTag{TagSize: TagSize}))
	}
	s := status.New()
	if actual := c.raw[0]; Tag(actual) != c.format.tag {
		s.AddEvent(status.NewWarning(c.Source(), status.InvalidTag{
			Expected: uint8(c.format.tag),
			Actual:   actual,
		}))
	}
	if c.format.has(capSized) {
		s.AppendStatus(c.validateSize())
	}
	if c.format.has(capCRC32) {
		s.AppendStatus(c.validateChecksum())
	}
	if c.format.has(capSHA3256) {
		s.AppendStatus(c.validateHash())
	}
	// a short header was already reported by the checks above
	if c.format.has(capCompressed) && len(c.raw) >= c.format.headerSize() {
		s.AppendStatus(c.validateCompression())
	}
	return s
}

func (c *core) validateCompression() *status.Status {
	offset := c.format.headerSize()
	if len(c.raw) < offset {
		return status.New(status.NewError(c.Source(), status.DecompressionFailed{
			Reason: fmt.Sprintf("payload starts at byte %d of %d", offset, len(c.raw)),
		}))
	}
	if err := compress.Check(c.raw[offset:]); err != nil {
		return status.New(status.NewError(c.Source(), status.DecompressionFailed{Reason: err.Error()}))
	}
	return status.New()
}

func (c *core) notEnoughData(minimum int) *status.Status {
	return status.New(status.NewError(c.Source(), status.NotEnoughData{MinimumBytes: minimum}))
}

func (c *core) extractSize() status.Result[uint32] {
	r := c.format.sizeRange()
	if len(c.raw) < r.End {
		return status.From[uint32](c.notEnoughData(r.End))
	}
	return status.Success(binary.LittleEndian.Uint32(c.raw[r.Start:r.End]))
}

func (c *core) validateSize() *status.Status {
	res := c.extractSize()
	size, ok := res.Get()
	if !ok {
		return res.Status()
	}
	if actual := len(c.raw); int(size) != actual {
		return status.New(status.NewWarning(c.Source(), status.MismatchedSize{
			Expected: int(size),
			Actual:   actual,
		}))
	}
	return status.New()
}

// placeholderInput returns the raw bytes with r replaced by Placeholder.
func (c *core) placeholderInput(r Range) status.Result[[]byte] {
	if len(c.raw) < r.End {
		return status.From[[]byte](c.notEnoughData(r.End))
	}
	input := bytes.Clone(c.raw)
	for i := r.Start; i < r.End; i++ {
		input[i] = Placeholder
	}
	return status.Success(input)
}

func (c *core) extractChecksum() status.Result[uint32] {
	r := c.format.checksumRange()
	if len(c.raw) < r.End {
		return status.From[uint32](c.notEnoughData(r.End))
	}
	return status.Success(binary.LittleEndian.Uint32(c.raw[r.Start:r.End]))
}

func (c *core) calculateChecksum() status.Result[uint32] {
	res := c.placeholderInput(c.format.checksumRange())
	input, ok := res.Get()
	if !ok {
		return status.From[uint32](res.Status())
	}
	return status.Success(digest.CRC32(input))
}

func (c *core) updateChecksum() *status.Status {
	res := c.calculateChecksum()
	sum, ok := res.Get()
	if !ok {
		return res.Status()
	}
	r := c.format.checksumRange()
	binary.LittleEndian.PutUint32(c.raw[r.Start:r.End], sum)
	return status.New()
}

func (c *core) validateChecksum() *status.Status {
	extracted := c.extractChecksum()
	expected, ok := extracted.Get()
	if !ok {
		return extracted.Status()
	}
	calculated := c.calculateChecksum()
	actual, ok := calculated.Get()
	if !ok {
		return calculated.Status()
	}
	if expected != actual {
		return status.New(status.NewWarning(c.Source(), status.InvalidChecksum{
			Expected: expected,
			Actual:   actual,
		}))
	}
	return status.New()
}

func (c *core) extractHash() status.Result[[]byte] {
	r := c.format.hashRange()
	if len(c.raw) < r.End {
		return status.From[[]byte](c.notEnoughData(r.End))
	}
	return status.Success(bytes.Clone(c.raw[r.Start:r.End]))
}

func (c *core) calculateHash() status.Result[[]byte] {
	res := c.placeholderInput(c.format.hashRange())
	input, ok := res.Get()
	if !ok {
		return status.From[[]byte](res.Status())
	}
	return status.Success(digest.SHA3256(input))
}

func (c *core) updateHash() *status.Status {
	res := c.calculateHash()
	sum, ok := res.Get()
	if !ok {
		return res.Status()
	}
	r := c.format.hashRange()
	copy(c.raw[r.Start:r.End], sum)
	return status.New()
}

func (c *core) validateHash() *status.Status {
	extracted := c.extractHash()
	expected, ok := extracted.Get()
	if !ok {
		return extracted.Status()
	}
	calculated := c.calculateHash()
	actual, ok := calculated.Get()
	if !ok {
		return calculated.Status()
	}
	if !bytes.Equal(expected, actual) {
		return status.New(status.NewWarning(c.Source(), status.InvalidHash{
			Expected: expected,
			Actual:   actual,
		}))
	}
	return status.New()
}
