// Package textmark implements Textmark, the decoded text form of a
// Trendmark.
package textmark

import (
	"unicode/utf8"

	"github.com/yyyoichi/trendmark/mark"
	"github.com/yyyoichi/trendmark/status"
	"github.com/yyyoichi/trendmark/trendmark"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// Source is the event source of this package.
const Source = "Textmark"

// Integrity selects the integrity field of the Trendmark built from a
// Textmark.
type Integrity uint8

const (
	IntegrityNone Integrity = iota
	IntegrityCRC32
	IntegritySHA3256
)

func (i Integrity) String() string {
	switch i {
	case IntegrityCRC32:
		return "CRC32"
	case IntegritySHA3256:
		return "SHA3256"
	default:
		return "None"
	}
}

var (
	_ trendmark.Builder = (*Textmark)(nil)
	_ mark.Envelope     = (*Textmark)(nil)
)

// Textmark is a text watermark together with the Trendmark capabilities
// used to transport it.
type Textmark struct {
	text       string
	compressed bool
	sized      bool
	integrity  Integrity
}

type Option func(*Textmark)

// WithCompression deflates the text inside the Trendmark.
func WithCompression() Option {
	return func(t *Textmark) {
		t.compressed = true
	}
}

// WithSize adds a size field.
func WithSize() Option {
	return func(t *Textmark) {
		t.sized = true
	}
}

// WithCRC32 adds a CRC32 checksum. It replaces a previously selected hash.
func WithCRC32() Option {
	return func(t *Textmark) {
		t.integrity = IntegrityCRC32
	}
}

// WithSHA3256 adds a SHA3-256 hash. It replaces a previously selected
// checksum.
func WithSHA3256() Option {
	return func(t *Textmark) {
		t.integrity = IntegritySHA3256
	}
}

// New returns a Textmark holding text. Without options it finishes into a
// RawWatermark.
func New(text string, opts ...Option) *Textmark {
	t := &Textmark{text: text}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Textmark) Text() string         { return t.text }
func (t *Textmark) Compressed() bool     { return t.compressed }
func (t *Textmark) Sized() bool          { return t.sized }
func (t *Textmark) Integrity() Integrity { return t.integrity }

// Tag returns the tag of the Trendmark variant Finish produces.
func (t *Textmark) Tag() trendmark.Tag {
	tag, _ := trendmark.TagFor(
		t.compressed,
		t.sized,
		t.integrity == IntegrityCRC32,
		t.integrity == IntegritySHA3256,
	)
	return tag
}

// Finish builds the Trendmark carrying the UTF-8 bytes of the text.
func (t *Textmark) Finish() trendmark.Trendmark {
	return trendmark.BuildString(t.Tag(), t.text).Value()
}

// Key identifies a Textmark by its text and capabilities.
func (t *Textmark) Key() string {
	return string(rune(t.Tag())) + ":" + t.text
}

func (t *Textmark) Equal(other *Textmark) bool {
	if other == nil {
		return false
	}
	return *t == *other
}

func (t *Textmark) String() string {
	return Source + "(" + t.Tag().String() + ", " + t.text + ")"
}

// FromTrendmark decodes the content of tm as text. Ill-formed UTF-8 is an
// error when errorOnInvalidUTF8 is set, otherwise every ill-formed sequence
// is replaced by U+FFFD and reported as a warning.
func FromTrendmark(tm trendmark.Trendmark, errorOnInvalidUTF8 bool) status.Result[*Textmark] {
	content := tm.Content()
	payload, ok := content.Get()
	if !ok {
		return status.From[*Textmark](content.Status())
	}

	tag := tm.Tag()
	t := &Textmark{
		compressed: tag.Compressed(),
		sized:      tag.Sized(),
	}
	switch {
	case tag.CRC32():
		t.integrity = IntegrityCRC32
	case tag.SHA3256():
		t.integrity = IntegritySHA3256
	}

	s := status.New()
	if offset := invalidOffset(payload); offset >= 0 {
		if errorOnInvalidUTF8 {
			return status.Fail[*Textmark](Source, status.InvalidUTF8{Offset: offset})
		}
		repaired, _, err := transform.Bytes(runes.ReplaceIllFormed(), payload)
		if err != nil {
			return status.Fail[*Textmark](Source, status.CarrierFailure{Err: err})
		}
		payload = repaired
		s.AddEvent(status.NewWarning(Source, status.InvalidUTF8{Offset: offset}))
	}
	t.text = string(payload)
	return status.Into(s, t)
}

// ToTextmarks converts every Trendmark of r. Failed conversions are dropped;
// when some but not all fail, a FailedTextmarkExtractions warning from
// source keeps the surviving Textmarks.
func ToTextmarks(r status.Result[[]trendmark.Trendmark], errorOnInvalidUTF8 bool, source string) status.Result[[]*Textmark] {
	trendmarks, ok := r.Get()
	if !ok {
		return status.From[[]*Textmark](r.Status())
	}
	summary := status.NewWarning(source, status.FailedTextmarkExtractions{})
	convert := func(tm trendmark.Trendmark) status.Result[*Textmark] {
		return FromTrendmark(tm, errorOnInvalidUTF8)
	}
	return status.Collect(trendmarks, r.Status(), convert, summary)
}

// invalidOffset returns the byte offset of the first ill-formed sequence,
// or -1.
func invalidOffset(b []byte) int {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return -1
}
