// Package mark defines the carrier-independent watermark envelope: an
// opaque byte sequence whose identity is its content.
package mark

import (
	"bytes"
	"encoding/hex"
)

// Envelope is implemented by every watermark representation. Two envelopes
// with the same Key are interchangeable.
type Envelope interface {
	Key() string
}

var _ Envelope = Watermark{}

// Watermark is an immutable sequence of watermark bytes.
type Watermark struct {
	content []byte
}

// New returns a Watermark holding a copy of content.
func New(content []byte) Watermark {
	return Watermark{content: bytes.Clone(content)}
}

// FromString returns a Watermark holding the UTF-8 bytes of s.
func FromString(s string) Watermark {
	return Watermark{content: []byte(s)}
}

// Bytes returns a copy of the watermark content.
func (w Watermark) Bytes() []byte {
	return bytes.Clone(w.content)
}

func (w Watermark) Len() int {
	return len(w.content)
}

// Equal reports whether w and other hold the same bytes.
func (w Watermark) Equal(other Watermark) bool {
	return bytes.Equal(w.content, other.content)
}

func (w Watermark) Key() string {
	return string(w.content)
}

func (w Watermark) String() string {
	return "Watermark(" + hex.EncodeToString(w.content) + ")"
}

// Squash removes envelopes with an already seen Key, keeping the first
// representative of each and the order of first appearance.
func Squash[T Envelope](marks []T) []T {
	if marks == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(marks))
	out := make([]T, 0, len(marks))
	for _, m := range marks {
		k := m.Key()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, m)
	}
	return out
}
