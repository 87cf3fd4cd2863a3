// Package strmark hides watermarks in plain text by replacing spaces with
// invisible Unicode whitespace.
//
// Every U+0020 of a text, and every rune previously written by the
// carrier, is an insert position. A watermark is written as
//
//	sep sym... sep sym... sep
//
// repeating the symbols as often as whole copies fit. Positions left over
// are reset to U+0020.
package strmark

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yyyoichi/trendmark/mark"
	"github.com/yyyoichi/trendmark/status"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// Source is the event source of the carrier.
const Source = "TextWatermarker"

const space = ' '

var (
	// DefaultAlphabet encodes two bits per symbol.
	DefaultAlphabet = []rune{'\u2000', '\u2004', '\u2005', '\u2006'}
	// DefaultSeparator frames every watermark copy.
	DefaultSeparator = '\u2008'
)

var (
	ErrInvalidAlphabet  = errors.New("invalid alphabet")
	ErrInvalidSeparator = errors.New("invalid separator")
)

type Option func(*TextWatermarker) error

// WithAlphabet sets the symbols used to transcode watermark bits. Its
// length must be a power of two between 2 and 256.
func WithAlphabet(alphabet ...rune) Option {
	return func(tw *TextWatermarker) error {
		if n := len(alphabet); n < 2 || n > 256 || n&(n-1) != 0 {
			return fmt.Errorf("%w: size %d is not a power of two in [2, 256]", ErrInvalidAlphabet, n)
		}
		tw.alphabet = append([]rune(nil), alphabet...)
		return nil
	}
}

// WithSeparator sets the rune framing watermark copies.
func WithSeparator(separator rune) Option {
	return func(tw *TextWatermarker) error {
		if separator == space {
			return fmt.Errorf("%w: separator must not be a space", ErrInvalidSeparator)
		}
		tw.separator = separator
		return nil
	}
}

// TextWatermarker is the text carrier. It is immutable after New and safe
// for concurrent use.
type TextWatermarker struct {
	alphabet  []rune
	separator rune
	codec     codec
}

// New returns a TextWatermarker using DefaultAlphabet and DefaultSeparator
// unless overridden by opts.
func New(opts ...Option) (*TextWatermarker, error) {
	tw := &TextWatermarker{
		alphabet:  DefaultAlphabet,
		separator: DefaultSeparator,
	}
	for _, opt := range opts {
		if err := opt(tw); err != nil {
			return nil, err
		}
	}
	seen := make(map[rune]bool, len(tw.alphabet))
	for _, r := range tw.alphabet {
		switch {
		case r == space:
			return nil, fmt.Errorf("%w: alphabet must not contain a space", ErrInvalidAlphabet)
		case r == tw.separator:
			return nil, fmt.Errorf("%w: alphabet must not contain the separator %U", ErrInvalidAlphabet, r)
		case seen[r]:
			return nil, fmt.Errorf("%w: duplicate symbol %U", ErrInvalidAlphabet, r)
		}
		seen[r] = true
	}
	tw.codec = newCodec(tw.alphabet)
	return tw, nil
}

// Default returns a TextWatermarker with the default alphabet and separator.
func Default() *TextWatermarker {
	tw, _ := New()
	return tw
}

func (tw *TextWatermarker) Alphabet() []rune {
	return append([]rune(nil), tw.alphabet...)
}

func (tw *TextWatermarker) Separator() rune {
	return tw.separator
}

func (tw *TextWatermarker) isPosition(r rune) bool {
	return r == space || r == tw.separator || tw.codec.contains(r)
}

// Placement returns the rune indices of text usable as insert positions.
func (tw *TextWatermarker) Placement(text string) []int {
	var positions []int
	i := 0
	for _, r := range text {
		if tw.isPosition(r) {
			positions = append(positions, i)
		}
		i++
	}
	return positions
}

// MinimumInsertPositions is the number of positions one framed copy of w
// occupies.
func (tw *TextWatermarker) MinimumInsertPositions(w mark.Watermark) int {
	return tw.codec.symbols(w.Len()) + 2
}

// AddWatermark replaces any watermark of text with w. Ill-formed UTF-8 in
// text is rewritten to U+FFFD and reported as an InvalidUTF8 warning.
func (tw *TextWatermarker) AddWatermark(text string, w mark.Watermark) status.Result[string] {
	positions := tw.Placement(text)
	symbols := tw.codec.encode(w.Bytes())
	if required := len(symbols) + 2; len(positions) < required {
		return status.Fail[string](Source, status.OversizedWatermark{
			Required:  required,
			Available: len(positions),
		})
	}

	rs := []rune(text)
	i := 0
	put := func(r rune) {
		rs[positions[i]] = r
		i++
	}
	put(tw.separator)
	for len(positions)-i >= len(symbols)+1 {
		for _, s := range symbols {
			put(s)
		}
		put(tw.separator)
	}
	for i < len(positions) {
		put(space)
	}

	s := status.New()
	if offset := invalidOffset(text); offset >= 0 {
		s.AddEvent(status.NewWarning(Source, status.InvalidUTF8{Offset: offset}))
	}
	return status.Into(s, string(rs))
}

// invalidOffset returns the byte offset of the first ill-formed sequence
// of s, or -1.
func invalidOffset(s string) int {
	if utf8.ValidString(s) {
		return -1
	}
	for i, r := range s {
		if r != utf8.RuneError {
			continue
		}
		if _, size := utf8.DecodeRuneInString(s[i:]); size == 1 {
			return i
		}
	}
	return -1
}

// ContainsWatermark reports whether text holds a separator.
func (tw *TextWatermarker) ContainsWatermark(text string) bool {
	return strings.ContainsRune(text, tw.separator)
}

// GetWatermarks returns every framed copy of text in order. Copies are not
// merged.
func (tw *TextWatermarker) GetWatermarks(text string) status.Result[[]mark.Watermark] {
	watermarks := []mark.Watermark{}
	var group []rune
	open := false
	for _, r := range text {
		switch {
		case r == tw.separator:
			if open && len(group) > 0 {
				watermarks = append(watermarks, mark.New(tw.codec.decode(group)))
			}
			open = true
			group = group[:0]
		case open && tw.codec.contains(r):
			group = append(group, r)
		}
	}
	return status.Success(watermarks)
}

// RemoveWatermarks resets every carrier rune of text to U+0020.
func (tw *TextWatermarker) RemoveWatermarks(text string) status.Result[string] {
	t := runes.Map(func(r rune) rune {
		if r == tw.separator || tw.codec.contains(r) {
			return space
		}
		return r
	})
	out, _, err := transform.String(t, text)
	if err != nil {
		return status.Fail[string](Source, status.CarrierFailure{Err: err})
	}
	return status.Success(out)
}
