package compress

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"
)

// MaxInflatedSize bounds the output of Inflate and Check.
const MaxInflatedSize = 16 << 20

// ErrTooLarge is returned when a stream inflates past its limit.
var ErrTooLarge = errors.New("inflated payload too large")

// Deflate compresses b as a raw deflate stream (RFC 1951, no zlib header).
func Deflate(b []byte) []byte {
	var buf bytes.Buffer
	// only invalid levels make NewWriter fail
	w, _ := flate.NewWriter(&buf, flate.DefaultCompression)
	_, _ = w.Write(b)
	_ = w.Close()
	return buf.Bytes()
}

// Inflate decompresses a raw deflate stream of at most MaxInflatedSize
// bytes. Malformed or truncated streams return an error.
func Inflate(b []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := inflateTo(&buf, b, MaxInflatedSize); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Check reports whether b inflates within MaxInflatedSize without keeping
// the output.
func Check(b []byte) error {
	return inflateTo(io.Discard, b, MaxInflatedSize)
}

func inflateTo(dst io.Writer, b []byte, limit int64) error {
	r := flate.NewReader(bytes.NewReader(b))
	defer r.Close()
	n, err := io.Copy(dst, io.LimitReader(r, limit+1))
	if err != nil {
		return fmt.Errorf("inflate: %w", err)
	}
	if n > limit {
		return fmt.Errorf("inflate: %w: more than %d bytes", ErrTooLarge, limit)
	}
	return nil
}
