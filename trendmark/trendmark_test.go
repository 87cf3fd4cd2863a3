package trendmark

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yyyoichi/trendmark/mark"
	"github.com/yyyoichi/trendmark/status"
	"golang.org/x/crypto/sha3"
)

func payloads() map[string][]byte {
	random := make([]byte, 4096)
	rand.New(rand.NewSource(42)).Read(random)
	return map[string][]byte{
		"empty":    {},
		"single":   {0x7f},
		"text":     []byte("Lorem ipsum dolor sit amet"),
		"repeated": bytes.Repeat([]byte{0x00, 0x01}, 2048),
		"random":   random,
	}
}

func TestTags(t *testing.T) {
	test := []struct {
		tag        Tag
		name       string
		header     int
		sized      bool
		crc32      bool
		sha3256    bool
		compressed bool
	}{
		{TagRaw, "RawWatermark", 1, false, false, false, false},
		{TagSized, "SizedWatermark", 5, true, false, false, false},
		{TagCRC32, "CRC32Watermark", 5, false, true, false, false},
		{TagSizedCRC32, "SizedCRC32Watermark", 9, true, true, false, false},
		{TagSHA3256, "SHA3256Watermark", 33, false, false, true, false},
		{TagSizedSHA3256, "SizedSHA3256Watermark", 37, true, false, true, false},
		{TagCompressedSizedSHA3256, "CompressedSizedSHA3256Watermark", 37, true, false, true, true},
		{TagCompressedSHA3256, "CompressedSHA3256Watermark", 33, false, false, true, true},
		{TagCompressedSizedCRC32, "CompressedSizedCRC32Watermark", 9, true, true, false, true},
		{TagCompressedCRC32, "CompressedCRC32Watermark", 5, false, true, false, true},
		{TagCompressedSized, "CompressedSizedWatermark", 5, true, false, false, true},
		{TagCompressedRaw, "CompressedRawWatermark", 1, false, false, false, true},
	}
	require.Len(t, Tags(), len(test))
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.tag.Known())
			assert.Equal(t, tt.name, tt.tag.String())
			assert.Equal(t, tt.header, formats[tt.tag].headerSize())
			assert.Equal(t, tt.sized, tt.tag.Sized())
			assert.Equal(t, tt.crc32, tt.tag.CRC32())
			assert.Equal(t, tt.sha3256, tt.tag.SHA3256())
			assert.Equal(t, tt.compressed, tt.tag.Compressed())

			tag, ok := TagFor(tt.compressed, tt.sized, tt.crc32, tt.sha3256)
			assert.True(t, ok)
			assert.Equal(t, tt.tag, tag)
		})
	}

	t.Run("unknown", func(t *testing.T) {
		assert.False(t, Tag(6).Known())
		assert.Equal(t, "unknown(6)", Tag(6).String())
		_, ok := TagFor(false, false, true, true)
		assert.False(t, ok)
	})
}

func TestRoundTrip(t *testing.T) {
	for _, tag := range Tags() {
		for name, payload := range payloads() {
			t.Run(tag.String()+"/"+name, func(t *testing.T) {
				built := Build(tag, payload)
				require.True(t, built.IsSuccess())
				tm := built.Value()
				assert.Equal(t, tag, tm.Tag())

				parsed := Parse(tm.Bytes())
				require.True(t, parsed.HasValue())
				assert.True(t, parsed.IsSuccess(), parsed.Status().String())
				assert.True(t, parsed.Value().Equal(tm))

				content := parsed.Value().Content()
				require.True(t, content.HasValue())
				assert.Equal(t, payload, content.Value())
			})
		}
	}
}

func TestLayout(t *testing.T) {
	t.Run("raw", func(t *testing.T) {
		assert.Equal(t, []byte{0, 'a', 'b'}, RawFromString("ab").Bytes())
	})

	t.Run("sized", func(t *testing.T) {
		assert.Equal(t, []byte{1, 7, 0, 0, 0, 'a', 'b'}, SizedFromString("ab").Bytes())
	})

	t.Run("crc32", func(t *testing.T) {
		w := CRC32FromString("a")
		exp := crc32.ChecksumIEEE([]byte{2, 0, 0, 0, 0, 'a'})
		raw := w.Bytes()
		assert.Len(t, raw, 6)
		assert.Equal(t, exp, binary.LittleEndian.Uint32(raw[1:5]))
		assert.Equal(t, exp, w.ExtractChecksum().Value())
		assert.Equal(t, exp, w.CalculateChecksum().Value())
	})

	t.Run("sized crc32", func(t *testing.T) {
		w := SizedCRC32FromString("a")
		raw := w.Bytes()
		exp := crc32.ChecksumIEEE([]byte{3, 10, 0, 0, 0, 0, 0, 0, 0, 'a'})
		assert.Equal(t, []byte{3, 10, 0, 0, 0}, raw[:5])
		assert.Equal(t, exp, binary.LittleEndian.Uint32(raw[5:9]))
		assert.Equal(t, Range{1, 5}, w.SizeRange())
		assert.Equal(t, Range{5, 9}, w.ChecksumRange())
	})

	t.Run("sha3256", func(t *testing.T) {
		w := SHA3256FromString("a")
		input := append([]byte{4}, make([]byte, 32)...)
		input = append(input, 'a')
		exp := sha3.Sum256(input)
		assert.Equal(t, exp[:], w.Bytes()[1:33])
		assert.Equal(t, exp[:], w.ExtractHash().Value())
		assert.Equal(t, Range{1, 33}, w.HashRange())
	})

	t.Run("sized sha3256", func(t *testing.T) {
		w := SizedSHA3256FromString("a")
		assert.Equal(t, Range{5, 37}, w.HashRange())
		assert.Equal(t, uint32(38), w.ExtractSize().Value())
	})

	t.Run("compressed", func(t *testing.T) {
		payload := bytes.Repeat([]byte("abc"), 100)
		w := NewCompressedRaw(payload)
		assert.Equal(t, byte(TagCompressedRaw), w.Bytes()[0])
		assert.Less(t, w.Len(), len(payload))
	})
}

func TestTamperDetection(t *testing.T) {
	payload := []byte("tamper me")
	for _, tag := range Tags() {
		if !tag.CRC32() && !tag.SHA3256() {
			continue
		}
		t.Run(tag.String(), func(t *testing.T) {
			tm := Build(tag, payload).Value()
			header := formats[tag].headerSize()
			for i := header; i < tm.Len(); i++ {
				raw := tm.Bytes()
				raw[i] ^= 0x5a
				w := Wrap(tag, raw).Value()

				s := w.Validate()
				if tag.CRC32() {
					c := w.(Checksummed)
					assert.NotEqual(t, c.ExtractChecksum().Value(), c.CalculateChecksum().Value())
					assert.True(t, status.Has[status.InvalidChecksum](s), "byte %d", i)
				}
				if tag.SHA3256() {
					h := w.(Hashed)
					assert.NotEqual(t, h.ExtractHash().Value(), h.CalculateHash().Value())
					assert.True(t, status.Has[status.InvalidHash](s), "byte %d", i)
				}
			}
		})
	}

	t.Run("warning keeps value", func(t *testing.T) {
		raw := SizedCRC32FromString("data").Bytes()
		raw[len(raw)-1] = 'X'
		r := Parse(raw)
		require.True(t, r.HasValue())
		assert.True(t, r.IsWarning())
		assert.False(t, r.IsSuccess())
		assert.Equal(t, []byte("datX"), r.Value().Content().Value())

		d, e, ok := status.Find[status.InvalidChecksum](r.Status())
		require.True(t, ok)
		assert.Equal(t, status.Warning, e.Severity)
		assert.Equal(t, "Trendmark.SizedCRC32Watermark", e.Source)
		assert.NotEqual(t, d.Expected, d.Actual)
	})

	t.Run("update restores", func(t *testing.T) {
		w := NewSHA3256([]byte("data"))
		raw := w.Bytes()
		raw[len(raw)-1] = 'X'
		w.SetBytes(raw)
		require.False(t, w.Validate().IsSuccess())
		require.True(t, w.UpdateHash().IsSuccess())
		assert.True(t, w.Validate().IsSuccess())
	})
}

func TestSize(t *testing.T) {
	for _, tag := range Tags() {
		if !tag.Sized() {
			continue
		}
		t.Run(tag.String(), func(t *testing.T) {
			tm := Build(tag, []byte("sized payload")).Value()
			s := tm.(Sized)
			assert.Equal(t, uint32(tm.Len()), s.ExtractSize().Value())
			assert.True(t, s.ValidateSize().IsSuccess())

			tm.SetBytes(append(tm.Bytes(), 0x00))
			st := tm.Validate()
			assert.False(t, st.IsError(), st.String())
			d, _, ok := status.Find[status.MismatchedSize](st)
			require.True(t, ok)
			assert.Equal(t, status.MismatchedSize{Expected: tm.Len() - 1, Actual: tm.Len()}, d)
		})
	}
}

func TestParseErrors(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		r := Parse(nil)
		assert.False(t, r.HasValue())
		assert.True(t, r.IsError())
		d, _, ok := status.Find[status.NotEnoughData](r.Status())
		require.True(t, ok)
		assert.Equal(t, TagSize, d.MinimumBytes)
	})

	t.Run("unknown tag", func(t *testing.T) {
		r := Parse([]byte{0xff})
		assert.False(t, r.HasValue())
		assert.True(t, r.IsError())
		d, e, ok := status.Find[status.UnknownTag](r.Status())
		require.True(t, ok)
		assert.Equal(t, uint8(0xff), d.Tag)
		assert.Equal(t, Source, e.Source)
	})

	t.Run("truncated", func(t *testing.T) {
		r := Parse([]byte{byte(TagSizedCRC32)})
		assert.False(t, r.HasValue())
		assert.True(t, r.IsError())
		d, _, ok := status.Find[status.NotEnoughData](r.Status())
		require.True(t, ok)
		assert.Equal(t, TagSize+SizeSize, d.MinimumBytes)
	})

	t.Run("truncated hash", func(t *testing.T) {
		r := Parse(SHA3256FromString("x").Bytes()[:10])
		assert.True(t, r.IsError())
		d, _, ok := status.Find[status.NotEnoughData](r.Status())
		require.True(t, ok)
		assert.Equal(t, TagSize+HashSize, d.MinimumBytes)
	})

	t.Run("truncated compressed", func(t *testing.T) {
		r := Parse([]byte{byte(TagCompressedSizedCRC32)})
		assert.False(t, r.HasValue())
		events := r.Status().Events()
		require.Len(t, events, 2)
		assert.Equal(t, status.NotEnoughData{MinimumBytes: TagSize + SizeSize}, events[0].Detail)
		assert.Equal(t, status.NotEnoughData{MinimumBytes: TagSize + SizeSize + ChecksumSize}, events[1].Detail)
		assert.False(t, status.Has[status.DecompressionFailed](r.Status()))

		w := Wrap(TagCompressedSized, []byte{byte(TagCompressedSized), 0}).Value().(Compressed)
		assert.True(t, status.Has[status.DecompressionFailed](w.ValidateCompression()))
	})

	t.Run("build unknown tag", func(t *testing.T) {
		assert.True(t, Build(Tag(100), nil).IsError())
		assert.True(t, Wrap(Tag(100), nil).IsError())
	})
}

func TestValidate(t *testing.T) {
	t.Run("incomplete tag", func(t *testing.T) {
		w := NewSized([]byte("x"))
		w.SetBytes(nil)
		s := w.Validate()
		assert.True(t, s.IsError())
		assert.True(t, status.Has[status.IncompleteTag](s))
		assert.True(t, w.ExtractTag().IsError())
	})

	t.Run("invalid tag", func(t *testing.T) {
		raw := SizedFromString("foreign").Bytes()
		raw[0] = byte(TagRaw)
		w := Wrap(TagSized, raw).Value()
		assert.Equal(t, TagRaw, w.ExtractTag().Value())

		s := w.Validate()
		assert.False(t, s.IsError())
		d, _, ok := status.Find[status.InvalidTag](s)
		require.True(t, ok)
		assert.Equal(t, status.InvalidTag{Expected: uint8(TagSized), Actual: uint8(TagRaw)}, d)
	})

	t.Run("accumulates warnings", func(t *testing.T) {
		w := SizedCRC32FromString("abc")
		raw := append(w.Bytes(), 'd')
		w.SetBytes(raw)
		s := w.Validate()
		assert.True(t, s.IsWarning())
		assert.True(t, status.Has[status.MismatchedSize](s))
		assert.True(t, status.Has[status.InvalidChecksum](s))
		assert.Len(t, s.Events(), 2)
	})

	t.Run("update checksum on short data", func(t *testing.T) {
		w := Wrap(TagCRC32, []byte{byte(TagCRC32), 0}).Value().(Checksummed)
		s := w.UpdateChecksum()
		assert.True(t, s.IsError())
		d, _, ok := status.Find[status.NotEnoughData](s)
		require.True(t, ok)
		assert.Equal(t, TagSize+ChecksumSize, d.MinimumBytes)
	})

	t.Run("update hash on short data", func(t *testing.T) {
		w := Wrap(TagSizedSHA3256, []byte{byte(TagSizedSHA3256)}).Value().(Hashed)
		assert.True(t, w.UpdateHash().IsError())
		assert.True(t, w.ExtractHash().IsError())
	})
}

func TestCompression(t *testing.T) {
	random := make([]byte, 2048)
	rand.New(rand.NewSource(7)).Read(random)
	for name, payload := range map[string][]byte{
		"repeated": bytes.Repeat([]byte("watermark"), 300),
		"random":   random,
	} {
		t.Run(name, func(t *testing.T) {
			w := NewCompressedRaw(payload)
			assert.Equal(t, payload, w.Content().Value())
			assert.True(t, w.ValidateCompression().IsSuccess())
		})
	}

	t.Run("not deflate", func(t *testing.T) {
		w := NewCompressedRaw([]byte("x"))
		w.SetBytes([]byte{byte(TagCompressedRaw), 0xff, 0xff, 0xff})

		content := w.Content()
		assert.False(t, content.HasValue())
		assert.True(t, status.Has[status.DecompressionFailed](content.Status()))
		assert.True(t, w.ValidateCompression().IsError())
		assert.True(t, w.Validate().IsError())

		r := Parse(w.Bytes())
		assert.False(t, r.HasValue())
		assert.True(t, r.IsError())
	})

	t.Run("integrity still checked", func(t *testing.T) {
		w := NewCompressedSizedCRC32([]byte("payload"))
		raw := w.Bytes()
		raw[len(raw)-1] ^= 0xff
		w.SetBytes(raw)
		assert.True(t, status.Has[status.InvalidChecksum](w.Validate()))
	})
}

func TestEquality(t *testing.T) {
	raw := []byte{0, 'a', 'b'}
	a := Wrap(TagRaw, raw).Value()
	b := Wrap(TagCompressedRaw, raw).Value()
	assert.False(t, a.Equal(b))
	assert.False(t, b.Equal(a))
	assert.NotEqual(t, a.Key(), b.Key())
	assert.False(t, a.Equal(nil))

	c := Parse(raw).Value()
	assert.True(t, a.Equal(c))
	assert.Equal(t, a.Key(), c.Key())

	assert.Len(t, mark.Squash([]Trendmark{a, b, c}), 2)
}

func TestCopies(t *testing.T) {
	input := RawFromString("abc").Bytes()
	tm := Parse(input).Value()
	input[1] = 'X'
	assert.Equal(t, []byte("abc"), tm.Content().Value())

	out := tm.Bytes()
	out[1] = 'Y'
	assert.Equal(t, []byte("abc"), tm.Content().Value())
	assert.True(t, tm.Watermark().Equal(mark.New([]byte{0, 'a', 'b', 'c'})))
	assert.Equal(t, "Trendmark.RawWatermark(00616263)", tm.String())
}

func TestBatch(t *testing.T) {
	envelopes := [][]byte{
		RawFromString("one").Bytes(),
		{0xff, 0x01},
		NewSizedSHA3256([]byte("two")).Bytes(),
	}

	t.Run("partial failure", func(t *testing.T) {
		r := ParseAll(envelopes)
		require.True(t, r.HasValue())
		assert.Len(t, r.Value(), 2)
		assert.False(t, r.IsSuccess())
		assert.True(t, r.IsWarning())
		assert.True(t, status.Has[status.UnknownTag](r.Status()))

		_, e, ok := status.Find[status.FailedTrendmarkExtractions](r.Status())
		require.True(t, ok)
		assert.Equal(t, status.Warning, e.Severity)
	})

	t.Run("all fail", func(t *testing.T) {
		r := ParseAll([][]byte{{0xff}, {}})
		assert.False(t, r.HasValue())
		assert.True(t, r.IsError())
		assert.False(t, status.Has[status.FailedTrendmarkExtractions](r.Status()))
		assert.Len(t, r.Status().Events(), 2)
	})

	t.Run("from watermarks", func(t *testing.T) {
		watermarks := make([]mark.Watermark, 0, len(envelopes))
		for _, e := range envelopes {
			watermarks = append(watermarks, mark.New(e))
		}
		r := ToTrendmarks(status.Success(watermarks), "test")
		require.True(t, r.HasValue())
		assert.Len(t, r.Value(), 2)
		_, e, ok := status.Find[status.FailedTrendmarkExtractions](r.Status())
		require.True(t, ok)
		assert.Equal(t, "test", e.Source)
	})

	t.Run("input result unchanged", func(t *testing.T) {
		in := status.Success([]mark.Watermark{mark.New([]byte{0xff}), mark.New([]byte{0xfe})})
		r := ToTrendmarks(in, "test")
		assert.False(t, r.HasValue())
		assert.Len(t, r.Status().Events(), 2)

		assert.True(t, in.HasValue())
		assert.True(t, in.IsSuccess())
		assert.Empty(t, in.Status().Events())
	})

	t.Run("upstream failure", func(t *testing.T) {
		upstream := status.Fail[[]mark.Watermark]("carrier", status.OversizedWatermark{Required: 3, Available: 1})
		r := ToTrendmarks(upstream, "test")
		assert.False(t, r.HasValue())
		assert.True(t, status.Has[status.OversizedWatermark](r.Status()))
	})
}
