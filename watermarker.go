// Package watermark embeds and extracts Trendmark watermarks in text.
//
// A Watermarker chains a text carrier with the Trendmark and Textmark
// decoders. Each stage reports through status.Result: single items fail
// strictly, while a batch where only some items fail keeps the survivors
// and is summarised by a warning.
package watermark

import (
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/yyyoichi/trendmark/mark"
	"github.com/yyyoichi/trendmark/status"
	"github.com/yyyoichi/trendmark/strmark"
	"github.com/yyyoichi/trendmark/textmark"
	"github.com/yyyoichi/trendmark/trendmark"
)

// Source is the event source of the Watermarker.
const Source = "Watermarker"

var (
	ErrInvalidConfig   = errors.New("invalid config")
	ErrUnknownFileType = errors.New("unknown file type")
)

type Watermarker struct {
	logger     *logrus.Logger
	level      *logrus.Level
	text       TextCarrier
	extensions *extensions
}

// New returns a Watermarker using the default text carrier and the default
// extension mappings unless overridden by opts.
func New(opts ...Option) (*Watermarker, error) {
	w := &Watermarker{extensions: newExtensions()}
	if err := w.init(opts...); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *Watermarker) init(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(w); err != nil {
			return err
		}
	}
	if w.logger == nil {
		w.logger = logrus.New()
	}
	if w.level != nil {
		w.logger.SetLevel(*w.level)
	}
	if w.text == nil {
		w.text = strmark.Default()
	}
	return nil
}

// TextAddWatermark returns text carrying watermark.
func (w *Watermarker) TextAddWatermark(text string, watermark []byte) status.Result[string] {
	r := w.text.AddWatermark(text, mark.New(watermark))
	if r.IsError() {
		w.logger.WithError(r.Status().Err()).Error("Failed to add watermark")
		return r
	}
	if r.IsWarning() {
		w.logger.WithField("status", r.Status().String()).Warn("Added watermark with warnings")
		return r
	}
	w.logger.WithField("bytes", len(watermark)).Debug("Successfully added watermark")
	return r
}

// TextAddTrendmark returns text carrying the Trendmark built by b.
func (w *Watermarker) TextAddTrendmark(text string, b trendmark.Builder) status.Result[string] {
	return w.TextAddWatermark(text, b.Finish().Bytes())
}

func (w *Watermarker) TextContainsWatermark(text string) bool {
	return w.text.ContainsWatermark(text)
}

// TextGetWatermarks returns the watermarks of text. With squash, only the
// first watermark of each distinct content is kept.
func (w *Watermarker) TextGetWatermarks(text string, squash bool) status.Result[[]mark.Watermark] {
	r := w.text.GetWatermarks(text)
	watermarks, ok := r.Get()
	if !ok {
		w.logStage("watermarks", 0, r.Status())
		return r
	}
	if squash {
		watermarks = mark.Squash(watermarks)
		r = status.Into(r.Status(), watermarks)
	}
	w.logStage("watermarks", len(watermarks), r.Status())
	return r
}

// TextGetTrendmarks returns the watermarks of text parsed as Trendmarks.
// Watermarks that fail to parse are dropped with a warning; if none parse
// the Result is an error.
func (w *Watermarker) TextGetTrendmarks(text string, squash bool) status.Result[[]trendmark.Trendmark] {
	r := trendmark.ToTrendmarks(w.TextGetWatermarks(text, squash), Source+".textGetTrendmarks")
	w.logStage("trendmarks", len(r.Value()), r.Status())
	return r
}

// TextGetTextmarks returns the Trendmarks of text decoded as Textmarks.
// errorOnInvalidUTF8 selects whether ill-formed UTF-8 fails a Textmark or
// is replaced by U+FFFD.
func (w *Watermarker) TextGetTextmarks(text string, squash, errorOnInvalidUTF8 bool) status.Result[[]*textmark.Textmark] {
	r := textmark.ToTextmarks(w.TextGetTrendmarks(text, squash), errorOnInvalidUTF8, Source+".textGetTextmarks")
	w.logStage("textmarks", len(r.Value()), r.Status())
	return r
}

// TextRemoveWatermarks returns text without watermarks.
func (w *Watermarker) TextRemoveWatermarks(text string) status.Result[string] {
	r := w.text.RemoveWatermarks(text)
	if r.IsError() {
		w.logger.WithError(r.Status().Err()).Error("Failed to remove watermarks")
	}
	return r
}

func (w *Watermarker) logStage(stage string, n int, s *status.Status) {
	entry := w.logger.WithFields(logrus.Fields{
		"stage":  stage,
		"count":  n,
		"events": len(s.Events()),
		"level":  s.Level().String(),
	})
	if status.Has[status.FailedTrendmarkExtractions](s) || status.Has[status.FailedTextmarkExtractions](s) {
		entry.Warn("Some watermarks could not be converted")
		return
	}
	entry.Debug("Extracted")
}
