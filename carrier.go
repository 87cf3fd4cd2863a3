package watermark

import (
	"github.com/yyyoichi/trendmark/mark"
	"github.com/yyyoichi/trendmark/status"
	"github.com/yyyoichi/trendmark/strmark"
)

var _ TextCarrier = (*strmark.TextWatermarker)(nil)

// TextCarrier places watermark bytes in text and finds them again.
type TextCarrier interface {
	// AddWatermark returns text carrying w.
	AddWatermark(text string, w mark.Watermark) status.Result[string]
	ContainsWatermark(text string) bool
	// GetWatermarks returns every watermark found in text, in order,
	// without merging duplicates.
	GetWatermarks(text string) status.Result[[]mark.Watermark]
	RemoveWatermarks(text string) status.Result[string]
}
