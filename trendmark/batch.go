package trendmark

import (
	"github.com/yyyoichi/trendmark/mark"
	"github.com/yyyoichi/trendmark/status"
)

// ToTrendmarks parses every watermark of r. Envelopes that fail to parse are
// dropped and their events kept; if at least one envelope parsed, a
// FailedTrendmarkExtractions warning from source replaces the error level so
// the survivors are returned.
func ToTrendmarks(r status.Result[[]mark.Watermark], source string) status.Result[[]Trendmark] {
	watermarks, ok := r.Get()
	if !ok {
		return status.From[[]Trendmark](r.Status())
	}
	summary := status.NewWarning(source, status.FailedTrendmarkExtractions{})
	return status.Collect(watermarks, r.Status(), FromWatermark, summary)
}

// ParseAll parses every raw envelope as a batch, see ToTrendmarks.
func ParseAll(envelopes [][]byte) status.Result[[]Trendmark] {
	summary := status.NewWarning(Source, status.FailedTrendmarkExtractions{})
	return status.Collect(envelopes, nil, Parse, summary)
}
