package status

import (
	"encoding/hex"
	"fmt"
)

// Severity classifies an Event. The zero value is not a valid event
// severity; a Status with no events reports it as its level.
type Severity uint8

const (
	Warning Severity = iota + 1
	Error
)

func (s Severity) String() string {
	switch s {
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "success"
	}
}

// Event is an immutable diagnostic record emitted by one component.
type Event struct {
	Severity Severity
	// Source names the emitting component, e.g. "Trendmark.SizedWatermark".
	Source string
	Detail Detail
}

// NewError returns an Error event.
func NewError(source string, d Detail) Event {
	return Event{Severity: Error, Source: source, Detail: d}
}

// NewWarning returns a Warning event.
func NewWarning(source string, d Detail) Event {
	return Event{Severity: Warning, Source: source, Detail: d}
}

// Message renders the event detail.
func (e Event) Message() string {
	return Message(e.Detail)
}

func (e Event) Error() string {
	return fmt.Sprintf("%s (%s): %s", e.Source, e.Severity, e.Message())
}

func (e Event) String() string {
	return e.Error()
}

// Into returns a Status holding only e.
func (e Event) Into() *Status {
	return New(e)
}

// Detail carries the structured fields of one event kind. The set of
// kinds is closed: every implementation lives in this package.
type Detail interface {
	detail()
}

type (
	// NotEnoughData reports a byte range that extends past the input.
	NotEnoughData struct{ MinimumBytes int }
	// IncompleteTag reports an input shorter than the tag.
	IncompleteTag struct{ TagSize int }
	// UnknownTag reports a tag byte that maps to no variant.
	UnknownTag struct{ Tag uint8 }
	// InvalidTag reports a tag byte that differs from the variant decoding it.
	InvalidTag struct{ Expected, Actual uint8 }
	// MismatchedSize reports a size field that differs from the actual length.
	MismatchedSize struct{ Expected, Actual int }
	// InvalidChecksum reports an embedded checksum that differs from the computed one.
	InvalidChecksum struct{ Expected, Actual uint32 }
	// InvalidHash reports an embedded hash that differs from the computed one.
	InvalidHash struct{ Expected, Actual []byte }
	// DecompressionFailed reports a payload that could not be inflated.
	DecompressionFailed struct{ Reason string }
	// FailedTrendmarkExtractions summarises a batch where some envelopes
	// could not be converted to Trendmarks.
	FailedTrendmarkExtractions struct{}
	// FailedTextmarkExtractions summarises a batch where some Trendmarks
	// could not be converted to Textmarks.
	FailedTextmarkExtractions struct{}
	// InvalidUTF8 reports the first byte offset of an ill-formed sequence.
	InvalidUTF8 struct{ Offset int }
	// UnsupportedType reports a file type with no registered handler.
	UnsupportedType struct{ Type string }
	// NoFileType reports a path whose file type cannot be determined.
	NoFileType struct{ Path string }
	// OversizedWatermark reports a carrier without enough insert positions.
	OversizedWatermark struct{ Required, Available int }
	// CarrierFailure wraps an error returned by an external carrier.
	CarrierFailure struct{ Err error }
)

func (NotEnoughData) detail()              {}
func (IncompleteTag) detail()              {}
func (UnknownTag) detail()                 {}
func (InvalidTag) detail()                 {}
func (MismatchedSize) detail()             {}
func (InvalidChecksum) detail()            {}
func (InvalidHash) detail()                {}
func (DecompressionFailed) detail()        {}
func (FailedTrendmarkExtractions) detail() {}
func (FailedTextmarkExtractions) detail()  {}
func (InvalidUTF8) detail()                {}
func (UnsupportedType) detail()            {}
func (NoFileType) detail()                 {}
func (OversizedWatermark) detail()         {}
func (CarrierFailure) detail()             {}

// Message renders a human-readable description of d.
func Message(d Detail) string {
	switch d := d.(type) {
	case NotEnoughData:
		return fmt.Sprintf("At least %d bytes are required.", d.MinimumBytes)
	case IncompleteTag:
		return fmt.Sprintf("Cannot validate a watermark without a complete tag (%d byte(s)).", d.TagSize)
	case UnknownTag:
		return fmt.Sprintf("Unknown watermark tag: %d.", d.Tag)
	case InvalidTag:
		return fmt.Sprintf("Expected tag: %d, but was: %d.", d.Expected, d.Actual)
	case MismatchedSize:
		return fmt.Sprintf("Expected %d bytes, but extracted %d bytes.", d.Expected, d.Actual)
	case InvalidChecksum:
		return fmt.Sprintf("Expected checksum: %#08x, but was: %#08x.", d.Expected, d.Actual)
	case InvalidHash:
		return fmt.Sprintf("Expected hash: %s, but was: %s.", hex.EncodeToString(d.Expected), hex.EncodeToString(d.Actual))
	case DecompressionFailed:
		return fmt.Sprintf("Could not decompress the watermark content: %s.", d.Reason)
	case FailedTrendmarkExtractions:
		return "Could not extract and convert all watermarks to Trendmarks"
	case FailedTextmarkExtractions:
		return "Could not extract and convert all watermarks to Textmarks"
	case InvalidUTF8:
		return fmt.Sprintf("Invalid UTF-8 sequence at byte %d.", d.Offset)
	case UnsupportedType:
		return fmt.Sprintf("Unsupported file type: %s!", d.Type)
	case NoFileType:
		return fmt.Sprintf("Could not determine file type of %s!", d.Path)
	case OversizedWatermark:
		return fmt.Sprintf("The watermark needs %d insert positions, but only %d are available.", d.Required, d.Available)
	case CarrierFailure:
		if d.Err == nil {
			return "The carrier failed."
		}
		return d.Err.Error()
	case nil:
		return ""
	default:
		return fmt.Sprintf("%T", d)
	}
}
