package watermark

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

type Option func(*Watermarker) error

// WithLogger sets the logger used for pipeline diagnostics.
// Without it a new logrus logger writing to stderr is created.
func WithLogger(logger *logrus.Logger) Option {
	return func(w *Watermarker) error {
		if logger == nil {
			return fmt.Errorf("%w: nil logger", ErrInvalidConfig)
		}
		w.logger = logger
		return nil
	}
}

// WithLogLevel sets the level of the logger once all options are applied.
func WithLogLevel(level logrus.Level) Option {
	return func(w *Watermarker) error {
		w.level = &level
		return nil
	}
}

// WithTextCarrier replaces the default text carrier.
func WithTextCarrier(carrier TextCarrier) Option {
	return func(w *Watermarker) error {
		if carrier == nil {
			return fmt.Errorf("%w: nil text carrier", ErrInvalidConfig)
		}
		w.text = carrier
		return nil
	}
}

// WithExtension maps the file extension ext to ft.
func WithExtension(ext string, ft FileType) Option {
	return func(w *Watermarker) error {
		return w.extensions.register(ext, ft)
	}
}
