package watermark

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
	"github.com/yyyoichi/trendmark/strmark"
)

// Config is the TOML representation of a Watermarker.
//
//	log_level = "warning"
//
//	[text]
//	alphabet = ["\u2000", "\u2004", "\u2005", "\u2006"]
//	separator = "\u2008"
//
//	[extensions]
//	markdown = "text"
//	war = "zip"
type Config struct {
	LogLevel   string            `toml:"log_level"`
	Text       TextConfig        `toml:"text"`
	Extensions map[string]string `toml:"extensions"`
}

// TextConfig configures the default text carrier. Every entry is a single
// rune.
type TextConfig struct {
	Alphabet  []string `toml:"alphabet"`
	Separator string   `toml:"separator"`
}

// DefaultConfig returns the configuration matching New without options.
func DefaultConfig() Config {
	alphabet := make([]string, len(strmark.DefaultAlphabet))
	for i, r := range strmark.DefaultAlphabet {
		alphabet[i] = string(r)
	}
	return Config{
		LogLevel: logrus.InfoLevel.String(),
		Text: TextConfig{
			Alphabet:  alphabet,
			Separator: string(strmark.DefaultSeparator),
		},
	}
}

// ParseConfig decodes data over DefaultConfig and validates the result.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: parse config: %w", ErrInvalidConfig, err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if len(c.Extensions) == 0 {
		return
	}
	extensions := make(map[string]string, len(c.Extensions))
	for ext, name := range c.Extensions {
		extensions[normalizeExtension(ext)] = strings.ToLower(strings.TrimSpace(name))
	}
	c.Extensions = extensions
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level: %w", ErrInvalidConfig, err)
	}
	if _, err := c.textCarrier(); err != nil {
		return err
	}
	for ext, name := range c.Extensions {
		if ext == "" {
			return fmt.Errorf("%w: empty extension", ErrInvalidConfig)
		}
		if _, err := ParseFileType(name); err != nil {
			return fmt.Errorf("%w: extension %q: %w", ErrInvalidConfig, ext, err)
		}
	}
	return nil
}

// textCarrier builds the carrier described by c.Text, so every alphabet
// rule of strmark.New is applied.
func (c *Config) textCarrier() (*strmark.TextWatermarker, error) {
	alphabet, err := c.alphabet()
	if err != nil {
		return nil, err
	}
	separator, err := c.separator()
	if err != nil {
		return nil, err
	}
	carrier, err := strmark.New(strmark.WithAlphabet(alphabet...), strmark.WithSeparator(separator))
	if err != nil {
		return nil, fmt.Errorf("%w: text: %w", ErrInvalidConfig, err)
	}
	return carrier, nil
}

func (c *Config) alphabet() ([]rune, error) {
	out := make([]rune, 0, len(c.Text.Alphabet))
	for i, s := range c.Text.Alphabet {
		r, err := singleRune(s)
		if err != nil {
			return nil, fmt.Errorf("%w: text.alphabet[%d]: %w", ErrInvalidConfig, i, err)
		}
		out = append(out, r)
	}
	return out, nil
}

func (c *Config) separator() (rune, error) {
	r, err := singleRune(c.Text.Separator)
	if err != nil {
		return 0, fmt.Errorf("%w: text.separator: %w", ErrInvalidConfig, err)
	}
	return r, nil
}

func singleRune(s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("%q is not a single rune", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return 0, fmt.Errorf("%q is not valid UTF-8", s)
	}
	return r, nil
}

// NewFromConfig returns a Watermarker configured by cfg. opts are applied
// after the options derived from cfg.
func NewFromConfig(cfg *Config, opts ...Option) (*Watermarker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	level, _ := logrus.ParseLevel(cfg.LogLevel)
	carrier, err := cfg.textCarrier()
	if err != nil {
		return nil, err
	}

	options := []Option{WithTextCarrier(carrier), WithLogLevel(level)}
	for ext, name := range cfg.Extensions {
		ft, _ := ParseFileType(name)
		options = append(options, WithExtension(ext, ft))
	}
	return New(append(options, opts...)...)
}
