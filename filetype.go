package watermark

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/yyyoichi/trendmark/status"
)

// FileTypeSource is the event source of file type lookups.
const FileTypeSource = "SupportedFileType"

// FileType is a kind of file a carrier can be registered for.
type FileType uint8

const (
	FileTypeText FileType = iota + 1
	FileTypeZip
)

func (ft FileType) String() string {
	switch ft {
	case FileTypeText:
		return "text"
	case FileTypeZip:
		return "zip"
	default:
		return fmt.Sprintf("FileType(%d)", uint8(ft))
	}
}

func (ft FileType) valid() bool {
	return ft == FileTypeText || ft == FileTypeZip
}

// ParseFileType parses the name returned by FileType.String.
func ParseFileType(name string) (FileType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "text":
		return FileTypeText, nil
	case "zip":
		return FileTypeZip, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFileType, name)
}

// extensions maps file extensions to file types. Lookups may run
// concurrently with registrations.
type extensions struct {
	mu sync.RWMutex
	m  map[string]FileType
}

func newExtensions() *extensions {
	return &extensions{m: map[string]FileType{
		"zip": FileTypeZip,
		"jar": FileTypeZip,
		"txt": FileTypeText,
		"md":  FileTypeText,
	}}
}

// normalizeExtension lower-cases ext and strips a leading dot.
func normalizeExtension(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}

func (e *extensions) lookup(ext string) (FileType, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	ft, ok := e.m[normalizeExtension(ext)]
	return ft, ok
}

func (e *extensions) register(ext string, ft FileType) error {
	if !ft.valid() {
		return fmt.Errorf("%w: %d", ErrUnknownFileType, uint8(ft))
	}
	ext = normalizeExtension(ext)
	if ext == "" {
		return fmt.Errorf("%w: empty extension", ErrInvalidConfig)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.m[ext] = ft
	return nil
}

// FileTypeFromExtension returns the file type registered for ext. The
// lookup ignores case and a leading dot.
func (w *Watermarker) FileTypeFromExtension(ext string) status.Result[FileType] {
	ft, ok := w.extensions.lookup(ext)
	if !ok {
		return status.Fail[FileType](FileTypeSource, status.UnsupportedType{Type: ext})
	}
	return status.Success(ft)
}

// FileTypeFromPath returns the file type of the extension of path.
func (w *Watermarker) FileTypeFromPath(path string) status.Result[FileType] {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return status.Fail[FileType](FileTypeSource, status.NoFileType{Path: path})
	}
	return w.FileTypeFromExtension(ext)
}

// RegisterExtension maps ext to ft, replacing any previous mapping.
func (w *Watermarker) RegisterExtension(ext string, ft FileType) error {
	if err := w.extensions.register(ext, ft); err != nil {
		return err
	}
	w.logger.WithFields(logrus.Fields{"extension": normalizeExtension(ext), "type": ft.String()}).Debug("registered extension")
	return nil
}

// CarrierFor returns the carrier handling ft. Only text carriers exist;
// any other type is unsupported.
func (w *Watermarker) CarrierFor(ft FileType) status.Result[TextCarrier] {
	if ft != FileTypeText {
		return status.Fail[TextCarrier](FileTypeSource, status.UnsupportedType{Type: ft.String()})
	}
	return status.Success(w.text)
}
