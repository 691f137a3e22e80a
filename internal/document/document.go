// Package document turns uploaded résumé files into plain text.
package document

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	MimeText = "text/plain"
	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

	DefaultMaxFileSize = 10 << 20
	DefaultMaxPages    = 20
)

var (
	ErrUnsupportedFormat = errors.New("unsupported document format")
	ErrTooLarge          = errors.New("document is too large")
	ErrTooManyPages      = errors.New("document has too many pages")
)

var extensions = map[string]string{
	".txt":  MimeText,
	".text": MimeText,
	".md":   MimeText,
	".pdf":  MimePDF,
	".docx": MimeDOCX,
}

// MimeFromFilename guesses the document type from its extension. Unknown extensions return "".
func MimeFromFilename(name string) string {
	return extensions[strings.ToLower(filepath.Ext(name))]
}

// Supported reports whether the file extension can be decoded.
func Supported(name string) bool {
	return MimeFromFilename(name) != ""
}

type Options struct {
	MaxFileSize int64
	MaxPages    int
}

type Decoder struct {
	maxFileSize int64
	maxPages    int
}

func New(opts Options) *Decoder {
	if opts.MaxFileSize <= 0 {
		opts.MaxFileSize = DefaultMaxFileSize
	}
	if opts.MaxPages <= 0 {
		opts.MaxPages = DefaultMaxPages
	}
	return &Decoder{maxFileSize: opts.MaxFileSize, maxPages: opts.MaxPages}
}

// DecodeFile reads a file from disk and decodes it by extension.
func (d *Decoder) DecodeFile(path string) (string, error) {
	mime := MimeFromFilename(path)
	if mime == "" {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}

	stat, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat %q: %w", path, err)
	}
	if stat.Size() > d.maxFileSize {
		return "", fmt.Errorf("%w: %d bytes", ErrTooLarge, stat.Size())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %q: %w", path, err)
	}

	return d.Decode(mime, data)
}

// Decode extracts text from raw document bytes of the given mime type.
func (d *Decoder) Decode(mime string, data []byte) (string, error) {
	if int64(len(data)) > d.maxFileSize {
		return "", fmt.Errorf("%w: %d bytes", ErrTooLarge, len(data))
	}

	var (
		text string
		err  error
	)
	switch mime {
	case MimeText:
		text = string(data)
	case MimePDF:
		text, err = d.decodePDF(data)
	case MimeDOCX:
		text, err = decodeDOCX(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, mime)
	}
	if err != nil {
		return "", err
	}

	return clean(text), nil
}

func clean(text string) string {
	text = strings.ToValidUTF8(text, "")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\x00", "")
}

func newReader(data []byte) *bytes.Reader {
	return bytes.NewReader(data)
}
