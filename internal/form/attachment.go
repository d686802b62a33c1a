package form

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/codelabbj/icash-admin/internal/constants"
)

// Attachment is a file picked in a dialog. It is uploaded during the first
// phase of UploadThenSubmit; URL is set once the upload resolved.
type Attachment struct {
	Name    string
	Data    []byte
	Preview string
	URL     string
}

// NewAttachment wraps in-memory file content and builds its preview.
func NewAttachment(name string, data []byte) (*Attachment, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s", constants.ErrAttachmentEmpty, name)
	}

	return &Attachment{
		Name:    filepath.Base(name),
		Data:    data,
		Preview: PreviewURL(data),
	}, nil
}

// OpenAttachment reads a regular file from disk.
func OpenAttachment(path string) (*Attachment, error) {
	clean := filepath.Clean(path)

	info, err := os.Stat(clean)
	if err != nil {
		return nil, fmt.Errorf("reading attachment: %w", err)
	}

	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", constants.ErrNotRegularFile, path)
	}

	data, err := os.ReadFile(clean)
	if err != nil {
		return nil, fmt.Errorf("reading attachment: %w", err)
	}

	return NewAttachment(clean, data)
}

// Reader returns a fresh reader over the content, so a failed upload can be
// retried.
func (a *Attachment) Reader() io.Reader {
	return bytes.NewReader(a.Data)
}

// Uploaded reports whether the attachment resolved to a URL.
func (a *Attachment) Uploaded() bool {
	return a.URL != ""
}

// ContentType sniffs the media type of the content.
func (a *Attachment) ContentType() string {
	return http.DetectContentType(a.Data)
}

// PreviewURL encodes data as a data URL.
func PreviewURL(data []byte) string {
	return "data:" + http.DetectContentType(data) + ";base64," + base64.StdEncoding.EncodeToString(data)
}
