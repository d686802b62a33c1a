package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/codelabbj/icash-admin/internal/constants"
	"github.com/codelabbj/icash-admin/internal/http"
	"github.com/codelabbj/icash-admin/pkg/mobcash"
)

// Uploader stores binaries through the upload endpoint.
type Uploader struct {
	httpClient *http.Client
	notifier   mobcash.Notifier
}

// NewUploader creates an uploader.
func NewUploader(httpClient *http.Client, notifier mobcash.Notifier) *Uploader {
	return &Uploader{httpClient: httpClient, notifier: notifier}
}

// Upload sends body as a multipart file and returns the URL it is served
// at. A failure is notified here; callers must not notify it again.
func (u *Uploader) Upload(ctx context.Context, filename string, body io.Reader) (string, error) {
	url, err := u.upload(ctx, filename, body)
	if err != nil {
		u.notifier.Error("Échec du téléversement: " + mobcash.UserMessage(err))

		return "", fmt.Errorf("%w: %s: %w", mobcash.ErrUpload, filename, err)
	}

	return url, nil
}

func (u *Uploader) upload(ctx context.Context, filename string, body io.Reader) (string, error) {
	resp, err := u.httpClient.PostMultipart(ctx, constants.UploadPath, constants.UploadField, filename, body)
	if err != nil {
		return "", err //nolint:wrapcheck // wrapped by Upload
	}

	var result mobcash.UploadResult

	err = json.Unmarshal(resp.Body, &result)
	if err != nil {
		return "", fmt.Errorf("parsing upload response: %w", err)
	}

	if result.URL == "" {
		return "", mobcash.ErrEmptyUploadURL
	}

	return result.URL, nil
}
