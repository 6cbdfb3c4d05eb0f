package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"grocery.GO/core/apperr"
)

// Uploader publishes an image and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, filename string, r io.Reader) (string, error)
}

// Imgbb posts images as the multipart field "image" to an imgbb-compatible
// endpoint.
type Imgbb struct {
	Endpoint string
	Key      string
	HTTP     *http.Client
}

func NewImgbb(endpoint, key string) *Imgbb {
	return &Imgbb{
		Endpoint: endpoint,
		Key:      key,
		HTTP:     &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
	}
}

type imgbbResponse struct {
	Success bool `json:"success"`
	Data    struct {
		URL        string `json:"url"`
		DisplayURL string `json:"display_url"`
	} `json:"data"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (u *Imgbb) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	const op = "upload.Imgbb"
	if u.Key == "" {
		return "", apperr.Transport(op, fmt.Errorf("IMAGE_UPLOAD_KEY is not set"))
	}
	img, err := Prepare(filename, r)
	if err != nil {
		return "", err
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("image", img.Filename)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if _, err := part.Write(img.Data); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	target, err := url.Parse(u.Endpoint)
	if err != nil {
		return "", fmt.Errorf("%s: endpoint: %w", op, err)
	}
	q := target.Query()
	q.Set("key", u.Key)
	target.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target.String(), &body)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	client := u.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", apperr.Transport(op, err)
	}
	defer resp.Body.Close()

	var out imgbbResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", apperr.Transport(op, fmt.Errorf("status %d: decode: %w", resp.StatusCode, err))
	}
	if resp.StatusCode != http.StatusOK || !out.Success || out.Data.URL == "" {
		return "", apperr.Transport(op, fmt.Errorf("status %d: %s", resp.StatusCode, out.Error.Message))
	}
	return out.Data.URL, nil
}
