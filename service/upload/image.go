// Package upload validates, downsizes and publishes images to the image host.
package upload

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"

	"grocery.GO/core/apperr"
)

// MaxEdge is the longest side an uploaded image keeps.
const MaxEdge = 1600

// MaxBytes bounds what Prepare will read.
const MaxBytes = 16 << 20

// Prepared is an image ready for upload.
type Prepared struct {
	Filename    string
	ContentType string
	Data        []byte
	Width       int
	Height      int
}

// Prepare checks that r holds an image, fits it within MaxEdge and re-encodes
// it in its own format. Anything that is not an image is a validation failure.
func Prepare(filename string, r io.Reader) (*Prepared, error) {
	const op = "upload.Prepare"
	raw, err := io.ReadAll(io.LimitReader(r, MaxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%s: read: %w", op, err)
	}
	if len(raw) > MaxBytes {
		return nil, apperr.Validation(op, "Image is too large")
	}
	if len(raw) == 0 {
		return nil, apperr.Validation(op, "Image file is empty")
	}

	contentType := http.DetectContentType(raw)
	var img image.Image
	switch contentType {
	case "image/webp":
		img, err = webp.Decode(bytes.NewReader(raw))
	case "image/jpeg", "image/png", "image/gif":
		img, err = imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	default:
		return nil, apperr.Validation(op, "Please upload an image file")
	}
	if err != nil {
		return nil, apperr.Validation(op, "Please upload a valid image file")
	}

	b := img.Bounds()
	if b.Dx() > MaxEdge || b.Dy() > MaxEdge {
		img = imaging.Fit(img, MaxEdge, MaxEdge, imaging.Lanczos)
	}

	var buf bytes.Buffer
	switch contentType {
	case "image/webp":
		err = webp.Encode(&buf, img, &webp.Options{Quality: 85})
	case "image/jpeg":
		err = imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(85))
	default:
		contentType = "image/png"
		err = imaging.Encode(&buf, img, imaging.PNG)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: encode: %w", op, err)
	}

	return &Prepared{
		Filename:    normalizeName(filename, contentType),
		ContentType: contentType,
		Data:        buf.Bytes(),
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
	}, nil
}

func normalizeName(filename, contentType string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	if base == "" || base == "." || base == "/" {
		base = "image"
	}
	ext := ".png"
	switch contentType {
	case "image/jpeg":
		ext = ".jpg"
	case "image/webp":
		ext = ".webp"
	}
	return base + ext
}
