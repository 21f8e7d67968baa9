// Package media turns uploaded images into the inline form records store:
// a base64 data URI plus a BlurHash placeholder. Records embed their images
// directly, so encoding must fully succeed before any write is issued.
package media

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"log/slog"
	"strings"

	"github.com/bbrks/go-blurhash"
	_ "golang.org/x/image/webp" // Register WebP decoder

	"github.com/latateni/latateni-server/internal/domain"
)

// maxImageBytes caps a single attachment. Images are embedded in records, so
// oversized uploads would bloat every snapshot carrying them.
const maxImageBytes = 5 << 20

// blurHashSize is the target size for BlurHash computation.
// BlurHash doesn't need high resolution - a small thumbnail produces nearly
// identical results while cutting computation from seconds to milliseconds.
const blurHashSize = 64

var (
	ErrEmptyImage       = errors.New("image data is empty")
	ErrImageTooLarge    = fmt.Errorf("image exceeds %d bytes", maxImageBytes)
	ErrUnsupportedImage = errors.New("unsupported image format")
	ErrInvalidDataURI   = errors.New("malformed data URI")
)

// Encoder validates raw image bytes and produces embeddable attachments.
type Encoder struct {
	logger *slog.Logger
}

// NewEncoder creates a new Encoder instance.
func NewEncoder(logger *slog.Logger) *Encoder {
	return &Encoder{logger: logger}
}

// Encode validates the image bytes, computes a BlurHash placeholder, and
// returns the attachment with its bytes embedded as a base64 data URI.
func (e *Encoder) Encode(data []byte) (*domain.Image, error) {
	if len(data) == 0 {
		return nil, ErrEmptyImage
	}
	if len(data) > maxImageBytes {
		return nil, ErrImageTooLarge
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}

	placeholder, err := computeBlurHash(img)
	if err != nil {
		// A failed placeholder should not block the upload; the image itself
		// decoded fine.
		e.logger.Warn("blurhash computation failed",
			slog.String("format", format),
			slog.String("error", err.Error()))
		placeholder = ""
	}

	uri := "data:image/" + format + ";base64," + base64.StdEncoding.EncodeToString(data)

	return &domain.Image{
		Data:        uri,
		Placeholder: placeholder,
	}, nil
}

// EncodeDataURI decodes a client-supplied data URI and re-encodes it through
// Encode, validating the payload actually is an image.
func (e *Encoder) EncodeDataURI(uri string) (*domain.Image, error) {
	data, err := DecodeDataURI(uri)
	if err != nil {
		return nil, err
	}
	return e.Encode(data)
}

// EncodeAll encodes every attachment, failing the whole batch on the first
// error. Callers gate their single store write on this returning successfully
// for all attachments.
func (e *Encoder) EncodeAll(uris []string) ([]domain.Image, error) {
	images := make([]domain.Image, 0, len(uris))
	for i, uri := range uris {
		img, err := e.EncodeDataURI(uri)
		if err != nil {
			return nil, fmt.Errorf("attachment %d: %w", i+1, err)
		}
		images = append(images, *img)
	}
	return images, nil
}

// DecodeDataURI extracts the raw bytes from a base64 data URI.
func DecodeDataURI(uri string) ([]byte, error) {
	if !strings.HasPrefix(uri, "data:") {
		return nil, ErrInvalidDataURI
	}
	_, payload, ok := strings.Cut(uri, ",")
	if !ok {
		return nil, ErrInvalidDataURI
	}

	meta := uri[len("data:"):strings.Index(uri, ",")]
	if !strings.HasSuffix(meta, ";base64") {
		return nil, fmt.Errorf("%w: only base64 data URIs are accepted", ErrInvalidDataURI)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDataURI, err)
	}
	return data, nil
}

// computeBlurHash generates a BlurHash string for an image.
// Uses 4x3 components for a good balance of size (~20-30 chars) and detail.
// The image is resized to a small thumbnail first for performance.
func computeBlurHash(img image.Image) (string, error) {
	thumbnail := resizeForBlurHash(img)
	return blurhash.Encode(4, 3, thumbnail)
}

// resizeForBlurHash creates a small thumbnail suitable for BlurHash
// computation. Uses nearest-neighbor scaling which is fast and sufficient
// for a low-resolution placeholder.
func resizeForBlurHash(img image.Image) image.Image {
	bounds := img.Bounds()
	srcWidth := bounds.Dx()
	srcHeight := bounds.Dy()

	if srcWidth <= blurHashSize && srcHeight <= blurHashSize {
		return img
	}

	var dstWidth, dstHeight int
	if srcWidth > srcHeight {
		dstWidth = blurHashSize
		dstHeight = max((srcHeight*blurHashSize)/srcWidth, 1)
	} else {
		dstHeight = blurHashSize
		dstWidth = max((srcWidth*blurHashSize)/srcHeight, 1)
	}

	dst := image.NewRGBA(image.Rect(0, 0, dstWidth, dstHeight))

	xRatio := float64(srcWidth) / float64(dstWidth)
	yRatio := float64(srcHeight) / float64(dstHeight)

	for y := 0; y < dstHeight; y++ {
		for x := 0; x < dstWidth; x++ {
			srcX := int(float64(x) * xRatio)
			srcY := int(float64(y) * yRatio)
			dst.Set(x, y, img.At(bounds.Min.X+srcX, bounds.Min.Y+srcY))
		}
	}

	return dst
}
