package media_test

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/latateni/latateni-server/internal/media"
)

func testEncoder() *media.Encoder {
	return media.NewEncoder(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 7), G: uint8(y * 11), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func pngDataURI(t *testing.T, w, h int) string {
	t.Helper()
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes(t, w, h))
}

func TestEncoder_Encode(t *testing.T) {
	enc := testEncoder()

	img, err := enc.Encode(pngBytes(t, 100, 80))
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(img.Data, "data:image/png;base64,"))
	require.NotEmpty(t, img.Placeholder)

	// Embedded bytes round-trip to the original upload.
	decoded, err := media.DecodeDataURI(img.Data)
	require.NoError(t, err)
	require.Equal(t, pngBytes(t, 100, 80), decoded)
}

func TestEncoder_Encode_RejectsEmpty(t *testing.T) {
	_, err := testEncoder().Encode(nil)
	require.ErrorIs(t, err, media.ErrEmptyImage)
}

func TestEncoder_Encode_RejectsNonImage(t *testing.T) {
	_, err := testEncoder().Encode([]byte("not an image"))
	require.ErrorIs(t, err, media.ErrUnsupportedImage)
}

func TestEncoder_EncodeDataURI_RejectsMalformed(t *testing.T) {
	enc := testEncoder()

	_, err := enc.EncodeDataURI("nonsense")
	require.ErrorIs(t, err, media.ErrInvalidDataURI)

	_, err = enc.EncodeDataURI("data:image/png;base64")
	require.ErrorIs(t, err, media.ErrInvalidDataURI)

	_, err = enc.EncodeDataURI("data:image/png,plainpayload")
	require.ErrorIs(t, err, media.ErrInvalidDataURI)

	_, err = enc.EncodeDataURI("data:image/png;base64,!!!not-base64!!!")
	require.ErrorIs(t, err, media.ErrInvalidDataURI)
}

func TestEncoder_EncodeAll_AllOrNothing(t *testing.T) {
	enc := testEncoder()

	// All valid: every attachment encoded.
	images, err := enc.EncodeAll([]string{
		pngDataURI(t, 10, 10),
		pngDataURI(t, 20, 20),
		pngDataURI(t, 30, 30),
	})
	require.NoError(t, err)
	require.Len(t, images, 3)
	for _, img := range images {
		require.NotEmpty(t, img.Data)
	}

	// One bad attachment fails the whole batch.
	_, err = enc.EncodeAll([]string{
		pngDataURI(t, 10, 10),
		"data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("garbage")),
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "attachment 2")
}

func TestEncoder_EncodeAll_Empty(t *testing.T) {
	images, err := testEncoder().EncodeAll(nil)
	require.NoError(t, err)
	require.Empty(t, images)
}
