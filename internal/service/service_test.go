package service_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/latateni/latateni-server/internal/ai"
	"github.com/latateni/latateni-server/internal/config"
	"github.com/latateni/latateni-server/internal/media"
	"github.com/latateni/latateni-server/internal/store"
	"github.com/latateni/latateni-server/internal/validation"
)

type testEnv struct {
	store     *store.Store
	encoder   *media.Encoder
	validator *validation.Validator
	logger    *slog.Logger
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "service-test-*")
	require.NoError(t, err)

	s, err := store.New(filepath.Join(tmpDir, "test.db"), nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = s.Close()
		_ = os.RemoveAll(tmpDir)
	})

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &testEnv{
		store:     s,
		encoder:   media.NewEncoder(logger),
		validator: validation.New(),
		logger:    logger,
	}
}

// stubGenerator satisfies ai.Generator without network access.
type stubGenerator struct {
	calls   int
	text    string
	err     error
	prompts []string
}

func (g *stubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.calls++
	g.prompts = append(g.prompts, prompt)
	if g.err != nil {
		return "", g.err
	}
	return g.text, nil
}

func (e *testEnv) assistant(gen *stubGenerator, limit int) *ai.Assistant {
	return ai.NewAssistant(gen, ai.NewQuota(e.store, limit, e.logger), e.logger)
}

func pngDataURI(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 3), G: uint8(y * 5), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func adminConfig(emails ...string) *config.Config {
	return &config.Config{Admin: config.AdminConfig{Emails: emails}}
}
