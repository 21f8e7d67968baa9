package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/latateni/latateni-server/internal/errors"
	"github.com/latateni/latateni-server/internal/service"
)

func theoryFixture(t *testing.T) (*service.TheoryService, *stubGenerator, *testEnv) {
	env := newTestEnv(t)
	gen := &stubGenerator{text: "Artikel tekst"}
	svc := service.NewTheoryService(env.store, env.encoder, env.assistant(gen, 20), env.validator, env.logger)
	return svc, gen, env
}

func TestTheoryService_Create(t *testing.T) {
	svc, _, _ := theoryFixture(t)
	ctx := context.Background()

	article, err := svc.Create(ctx, "coach-a", service.CreateTheoryRequest{
		Title: "Servemodtagning",
		Body:  "Læs serven tidligt.",
		Links: "https://a.example, https://b.example",
		Tags:  "teknik, taktik",
	})
	require.NoError(t, err)

	require.Equal(t, []string{"https://a.example", "https://b.example"}, article.Links)
	require.Equal(t, []string{"teknik", "taktik"}, article.Tags)
	require.Empty(t, article.Images)
	require.Equal(t, "coach-a", article.OwnerID)
}

func TestTheoryService_Create_RequiresTitle(t *testing.T) {
	svc, _, env := theoryFixture(t)

	_, err := svc.Create(context.Background(), "coach-a", service.CreateTheoryRequest{Body: "tekst"})
	require.ErrorIs(t, err, apperrors.ErrValidation)

	count, countErr := env.store.Theory.Count(context.Background())
	require.NoError(t, countErr)
	require.Zero(t, count)
}

func TestTheoryService_Create_MultiImageGate(t *testing.T) {
	svc, _, env := theoryFixture(t)
	ctx := context.Background()

	// All attachments valid: one write with every image embedded.
	article, err := svc.Create(ctx, "coach-a", service.CreateTheoryRequest{
		Title:  "Med billeder",
		Images: []string{pngDataURI(t, 10, 10), pngDataURI(t, 20, 20)},
	})
	require.NoError(t, err)
	require.Len(t, article.Images, 2)

	// One bad attachment: nothing is written at all.
	_, err = svc.Create(ctx, "coach-a", service.CreateTheoryRequest{
		Title:  "Halvt dårlig",
		Images: []string{pngDataURI(t, 10, 10), "data:image/png;base64,Zm9ybcO4cmtldA=="},
	})
	require.ErrorIs(t, err, apperrors.ErrValidation)

	count, countErr := env.store.Theory.Count(ctx)
	require.NoError(t, countErr)
	require.Equal(t, 1, count)
}

func TestTheoryService_Draft_DoesNotWrite(t *testing.T) {
	svc, gen, env := theoryFixture(t)
	ctx := context.Background()

	text, err := svc.Draft(ctx, "coach-a", "Benarbejde", []string{"teknik"})
	require.NoError(t, err)
	require.Equal(t, "Artikel tekst", text)
	require.Contains(t, gen.prompts[0], "EMNE: Benarbejde")

	count, countErr := env.store.Theory.Count(ctx)
	require.NoError(t, countErr)
	require.Zero(t, count)
}

func TestTheoryService_Draft_RequiresTopic(t *testing.T) {
	svc, gen, _ := theoryFixture(t)

	_, err := svc.Draft(context.Background(), "coach-a", "", nil)
	require.ErrorIs(t, err, apperrors.ErrValidation)
	require.Zero(t, gen.calls)
}
