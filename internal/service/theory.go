package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/latateni/latateni-server/internal/ai"
	"github.com/latateni/latateni-server/internal/domain"
	apperrors "github.com/latateni/latateni-server/internal/errors"
	"github.com/latateni/latateni-server/internal/id"
	"github.com/latateni/latateni-server/internal/media"
	"github.com/latateni/latateni-server/internal/store"
	"github.com/latateni/latateni-server/internal/validation"
)

// TheoryService manages theory articles.
type TheoryService struct {
	store     *store.Store
	encoder   *media.Encoder
	assistant *ai.Assistant
	validator *validation.Validator
	logger    *slog.Logger
}

// NewTheoryService creates a new theory service.
func NewTheoryService(st *store.Store, encoder *media.Encoder, assistant *ai.Assistant, validator *validation.Validator, logger *slog.Logger) *TheoryService {
	return &TheoryService{
		store:     st,
		encoder:   encoder,
		assistant: assistant,
		validator: validator,
		logger:    logger,
	}
}

// CreateTheoryRequest carries the article form fields. Links and Tags are
// comma-separated free text; Images are base64 data URIs.
type CreateTheoryRequest struct {
	Title  string   `json:"title" validate:"required"`
	Body   string   `json:"body"`
	Links  string   `json:"links"`
	Tags   string   `json:"tags"`
	Images []string `json:"images,omitempty"`
}

// Create validates and writes a new article. Every attached image must
// encode successfully before the single write is issued; one bad attachment
// fails the whole create.
func (s *TheoryService) Create(ctx context.Context, ownerID string, req CreateTheoryRequest) (*domain.TheoryArticle, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	images, err := s.encoder.EncodeAll(req.Images)
	if err != nil {
		return nil, apperrors.Validationf("invalid image: %v", err)
	}

	articleID, err := id.Generate("thr")
	if err != nil {
		return nil, fmt.Errorf("generate article id: %w", err)
	}

	article := &domain.TheoryArticle{
		ID:        articleID,
		Title:     req.Title,
		Body:      req.Body,
		Links:     domain.SplitCommaList(req.Links),
		Tags:      domain.SplitCommaList(req.Tags),
		Images:    images,
		OwnerID:   ownerID,
		CreatedAt: time.Now().UnixMilli(),
	}

	if err := s.store.Theory.Create(ctx, articleID, article); err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}

	s.logger.Info("theory article created",
		slog.String("article_id", articleID),
		slog.String("owner_id", ownerID),
		slog.Int("images", len(images)))

	return article, nil
}

// Draft asks the assistant for article text on a topic. The draft is
// returned for the coach to edit; nothing is stored.
func (s *TheoryService) Draft(ctx context.Context, ownerID, topic string, tags []string) (string, error) {
	if topic == "" {
		return "", apperrors.Validation("topic is required")
	}
	return s.assistant.DraftTheoryArticle(ctx, ownerID, topic, tags)
}

// Get returns one of the coach's articles.
func (s *TheoryService) Get(ctx context.Context, ownerID, articleID string) (*domain.TheoryArticle, error) {
	article, err := s.store.Theory.Get(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if article.OwnerID != ownerID {
		return nil, store.ErrNotFound
	}
	return article, nil
}

// List returns all of the coach's articles.
func (s *TheoryService) List(ctx context.Context, ownerID string) ([]domain.TheoryArticle, error) {
	return s.store.Theory.ListByIndex(ctx, "owner", ownerID)
}

// Delete removes an article after explicit confirmation.
func (s *TheoryService) Delete(ctx context.Context, ownerID, articleID string, confirm bool) error {
	if !confirm {
		return apperrors.Validation("deletion requires confirmation")
	}

	if _, err := s.Get(ctx, ownerID, articleID); err != nil {
		return err
	}

	if err := s.store.Theory.Delete(ctx, articleID); err != nil {
		return fmt.Errorf("delete article: %w", err)
	}

	s.logger.Info("theory article deleted",
		slog.String("article_id", articleID),
		slog.String("owner_id", ownerID))
	return nil
}
