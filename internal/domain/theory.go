package domain

import (
	"slices"
	"strings"
)

// TheoryArticle is a training-theory write-up owned by a coach.
type TheoryArticle struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Body      string   `json:"body,omitempty"`
	Links     []string `json:"links"`
	Tags      []string `json:"tags"`
	Images    []Image  `json:"images"`
	OwnerID   string   `json:"owner_id"`
	CreatedAt int64    `json:"created_at"`
}

// SearchText returns the projection used for substring filtering:
// title and body, lowercased. Tag matching is exact and handled separately.
func (t *TheoryArticle) SearchText() string {
	return strings.ToLower(t.Title + " " + t.Body)
}

// HasTag reports whether the article carries the exact tag.
func (t *TheoryArticle) HasTag(tag string) bool {
	return slices.Contains(t.Tags, tag)
}
