package domain

import "strings"

// Player is a club player profile owned by a coach.
//
// Free-text fields (age, height, rating, spin) are kept as strings: they come
// straight from form input and are displayed verbatim, never computed on.
type Player struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Age        string   `json:"age,omitempty"`
	Height     string   `json:"height,omitempty"`
	Level      string   `json:"level,omitempty"`
	Rating     string   `json:"rating,omitempty"`
	Hand       string   `json:"hand,omitempty"`
	Grip       string   `json:"grip,omitempty"`
	Style      string   `json:"style,omitempty"`
	Spin       string   `json:"spin,omitempty"`
	Motivation string   `json:"motivation,omitempty"`
	Notes      string   `json:"notes,omitempty"`
	Tags       []string `json:"tags"`
	Image      *Image   `json:"image"`
	OwnerID    string   `json:"owner_id"`
	CreatedAt  int64    `json:"created_at"` // Unix milliseconds, assigned once at creation
}

// SearchText returns the denormalized projection used for substring filtering:
// name, tags, style, level, and hand, lowercased.
func (p *Player) SearchText() string {
	parts := []string{p.Name, strings.Join(p.Tags, " "), p.Style, p.Level, p.Hand}
	return strings.ToLower(strings.Join(parts, " "))
}

// Image is an inline image attachment embedded in a record.
// Data is a base64 data URI; Placeholder is a BlurHash string for
// low-resolution previews before the full image is decoded.
type Image struct {
	Data        string `json:"data"`
	Placeholder string `json:"placeholder,omitempty"`
}
