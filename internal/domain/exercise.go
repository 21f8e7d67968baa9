package domain

import "strings"

// Exercise is a drill in a coach's exercise bank.
type Exercise struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Duration    string `json:"duration,omitempty"` // Free text, e.g. "10 min"
	Description string `json:"description,omitempty"`
	Benefits    string `json:"benefits,omitempty"`
	Image       *Image `json:"image"`
	OwnerID     string `json:"owner_id"`
	CreatedAt   int64  `json:"created_at"`
}

// SearchText returns the projection used for substring filtering:
// name, description, and duration, lowercased.
func (e *Exercise) SearchText() string {
	return strings.ToLower(e.Name + " " + e.Description + " " + e.Duration)
}
