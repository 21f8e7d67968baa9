package domain

import "strings"

// ProgramExercise is a denormalized snapshot of an exercise embedded in a
// training program at creation time. It is a copy, not a live reference:
// renaming or deleting the source exercise never touches embedded entries.
type ProgramExercise struct {
	ExerciseID   string `json:"exercise_id"`
	ExerciseName string `json:"exercise_name"`
	Duration     string `json:"duration"`
	Notes        string `json:"notes,omitempty"`
}

// TrainingProgram is an ordered plan of exercises owned by a coach.
// AI-generated programs carry the full generated text in Description and
// an empty exercise list.
type TrainingProgram struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	TotalDuration string            `json:"total_duration,omitempty"`
	Description   string            `json:"description,omitempty"`
	Exercises     []ProgramExercise `json:"exercises"`
	OwnerID       string            `json:"owner_id"`
	CreatedAt     int64             `json:"created_at"`
	IsAI          bool              `json:"is_ai"`
}

// SearchText returns the projection used for substring filtering:
// name and description, lowercased.
func (p *TrainingProgram) SearchText() string {
	return strings.ToLower(p.Name + " " + p.Description)
}
