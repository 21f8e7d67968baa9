package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitCommaList(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", []string{}},
		{"whitespace only", "   ", []string{}},
		{"single", "U12", []string{"U12"}},
		{"multiple", "U12, elite", []string{"U12", "elite"}},
		{"untrimmed", "  U12 ,elite  , ", []string{"U12", "elite"}},
		{"empty segments", ",,U12,,", []string{"U12"}},
		{"duplicates kept", "elite, elite", []string{"elite", "elite"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitCommaList(tt.input))
		})
	}
}

func TestPlayerSearchText(t *testing.T) {
	p := &Player{
		Name:  "Mia",
		Tags:  []string{"U12", "Elite"},
		Style: "Offensiv",
		Level: "Øvet",
		Hand:  "Venstre",
	}

	text := p.SearchText()
	assert.Contains(t, text, "mia")
	assert.Contains(t, text, "u12")
	assert.Contains(t, text, "elite")
	assert.Contains(t, text, "offensiv")
	assert.Contains(t, text, "øvet")
	assert.Contains(t, text, "venstre")
	// Notes are deliberately not part of the projection.
	p.Notes = "hemmelig"
	assert.NotContains(t, p.SearchText(), "hemmelig")
}

func TestExerciseSearchText(t *testing.T) {
	e := &Exercise{Name: "Skygge", Description: "Benarbejde ved bordet", Duration: "10 min"}
	text := e.SearchText()
	assert.Contains(t, text, "skygge")
	assert.Contains(t, text, "benarbejde")
	assert.Contains(t, text, "10 min")
}

func TestTheoryHasTag(t *testing.T) {
	th := &TheoryArticle{Tags: []string{"Teknik", "Angreb"}}
	assert.True(t, th.HasTag("Teknik"))
	assert.False(t, th.HasTag("teknik")) // exact match, not case-folded
	assert.False(t, th.HasTag("Forsvar"))
}
