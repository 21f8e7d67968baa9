package ai

import (
	"fmt"
	"strings"

	"github.com/latateni/latateni-server/internal/domain"
)

// Prompt templates are in Danish, matching the language the coaches work in.

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

// exerciseCatalog renders the coach's exercises as a prompt-embeddable list.
func exerciseCatalog(exercises []domain.Exercise) string {
	if len(exercises) == 0 {
		return "(ingen øvelser registreret)"
	}
	lines := make([]string, 0, len(exercises))
	for _, ex := range exercises {
		lines = append(lines, fmt.Sprintf("- %s (%s): %s",
			ex.Name,
			orDefault(ex.Duration, "N/A"),
			orDefault(ex.Description, "Ingen beskrivelse")))
	}
	return strings.Join(lines, "\n")
}

// SuggestExercisesPrompt asks for the 3-5 most relevant exercises for a
// player, chosen from the coach's own catalog.
func SuggestExercisesPrompt(player *domain.Player, exercises []domain.Exercise) string {
	return fmt.Sprintf(`Du er en erfaren bordtennis træner. Analyser denne spiller og foreslå de 3-5 mest relevante øvelser.

SPILLERDATA:
- Navn: %s
- Niveau: %s
- Spillestil: %s
- Hånd: %s
- Motivation: %s
- Notes: %s
- Rating: %s

TILGÆNGELIGE ØVELSER:
%s

OPGAVE:
Vælg 3-5 øvelser der passer bedst til denne spillers niveau og behov.
For hver øvelse, forklar kort (1-2 linjer) hvorfor den er relevant.

Format dit svar som:
1. [Øvelsesnavn]: [Hvorfor den er relevant]
2. [Øvelsesnavn]: [Hvorfor den er relevant]
...`,
		player.Name,
		orDefault(player.Level, "Ukendt"),
		orDefault(player.Style, "Ukendt"),
		orDefault(player.Hand, "Ukendt"),
		orDefault(player.Motivation, "Ikke angivet"),
		orDefault(player.Notes, "Ingen notes"),
		orDefault(player.Rating, "Ingen rating"),
		exerciseCatalog(exercises))
}

// TrainingProgramPrompt asks for a complete program built from the coach's
// catalog, with warm-up, focus block, and cool-down.
func TrainingProgramPrompt(level, duration, focus string, exercises []domain.Exercise) string {
	return fmt.Sprintf(`Du er en bordtennis træner. Lav et komplet træningsprogram.

KRAV:
- Spillerniveau: %s
- Total varighed: %s
- Fokusområde: %s

TILGÆNGELIGE ØVELSER:
%s

OPGAVE:
Vælg relevante øvelser og organiser dem i et træningsprogram.
Inkluder:
1. Opvarmning
2. Hovedøvelser (fokuseret på %s)
3. Nedkøling

For hver øvelse, angiv:
- Navnet på øvelsen
- Varighed (tilpas så det samlet passer med %s)
- Kort note om hvad spilleren skal fokusere på

Format dit svar som en struktureret liste.`,
		level, duration, focus, exerciseCatalog(exercises), focus, duration)
}

// AnalyzePlayerPrompt asks for a structured strengths/improvements analysis.
func AnalyzePlayerPrompt(player *domain.Player) string {
	return fmt.Sprintf(`Du er en erfaren bordtennis træner. Analyser denne spiller og giv konstruktiv feedback.

SPILLERDATA:
- Navn: %s
- Niveau: %s
- Alder: %s år
- Rating: %s
- Spillestil: %s
- Hånd: %s
- Greb: %s
- Spin niveau: %s
- Motivation: %s
- Notes: %s

OPGAVE:
Giv en detaljeret analyse med:

1. **Styrker**: Hvad gør spilleren godt?
2. **Forbedringsområder**: Hvor kan spilleren blive bedre?
3. **Træningsanbefalinger**: Konkrete forslag til næste skridt
4. **Motiverende feedback**: Positiv opfordring

Vær konstruktiv, specifik og motiverende!`,
		player.Name,
		orDefault(player.Level, "Ukendt"),
		orDefault(player.Age, "Ukendt"),
		orDefault(player.Rating, "Ingen rating"),
		orDefault(player.Style, "Ukendt"),
		orDefault(player.Hand, "Ukendt"),
		orDefault(player.Grip, "Ukendt"),
		orDefault(player.Spin, "Ukendt"),
		orDefault(player.Motivation, "Ikke angivet"),
		orDefault(player.Notes, "Ingen notes"))
}

// TheoryArticlePrompt asks for a full plain-text article on a topic.
func TheoryArticlePrompt(topic string, tags []string) string {
	tagsStr := "Generel bordtennis"
	if len(tags) > 0 {
		tagsStr = strings.Join(tags, ", ")
	}

	return fmt.Sprintf(`Du er en erfaren bordtennis træner og instruktør. Skriv en grundig og informativ artikel om bordtennis.

EMNE: %s
TAGS: %s

OPGAVE:
Skriv en komplet artikel der inkluderer:

1. **Introduktion**: Præsenter emnet og dets betydning
2. **Teknik/Teori**: Forklar teknikken eller teorien grundigt
3. **Almindelige Fejl**: Hvad gør spillere ofte forkert?
4. **Træningstips**: Praktiske råd til at forbedre sig
5. **Konklusion**: Opsummering og opfordring

Artiklen skal være:
- Let at forstå for alle niveauer
- Praktisk anvendelig
- Motiverende
- Struktureret med overskrifter

Brug ikke markdown formatering (###), men brug linjeskift og tydeligt afsnit.`,
		topic, tagsStr)
}
