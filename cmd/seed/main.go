// Package main provides a tool to seed the database with demo club data.
//
// It creates a coach account plus a roster of players, an exercise catalog,
// a training program, and a theory article, so the client has something to
// sync against during development.
//
// Usage:
//
//	DATA_PATH=~/LaTateni/data go run ./cmd/seed
//	DATA_PATH=~/LaTateni/data go run ./cmd/seed --email demo@club.dk --password hemmelig
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/latateni/latateni-server/internal/auth"
	"github.com/latateni/latateni-server/internal/domain"
	"github.com/latateni/latateni-server/internal/id"
	"github.com/latateni/latateni-server/internal/store"
)

var (
	email    = flag.String("email", "demo@club.dk", "Email of the demo coach")
	password = flag.String("password", "hemmelig", "Password of the demo coach")
)

func main() {
	flag.Parse()

	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		dataPath = os.ExpandEnv("$HOME/LaTateni/data")
	}
	dbPath := filepath.Join(dataPath, "db")

	fmt.Printf("Opening database at: %s\n", dbPath)

	s, err := store.New(dbPath, nil)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()

	coach, err := ensureCoach(ctx, s, *email, *password)
	if err != nil {
		log.Fatalf("Failed to create demo coach: %v", err)
	}
	fmt.Printf("Coach: %s (%s)\n", coach.Email, coach.ID)

	exercises := seedExercises(ctx, s, coach.ID)
	seedPlayers(ctx, s, coach.ID)
	seedProgram(ctx, s, coach.ID, exercises)
	seedTheory(ctx, s, coach.ID)

	fmt.Println("\nDone. Log in with the demo coach to see the seeded data.")
}

func ensureCoach(ctx context.Context, s *store.Store, email, password string) (*domain.Coach, error) {
	if existing, err := s.Coaches.GetByIndex(ctx, "email", email); err == nil {
		fmt.Println("Demo coach already exists, reusing it")
		return existing, nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	coach := &domain.Coach{
		ID:           id.MustGenerate("coach"),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	if err := s.Coaches.Create(ctx, coach.ID, coach); err != nil {
		return nil, err
	}
	return coach, nil
}

func seedExercises(ctx context.Context, s *store.Store, ownerID string) []domain.Exercise {
	templates := []domain.Exercise{
		{Name: "Skyggetræning", Duration: "10 min", Description: "Uden bold: forhånd/baghånd skift", Benefits: "Fodarbejde og slagteknik"},
		{Name: "Falkenberg", Duration: "15 min", Description: "Baghånd, midt-forhånd, vide-forhånd rotation", Benefits: "Omstilling og benarbejde"},
		{Name: "Servetræning", Duration: "10 min", Description: "Korte underspinsserver til baghånden", Benefits: "Servesikkerhed"},
		{Name: "Tredje bold", Duration: "15 min", Description: "Serv, modtag, angrib den tredje bold", Benefits: "Åbningsspil"},
	}

	var out []domain.Exercise
	for _, tmpl := range templates {
		exercise := tmpl
		exercise.ID = id.MustGenerate("exr")
		exercise.OwnerID = ownerID
		exercise.CreatedAt = time.Now().UnixMilli()
		if err := s.Exercises.Create(ctx, exercise.ID, &exercise); err != nil {
			log.Printf("skip exercise %q: %v", exercise.Name, err)
			continue
		}
		fmt.Printf("  Exercise: %s\n", exercise.Name)
		out = append(out, exercise)
	}
	return out
}

func seedPlayers(ctx context.Context, s *store.Store, ownerID string) {
	templates := []domain.Player{
		{Name: "Mikkel Jensen", Age: "14", Level: "Øvet", Hand: "Højre", Style: "Offensiv", Tags: []string{"offensiv", "spin"}},
		{Name: "Sofie Nielsen", Age: "16", Level: "Turnering", Hand: "Venstre", Style: "Defensiv", Tags: []string{"defensiv", "blok"}},
		{Name: "Emil Sørensen", Age: "12", Level: "Begynder", Hand: "Højre", Style: "Allround", Tags: []string{"allround"}},
	}

	for _, tmpl := range templates {
		player := tmpl
		player.ID = id.MustGenerate("ply")
		player.OwnerID = ownerID
		player.CreatedAt = time.Now().UnixMilli()
		if err := s.Players.Create(ctx, player.ID, &player); err != nil {
			log.Printf("skip player %q: %v", player.Name, err)
			continue
		}
		fmt.Printf("  Player: %s\n", player.Name)
	}
}

func seedProgram(ctx context.Context, s *store.Store, ownerID string, exercises []domain.Exercise) {
	if len(exercises) == 0 {
		return
	}

	program := &domain.TrainingProgram{
		ID:            id.MustGenerate("prg"),
		Name:          "Mandagstræning",
		TotalDuration: "90 min",
		Description:   "Standard mandagspas for øvede",
		OwnerID:       ownerID,
		CreatedAt:     time.Now().UnixMilli(),
	}
	for _, exercise := range exercises {
		program.Exercises = append(program.Exercises, domain.ProgramExercise{
			ExerciseID:   exercise.ID,
			ExerciseName: exercise.Name,
			Duration:     exercise.Duration,
		})
	}

	if err := s.Programs.Create(ctx, program.ID, program); err != nil {
		log.Printf("skip program: %v", err)
		return
	}
	fmt.Printf("  Program: %s (%d exercises)\n", program.Name, len(program.Exercises))
}

func seedTheory(ctx context.Context, s *store.Store, ownerID string) {
	article := &domain.TheoryArticle{
		ID:        id.MustGenerate("thr"),
		Title:     "Grebets grundprincipper",
		Body:      "Shakehand-grebet er udgangspunktet for de fleste europæiske spillere...",
		Tags:      []string{"teknik", "greb"},
		OwnerID:   ownerID,
		CreatedAt: time.Now().UnixMilli(),
	}

	if err := s.Theory.Create(ctx, article.ID, article); err != nil {
		log.Printf("skip theory article: %v", err)
		return
	}
	fmt.Printf("  Theory: %s\n", article.Title)
}
