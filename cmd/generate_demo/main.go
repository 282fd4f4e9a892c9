// Command generate_demo creates a demo database filled with well-known palindromes
// and a few ordinary sentences, for serving with READ_ONLY=true.
// Usage: go run cmd/generate_demo/main.go [-db path/to/demo.db]
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/mrlokans/palindromes/internal/database"
	"github.com/mrlokans/palindromes/internal/database/detections"
	"github.com/mrlokans/palindromes/internal/palindrome"
)

const defaultDemoDatabasePath = "./demo/demo.db"

type sample struct {
	Text     string
	Language palindrome.Language
}

func main() {
	dbPath := flag.String("db", defaultDemoDatabasePath, "path to the demo database file")
	flag.Parse()

	log.Printf("Generating demo database at %s...", *dbPath)

	// Delete existing demo database to start fresh
	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing demo database: %v", err)
	}

	db, err := database.NewDatabase(database.DefaultConfig(*dbPath))
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	// Spread the samples over the last days so date filters have something to show
	samples := getSamples()
	start := time.Now().UTC().Add(-time.Duration(len(samples)) * 6 * time.Hour)
	step := 0
	repo := detections.NewRepository(db.DB).WithClock(func() time.Time {
		step++
		return start.Add(time.Duration(step) * 6 * time.Hour)
	})

	checker := palindrome.NewChecker()
	ctx := context.Background()
	palindromes := 0
	for _, s := range samples {
		isPalindrome := checker.Check(s.Text, s.Language)
		if _, err := repo.Insert(ctx, s.Text, s.Language, isPalindrome); err != nil {
			log.Fatalf("Failed to save %q: %v", s.Text, err)
		}
		if isPalindrome {
			palindromes++
		}
	}

	log.Printf("Demo database created with %d detections (%d palindromes)", len(samples), palindromes)
}

func getSamples() []sample {
	return []sample{
		{"Able was I ere I saw Elba", palindrome.English},
		{"A man, a plan, a canal: Panama", palindrome.English},
		{"Was it a car or a cat I saw?", palindrome.English},
		{"Never odd or even", palindrome.English},
		{"Madam, in Eden, I'm Adam", palindrome.English},
		{"Step on no pets", palindrome.English},
		{"This is not a palindrome", palindrome.English},
		{"The quick brown fox jumps over the lazy dog", palindrome.English},
		{"Dábale arroz a la zorra el abad", palindrome.Spanish},
		{"Anita lava la tina", palindrome.Spanish},
		{"La ruta natural", palindrome.Spanish},
		{"Amó la paloma", palindrome.Spanish},
		{"Somos o no somos", palindrome.Spanish},
		{"Ñoño", palindrome.Spanish},
		{"El perro de San Roque no tiene rabo", palindrome.Spanish},
		{"Ojo", palindrome.Spanish},
	}
}
