package main

import (
	"log"

	"github.com/MrSnakeDoc/archivetag/internal/app"
)

func main() {
	a, err := app.New()
	if err != nil {
		log.Fatalf("❌ archivetag failed to start: %v", err)
	}
	if err := a.Run(); err != nil {
		log.Fatalf("❌ archivetag stopped with error: %v", err)
	}
}
