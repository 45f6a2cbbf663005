package main

import (
	"log"

	"github.com/linkdeck/linkdeck/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ linkdeck failed to start: %v", err)
	}
}
