package storage

import (
	"encoding/json"
	"log"
	"os"

	"stuffhappens/models"

	"gorm.io/gorm"
)

// SeedCards loads the card catalog from a JSON file into an empty catalog
// table. An already seeded catalog is left untouched.
func SeedCards(db *gorm.DB, path string) {
	var count int64
	if err := db.Model(&models.Card{}).Count(&count).Error; err != nil {
		log.Fatalf("[Seed] failed to count cards: %v", err)
	}
	if count > 0 {
		log.Printf("[Seed] catalog already has %d cards, skipping", count)
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("[Seed] no catalog file at %s, starting with empty catalog", path)
		return
	}

	var cards []models.Card
	if err := json.Unmarshal(data, &cards); err != nil {
		log.Fatalf("[Seed] failed to unmarshal %s: %v", path, err)
	}

	if err := db.Create(&cards).Error; err != nil {
		log.Fatalf("[Seed] failed to insert cards: %v", err)
	}
	log.Printf("[Seed] loaded %d cards from %s", len(cards), path)
}
