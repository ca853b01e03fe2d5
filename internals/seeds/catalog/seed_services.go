package catalog

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"salonku_backend/internals/features/catalog/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ServiceSeed struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type CategorySeed struct {
	Category string        `json:"category"`
	Services []ServiceSeed `json:"services"`
}

// SeedServicesFromJSON loads the price list grouped by category. Existing
// (category, name) pairs are left alone so admin price edits survive a reseed.
func SeedServicesFromJSON(db *gorm.DB, filePath string) (int, error) {
	log.Println("📥 Reading", filePath)
	file, err := os.ReadFile(filePath)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", filePath, err)
	}
	var seeds []CategorySeed
	if err := json.Unmarshal(file, &seeds); err != nil {
		return 0, fmt.Errorf("decode %s: %w", filePath, err)
	}

	created := 0
	for _, cat := range seeds {
		category := strings.TrimSpace(cat.Category)
		if category == "" {
			log.Printf("⚠️ category without a name skipped (%d services)", len(cat.Services))
			continue
		}
		for _, s := range cat.Services {
			name := strings.TrimSpace(s.Name)
			if name == "" || s.Price < 0 {
				log.Printf("⚠️ service %q in %q is invalid, skipped", s.Name, category)
				continue
			}
			m := model.ServiceCatalogModel{
				ServiceCatalogCategory: category,
				ServiceCatalogName:     name,
				ServiceCatalogPrice:    s.Price,
				ServiceCatalogIsActive: true,
			}
			res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&m)
			if res.Error != nil {
				return created, fmt.Errorf("insert service %q / %q: %w", category, name, res.Error)
			}
			created += int(res.RowsAffected)
		}
		log.Printf("✅ services %q", category)
	}
	return created, nil
}
