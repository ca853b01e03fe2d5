package locations

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"salonku_backend/internals/features/locations/model"

	"gorm.io/gorm"
)

type LocationSeed struct {
	LocationName        string  `json:"location_name"`
	LocationAddress     string  `json:"location_address"`
	LocationLatitude    float64 `json:"location_latitude"`
	LocationLongitude   float64 `json:"location_longitude"`
	LocationMaxDistance float64 `json:"location_max_distance"`
	LocationIsActive    bool    `json:"location_is_active"`
}

// SeedLocationsFromJSON inserts locations whose name is not taken yet and
// returns how many were created.
func SeedLocationsFromJSON(db *gorm.DB, filePath string) (int, error) {
	log.Println("📥 Reading", filePath)
	file, err := os.ReadFile(filePath)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", filePath, err)
	}
	var seeds []LocationSeed
	if err := json.Unmarshal(file, &seeds); err != nil {
		return 0, fmt.Errorf("decode %s: %w", filePath, err)
	}

	created := 0
	for _, s := range seeds {
		if s.LocationMaxDistance <= 0 {
			log.Printf("⚠️ location %q has no radius, skipped", s.LocationName)
			continue
		}
		var n int64
		if err := db.Model(&model.LocationModel{}).Where("location_name = ?", s.LocationName).Count(&n).Error; err != nil {
			return created, err
		}
		if n > 0 {
			log.Printf("ℹ️ location %q exists, skipped", s.LocationName)
			continue
		}

		m := model.LocationModel{
			LocationName:        s.LocationName,
			LocationLatitude:    s.LocationLatitude,
			LocationLongitude:   s.LocationLongitude,
			LocationMaxDistance: s.LocationMaxDistance,
			LocationIsActive:    s.LocationIsActive,
		}
		if s.LocationAddress != "" {
			addr := s.LocationAddress
			m.LocationAddress = &addr
		}
		if err := db.Create(&m).Error; err != nil {
			return created, fmt.Errorf("insert location %q: %w", s.LocationName, err)
		}
		log.Printf("✅ location %q (%.0fm)", m.LocationName, m.LocationMaxDistance)
		created++
	}
	return created, nil
}
