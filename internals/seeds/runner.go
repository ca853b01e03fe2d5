package seeds

import (
	"log"

	"salonku_backend/internals/seeds/catalog"
	"salonku_backend/internals/seeds/locations"
	"salonku_backend/internals/seeds/staff"

	"gorm.io/gorm"
)

// RunAllSeeds loads the bundled JSON fixtures. Paths are relative to the repo root.
func RunAllSeeds(db *gorm.DB) {
	//* Locations
	if _, err := locations.SeedLocationsFromJSON(db, "internals/seeds/locations/data_locations.json"); err != nil {
		log.Printf("❌ seed locations: %v", err)
	}

	//* Staff
	if _, err := staff.SeedStaffFromJSON(db, "internals/seeds/staff/data_staff.json"); err != nil {
		log.Printf("❌ seed staff: %v", err)
	}

	//* Service catalog
	if _, err := catalog.SeedServicesFromJSON(db, "internals/seeds/catalog/data_services.json"); err != nil {
		log.Printf("❌ seed services: %v", err)
	}
}
