package staff

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"salonku_backend/internals/features/staff/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StaffSeed struct {
	StaffName     string `json:"staff_name"`
	StaffRole     string `json:"staff_role"`
	StaffEmail    string `json:"staff_email"`
	StaffPhone    string `json:"staff_phone"`
	StaffCategory string `json:"staff_category"`
	StaffUserID   string `json:"staff_user_id"`
}

// SeedStaffFromJSON inserts staff whose name is not taken yet. Everyone
// starts clocked out.
func SeedStaffFromJSON(db *gorm.DB, filePath string) (int, error) {
	log.Println("📥 Reading", filePath)
	file, err := os.ReadFile(filePath)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", filePath, err)
	}
	var seeds []StaffSeed
	if err := json.Unmarshal(file, &seeds); err != nil {
		return 0, fmt.Errorf("decode %s: %w", filePath, err)
	}

	created := 0
	for _, s := range seeds {
		if s.StaffRole != model.StaffRoleBarber && s.StaffRole != model.StaffRoleStylist {
			log.Printf("⚠️ staff %q has unknown role %q, skipped", s.StaffName, s.StaffRole)
			continue
		}
		var n int64
		if err := db.Model(&model.StaffModel{}).Where("staff_name = ?", s.StaffName).Count(&n).Error; err != nil {
			return created, err
		}
		if n > 0 {
			log.Printf("ℹ️ staff %q exists, skipped", s.StaffName)
			continue
		}

		m := model.StaffModel{
			StaffName:     s.StaffName,
			StaffRole:     s.StaffRole,
			StaffStatus:   model.StaffStatusOut,
			StaffEmail:    optional(s.StaffEmail),
			StaffPhone:    optional(s.StaffPhone),
			StaffCategory: optional(s.StaffCategory),
		}
		if id, err := uuid.Parse(strings.TrimSpace(s.StaffUserID)); err == nil {
			m.StaffUserID = &id
		}
		if err := db.Create(&m).Error; err != nil {
			return created, fmt.Errorf("insert staff %q: %w", s.StaffName, err)
		}
		log.Printf("✅ staff %q (%s)", m.StaffName, m.StaffRole)
		created++
	}
	return created, nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
