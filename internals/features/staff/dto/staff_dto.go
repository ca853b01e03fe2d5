package dto

import (
	"strings"
	"time"

	"salonku_backend/internals/features/staff/model"

	"github.com/google/uuid"
)

type CreateStaffRequest struct {
	StaffName     string  `json:"staff_name" validate:"required,max=150"`
	StaffRole     string  `json:"staff_role" validate:"required,oneof=Barber Stylist"`
	StaffEmail    *string `json:"staff_email" validate:"omitempty,email,max=150"`
	StaffPhone    *string `json:"staff_phone" validate:"omitempty,max=30"`
	StaffCategory *string `json:"staff_category" validate:"omitempty,max=60"`
	StaffUserID   *string `json:"staff_user_id" validate:"omitempty,uuid"`
}

func (r *CreateStaffRequest) ToModel() *model.StaffModel {
	return &model.StaffModel{
		StaffName:     strings.TrimSpace(r.StaffName),
		StaffRole:     r.StaffRole,
		StaffEmail:    trimPtr(r.StaffEmail),
		StaffPhone:    trimPtr(r.StaffPhone),
		StaffCategory: trimPtr(r.StaffCategory),
		StaffUserID:   parseUUIDPtr(r.StaffUserID),
		StaffStatus:   model.StaffStatusOut,
	}
}

// UpdateStaffRequest never touches status or the clock timestamps.
type UpdateStaffRequest struct {
	StaffName     *string `json:"staff_name" validate:"omitempty,min=1,max=150"`
	StaffRole     *string `json:"staff_role" validate:"omitempty,oneof=Barber Stylist"`
	StaffEmail    *string `json:"staff_email" validate:"omitempty,email,max=150"`
	StaffPhone    *string `json:"staff_phone" validate:"omitempty,max=30"`
	StaffCategory *string `json:"staff_category" validate:"omitempty,max=60"`
	StaffUserID   *string `json:"staff_user_id" validate:"omitempty,uuid"`
}

func (r *UpdateStaffRequest) Updates() map[string]any {
	up := map[string]any{}
	if r.StaffName != nil {
		up["staff_name"] = strings.TrimSpace(*r.StaffName)
	}
	if r.StaffRole != nil {
		up["staff_role"] = *r.StaffRole
	}
	if r.StaffEmail != nil {
		up["staff_email"] = trimPtr(r.StaffEmail)
	}
	if r.StaffPhone != nil {
		up["staff_phone"] = trimPtr(r.StaffPhone)
	}
	if r.StaffCategory != nil {
		up["staff_category"] = trimPtr(r.StaffCategory)
	}
	if r.StaffUserID != nil {
		up["staff_user_id"] = parseUUIDPtr(r.StaffUserID)
	}
	return up
}

type StaffResponse struct {
	StaffID           uuid.UUID  `json:"staff_id"`
	StaffUserID       *uuid.UUID `json:"staff_user_id,omitempty"`
	StaffName         string     `json:"staff_name"`
	StaffRole         string     `json:"staff_role"`
	StaffEmail        *string    `json:"staff_email,omitempty"`
	StaffPhone        *string    `json:"staff_phone,omitempty"`
	StaffCategory     *string    `json:"staff_category,omitempty"`
	StaffStatus       string     `json:"staff_status"`
	StaffLastClockIn  *time.Time `json:"staff_last_clock_in"`
	StaffLastClockOut *time.Time `json:"staff_last_clock_out"`
	CreatedAt         time.Time  `json:"created_at"`
}

func FromModel(m *model.StaffModel) StaffResponse {
	return StaffResponse{
		StaffID:           m.StaffID,
		StaffUserID:       m.StaffUserID,
		StaffName:         m.StaffName,
		StaffRole:         m.StaffRole,
		StaffEmail:        m.StaffEmail,
		StaffPhone:        m.StaffPhone,
		StaffCategory:     m.StaffCategory,
		StaffStatus:       m.StaffStatus,
		StaffLastClockIn:  m.StaffLastClockIn,
		StaffLastClockOut: m.StaffLastClockOut,
		CreatedAt:         m.CreatedAt,
	}
}

func FromModels(rows []model.StaffModel) []StaffResponse {
	out := make([]StaffResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromModel(&rows[i]))
	}
	return out
}

// StatusBoardItem is the public "who is in" view.
type StatusBoardItem struct {
	StaffID           uuid.UUID  `json:"staff_id"`
	StaffName         string     `json:"staff_name"`
	StaffRole         string     `json:"staff_role"`
	StaffStatus       string     `json:"staff_status"`
	StaffLastClockIn  *time.Time `json:"staff_last_clock_in"`
	StaffLastClockOut *time.Time `json:"staff_last_clock_out"`
}

func ToStatusBoard(rows []model.StaffModel) []StatusBoardItem {
	out := make([]StatusBoardItem, 0, len(rows))
	for _, m := range rows {
		out = append(out, StatusBoardItem{
			StaffID:           m.StaffID,
			StaffName:         m.StaffName,
			StaffRole:         m.StaffRole,
			StaffStatus:       m.StaffStatus,
			StaffLastClockIn:  m.StaffLastClockIn,
			StaffLastClockOut: m.StaffLastClockOut,
		})
	}
	return out
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func parseUUIDPtr(s *string) *uuid.UUID {
	if s == nil {
		return nil
	}
	id, err := uuid.Parse(strings.TrimSpace(*s))
	if err != nil {
		return nil
	}
	return &id
}
