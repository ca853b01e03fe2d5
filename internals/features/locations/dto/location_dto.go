package dto

import (
	"strings"
	"time"

	"salonku_backend/internals/features/locations/model"

	"github.com/google/uuid"
)

type CreateLocationRequest struct {
	LocationName        string   `json:"location_name" validate:"required,max=150"`
	LocationAddress     *string  `json:"location_address" validate:"omitempty,max=500"`
	LocationLatitude    *float64 `json:"location_latitude" validate:"required,gte=-90,lte=90"`
	LocationLongitude   *float64 `json:"location_longitude" validate:"required,gte=-180,lte=180"`
	LocationMaxDistance *float64 `json:"location_max_distance" validate:"required,gt=0,lte=100000"`
	LocationIsActive    *bool    `json:"location_is_active"`
}

func (r *CreateLocationRequest) ToModel() *model.LocationModel {
	m := &model.LocationModel{
		LocationName:        strings.TrimSpace(r.LocationName),
		LocationAddress:     trimPtr(r.LocationAddress),
		LocationLatitude:    *r.LocationLatitude,
		LocationLongitude:   *r.LocationLongitude,
		LocationMaxDistance: *r.LocationMaxDistance,
		LocationIsActive:    true,
	}
	if r.LocationIsActive != nil {
		m.LocationIsActive = *r.LocationIsActive
	}
	return m
}

// UpdateLocationRequest is a partial update; nil fields are left alone.
type UpdateLocationRequest struct {
	LocationName        *string  `json:"location_name" validate:"omitempty,min=1,max=150"`
	LocationAddress     *string  `json:"location_address" validate:"omitempty,max=500"`
	LocationLatitude    *float64 `json:"location_latitude" validate:"omitempty,gte=-90,lte=90"`
	LocationLongitude   *float64 `json:"location_longitude" validate:"omitempty,gte=-180,lte=180"`
	LocationMaxDistance *float64 `json:"location_max_distance" validate:"omitempty,gt=0,lte=100000"`
	LocationIsActive    *bool    `json:"location_is_active"`
}

func (r *UpdateLocationRequest) Updates() map[string]any {
	up := map[string]any{}
	if r.LocationName != nil {
		up["location_name"] = strings.TrimSpace(*r.LocationName)
	}
	if r.LocationAddress != nil {
		up["location_address"] = trimPtr(r.LocationAddress)
	}
	if r.LocationLatitude != nil {
		up["location_latitude"] = *r.LocationLatitude
	}
	if r.LocationLongitude != nil {
		up["location_longitude"] = *r.LocationLongitude
	}
	if r.LocationMaxDistance != nil {
		up["location_max_distance"] = *r.LocationMaxDistance
	}
	if r.LocationIsActive != nil {
		up["location_is_active"] = *r.LocationIsActive
	}
	return up
}

type LocationResponse struct {
	LocationID          uuid.UUID `json:"location_id"`
	LocationName        string    `json:"location_name"`
	LocationAddress     *string   `json:"location_address,omitempty"`
	LocationLatitude    float64   `json:"location_latitude"`
	LocationLongitude   float64   `json:"location_longitude"`
	LocationMaxDistance float64   `json:"location_max_distance"`
	LocationIsActive    bool      `json:"location_is_active"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

func FromModel(m *model.LocationModel) LocationResponse {
	return LocationResponse{
		LocationID:          m.LocationID,
		LocationName:        m.LocationName,
		LocationAddress:     m.LocationAddress,
		LocationLatitude:    m.LocationLatitude,
		LocationLongitude:   m.LocationLongitude,
		LocationMaxDistance: m.LocationMaxDistance,
		LocationIsActive:    m.LocationIsActive,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

func FromModels(rows []model.LocationModel) []LocationResponse {
	out := make([]LocationResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromModel(&rows[i]))
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
