package dto

import (
	"strings"
	"time"

	"salonku_backend/internals/features/catalog/model"

	"github.com/google/uuid"
)

type CreateServiceRequest struct {
	Category string   `json:"category" validate:"required,max=100"`
	Name     string   `json:"name" validate:"required,max=150"`
	Price    *float64 `json:"price" validate:"required,gte=0"`
	IsActive *bool    `json:"is_active"`
}

func (r *CreateServiceRequest) ToModel() *model.ServiceCatalogModel {
	m := &model.ServiceCatalogModel{
		ServiceCatalogCategory: strings.TrimSpace(r.Category),
		ServiceCatalogName:     strings.TrimSpace(r.Name),
		ServiceCatalogPrice:    *r.Price,
		ServiceCatalogIsActive: true,
	}
	if r.IsActive != nil {
		m.ServiceCatalogIsActive = *r.IsActive
	}
	return m
}

type UpdateServiceRequest struct {
	Category *string  `json:"category" validate:"omitempty,min=1,max=100"`
	Name     *string  `json:"name" validate:"omitempty,min=1,max=150"`
	Price    *float64 `json:"price" validate:"omitempty,gte=0"`
	IsActive *bool    `json:"is_active"`
}

func (r *UpdateServiceRequest) Updates() map[string]any {
	up := map[string]any{}
	if r.Category != nil {
		up["service_catalog_category"] = strings.TrimSpace(*r.Category)
	}
	if r.Name != nil {
		up["service_catalog_name"] = strings.TrimSpace(*r.Name)
	}
	if r.Price != nil {
		up["service_catalog_price"] = *r.Price
	}
	if r.IsActive != nil {
		up["service_catalog_is_active"] = *r.IsActive
	}
	return up
}

type ServiceResponse struct {
	ServiceID uuid.UUID `json:"service_id"`
	Category  string    `json:"category"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	IsActive  bool      `json:"is_active"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromModel(m *model.ServiceCatalogModel) ServiceResponse {
	return ServiceResponse{
		ServiceID: m.ServiceCatalogID,
		Category:  m.ServiceCatalogCategory,
		Name:      m.ServiceCatalogName,
		Price:     m.ServiceCatalogPrice,
		IsActive:  m.ServiceCatalogIsActive,
		UpdatedAt: m.UpdatedAt,
	}
}

func FromModels(rows []model.ServiceCatalogModel) []ServiceResponse {
	out := make([]ServiceResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromModel(&rows[i]))
	}
	return out
}

// CategoryGroup is the picker shape: one heading per category.
type CategoryGroup struct {
	Category string            `json:"category"`
	Services []ServiceResponse `json:"services"`
}

// GroupByCategory keeps the order rows arrive in; callers sort by category first.
func GroupByCategory(rows []model.ServiceCatalogModel) []CategoryGroup {
	out := []CategoryGroup{}
	idx := map[string]int{}
	for i := range rows {
		cat := rows[i].ServiceCatalogCategory
		j, ok := idx[cat]
		if !ok {
			j = len(out)
			idx[cat] = j
			out = append(out, CategoryGroup{Category: cat, Services: []ServiceResponse{}})
		}
		out[j].Services = append(out[j].Services, FromModel(&rows[i]))
	}
	return out
}
