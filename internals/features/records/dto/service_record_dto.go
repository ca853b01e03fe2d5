package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	catalogModel "salonku_backend/internals/features/catalog/model"
	"salonku_backend/internals/features/records/model"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

var (
	ErrNegativeFinal    = errors.New("discount exceeds total")
	ErrTotalMismatch    = errors.New("total does not match the sum of services")
	ErrUnknownService   = errors.New("service is not in the active catalog")
	ErrAmbiguousService = errors.New("service name is listed under several categories, send service_id or category")
	ErrUnpricedLine     = errors.New("service line has no price")
)

// LineError ties a line failure to its position in services.
type LineError struct {
	Index int
	Err   error
}

func (e *LineError) Error() string { return fmt.Sprintf("services[%d]: %v", e.Index, e.Err) }

func (e *LineError) Unwrap() error { return e.Err }

// ServiceLineRequest picks a catalog entry by service_id, or by name with an
// optional category. Price defaults to the catalog price.
type ServiceLineRequest struct {
	ServiceID *string  `json:"service_id" validate:"omitempty,uuid"`
	Category  string   `json:"category" validate:"omitempty,max=100"`
	Name      string   `json:"name" validate:"required_without=ServiceID,max=150"`
	Price     *float64 `json:"price" validate:"omitempty,gte=0"`
}

// CreateServiceRecordRequest: staff_id is ignored for staff callers, who can
// only log their own work. Total defaults to the sum of the lines.
type CreateServiceRecordRequest struct {
	Date          string               `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Time          string               `json:"time" validate:"omitempty,datetime=15:04"`
	StaffID       *string              `json:"staff_id" validate:"omitempty,uuid"`
	ClientName    string               `json:"client_name" validate:"required,max=150"`
	ClientPhone   *string              `json:"client_phone" validate:"omitempty,max=30"`
	Services      []ServiceLineRequest `json:"services" validate:"required,min=1,dive"`
	Total         *float64             `json:"total" validate:"omitempty,gte=0"`
	Discount      float64              `json:"discount" validate:"gte=0"`
	PaymentMethod string               `json:"payment_method" validate:"required,oneof=Cash Card Transfer"`
}

// Amounts returns total, discount and final. A supplied total must equal the
// sum of the lines to the cent.
func (r *CreateServiceRecordRequest) Amounts() (total, discount, final float64, err error) {
	var sum float64
	for i, s := range r.Services {
		if s.Price == nil {
			return 0, 0, 0, &LineError{Index: i, Err: ErrUnpricedLine}
		}
		sum += *s.Price
	}
	total = round2(sum)
	if r.Total != nil && math.Abs(round2(*r.Total)-total) >= 0.005 {
		return 0, 0, 0, ErrTotalMismatch
	}
	discount = round2(r.Discount)
	final = round2(total - discount)
	if final < 0 {
		return 0, 0, 0, ErrNegativeFinal
	}
	return total, discount, final, nil
}

// ToModel fills date and time from now when omitted.
func (r *CreateServiceRecordRequest) ToModel(staffID uuid.UUID, staffName string, createdBy *uuid.UUID, now time.Time) (*model.ServiceRecordModel, error) {
	total, discount, final, err := r.Amounts()
	if err != nil {
		return nil, err
	}
	lines := make([]model.ServiceLine, 0, len(r.Services))
	for _, s := range r.Services {
		line := model.ServiceLine{
			Category: strings.TrimSpace(s.Category),
			Name:     strings.TrimSpace(s.Name),
			Price:    round2(*s.Price),
		}
		if s.ServiceID != nil {
			if id, err := uuid.Parse(*s.ServiceID); err == nil {
				line.ServiceID = &id
			}
		}
		lines = append(lines, line)
	}
	raw, err := json.Marshal(lines)
	if err != nil {
		return nil, err
	}

	day := strings.TrimSpace(r.Date)
	if day == "" {
		day = now.Format("2006-01-02")
	}
	clock := strings.TrimSpace(r.Time)
	if clock == "" {
		clock = now.Format("15:04")
	}
	var phone *string
	if r.ClientPhone != nil {
		if p := strings.TrimSpace(*r.ClientPhone); p != "" {
			phone = &p
		}
	}

	return &model.ServiceRecordModel{
		ServiceRecordDate:          day,
		ServiceRecordTime:          clock,
		ServiceRecordStaffID:       staffID,
		ServiceRecordStaffName:     staffName,
		ServiceRecordClientName:    strings.TrimSpace(r.ClientName),
		ServiceRecordClientPhone:   phone,
		ServiceRecordServices:      datatypes.JSON(raw),
		ServiceRecordTotal:         total,
		ServiceRecordDiscount:      discount,
		ServiceRecordFinal:         final,
		ServiceRecordPaymentMethod: r.PaymentMethod,
		ServiceRecordCreatedBy:     createdBy,
	}, nil
}

// CatalogKeys lists what the lines refer to, for a single catalog lookup.
func (r *CreateServiceRecordRequest) CatalogKeys() (ids []uuid.UUID, names []string) {
	for _, s := range r.Services {
		if s.ServiceID != nil {
			if id, err := uuid.Parse(*s.ServiceID); err == nil {
				ids = append(ids, id)
			}
			continue
		}
		names = append(names, strings.TrimSpace(s.Name))
	}
	return ids, names
}

// ResolveLines rewrites every line from the active catalog entries it refers
// to. Name, category and id come from the catalog; an explicit price is kept.
func (r *CreateServiceRecordRequest) ResolveLines(catalog []catalogModel.ServiceCatalogModel) error {
	for i := range r.Services {
		line := &r.Services[i]
		entry, err := matchCatalog(line, catalog)
		if err != nil {
			return &LineError{Index: i, Err: err}
		}
		id := entry.ServiceCatalogID.String()
		line.ServiceID = &id
		line.Category = entry.ServiceCatalogCategory
		line.Name = entry.ServiceCatalogName
		if line.Price == nil {
			price := entry.ServiceCatalogPrice
			line.Price = &price
		}
	}
	return nil
}

func matchCatalog(line *ServiceLineRequest, catalog []catalogModel.ServiceCatalogModel) (*catalogModel.ServiceCatalogModel, error) {
	if line.ServiceID != nil {
		id, err := uuid.Parse(*line.ServiceID)
		if err != nil {
			return nil, ErrUnknownService
		}
		for i := range catalog {
			if catalog[i].ServiceCatalogID == id && catalog[i].ServiceCatalogIsActive {
				return &catalog[i], nil
			}
		}
		return nil, ErrUnknownService
	}

	name := strings.TrimSpace(line.Name)
	category := strings.TrimSpace(line.Category)
	var found *catalogModel.ServiceCatalogModel
	for i := range catalog {
		e := &catalog[i]
		if !e.ServiceCatalogIsActive || !strings.EqualFold(e.ServiceCatalogName, name) {
			continue
		}
		if category != "" && !strings.EqualFold(e.ServiceCatalogCategory, category) {
			continue
		}
		if found != nil {
			return nil, ErrAmbiguousService
		}
		found = e
	}
	if found == nil {
		return nil, ErrUnknownService
	}
	return found, nil
}

type ServiceRecordResponse struct {
	ServiceRecordID uuid.UUID           `json:"service_record_id"`
	Date            string              `json:"date"`
	Time            string              `json:"time"`
	StaffID         uuid.UUID           `json:"staff_id"`
	StaffName       string              `json:"staff_name"`
	ClientName      string              `json:"client_name"`
	ClientPhone     *string             `json:"client_phone,omitempty"`
	Services        []model.ServiceLine `json:"services"`
	Total           float64             `json:"total"`
	Discount        float64             `json:"discount"`
	Final           float64             `json:"final"`
	PaymentMethod   string              `json:"payment_method"`
	CreatedAt       time.Time           `json:"created_at"`

	// set when the stored line items could not be decoded
	ServicesUnreadable bool `json:"services_unreadable,omitempty"`
}

func FromModel(m *model.ServiceRecordModel) ServiceRecordResponse {
	lines := []model.ServiceLine{}
	unreadable := false
	if len(m.ServiceRecordServices) > 0 {
		if err := json.Unmarshal(m.ServiceRecordServices, &lines); err != nil {
			log.Printf("[RECORDS] service_record=%s: unreadable services: %v", m.ServiceRecordID, err)
			lines = []model.ServiceLine{}
			unreadable = true
		}
	}
	return ServiceRecordResponse{
		ServiceRecordID:    m.ServiceRecordID,
		Date:               m.ServiceRecordDate,
		Time:               m.ServiceRecordTime,
		StaffID:            m.ServiceRecordStaffID,
		StaffName:          m.ServiceRecordStaffName,
		ClientName:         m.ServiceRecordClientName,
		ClientPhone:        m.ServiceRecordClientPhone,
		Services:           lines,
		ServicesUnreadable: unreadable,
		Total:              m.ServiceRecordTotal,
		Discount:           m.ServiceRecordDiscount,
		Final:              m.ServiceRecordFinal,
		PaymentMethod:      m.ServiceRecordPaymentMethod,
		CreatedAt:          m.CreatedAt,
	}
}

func FromModels(rows []model.ServiceRecordModel) []ServiceRecordResponse {
	out := make([]ServiceRecordResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromModel(&rows[i]))
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
