package dto

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	catalogModel "salonku_backend/internals/features/catalog/model"
	"salonku_backend/internals/features/records/model"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

func f64(v float64) *float64 { return &v }

func TestAmounts(t *testing.T) {
	lines := []ServiceLineRequest{{Name: "Haircut", Price: f64(3000)}, {Name: "Beard", Price: f64(1500)}}

	tests := []struct {
		name      string
		total     *float64
		discount  float64
		wantFinal float64
		wantErr   error
	}{
		{"sum of lines", nil, 0, 4500, nil},
		{"with discount", nil, 500, 4000, nil},
		{"full discount", f64(4500), 4500, 0, nil},
		{"discount too large", nil, 4501, 0, ErrNegativeFinal},
		{"total mismatch", f64(5000), 0, 0, ErrTotalMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := CreateServiceRecordRequest{Services: lines, Total: tt.total, Discount: tt.discount}
			_, _, final, err := r.Amounts()
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if err == nil && final != tt.wantFinal {
				t.Fatalf("final = %v, want %v", final, tt.wantFinal)
			}
		})
	}
}

func TestToModelDefaultsDateAndTime(t *testing.T) {
	now := time.Date(2024, 3, 11, 14, 5, 0, 0, time.UTC)
	r := CreateServiceRecordRequest{
		ClientName:    " Ada ",
		Services:      []ServiceLineRequest{{Name: "Braids", Price: f64(12000.5)}},
		PaymentMethod: model.PaymentCard,
	}
	staff := uuid.New()

	m, err := r.ToModel(staff, "Tunde", nil, now)
	if err != nil {
		t.Fatalf("to model: %v", err)
	}
	if m.ServiceRecordDate != "2024-03-11" || m.ServiceRecordTime != "14:05" {
		t.Fatalf("date/time = %s %s", m.ServiceRecordDate, m.ServiceRecordTime)
	}
	if m.ServiceRecordClientName != "Ada" || m.ServiceRecordStaffID != staff {
		t.Fatalf("unexpected model %+v", m)
	}

	var lines []model.ServiceLine
	if err := json.Unmarshal(m.ServiceRecordServices, &lines); err != nil {
		t.Fatalf("services json: %v", err)
	}
	if len(lines) != 1 || lines[0].Name != "Braids" {
		t.Fatalf("lines = %+v", lines)
	}
	if got := FromModel(m).Final; got != 12000.5 {
		t.Fatalf("final = %v", got)
	}
}

func TestFromModelFlagsUnreadableServices(t *testing.T) {
	m := &model.ServiceRecordModel{
		ServiceRecordID:       uuid.New(),
		ServiceRecordServices: datatypes.JSON(`{"name":"Braids"`),
		ServiceRecordTotal:    5000,
		ServiceRecordFinal:    5000,
	}
	resp := FromModel(m)
	if !resp.ServicesUnreadable {
		t.Fatal("corrupt services should be flagged")
	}
	if resp.Services == nil || len(resp.Services) != 0 {
		t.Fatalf("services = %#v, want empty slice", resp.Services)
	}
	if resp.Final != 5000 {
		t.Fatalf("final = %v", resp.Final)
	}

	m.ServiceRecordServices = datatypes.JSON(`[{"name":"Braids","price":5000}]`)
	if resp := FromModel(m); resp.ServicesUnreadable || len(resp.Services) != 1 {
		t.Fatalf("readable row = %+v", resp)
	}
}

func TestAmountsRejectsUnpricedLine(t *testing.T) {
	r := CreateServiceRecordRequest{Services: []ServiceLineRequest{{Name: "Washing", Price: f64(3000)}, {Name: "Styling of hair"}}}
	_, _, _, err := r.Amounts()
	var le *LineError
	if !errors.As(err, &le) || le.Index != 1 || !errors.Is(err, ErrUnpricedLine) {
		t.Fatalf("err = %v, want unpriced services[1]", err)
	}
}

func testCatalog() []catalogModel.ServiceCatalogModel {
	return []catalogModel.ServiceCatalogModel{
		{ServiceCatalogID: uuid.New(), ServiceCatalogCategory: "Coco Twist", ServiceCatalogName: "M/S", ServiceCatalogPrice: 14000, ServiceCatalogIsActive: true},
		{ServiceCatalogID: uuid.New(), ServiceCatalogCategory: "Passion Twist", ServiceCatalogName: "M/S", ServiceCatalogPrice: 13000, ServiceCatalogIsActive: true},
		{ServiceCatalogID: uuid.New(), ServiceCatalogCategory: "Additional Services", ServiceCatalogName: "Washing", ServiceCatalogPrice: 3000, ServiceCatalogIsActive: true},
		{ServiceCatalogID: uuid.New(), ServiceCatalogCategory: "Additional Services", ServiceCatalogName: "Water melon braids", ServiceCatalogPrice: 15000},
	}
}

func TestResolveLinesFillsFromCatalog(t *testing.T) {
	cat := testCatalog()
	byID := cat[1].ServiceCatalogID.String()
	r := CreateServiceRecordRequest{
		ClientName:    "Ada",
		PaymentMethod: model.PaymentCash,
		Services: []ServiceLineRequest{
			{Name: " washing "},
			{ServiceID: &byID},
			{Name: "m/s", Category: "coco twist", Price: f64(12000)},
		},
	}
	ids, names := r.CatalogKeys()
	if len(ids) != 1 || len(names) != 2 {
		t.Fatalf("keys = %v / %v", ids, names)
	}
	if err := r.ResolveLines(cat); err != nil {
		t.Fatalf("resolve: %v", err)
	}

	got := r.Services
	if got[0].Name != "Washing" || *got[0].Price != 3000 || got[0].Category != "Additional Services" {
		t.Fatalf("line 0 = %+v", got[0])
	}
	if got[1].Category != "Passion Twist" || *got[1].Price != 13000 {
		t.Fatalf("line 1 = %+v", got[1])
	}
	// explicit price wins over the list price
	if *got[2].Price != 12000 || *got[2].ServiceID != cat[0].ServiceCatalogID.String() {
		t.Fatalf("line 2 = %+v", got[2])
	}

	m, err := r.ToModel(uuid.New(), "Tunde", nil, time.Date(2024, 3, 11, 14, 5, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("to model: %v", err)
	}
	if m.ServiceRecordTotal != 28000 {
		t.Fatalf("total = %v, want 28000", m.ServiceRecordTotal)
	}
	lines := FromModel(m).Services
	if lines[1].ServiceID == nil || *lines[1].ServiceID != cat[1].ServiceCatalogID || lines[1].Category != "Passion Twist" {
		t.Fatalf("stored line = %+v", lines[1])
	}
}

func TestResolveLinesRejects(t *testing.T) {
	cat := testCatalog()
	missing := uuid.NewString()
	inactive := cat[3].ServiceCatalogID.String()

	tests := []struct {
		name string
		line ServiceLineRequest
		want error
	}{
		{"unknown name", ServiceLineRequest{Name: "Hot stone massage"}, ErrUnknownService},
		{"unknown id", ServiceLineRequest{ServiceID: &missing}, ErrUnknownService},
		{"inactive by id", ServiceLineRequest{ServiceID: &inactive}, ErrUnknownService},
		{"inactive by name", ServiceLineRequest{Name: "Water melon braids", Price: f64(100)}, ErrUnknownService},
		{"same name in two categories", ServiceLineRequest{Name: "M/S"}, ErrAmbiguousService},
		{"category does not match", ServiceLineRequest{Name: "Washing", Category: "Coco Twist"}, ErrUnknownService},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := CreateServiceRecordRequest{Services: []ServiceLineRequest{{Name: "Washing"}, tt.line}}
			err := r.ResolveLines(cat)
			var le *LineError
			if !errors.As(err, &le) || le.Index != 1 || !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v at services[1]", err, tt.want)
			}
		})
	}
}
