package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/polkiloo/reelorders/internal/domain/model"
)

func TestOrderRequestInputPrefersCurrentNames(t *testing.T) {
	req := OrderRequest{
		ID:               "DIB-1",
		TargetURL:        "https://instagram.com/reel/new",
		PaymentReference: "NEWREF1",
		ReelURL:          "https://instagram.com/reel/old",
		UTRNumber:        "OLDREF1",
	}
	in := req.Input()
	if in.TargetURL != req.TargetURL || in.PaymentReference != req.PaymentReference {
		t.Fatalf("unexpected input %+v", in)
	}
}

func TestOrderRequestInputFallsBackToLegacyNames(t *testing.T) {
	req := OrderRequest{
		ServiceType: "views",
		PackageID:   "views_basic",
		Quantity:    1000,
		Price:       10,
		ReelURL:     "https://instagram.com/reel/old",
		UTRNumber:   "OLDREF1",
	}
	in := req.Input()
	if in.TargetURL != req.ReelURL || in.PaymentReference != req.UTRNumber {
		t.Fatalf("unexpected input %+v", in)
	}
	if in.Quantity != 1000 || in.Price != 10 || in.ServiceType != "views" {
		t.Fatalf("unexpected input %+v", in)
	}
}

func TestNewOrderList(t *testing.T) {
	if list := NewOrderList(nil); list == nil || len(list) != 0 {
		t.Fatalf("expected empty non-nil list, got %v", list)
	}

	created := time.Unix(100, 0).UTC()
	list := NewOrderList([]model.Order{{ID: "B", Status: model.OrderStatusApproved, CreatedAt: created}, {ID: "A"}})
	if len(list) != 2 || list[0].ID != "B" || list[0].Status != "approved" || !list[0].CreatedAt.Equal(created) {
		t.Fatalf("unexpected list %+v", list)
	}
}

func TestOrderResponseCarriesLegacyNames(t *testing.T) {
	raw, err := json.Marshal(NewOrderResponse(model.Order{
		ID:               "DIB-AB12CD",
		TargetURL:        "https://instagram.com/reel/xyz",
		PaymentReference: "123456789012",
		Status:           model.OrderStatusPending,
	}))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for key, want := range map[string]string{
		"target_url":        "https://instagram.com/reel/xyz",
		"reel_url":          "https://instagram.com/reel/xyz",
		"payment_reference": "123456789012",
		"utr_number":        "123456789012",
	} {
		if body[key] != want {
			t.Fatalf("expected %s=%q, got %v", key, want, body[key])
		}
	}
}
