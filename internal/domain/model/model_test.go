package model

import "testing"

func TestOrderStatusValues(t *testing.T) {
	cases := []struct {
		name  string
		got   OrderStatus
		value string
	}{
		{"pending", OrderStatusPending, "pending"},
		{"approved", OrderStatusApproved, "approved"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if string(tc.got) != tc.value {
				t.Fatalf("expected %s, got %s", tc.value, tc.got)
			}
			if !tc.got.Valid() {
				t.Fatalf("expected %s to be valid", tc.got)
			}
		})
	}

	if OrderStatus("rejected").Valid() {
		t.Fatal("rejected is not a supported status")
	}
}

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to OrderStatus
		allowed  bool
	}{
		{OrderStatusPending, OrderStatusApproved, true},
		{OrderStatusPending, OrderStatusPending, true},
		{OrderStatusApproved, OrderStatusApproved, true},
		{OrderStatusApproved, OrderStatusPending, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.allowed {
			t.Fatalf("%s -> %s: expected %v, got %v", tc.from, tc.to, tc.allowed, got)
		}
	}

	if OrderStatusPending.Terminal() {
		t.Fatal("pending must not be terminal")
	}
	if !OrderStatusApproved.Terminal() {
		t.Fatal("approved must be terminal")
	}
}

func TestNewPendingOrder(t *testing.T) {
	in := OrderInput{
		ServiceType:      "views",
		PackageID:        "views_basic",
		Quantity:         100000,
		Price:            99,
		TargetURL:        "https://instagram.com/reel/xyz",
		PaymentReference: "123456789012",
	}
	order := NewPendingOrder("DIB-AB12CD", in)
	if order.ID != "DIB-AB12CD" || order.Status != OrderStatusPending {
		t.Fatalf("unexpected order: %+v", order)
	}
	if order.Quantity != in.Quantity || order.PaymentReference != in.PaymentReference {
		t.Fatalf("input fields not copied: %+v", order)
	}
	if !order.CreatedAt.IsZero() {
		t.Fatal("created_at is assigned by the store")
	}
}

func TestServerStatusValues(t *testing.T) {
	if !ServerStatusOpen.Valid() || !ServerStatusClosed.Valid() {
		t.Fatal("expected open and closed to be valid")
	}
	if ServerStatus("maintenance").Valid() {
		t.Fatal("unexpected valid status")
	}
	if DefaultServerStatus != ServerStatusOpen {
		t.Fatalf("expected default open, got %s", DefaultServerStatus)
	}
}
