package dto

import (
	"time"

	"github.com/polkiloo/reelorders/internal/domain/model"
)

// OrderRequest describes order submission payload.
// ReelURL and UTRNumber are accepted for older clients.
type OrderRequest struct {
	ID               string `json:"id"`
	ServiceType      string `json:"service_type"`
	PackageID        string `json:"package_id"`
	Quantity         int    `json:"quantity"`
	Price            int    `json:"price"`
	TargetURL        string `json:"target_url"`
	PaymentReference string `json:"payment_reference"`
	ReelURL          string `json:"reel_url,omitempty"`
	UTRNumber        string `json:"utr_number,omitempty"`
}

// Input converts the payload, preferring current field names over legacy ones.
func (r OrderRequest) Input() model.OrderInput {
	target := r.TargetURL
	if target == "" {
		target = r.ReelURL
	}
	reference := r.PaymentReference
	if reference == "" {
		reference = r.UTRNumber
	}
	return model.OrderInput{
		ID:               r.ID,
		ServiceType:      r.ServiceType,
		PackageID:        r.PackageID,
		Quantity:         r.Quantity,
		Price:            r.Price,
		TargetURL:        target,
		PaymentReference: reference,
	}
}

// SubmitResponse acknowledges a created order.
type SubmitResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
}

// OrderResponse represents an order in API responses.
type OrderResponse struct {
	ID               string    `json:"id"`
	ServiceType      string    `json:"service_type"`
	PackageID        string    `json:"package_id"`
	Quantity         int       `json:"quantity"`
	Price            int       `json:"price"`
	TargetURL        string    `json:"target_url"`
	PaymentReference string    `json:"payment_reference"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`

	// Legacy clients read these names.
	ReelURL   string `json:"reel_url"`
	UTRNumber string `json:"utr_number"`
}

// NewOrderResponse maps a domain order.
func NewOrderResponse(o model.Order) OrderResponse {
	return OrderResponse{
		ID:               o.ID,
		ServiceType:      o.ServiceType,
		PackageID:        o.PackageID,
		Quantity:         o.Quantity,
		Price:            o.Price,
		TargetURL:        o.TargetURL,
		PaymentReference: o.PaymentReference,
		Status:           string(o.Status),
		CreatedAt:        o.CreatedAt,
		ReelURL:          o.TargetURL,
		UTRNumber:        o.PaymentReference,
	}
}

// NewOrderList maps orders preserving order; never nil.
func NewOrderList(orders []model.Order) []OrderResponse {
	result := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		result = append(result, NewOrderResponse(o))
	}
	return result
}

// BatchRequest lists order ids the client remembers.
type BatchRequest struct {
	IDs []string `json:"ids"`
}
