package model

import "time"

// OrderStatus describes manual approval lifecycle.
type OrderStatus string

const (
	OrderStatusPending  OrderStatus = "pending"
	OrderStatusApproved OrderStatus = "approved"
)

// Valid reports whether status is one of the known values.
func (s OrderStatus) Valid() bool {
	return s == OrderStatusPending || s == OrderStatusApproved
}

// Terminal reports whether no further transition can happen.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusApproved
}

// CanTransitionTo allows pending -> approved and self transitions only.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s == next {
		return true
	}
	return s == OrderStatusPending && next == OrderStatusApproved
}

// Order is a purchase of a catalog package paid out-of-band.
// Quantity and Price are copies of catalog values at purchase time.
type Order struct {
	ID               string
	ServiceType      string
	PackageID        string
	Quantity         int
	Price            int
	TargetURL        string
	PaymentReference string
	Status           OrderStatus
	CreatedAt        time.Time
}

// OrderInput carries buyer supplied fields of a new order.
type OrderInput struct {
	ID               string
	ServiceType      string
	PackageID        string
	Quantity         int
	Price            int
	TargetURL        string
	PaymentReference string
}

// NewPendingOrder builds an order from input awaiting payment confirmation.
func NewPendingOrder(id string, in OrderInput) Order {
	return Order{
		ID:               id,
		ServiceType:      in.ServiceType,
		PackageID:        in.PackageID,
		Quantity:         in.Quantity,
		Price:            in.Price,
		TargetURL:        in.TargetURL,
		PaymentReference: in.PaymentReference,
		Status:           OrderStatusPending,
	}
}
