// Package queries contains read-only operations against the system state.
// Implements the Query side of the CQRS architecture: handlers never mutate
// aggregates and return flat response structures decoupled from the domain
// model, so read results can be reshaped without touching the write path.
package queries

import (
	"time"

	"ordering/internal/core/domain/model/order"
)

// OrderItemResponse is the read-side projection of a single order item.
// Amounts are decimal strings to survive serialization without precision loss.
type OrderItemResponse struct {
	ID           string
	ProductID    string
	Quantity     int
	PricePerUnit string
	Total        string
	Currency     string
}

// OrderResponse is the read-side projection of an order aggregate.
// Timestamps are RFC 3339 strings in UTC.
type OrderResponse struct {
	ID              string
	CustomerID      string
	Status          string
	ShippingAddress string
	Items           []OrderItemResponse
	TotalAmount     string
	Currency        string
	CreatedAt       string
	UpdatedAt       string
	Version         int
}

// newOrderResponse projects an aggregate into a response structure.
func newOrderResponse(aggregate *order.Order) (OrderResponse, error) {
	items := make([]OrderItemResponse, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		total, err := item.Total()
		if err != nil {
			return OrderResponse{}, err
		}

		items = append(items, OrderItemResponse{
			ID:           item.ID().String(),
			ProductID:    item.ProductID().String(),
			Quantity:     item.Quantity(),
			PricePerUnit: item.PricePerUnit().Amount().String(),
			Total:        total.Amount().String(),
			Currency:     item.PricePerUnit().Currency().String(),
		})
	}

	return OrderResponse{
		ID:              aggregate.ID().String(),
		CustomerID:      aggregate.CustomerID().String(),
		Status:          aggregate.Status().String(),
		ShippingAddress: aggregate.ShippingAddress().String(),
		Items:           items,
		TotalAmount:     aggregate.TotalAmount().Amount().String(),
		Currency:        aggregate.TotalAmount().Currency().String(),
		CreatedAt:       aggregate.CreatedAt().Format(time.RFC3339),
		UpdatedAt:       aggregate.UpdatedAt().Format(time.RFC3339),
		Version:         aggregate.Version(),
	}, nil
}
