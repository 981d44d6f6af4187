package queries

import (
	"context"
	"errors"

	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"
)

// GetOrderDetailsQueryHandler resolves a single order projection from storage.
// A missing order is not an error on the read side: the handler returns a nil
// response instead.
type GetOrderDetailsQueryHandler struct {
	orderRepo ports.OrderRepository
}

// NewGetOrderDetailsQueryHandler creates a handler for single order lookups.
func NewGetOrderDetailsQueryHandler(orderRepo ports.OrderRepository) GetOrderDetailsQueryHandler {
	return GetOrderDetailsQueryHandler{orderRepo: orderRepo}
}

// Handle executes the query. Returns (nil, nil) when no order with the
// requested identifier exists.
func (h GetOrderDetailsQueryHandler) Handle(
	ctx context.Context,
	query GetOrderDetailsQuery,
) (*OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	aggregate, err := h.orderRepo.Get(ctx, query.OrderID())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, nil
		}
		return nil, err
	}

	response, err := newOrderResponse(aggregate)
	if err != nil {
		return nil, err
	}

	return &response, nil
}
