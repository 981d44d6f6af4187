package queries

import (
	"context"

	"ordering/internal/core/ports"
)

// GetCustomerOrdersQueryHandler resolves all orders of a customer from storage.
// A customer without orders yields an empty slice, not an error.
type GetCustomerOrdersQueryHandler struct {
	orderRepo ports.OrderRepository
}

// NewGetCustomerOrdersQueryHandler creates a handler for customer history queries.
func NewGetCustomerOrdersQueryHandler(orderRepo ports.OrderRepository) GetCustomerOrdersQueryHandler {
	return GetCustomerOrdersQueryHandler{orderRepo: orderRepo}
}

// Handle executes the query and projects every order of the customer.
// Ordering follows the repository contract: newest first.
func (h GetCustomerOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetCustomerOrdersQuery,
) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	aggregates, err := h.orderRepo.GetByCustomer(ctx, query.CustomerID())
	if err != nil {
		return nil, err
	}

	responses := make([]OrderResponse, 0, len(aggregates))
	for _, aggregate := range aggregates {
		response, respErr := newOrderResponse(aggregate)
		if respErr != nil {
			return nil, respErr
		}
		responses = append(responses, response)
	}

	return responses, nil
}
