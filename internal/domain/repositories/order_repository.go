package repositories

import (
	"context"

	"github.com/nitintomar713/sacmtb-surya/internal/domain/entities"
)

type OrderRepository interface {
	Create(ctx context.Context, order *entities.Order) error
	GetByID(ctx context.Context, orderID string) (*entities.Order, error)
	GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*entities.Order, error)
	ListByUser(ctx context.Context, userID string) ([]*entities.Order, error)
	ListAll(ctx context.Context) ([]*entities.Order, error)

	// SetGatewayOrderID binds the gateway order id to the order. The write is
	// conditional on the field still being empty; a second call fails with
	// ErrGatewayOrderBound.
	SetGatewayOrderID(ctx context.Context, orderID, gatewayOrderID string) error

	// Transition persists the order's mutable lifecycle fields, conditional on
	// the stored status still being from. A lost race surfaces as
	// ErrStatusConflict and leaves the document untouched.
	Transition(ctx context.Context, order *entities.Order, from entities.Status) error
}

var (
	ErrOrderNotFound      = &RepositoryError{"order not found"}
	ErrOrderAlreadyExists = &RepositoryError{"order already exists"}
	ErrStatusConflict     = &RepositoryError{"order status changed concurrently"}
	ErrGatewayOrderBound  = &RepositoryError{"gateway order id already set"}
)

type RepositoryError struct {
	message string
}

func (e *RepositoryError) Error() string {
	return e.message
}
