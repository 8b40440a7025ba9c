// Package memory provides map-backed repositories with the same concurrency
// semantics as the MongoDB implementations. They back tests and local runs
// without a database.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/nitintomar713/sacmtb-surya/internal/domain/entities"
	"github.com/nitintomar713/sacmtb-surya/internal/domain/repositories"
)

type OrderRepositoryMemory struct {
	mu     sync.RWMutex
	orders map[string]*entities.Order
}

func NewOrderRepositoryMemory() *OrderRepositoryMemory {
	return &OrderRepositoryMemory{orders: make(map[string]*entities.Order)}
}

func (r *OrderRepositoryMemory) Create(ctx context.Context, order *entities.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[order.OrderID]; ok {
		return repositories.ErrOrderAlreadyExists
	}
	r.orders[order.OrderID] = copyOrder(order)
	return nil
}

func (r *OrderRepositoryMemory) GetByID(ctx context.Context, orderID string) (*entities.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[orderID]
	if !ok {
		return nil, repositories.ErrOrderNotFound
	}
	return copyOrder(order), nil
}

func (r *OrderRepositoryMemory) GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*entities.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, order := range r.orders {
		if order.PaymentInfo.OrderID != "" && order.PaymentInfo.OrderID == gatewayOrderID {
			return copyOrder(order), nil
		}
	}
	return nil, repositories.ErrOrderNotFound
}

func (r *OrderRepositoryMemory) ListByUser(ctx context.Context, userID string) ([]*entities.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var orders []*entities.Order
	for _, order := range r.orders {
		if order.UserID == userID {
			orders = append(orders, copyOrder(order))
		}
	}
	sortOrders(orders)
	return orders, nil
}

func (r *OrderRepositoryMemory) ListAll(ctx context.Context) ([]*entities.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := make([]*entities.Order, 0, len(r.orders))
	for _, order := range r.orders {
		orders = append(orders, copyOrder(order))
	}
	sortOrders(orders)
	return orders, nil
}

func (r *OrderRepositoryMemory) SetGatewayOrderID(ctx context.Context, orderID, gatewayOrderID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[orderID]
	if !ok {
		return repositories.ErrOrderNotFound
	}
	if order.PaymentInfo.OrderID != "" {
		return repositories.ErrGatewayOrderBound
	}
	order.PaymentInfo.OrderID = gatewayOrderID
	return nil
}

func (r *OrderRepositoryMemory) Transition(ctx context.Context, order *entities.Order, from entities.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.orders[order.OrderID]
	if !ok {
		return repositories.ErrOrderNotFound
	}
	if stored.Status != from {
		return repositories.ErrStatusConflict
	}
	r.orders[order.OrderID] = copyOrder(order)
	return nil
}

func sortOrders(orders []*entities.Order) {
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}

func copyOrder(order *entities.Order) *entities.Order {
	clone := *order
	clone.Items = make([]entities.OrderItem, len(order.Items))
	copy(clone.Items, order.Items)
	return &clone
}
