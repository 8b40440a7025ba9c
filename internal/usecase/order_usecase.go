package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/nitintomar713/sacmtb-surya/internal/domain/entities"
	"github.com/nitintomar713/sacmtb-surya/internal/domain/repositories"
	"github.com/nitintomar713/sacmtb-surya/internal/infrastructure/logger"
)

const notifyTimeout = 10 * time.Second

// Notifier delivers transactional messages about an order. Failures are
// logged and never fail the operation that triggered them.
type Notifier interface {
	SendOrderConfirmation(ctx context.Context, recipient string, order *entities.Order) error
	SendShipmentUpdate(ctx context.Context, recipient string, order *entities.Order) error
	SendOrderCompleted(ctx context.Context, recipient string, order *entities.Order) error
	SendOrderCancelled(ctx context.Context, recipient string, order *entities.Order) error
}

type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, event string, order *entities.Order) error
	Close()
}

type PaymentIntent struct {
	ID       string
	Amount   int64
	Currency string
	Raw      map[string]interface{}
}

type PaymentGateway interface {
	CreateIntent(ctx context.Context, amountMinor int64, currency, receipt string) (*PaymentIntent, error)
	VerifySignature(gatewayOrderID, gatewayPaymentID, signature string) bool
}

// MinorUnits converts a price in major currency units to the smallest unit
// the gateway charges in.
func MinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// OrderUseCase owns the order lifecycle: placement, payment settlement and
// admin status transitions, plus the stock moves and notifications each of
// those implies.
type OrderUseCase struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	gateway     PaymentGateway
	notifier    Notifier
	publisher   EventPublisher
	tracking    *TrackingResolver
	adminEmail  string
	currency    string
	logger      *logger.Logger
}

func NewOrderUseCase(
	orderRepo repositories.OrderRepository,
	productRepo repositories.ProductRepository,
	gateway PaymentGateway,
	notifier Notifier,
	publisher EventPublisher,
	tracking *TrackingResolver,
	adminEmail string,
	log *logger.Logger,
) *OrderUseCase {
	if tracking == nil {
		tracking = NewTrackingResolver(nil)
	}
	return &OrderUseCase{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		gateway:     gateway,
		notifier:    notifier,
		publisher:   publisher,
		tracking:    tracking,
		adminEmail:  adminEmail,
		currency:    "INR",
		logger:      log,
	}
}

type PlaceOrderInput struct {
	Items           []entities.OrderItem
	ShippingAddress entities.ShippingAddress
	ItemsPrice      float64
	TaxPrice        float64
	ShippingPrice   float64
	TotalPrice      float64
	PaymentMethod   entities.PaymentMethod
}

type PlaceOrderResult struct {
	Order *entities.Order
	// Intent is set for ONLINE orders only; the client completes payment
	// against it.
	Intent *PaymentIntent
}

// PlaceOrder creates an order for the user. COD orders are accepted as paid
// immediately and stock moves now; ONLINE orders open in cart and stock moves
// only when the payment settles.
func (uc *OrderUseCase) PlaceOrder(ctx context.Context, user *entities.User, in PlaceOrderInput) (*PlaceOrderResult, error) {
	if user == nil || user.UserID == "" {
		return nil, ErrInvalidUserID
	}
	if len(in.Items) == 0 {
		return nil, ErrEmptyItems
	}
	if !entities.ValidPaymentMethod(string(in.PaymentMethod)) {
		return nil, ErrInvalidPayment
	}
	if in.TotalPrice <= 0 {
		return nil, ErrMissingTotal
	}
	for i, item := range in.Items {
		if item.ProductID == "" || item.Qty <= 0 {
			return nil, fmt.Errorf("%w: item %d has invalid quantity", ErrInvalidItem, i)
		}
		if item.Price < 0 {
			return nil, fmt.Errorf("%w: item %d has invalid price", ErrInvalidItem, i)
		}
	}

	// Availability is checked across every item before anything mutates, so a
	// doomed order never decrements anyone's stock.
	for _, item := range in.Items {
		product, err := uc.productRepo.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("product %s: %w", item.ProductID, err)
		}
		if product.Stock < item.Qty {
			return nil, &OutOfStockError{
				ProductID: product.ProductID,
				Name:      product.Name,
				Requested: item.Qty,
				Available: product.Stock,
			}
		}
	}

	now := time.Now()
	order := &entities.Order{
		OrderID:         uuid.New().String(),
		UserID:          user.UserID,
		UserName:        user.Name,
		UserEmail:       user.Email,
		Items:           in.Items,
		ShippingAddress: in.ShippingAddress,
		PaymentMethod:   in.PaymentMethod,
		ItemsPrice:      in.ItemsPrice,
		TaxPrice:        in.TaxPrice,
		ShippingPrice:   in.ShippingPrice,
		TotalPrice:      in.TotalPrice,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if in.PaymentMethod == entities.PaymentCOD {
		order.Status = entities.StatusWaiting
		order.IsPaid = true
		order.PaidAt = &now
		order.PaymentInfo = entities.PaymentInfo{Status: "COD"}

		if err := uc.orderRepo.Create(ctx, order); err != nil {
			return nil, fmt.Errorf("failed to create order: %w", err)
		}
		if err := uc.decrementStock(ctx, order); err != nil {
			return nil, err
		}

		uc.notifyBoth(order, uc.notifierSend(notifyConfirmation))
		uc.publishEvent("created", order)
		return &PlaceOrderResult{Order: order}, nil
	}

	order.Status = entities.StatusCart
	if err := uc.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	intent, err := uc.gateway.CreateIntent(ctx, MinorUnits(order.TotalPrice), uc.currency, "rcpt_"+order.OrderID)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}
	if err := uc.orderRepo.SetGatewayOrderID(ctx, order.OrderID, intent.ID); err != nil {
		return nil, fmt.Errorf("failed to bind gateway order: %w", err)
	}
	order.PaymentInfo.OrderID = intent.ID

	uc.publishEvent("created", order)
	return &PlaceOrderResult{Order: order, Intent: intent}, nil
}

// VerifyPayment checks the gateway signature over "orderRef|paymentRef" and,
// when it matches, settles the order.
func (uc *OrderUseCase) VerifyPayment(ctx context.Context, gatewayOrderID, gatewayPaymentID, signature, orderID string) (*entities.Order, error) {
	if gatewayOrderID == "" || gatewayPaymentID == "" || signature == "" {
		return nil, ErrMissingGatewayRefs
	}
	if orderID == "" {
		return nil, ErrInvalidOrderID
	}
	if !uc.gateway.VerifySignature(gatewayOrderID, gatewayPaymentID, signature) {
		return nil, ErrInvalidSignature
	}

	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return uc.settle(ctx, order, gatewayOrderID, gatewayPaymentID, signature)
}

// SettleFromWebhook applies a gateway capture notification. The caller has
// already authenticated the webhook body, so no per-payment signature is
// stored.
func (uc *OrderUseCase) SettleFromWebhook(ctx context.Context, gatewayOrderID, gatewayPaymentID string) (*entities.Order, error) {
	if gatewayOrderID == "" || gatewayPaymentID == "" {
		return nil, ErrMissingGatewayRefs
	}
	order, err := uc.orderRepo.GetByGatewayOrderID(ctx, gatewayOrderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order for gateway order %s: %w", gatewayOrderID, err)
	}
	return uc.settle(ctx, order, gatewayOrderID, gatewayPaymentID, "")
}

// settle is the single point where an online order becomes paid. It is
// idempotent: a duplicate callback sees isPaid and returns the order
// untouched, so stock moves and notifications happen at most once. Two
// concurrent callbacks are serialized by the compare-and-set transition.
func (uc *OrderUseCase) settle(ctx context.Context, order *entities.Order, gatewayOrderID, gatewayPaymentID, signature string) (*entities.Order, error) {
	if order.IsPaid {
		return order, nil
	}
	if order.Status != entities.StatusCart {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, entities.StatusWaiting)
	}

	now := time.Now()
	order.IsPaid = true
	order.PaidAt = &now
	order.Status = entities.StatusWaiting
	order.PaymentInfo = entities.PaymentInfo{
		PaymentID: gatewayPaymentID,
		Status:    "Paid",
		OrderID:   gatewayOrderID,
		Signature: signature,
	}
	order.UpdatedAt = now

	if err := uc.orderRepo.Transition(ctx, order, entities.StatusCart); err != nil {
		if errors.Is(err, repositories.ErrStatusConflict) {
			current, gerr := uc.orderRepo.GetByID(ctx, order.OrderID)
			if gerr == nil && current.IsPaid {
				return current, nil
			}
		}
		return nil, fmt.Errorf("failed to mark order paid: %w", err)
	}

	if err := uc.decrementStock(ctx, order); err != nil {
		return nil, err
	}

	uc.notifyBoth(order, uc.notifierSend(notifyConfirmation))
	uc.publishEvent("paid", order)
	return order, nil
}

type TransitionExtra struct {
	DeliveryPartner    string
	TrackingID         string
	CancellationReason string
}

// TransitionStatus applies an admin-driven transition. Required extras are
// validated before any write; the persisted update is conditional on the
// status the caller observed.
func (uc *OrderUseCase) TransitionStatus(ctx context.Context, orderID string, next entities.Status, extra TransitionExtra) (*entities.Order, error) {
	if orderID == "" {
		return nil, ErrInvalidOrderID
	}
	if !entities.ValidStatus(string(next)) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, string(next))
	}

	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	from := order.Status
	// cart -> waiting is reserved for payment settlement.
	if next == entities.StatusWaiting || !from.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, next)
	}

	now := time.Now()
	var notify notifyKind
	var event string

	switch next {
	case entities.StatusShipping:
		if extra.DeliveryPartner == "" || extra.TrackingID == "" {
			return nil, ErrMissingTrackingInfo
		}
		order.Status = next
		order.IsShipped = true
		order.ShippedAt = &now
		order.DeliveryPartner = extra.DeliveryPartner
		order.TrackingID = extra.TrackingID
		order.TrackingLink = uc.tracking.Resolve(extra.DeliveryPartner, extra.TrackingID)
		notify = notifyShipment
		event = "shipped"

	case entities.StatusCompleted:
		order.Status = next
		order.IsDelivered = true
		order.DeliveredAt = &now
		notify = notifyCompletion
		event = "completed"

	case entities.StatusCancelled:
		reason := extra.CancellationReason
		if reason == "" {
			reason = "Cancelled by admin"
		}
		order.Status = next
		order.CancellationReason = reason
		notify = notifyCancellation
		event = "cancelled"
	}
	order.UpdatedAt = now

	if err := uc.orderRepo.Transition(ctx, order, from); err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	uc.notifyBoth(order, uc.notifierSend(notify))
	uc.publishEvent(event, order)
	return order, nil
}

// GetOrder returns the order when the actor owns it or is an admin.
func (uc *OrderUseCase) GetOrder(ctx context.Context, actor *entities.User, orderID string) (*entities.Order, error) {
	if orderID == "" {
		return nil, ErrInvalidOrderID
	}
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if actor == nil || (!actor.IsAdmin && actor.UserID != order.UserID) {
		return nil, ErrForbidden
	}
	return order, nil
}

func (uc *OrderUseCase) MyOrders(ctx context.Context, userID string) ([]*entities.Order, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}
	orders, err := uc.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// AllOrders returns every order plus the summed revenue, admin only at the
// delivery layer.
func (uc *OrderUseCase) AllOrders(ctx context.Context) ([]*entities.Order, float64, error) {
	orders, err := uc.orderRepo.ListAll(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	var total float64
	for _, o := range orders {
		total += o.TotalPrice
	}
	return orders, total, nil
}

// decrementStock applies per-item conditional decrements. There is no
// cross-document rollback: a failure mid-loop reports which items were
// already applied and aborts the operation.
func (uc *OrderUseCase) decrementStock(ctx context.Context, order *entities.Order) error {
	for i, item := range order.Items {
		if err := uc.productRepo.DecrementStock(ctx, item.ProductID, item.Qty); err != nil {
			uc.logger.Error("stock decrement failed mid-order",
				"order_id", order.OrderID,
				"product_id", item.ProductID,
				"applied_items", i)
			return fmt.Errorf("stock decrement failed for product %s (%d items already applied, not reverted): %w", item.ProductID, i, err)
		}
	}
	return nil
}

type notifyKind int

const (
	notifyConfirmation notifyKind = iota
	notifyShipment
	notifyCompletion
	notifyCancellation
)

func (uc *OrderUseCase) notifierSend(kind notifyKind) func(context.Context, string, *entities.Order) error {
	if uc.notifier == nil {
		return nil
	}
	switch kind {
	case notifyShipment:
		return uc.notifier.SendShipmentUpdate
	case notifyCompletion:
		return uc.notifier.SendOrderCompleted
	case notifyCancellation:
		return uc.notifier.SendOrderCancelled
	default:
		return uc.notifier.SendOrderConfirmation
	}
}

// notifyBoth dispatches a notification to the purchaser and the admin
// recipient, decoupled from the caller with its own timeout.
func (uc *OrderUseCase) notifyBoth(order *entities.Order, send func(context.Context, string, *entities.Order) error) {
	if send == nil {
		return
	}
	snapshot := *order
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		for _, recipient := range []string{snapshot.UserEmail, uc.adminEmail} {
			if recipient == "" {
				continue
			}
			if err := send(ctx, recipient, &snapshot); err != nil {
				uc.logger.Warn("notification failed",
					"order_id", snapshot.OrderID,
					"recipient", recipient,
					"error", err)
			}
		}
	}()
}

func (uc *OrderUseCase) publishEvent(event string, order *entities.Order) {
	if uc.publisher == nil {
		return
	}
	snapshot := *order
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if err := uc.publisher.PublishOrderEvent(ctx, event, &snapshot); err != nil {
			uc.logger.Warn("failed to publish order event",
				"event", event,
				"order_id", snapshot.OrderID,
				"error", err)
		}
	}()
}
