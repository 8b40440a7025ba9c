package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nitintomar713/sacmtb-surya/internal/domain/entities"
	"github.com/nitintomar713/sacmtb-surya/internal/infrastructure/logger"
	"github.com/nitintomar713/sacmtb-surya/internal/infrastructure/memory"
)

// stubGateway accepts every signature and hands out sequential intent ids.
type stubGateway struct {
	intents int
}

func (g *stubGateway) CreateIntent(ctx context.Context, amountMinor int64, currency, receipt string) (*PaymentIntent, error) {
	g.intents++
	return &PaymentIntent{ID: "rzp_order_stub", Amount: amountMinor, Currency: currency}, nil
}

func (g *stubGateway) VerifySignature(gatewayOrderID, gatewayPaymentID, signature string) bool {
	return true
}

func newScenario(t *testing.T) (*OrderUseCase, *memory.OrderRepositoryMemory, *memory.ProductRepositoryMemory) {
	t.Helper()
	orderRepo := memory.NewOrderRepositoryMemory()
	productRepo := memory.NewProductRepositoryMemory()

	uc := NewOrderUseCase(
		orderRepo, productRepo, &stubGateway{}, nil, nil,
		NewTrackingResolver(nil),
		"admin@sacmtb.in",
		logger.NewLogger(),
	)

	require.NoError(t, productRepo.Create(context.Background(), &entities.Product{
		ProductID: "bike1",
		Name:      "Trail 29er",
		Price:     450.0,
		Stock:     5,
		CreatedAt: time.Now(),
	}))
	return uc, orderRepo, productRepo
}

func TestScenario_CODMovesStockImmediately(t *testing.T) {
	uc, _, productRepo := newScenario(t)
	ctx := context.Background()

	result, err := uc.PlaceOrder(ctx, testUser(), codInput())
	require.NoError(t, err)
	assert.Equal(t, entities.StatusWaiting, result.Order.Status)
	assert.True(t, result.Order.IsPaid)

	product, err := productRepo.GetByID(ctx, "bike1")
	require.NoError(t, err)
	assert.Equal(t, 3, product.Stock)
}

func TestScenario_OnlineSettlementIsIdempotent(t *testing.T) {
	uc, orderRepo, productRepo := newScenario(t)
	ctx := context.Background()

	in := codInput()
	in.PaymentMethod = entities.PaymentOnline
	result, err := uc.PlaceOrder(ctx, testUser(), in)
	require.NoError(t, err)
	require.NotNil(t, result.Intent)

	// placement alone must not touch stock
	product, err := productRepo.GetByID(ctx, "bike1")
	require.NoError(t, err)
	assert.Equal(t, 5, product.Stock)

	orderID := result.Order.OrderID
	first, err := uc.VerifyPayment(ctx, result.Intent.ID, "pay_1", "sig", orderID)
	require.NoError(t, err)
	assert.True(t, first.IsPaid)
	assert.Equal(t, entities.StatusWaiting, first.Status)

	second, err := uc.VerifyPayment(ctx, result.Intent.ID, "pay_1", "sig", orderID)
	require.NoError(t, err)
	assert.True(t, second.IsPaid)

	// one settlement, one decrement
	product, err = productRepo.GetByID(ctx, "bike1")
	require.NoError(t, err)
	assert.Equal(t, 3, product.Stock)

	stored, err := orderRepo.GetByID(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, entities.StatusWaiting, stored.Status)
	assert.Equal(t, "pay_1", stored.PaymentInfo.PaymentID)
}

func TestScenario_GatewayOrderIDBindsOnce(t *testing.T) {
	uc, orderRepo, _ := newScenario(t)
	ctx := context.Background()

	in := codInput()
	in.PaymentMethod = entities.PaymentOnline
	result, err := uc.PlaceOrder(ctx, testUser(), in)
	require.NoError(t, err)

	err = orderRepo.SetGatewayOrderID(ctx, result.Order.OrderID, "rzp_other")
	assert.Error(t, err)

	stored, err := orderRepo.GetByID(ctx, result.Order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, result.Intent.ID, stored.PaymentInfo.OrderID)
}

func TestScenario_FullLifecycle(t *testing.T) {
	uc, _, _ := newScenario(t)
	ctx := context.Background()

	result, err := uc.PlaceOrder(ctx, testUser(), codInput())
	require.NoError(t, err)
	orderID := result.Order.OrderID

	shipped, err := uc.TransitionStatus(ctx, orderID, entities.StatusShipping, TransitionExtra{
		DeliveryPartner: "Delhivery",
		TrackingID:      "DL42",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://www.delhivery.com/tracking/DL42", shipped.TrackingLink)

	completed, err := uc.TransitionStatus(ctx, orderID, entities.StatusCompleted, TransitionExtra{})
	require.NoError(t, err)
	assert.True(t, completed.IsDelivered)
	assert.True(t, completed.Status.Terminal())

	// terminal orders accept no further transitions
	_, err = uc.TransitionStatus(ctx, orderID, entities.StatusCancelled, TransitionExtra{})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}
