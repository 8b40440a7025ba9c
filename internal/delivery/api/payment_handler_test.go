package api

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nitintomar713/sacmtb-surya/internal/domain/entities"
	"github.com/nitintomar713/sacmtb-surya/internal/infrastructure/logger"
	"github.com/nitintomar713/sacmtb-surya/internal/infrastructure/memory"
	"github.com/nitintomar713/sacmtb-surya/internal/infrastructure/razorpay"
	"github.com/nitintomar713/sacmtb-surya/internal/usecase"
)

const webhookSecret = "webhook_secret"

func webhookFixture(t *testing.T) (*PaymentHandler, *memory.OrderRepositoryMemory, *memory.ProductRepositoryMemory) {
	t.Helper()
	orderRepo := memory.NewOrderRepositoryMemory()
	productRepo := memory.NewProductRepositoryMemory()
	gateway := razorpay.NewGateway("key_id", "key_secret", webhookSecret, logger.NewLogger())

	orderUC := usecase.NewOrderUseCase(
		orderRepo, productRepo, gateway, nil, nil,
		usecase.NewTrackingResolver(nil),
		"admin@sacmtb.in",
		logger.NewLogger(),
	)
	handler := NewPaymentHandler(orderUC, gateway, logger.NewLogger())

	ctx := httptest.NewRequest(http.MethodGet, "/", nil).Context()
	require.NoError(t, productRepo.Create(ctx, &entities.Product{
		ProductID: "bike1", Name: "Trail 29er", Price: 450.0, Stock: 5, CreatedAt: time.Now(),
	}))
	require.NoError(t, orderRepo.Create(ctx, &entities.Order{
		OrderID:       "order1",
		UserID:        "user123",
		Items:         []entities.OrderItem{{ProductID: "bike1", Qty: 2, Price: 450.0}},
		PaymentMethod: entities.PaymentOnline,
		TotalPrice:    1000.0,
		Status:        entities.StatusCart,
		CreatedAt:     time.Now(),
	}))
	require.NoError(t, orderRepo.SetGatewayOrderID(ctx, "order1", "rzp_order_1"))
	return handler, orderRepo, productRepo
}

func signBody(body string) string {
	mac := hmac.New(sha256.New, []byte(webhookSecret))
	mac.Write([]byte(body))
	return hex.EncodeToString(mac.Sum(nil))
}

func postWebhook(handler *PaymentHandler, body, signature string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/razorpay/webhook", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if signature != "" {
		req.Header.Set("X-Razorpay-Signature", signature)
	}
	rec := httptest.NewRecorder()
	_ = handler.Webhook(e.NewContext(req, rec))
	return rec
}

const capturedBody = `{"event":"payment.captured","payload":{"payment":{"entity":{"id":"pay_1","order_id":"rzp_order_1"}}}}`

func TestWebhook_RejectsBadSignature(t *testing.T) {
	handler, orderRepo, _ := webhookFixture(t)

	rec := postWebhook(handler, capturedBody, "deadbeef")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postWebhook(handler, capturedBody, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// a signature over different bytes must not transfer
	rec = postWebhook(handler, capturedBody, signBody(capturedBody+" "))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	ctx := httptest.NewRequest(http.MethodGet, "/", nil).Context()
	order, err := orderRepo.GetByID(ctx, "order1")
	require.NoError(t, err)
	assert.False(t, order.IsPaid)
}

func TestWebhook_SettlesCapturedPayment(t *testing.T) {
	handler, orderRepo, productRepo := webhookFixture(t)

	rec := postWebhook(handler, capturedBody, signBody(capturedBody))
	assert.Equal(t, http.StatusOK, rec.Code)

	ctx := httptest.NewRequest(http.MethodGet, "/", nil).Context()
	order, err := orderRepo.GetByID(ctx, "order1")
	require.NoError(t, err)
	assert.True(t, order.IsPaid)
	assert.Equal(t, entities.StatusWaiting, order.Status)
	assert.Equal(t, "pay_1", order.PaymentInfo.PaymentID)

	product, err := productRepo.GetByID(ctx, "bike1")
	require.NoError(t, err)
	assert.Equal(t, 3, product.Stock)
}

func TestWebhook_DuplicateDeliveryIsIdempotent(t *testing.T) {
	handler, _, productRepo := webhookFixture(t)

	signature := signBody(capturedBody)
	assert.Equal(t, http.StatusOK, postWebhook(handler, capturedBody, signature).Code)
	assert.Equal(t, http.StatusOK, postWebhook(handler, capturedBody, signature).Code)

	ctx := httptest.NewRequest(http.MethodGet, "/", nil).Context()
	product, err := productRepo.GetByID(ctx, "bike1")
	require.NoError(t, err)
	assert.Equal(t, 3, product.Stock, "stock moves once")
}

func TestWebhook_IgnoresOtherEvents(t *testing.T) {
	handler, orderRepo, _ := webhookFixture(t)

	body := `{"event":"payment.failed","payload":{"payment":{"entity":{"id":"pay_1","order_id":"rzp_order_1"}}}}`
	rec := postWebhook(handler, body, signBody(body))
	assert.Equal(t, http.StatusOK, rec.Code)

	ctx := httptest.NewRequest(http.MethodGet, "/", nil).Context()
	order, err := orderRepo.GetByID(ctx, "order1")
	require.NoError(t, err)
	assert.False(t, order.IsPaid)
}
