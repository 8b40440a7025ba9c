package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nitintomar713/sacmtb-surya/internal/infrastructure/logger"
	"github.com/nitintomar713/sacmtb-surya/internal/usecase"
)

// WebhookVerifier checks a gateway webhook signature over the raw body bytes.
type WebhookVerifier interface {
	VerifyWebhook(body []byte, signature string) bool
}

type PaymentHandler struct {
	orderUC  *usecase.OrderUseCase
	verifier WebhookVerifier
	logger   *logger.Logger
}

func NewPaymentHandler(orderUC *usecase.OrderUseCase, verifier WebhookVerifier, log *logger.Logger) *PaymentHandler {
	return &PaymentHandler{orderUC: orderUC, verifier: verifier, logger: log}
}

// CreateOrder places an ONLINE order and returns both the stored order and
// the gateway intent the client completes payment against.
func (h *PaymentHandler) CreateOrder(c echo.Context) error {
	req := placeOrderRequest{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request payload"})
	}
	req.PaymentMethod = "ONLINE"

	result, err := h.orderUC.PlaceOrder(c.Request().Context(), currentUser(c), req.toInput())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"order": result.Order,
		"payment": echo.Map{
			"id":       result.Intent.ID,
			"amount":   result.Intent.Amount,
			"currency": result.Intent.Currency,
		},
	})
}

// Verify settles payment from the checkout callback.
func (h *PaymentHandler) Verify(c echo.Context) error {
	req := struct {
		RazorpayOrderID   string `json:"razorpay_order_id"`
		RazorpayPaymentID string `json:"razorpay_payment_id"`
		RazorpaySignature string `json:"razorpay_signature"`
		OrderID           string `json:"orderId"`
	}{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request payload"})
	}

	order, err := h.orderUC.VerifyPayment(
		c.Request().Context(),
		req.RazorpayOrderID,
		req.RazorpayPaymentID,
		req.RazorpaySignature,
		req.OrderID,
	)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "payment verified", "order": order})
}

// Webhook handles gateway callbacks. The signature covers the exact raw body
// bytes, so the body is read before any parsing.
func (h *PaymentHandler) Webhook(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "failed to read body"})
	}

	signature := c.Request().Header.Get("X-Razorpay-Signature")
	if signature == "" || !h.verifier.VerifyWebhook(body, signature) {
		h.logger.Warn("Webhook signature mismatch")
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid webhook signature"})
	}

	event := struct {
		Event   string `json:"event"`
		Payload struct {
			Payment struct {
				Entity struct {
					ID      string `json:"id"`
					OrderID string `json:"order_id"`
				} `json:"entity"`
			} `json:"payment"`
		} `json:"payload"`
	}{}
	if err := json.Unmarshal(body, &event); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid webhook payload"})
	}

	if event.Event == "payment.captured" {
		entity := event.Payload.Payment.Entity
		if _, err := h.orderUC.SettleFromWebhook(c.Request().Context(), entity.OrderID, entity.ID); err != nil {
			h.logger.Error("Webhook settlement failed",
				"gateway_order_id", entity.OrderID,
				"gateway_payment_id", entity.ID,
				"error", err)
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}
