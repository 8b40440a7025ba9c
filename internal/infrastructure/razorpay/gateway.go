// Package razorpay adapts the Razorpay Orders API to the payment gateway
// interface used by the order lifecycle.
package razorpay

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"

	"github.com/nitintomar713/sacmtb-surya/internal/infrastructure/logger"
	"github.com/nitintomar713/sacmtb-surya/internal/usecase"
)

type Gateway struct {
	client        *razorpay.Client
	keySecret     string
	webhookSecret string
	logger        *logger.Logger
}

func NewGateway(keyID, keySecret, webhookSecret string, log *logger.Logger) *Gateway {
	return &Gateway{
		client:        razorpay.NewClient(keyID, keySecret),
		keySecret:     keySecret,
		webhookSecret: webhookSecret,
		logger:        log,
	}
}

// CreateIntent opens a gateway order for the given amount in minor units.
// payment_capture 1 makes the gateway capture automatically on authorization.
func (g *Gateway) CreateIntent(ctx context.Context, amountMinor int64, currency, receipt string) (*usecase.PaymentIntent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	body, err := g.client.Order.Create(map[string]interface{}{
		"amount":          amountMinor,
		"currency":        currency,
		"receipt":         receipt,
		"payment_capture": 1,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create gateway order: %w", err)
	}

	id, _ := body["id"].(string)
	if id == "" {
		return nil, fmt.Errorf("gateway order response missing id")
	}

	g.logger.Info("Created gateway order", "gateway_order_id", id, "amount", amountMinor, "currency", currency)

	return &usecase.PaymentIntent{
		ID:       id,
		Amount:   amountMinor,
		Currency: currency,
		Raw:      body,
	}, nil
}

// VerifySignature checks the checkout callback signature: HMAC-SHA256 over
// "<gatewayOrderID>|<gatewayPaymentID>" keyed with the API secret, hex encoded.
func (g *Gateway) VerifySignature(gatewayOrderID, gatewayPaymentID, signature string) bool {
	return verify(g.keySecret, gatewayOrderID+"|"+gatewayPaymentID, signature)
}

// VerifyWebhook checks a webhook signature over the raw request body using
// the webhook secret. The body must be the exact bytes received.
func (g *Gateway) VerifyWebhook(body []byte, signature string) bool {
	mac := hmac.New(sha256.New, []byte(g.webhookSecret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

func verify(secret, payload, signature string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payload))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
