package razorpay

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nitintomar713/sacmtb-surya/internal/infrastructure/logger"
)

func sign(secret, payload string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	g := NewGateway("key_id", "key_secret", "webhook_secret", logger.NewLogger())

	valid := sign("key_secret", "order_abc|pay_xyz")
	assert.True(t, g.VerifySignature("order_abc", "pay_xyz", valid))

	// a single flipped character must fail
	tampered := []byte(valid)
	if tampered[0] == 'a' {
		tampered[0] = 'b'
	} else {
		tampered[0] = 'a'
	}
	assert.False(t, g.VerifySignature("order_abc", "pay_xyz", string(tampered)))

	// signatures are keyed: the webhook secret must not validate callbacks
	wrongKey := sign("webhook_secret", "order_abc|pay_xyz")
	assert.False(t, g.VerifySignature("order_abc", "pay_xyz", wrongKey))

	// swapping the refs changes the payload
	assert.False(t, g.VerifySignature("pay_xyz", "order_abc", valid))

	assert.False(t, g.VerifySignature("order_abc", "pay_xyz", ""))
}

func TestVerifyWebhook(t *testing.T) {
	g := NewGateway("key_id", "key_secret", "webhook_secret", logger.NewLogger())

	body := []byte(`{"event":"payment.captured","payload":{"payment":{"entity":{"id":"pay_1","order_id":"order_1"}}}}`)
	valid := sign("webhook_secret", string(body))

	assert.True(t, g.VerifyWebhook(body, valid))

	// the signature covers the exact bytes: any body change invalidates it
	altered := append([]byte{' '}, body...)
	assert.False(t, g.VerifyWebhook(altered, valid))

	assert.False(t, g.VerifyWebhook(body, sign("key_secret", string(body))))
	assert.False(t, g.VerifyWebhook(body, ""))
}
