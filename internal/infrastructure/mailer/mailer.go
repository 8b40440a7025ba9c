// Package mailer sends transactional email over SMTP. It implements both the
// OTP mailer used by auth and the order notifier used by the order lifecycle.
package mailer

import (
	"context"
	"fmt"
	"strings"

	gomail "gopkg.in/gomail.v2"

	"github.com/nitintomar713/sacmtb-surya/internal/domain/entities"
	"github.com/nitintomar713/sacmtb-surya/internal/infrastructure/logger"
)

type Mailer struct {
	dialer *gomail.Dialer
	from   string
	logger *logger.Logger
}

func NewMailer(host string, port int, username, password, from string, log *logger.Logger) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
		logger: log,
	}
}

func (m *Mailer) send(ctx context.Context, recipient, subject, html string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", recipient)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", html)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", recipient, err)
	}
	return nil
}

func (m *Mailer) SendOTP(ctx context.Context, recipient, code string) error {
	html := fmt.Sprintf(`
		<div style="font-family:Arial,sans-serif;max-width:480px;margin:auto">
			<h2>SAC MTB verification code</h2>
			<p>Use this code to continue. It expires in 5 minutes.</p>
			<p style="font-size:28px;letter-spacing:6px;font-weight:bold">%s</p>
			<p>If you did not request this, you can ignore this email.</p>
		</div>`, code)
	return m.send(ctx, recipient, "Your SAC MTB verification code", html)
}

func (m *Mailer) SendOrderConfirmation(ctx context.Context, recipient string, order *entities.Order) error {
	var items strings.Builder
	for _, item := range order.Items {
		fmt.Fprintf(&items, `<tr><td>%s</td><td>%d</td><td>₹%.2f</td></tr>`, item.Name, item.Qty, item.Price)
	}

	payment := "Cash on Delivery"
	if order.PaymentMethod == entities.PaymentOnline {
		payment = "Paid online"
	}

	html := fmt.Sprintf(`
		<div style="font-family:Arial,sans-serif;max-width:560px;margin:auto">
			<h2>Order confirmed</h2>
			<p>Thanks for your order, %s. Your order <b>%s</b> has been placed.</p>
			<table border="1" cellpadding="6" cellspacing="0" style="border-collapse:collapse;width:100%%">
				<tr><th>Item</th><th>Qty</th><th>Price</th></tr>
				%s
			</table>
			<p>Payment: %s</p>
			<p style="font-size:18px"><b>Total: ₹%.2f</b></p>
			<p>Shipping to: %s, %s, %s %s</p>
		</div>`,
		order.ShippingAddress.FullName, order.OrderID, items.String(), payment,
		order.TotalPrice, order.ShippingAddress.Address, order.ShippingAddress.City,
		order.ShippingAddress.State, order.ShippingAddress.PostalCode)
	return m.send(ctx, recipient, fmt.Sprintf("Order %s confirmed", order.OrderID), html)
}

func (m *Mailer) SendShipmentUpdate(ctx context.Context, recipient string, order *entities.Order) error {
	tracking := fmt.Sprintf(`<p>Track your shipment: <a href="%s">%s</a></p>`, order.TrackingLink, order.TrackingLink)
	if order.TrackingLink == "" {
		tracking = fmt.Sprintf(`<p>Use tracking ID <b>%s</b> on the %s website to follow your shipment.</p>`,
			order.TrackingID, order.DeliveryPartner)
	}

	html := fmt.Sprintf(`
		<div style="font-family:Arial,sans-serif;max-width:480px;margin:auto">
			<h2>Your order is on the way</h2>
			<p>Order <b>%s</b> has been shipped via %s.</p>
			<p>Tracking ID: <b>%s</b></p>
			%s
		</div>`,
		order.OrderID, order.DeliveryPartner, order.TrackingID, tracking)
	return m.send(ctx, recipient, fmt.Sprintf("Order %s shipped", order.OrderID), html)
}

func (m *Mailer) SendOrderCompleted(ctx context.Context, recipient string, order *entities.Order) error {
	html := fmt.Sprintf(`
		<div style="font-family:Arial,sans-serif;max-width:480px;margin:auto">
			<h2>Order delivered</h2>
			<p>Order <b>%s</b> has been delivered. We hope you enjoy the ride!</p>
			<p>If anything is wrong with your order, reply to this email.</p>
		</div>`, order.OrderID)
	return m.send(ctx, recipient, fmt.Sprintf("Order %s delivered", order.OrderID), html)
}

func (m *Mailer) SendOrderCancelled(ctx context.Context, recipient string, order *entities.Order) error {
	html := fmt.Sprintf(`
		<div style="font-family:Arial,sans-serif;max-width:480px;margin:auto">
			<h2>Order cancelled</h2>
			<p>Order <b>%s</b> has been cancelled.</p>
			<p>Reason: %s</p>
			<p>If you were charged, the amount will be refunded to your payment method.</p>
		</div>`, order.OrderID, order.CancellationReason)
	return m.send(ctx, recipient, fmt.Sprintf("Order %s cancelled", order.OrderID), html)
}
