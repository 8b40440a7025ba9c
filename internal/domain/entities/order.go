package entities

import "time"

type Status string

const (
	StatusCart      Status = "cart"
	StatusWaiting   Status = "waiting"
	StatusShipping  Status = "shipping"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// transitions is the single source of truth for the order state machine.
// cart -> waiting happens on payment settlement; the rest are admin driven.
var transitions = map[Status][]Status{
	StatusCart:     {StatusWaiting},
	StatusWaiting:  {StatusShipping, StatusCancelled},
	StatusShipping: {StatusCompleted, StatusCancelled},
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

func ValidStatus(status string) bool {
	switch Status(status) {
	case StatusCart, StatusWaiting, StatusShipping, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentCOD    PaymentMethod = "COD"
	PaymentOnline PaymentMethod = "ONLINE"
)

func ValidPaymentMethod(method string) bool {
	return PaymentMethod(method) == PaymentCOD || PaymentMethod(method) == PaymentOnline
}

// OrderItem is a snapshot taken at order creation; name and price are copied
// from the product so later catalog edits never change a placed order.
type OrderItem struct {
	ProductID string  `json:"product"`
	Name      string  `json:"name"`
	Image     string  `json:"image,omitempty"`
	Qty       int     `json:"qty"`
	Price     float64 `json:"price"`
}

type ShippingAddress struct {
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	PostalCode  string `json:"postalCode"`
	Country     string `json:"country"`
}

// PaymentInfo is populated only by payment settlement. OrderID holds the
// gateway-side order id and is written exactly once.
type PaymentInfo struct {
	PaymentID string `json:"id,omitempty"`
	Status    string `json:"status,omitempty"`
	OrderID   string `json:"orderId,omitempty"`
	Signature string `json:"signature,omitempty"`
}

type Order struct {
	OrderID            string          `json:"order_id"`
	UserID             string          `json:"user"`
	UserName           string          `json:"userName,omitempty"`
	UserEmail          string          `json:"userEmail,omitempty"`
	Items              []OrderItem     `json:"orderItems"`
	ShippingAddress    ShippingAddress `json:"shippingAddress"`
	PaymentMethod      PaymentMethod   `json:"paymentMethod"`
	PaymentInfo        PaymentInfo     `json:"paymentInfo"`
	ItemsPrice         float64         `json:"itemsPrice"`
	TaxPrice           float64         `json:"taxPrice"`
	ShippingPrice      float64         `json:"shippingPrice"`
	TotalPrice         float64         `json:"totalPrice"`
	Status             Status          `json:"status"`
	IsPaid             bool            `json:"isPaid"`
	PaidAt             *time.Time      `json:"paidAt,omitempty"`
	IsShipped          bool            `json:"isShipped"`
	ShippedAt          *time.Time      `json:"shippedAt,omitempty"`
	IsDelivered        bool            `json:"isDelivered"`
	DeliveredAt        *time.Time      `json:"deliveredAt,omitempty"`
	DeliveryPartner    string          `json:"deliveryPartner,omitempty"`
	TrackingID         string          `json:"trackingId,omitempty"`
	TrackingLink       string          `json:"trackingLink,omitempty"`
	CancellationReason string          `json:"cancellationReason,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}
