package mongodb

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderDocument struct {
	ID                 primitive.ObjectID  `bson:"_id,omitempty"`
	OrderID            string              `bson:"order_id"`
	UserID             string              `bson:"user_id"`
	UserName           string              `bson:"user_name,omitempty"`
	UserEmail          string              `bson:"user_email,omitempty"`
	Items              []OrderItemDocument `bson:"order_items"`
	ShippingAddress    AddressDocument     `bson:"shipping_address"`
	PaymentMethod      string              `bson:"payment_method"`
	PaymentInfo        PaymentInfoDocument `bson:"payment_info"`
	ItemsPrice         float64             `bson:"items_price"`
	TaxPrice           float64             `bson:"tax_price"`
	ShippingPrice      float64             `bson:"shipping_price"`
	TotalPrice         float64             `bson:"total_price"`
	Status             string              `bson:"status"`
	IsPaid             bool                `bson:"is_paid"`
	PaidAt             *time.Time          `bson:"paid_at,omitempty"`
	IsShipped          bool                `bson:"is_shipped"`
	ShippedAt          *time.Time          `bson:"shipped_at,omitempty"`
	IsDelivered        bool                `bson:"is_delivered"`
	DeliveredAt        *time.Time          `bson:"delivered_at,omitempty"`
	DeliveryPartner    string              `bson:"delivery_partner,omitempty"`
	TrackingID         string              `bson:"tracking_id,omitempty"`
	TrackingLink       string              `bson:"tracking_link,omitempty"`
	CancellationReason string              `bson:"cancellation_reason,omitempty"`
	CreatedAt          time.Time           `bson:"created_at"`
	UpdatedAt          time.Time           `bson:"updated_at"`
}

type OrderItemDocument struct {
	ProductID string  `bson:"product_id"`
	Name      string  `bson:"name"`
	Image     string  `bson:"image,omitempty"`
	Qty       int     `bson:"qty"`
	Price     float64 `bson:"price"`
}

type AddressDocument struct {
	FullName    string `bson:"full_name"`
	PhoneNumber string `bson:"phone_number"`
	Address     string `bson:"address"`
	City        string `bson:"city"`
	State       string `bson:"state"`
	PostalCode  string `bson:"postal_code"`
	Country     string `bson:"country"`
}

type PaymentInfoDocument struct {
	PaymentID string `bson:"payment_id,omitempty"`
	Status    string `bson:"status,omitempty"`
	OrderID   string `bson:"order_id"`
	Signature string `bson:"signature,omitempty"`
}

type ProductDocument struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	ProductID     string             `bson:"product_id"`
	Name          string             `bson:"name"`
	Brand         string             `bson:"brand"`
	ModelNumber   string             `bson:"model_number,omitempty"`
	Type          string             `bson:"type,omitempty"`
	Description   string             `bson:"description,omitempty"`
	Price         float64            `bson:"price"`
	DiscountPrice float64            `bson:"discount_price,omitempty"`
	Category      string             `bson:"category"`
	WheelSize     string             `bson:"wheel_size,omitempty"`
	FrameMaterial string             `bson:"frame_material,omitempty"`
	BrakeType     string             `bson:"brake_type,omitempty"`
	Gears         string             `bson:"gears,omitempty"`
	Stock         int                `bson:"stock"`
	ImageURLs     []string           `bson:"image_urls"`
	VideoURL      string             `bson:"video_url,omitempty"`
	Rating        float64            `bson:"rating"`
	NumReviews    int                `bson:"num_reviews"`
	IsFeatured    bool               `bson:"is_featured"`
	CreatedAt     time.Time          `bson:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at"`
}

type UserDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	UserID       string             `bson:"user_id"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email"`
	Phone        string             `bson:"phone,omitempty"`
	PasswordHash string             `bson:"password_hash,omitempty"`
	Avatar       string             `bson:"avatar,omitempty"`
	GoogleID     string             `bson:"google_id,omitempty"`
	OTPHash      string             `bson:"otp_hash,omitempty"`
	OTPExpires   *time.Time         `bson:"otp_expires,omitempty"`
	OTPAttempts  int                `bson:"otp_attempts,omitempty"`
	IsVerified   bool               `bson:"is_verified"`
	IsBlocked    bool               `bson:"is_blocked"`
	IsAdmin      bool               `bson:"is_admin"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

type ReviewDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	ReviewID  string             `bson:"review_id"`
	ProductID string             `bson:"product_id"`
	UserID    string             `bson:"user_id,omitempty"`
	Name      string             `bson:"name"`
	Rating    int                `bson:"rating"`
	Comment   string             `bson:"comment"`
	CreatedAt time.Time          `bson:"created_at"`
}

type GameScoreDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"user_id"`
	UserName  string             `bson:"user_name,omitempty"`
	GameName  string             `bson:"game_name"`
	Level     int                `bson:"level"`
	Score     int                `bson:"score"`
	HighScore int                `bson:"high_score"`
	PlayTime  int                `bson:"play_time"`
	UpdatedAt time.Time          `bson:"updated_at"`
}
