package entities

import "time"

type Product struct {
	ProductID     string    `json:"product_id"`
	Name          string    `json:"name"`
	Brand         string    `json:"brand"`
	ModelNumber   string    `json:"modelNumber,omitempty"`
	Type          string    `json:"type,omitempty"`
	Description   string    `json:"description,omitempty"`
	Price         float64   `json:"price"`
	DiscountPrice float64   `json:"discountPrice,omitempty"`
	Category      string    `json:"category"`
	WheelSize     string    `json:"wheelSize,omitempty"`
	FrameMaterial string    `json:"frameMaterial,omitempty"`
	BrakeType     string    `json:"brakeType,omitempty"`
	Gears         string    `json:"gears,omitempty"`
	Stock         int       `json:"stock"`
	ImageURLs     []string  `json:"imageUrls"`
	VideoURL      string    `json:"videoUrl,omitempty"`
	Rating        float64   `json:"rating"`
	NumReviews    int       `json:"numReviews"`
	IsFeatured    bool      `json:"isFeatured"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// EffectivePrice is the price charged for one unit: the discounted price when
// one is set, the list price otherwise.
func (p *Product) EffectivePrice() float64 {
	if p.DiscountPrice > 0 && p.DiscountPrice < p.Price {
		return p.DiscountPrice
	}
	return p.Price
}
