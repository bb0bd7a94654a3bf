package model

// Product prices are integer minor currency units. DiscountedPrice is always
// derived from Price and DiscountRate, never written on its own.
type Product struct {
	ProductID       uint        `gorm:"primaryKey" json:"product_id"`
	CategoryID      uint        `gorm:"not null;index" json:"category_id"`
	Name            string      `gorm:"not null;type:varchar(100)" json:"name"`
	Brand           string      `gorm:"not null;type:varchar(100)" json:"brand"`
	Price           int64       `gorm:"not null" json:"price"`
	DiscountRate    int         `gorm:"not null;default:0" json:"discount_rate"`
	DiscountedPrice int64       `gorm:"not null;default:0" json:"discounted_price"`
	Stock           int         `gorm:"not null;default:0" json:"stock"`
	ImageURL        string      `gorm:"type:varchar(255)" json:"image_url"`
	SKU             string      `gorm:"type:varchar(100)" json:"sku"`
	OrderItems      []OrderItem `gorm:"foreignKey:ProductID" json:"-"`
	BaseModel
}

// DiscountedPriceOf computes floor(price * (100-rate) / 100).
func DiscountedPriceOf(price int64, discountRate int) int64 {
	return price * int64(100-discountRate) / 100
}

func (p *Product) ApplyDiscount() {
	p.DiscountedPrice = DiscountedPriceOf(p.Price, p.DiscountRate)
}
