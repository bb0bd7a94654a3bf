package model

// CartItem holds claimed-but-not-yet-ordered stock. One row per
// (user, product); repeated adds accumulate Quantity.
type CartItem struct {
	CartItemID uint `gorm:"primaryKey" json:"id"`
	UserID     uint `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"user_id"`
	ProductID  uint `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"product_id"`
	Quantity   int  `gorm:"not null" json:"quantity"`
	BaseModel
}
