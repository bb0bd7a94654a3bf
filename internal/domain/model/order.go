package model

import "time"

const (
	OrderStatusPaid      = "paid"
	OrderStatusShipped   = "shipped"
	OrderStatusCancelled = "cancelled"
)

type Order struct {
	OrderID    uint        `gorm:"primaryKey" json:"order_id"`
	UserID     uint        `gorm:"not null;index" json:"user_id"`
	TotalPrice int64       `gorm:"not null" json:"total_price"`
	Status     string      `gorm:"not null;type:varchar(20);default:paid" json:"status"`
	OrderDate  time.Time   `gorm:"not null" json:"order_date"`
	OrderItems []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	BaseModel
}

// OrderItem snapshots quantity and unit price at order time. Later product
// price changes never touch historical orders.
type OrderItem struct {
	OrderItemID uint  `gorm:"primaryKey" json:"id"`
	OrderID     uint  `gorm:"not null;index" json:"order_id"`
	ProductID   uint  `gorm:"not null;index" json:"product_id"`
	Quantity    int   `gorm:"not null" json:"quantity"`
	Price       int64 `gorm:"not null" json:"price"`
	BaseModel
}
