package model

type Category struct {
	CategoryID uint      `gorm:"primaryKey" json:"category_id"`
	Name       string    `gorm:"not null;type:varchar(100)" json:"name"`
	Products   []Product `gorm:"foreignKey:CategoryID" json:"-"`
	BaseModel
}
