package model

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	UserID         uint   `gorm:"primaryKey" json:"user_id"`
	UserName       string `gorm:"not null;type:varchar(50)" json:"username"`
	Email          string `gorm:"unique;not null;type:varchar(100)" json:"email"`
	HashedPassword string `gorm:"not null;type:varchar(100)" json:"-"`
	Role           string `gorm:"not null;type:varchar(20);default:user" json:"role"`
	BaseModel
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
