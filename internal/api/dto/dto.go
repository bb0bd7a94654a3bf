package dto

import (
	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
)

type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserResponse struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func ConvertUserToResponse(user *model.User) UserResponse {
	return UserResponse{
		UserID:   user.UserID,
		Username: user.UserName,
		Email:    user.Email,
		Role:     user.Role,
	}
}

type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SigninResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

type CategoryRequest struct {
	Name string `json:"name"`
}

type CreateProductRequest struct {
	Name         string `json:"name"`
	Brand        string `json:"brand"`
	Price        int64  `json:"price"`
	DiscountRate int    `json:"discount_rate"`
	Stock        int    `json:"stock"`
	CategoryID   uint   `json:"category_id"`
	ImageURL     string `json:"image_url"`
	SKU          string `json:"sku"`
}

type AddCartItemRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

type TotalQuantityResponse struct {
	TotalQuantity int `json:"total_quantity"`
}

type RestockRequest struct {
	Amount int `json:"amount"`
}

type RestockResponse struct {
	ProductID uint `json:"product_id"`
	NewStock  int  `json:"new_stock"`
}
