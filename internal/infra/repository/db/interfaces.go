package db

import (
	"context"
	"time"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
)

// IUserRepository User 相關操作介面
type IUserRepository interface {
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	GetUserByID(ctx context.Context, id uint) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	UserExists(ctx context.Context, username, email string) (bool, error)
	UpdateUser(ctx context.Context, user *model.User) error
	DeleteUser(ctx context.Context, id uint) error
}

// ICategoryRepository Category 相關操作介面
type ICategoryRepository interface {
	CreateCategory(ctx context.Context, category *model.Category) error
	GetCategoryByID(ctx context.Context, id uint) (*model.Category, error)
	GetAllCategories(ctx context.Context) ([]model.Category, error)
}

// IProductRepository Product 相關操作介面
type IProductRepository interface {
	CreateProduct(ctx context.Context, product *model.Product) error
	GetProductByID(ctx context.Context, productID uint) (*model.Product, error)
	GetAllProducts(ctx context.Context) ([]model.Product, error)
	GetProductsInStock(ctx context.Context) ([]model.Product, error)
	GetProductStock(ctx context.Context, productID uint) (int, error)
	PatchProductFields(ctx context.Context, productID uint, updates map[string]interface{}) error
	DeleteProduct(ctx context.Context, productID uint) error
}

// ICartRepository CartItem 查詢介面，寫入一律走 IStockReservation
type ICartRepository interface {
	GetCartItemsByUserID(ctx context.Context, userID uint) ([]model.CartItem, error)
	GetCartItem(ctx context.Context, userID, productID uint) (*model.CartItem, error)
	GetTotalQuantity(ctx context.Context, userID uint) (int, error)
}

// IOrderRepository Order 相關操作介面
type IOrderRepository interface {
	GetOrderByID(ctx context.Context, id uint) (*model.Order, error)
	GetOrdersByUserID(ctx context.Context, userID uint) ([]model.Order, error)
	GetAllOrders(ctx context.Context) ([]model.Order, error)
	UpdateOrderStatus(ctx context.Context, id uint, status string) error
}

// IStockReservation 庫存預留引擎
// 所有庫存異動（預留、結算、補貨）的唯一入口
type IStockReservation interface {
	Reserve(ctx context.Context, productID uint, quantity int, userID uint) (*model.CartItem, error)
	FinalizeOrder(ctx context.Context, userID uint, declaredTotal int64, lines []OrderLine) (*model.Order, error)
	Restock(ctx context.Context, productID uint, amount int) (int, error)
}

// IReportRepository 管理報表查詢介面
type IReportRepository interface {
	TopSales(ctx context.Context, limit int) ([]ProductSales, error)
	SalesHistory(ctx context.Context, productID uint) ([]SaleRecord, error)
	TotalSold(ctx context.Context, productID uint) (int64, error)
	LastPurchased(ctx context.Context, productID uint) (*time.Time, error)
	OrderTotals(ctx context.Context) (count int64, revenue int64, err error)
}

var (
	_ IUserRepository     = (*UserRepo)(nil)
	_ ICategoryRepository = (*CategoryRepo)(nil)
	_ IProductRepository  = (*ProductRepo)(nil)
	_ ICartRepository     = (*CartRepo)(nil)
	_ IOrderRepository    = (*OrderRepo)(nil)
	_ IStockReservation   = (*StockReservationRepo)(nil)
	_ IReportRepository   = (*ReportRepo)(nil)
)
