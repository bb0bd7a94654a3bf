package db

import (
	"context"
	"errors"
	"time"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StockReservationRepo serializes every stock mutation on a single product
// row. Each operation runs inside one transaction that locks the row FOR
// UPDATE before reading stock, so two concurrent check-then-act sequences on
// the same product cannot both observe sufficient stock. Contention is bounded
// to per-product granularity; operations on different products never block
// each other.
type StockReservationRepo struct {
	dbDao *DbDao
}

func NewStockReservationRepo(dbDao *DbDao) *StockReservationRepo {
	return &StockReservationRepo{dbDao: dbDao}
}

// OrderLine is one explicit line of a direct order (cart bypassed).
// Price is the unit price the client submitted for the line.
type OrderLine struct {
	ProductID uint  `json:"product_id"`
	Quantity  int   `json:"quantity"`
	Price     int64 `json:"price"`
}

// Reserve 預留庫存：鎖定商品列、檢查庫存、扣減並寫入購物車
// 同一 (user, product) 重複加入會累加數量而不是新增一列
// 錯誤:
//   - ErrProductNotFound: 商品不存在
//   - ErrInsufficientStock: 庫存不足
//   - ErrInvalidAmount: quantity <= 0
//   - ErrTransientLockConflict: 鎖競爭，可重試
func (s *StockReservationRepo) Reserve(ctx context.Context, productID uint, quantity int, userID uint) (*model.CartItem, error) {
	if quantity <= 0 {
		return nil, ErrInvalidAmount
	}

	var item model.CartItem
	err := s.dbDao.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deductStockLocked(tx, productID, quantity); err != nil {
			return err
		}

		var existing model.CartItem
		err := tx.Where("user_id = ? AND product_id = ?", userID, productID).
			First(&existing).Error
		switch {
		case err == nil:
			existing.Quantity += quantity
			if err := tx.Model(&model.CartItem{}).
				Where("cart_item_id = ?", existing.CartItemID).
				Update("quantity", existing.Quantity).Error; err != nil {
				return err
			}
			item = existing
		case errors.Is(err, gorm.ErrRecordNotFound):
			item = model.CartItem{UserID: userID, ProductID: productID, Quantity: quantity}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		default:
			return err
		}
		return nil
	})
	if err != nil {
		return nil, translateLockErr(err)
	}
	return &item, nil
}

// FinalizeOrder 結算訂單，單一交易內完成
// 購物車非空: 轉換購物車項目為訂單項目（快照當下商品單價），刪除購物車，
// 不再扣庫存（Reserve 時已扣）
// 購物車為空: 走直接下單路徑，逐列以 Reserve 相同的鎖定規則檢查並扣庫存
// 任一列失敗整筆交易回滾，不會留下部分訂單
func (s *StockReservationRepo) FinalizeOrder(ctx context.Context, userID uint, declaredTotal int64, lines []OrderLine) (*model.Order, error) {
	var order model.Order
	err := s.dbDao.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cartItems []model.CartItem
		if err := tx.Where("user_id = ?", userID).Find(&cartItems).Error; err != nil {
			return err
		}

		if len(cartItems) > 0 {
			return finalizeFromCart(tx, &order, userID, declaredTotal, cartItems)
		}
		if len(lines) == 0 {
			return ErrEmptyOrder
		}
		return finalizeDirect(tx, &order, userID, declaredTotal, lines)
	})
	if err != nil {
		return nil, translateLockErr(err)
	}
	return &order, nil
}

// Restock 管理員補貨
// 錯誤:
//   - ErrInvalidAmount: amount <= 0
//   - ErrProductNotFound: 商品不存在
func (s *StockReservationRepo) Restock(ctx context.Context, productID uint, amount int) (int, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}

	var newStock int
	err := s.dbDao.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product model.Product
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		if err := tx.Model(&model.Product{}).
			Where("product_id = ?", productID).
			Update("stock", gorm.Expr("stock + ?", amount)).Error; err != nil {
			return err
		}

		newStock = product.Stock + amount
		return nil
	})
	if err != nil {
		return 0, translateLockErr(err)
	}
	return newStock, nil
}

// deductStockLocked locks the product row, checks stock, then decrements.
// The UPDATE carries a stock >= quantity guard on top of the row lock; zero
// rows affected means the row changed under us and the caller may retry.
func deductStockLocked(tx *gorm.DB, productID uint, quantity int) error {
	var product model.Product
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	if product.Stock < quantity {
		return ErrInsufficientStock
	}

	res := tx.Model(&model.Product{}).
		Where("product_id = ? AND stock >= ?", productID, quantity).
		Update("stock", gorm.Expr("stock - ?", quantity))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrTransientLockConflict
	}
	return nil
}

func finalizeFromCart(tx *gorm.DB, order *model.Order, userID uint, declaredTotal int64, cartItems []model.CartItem) error {
	*order = model.Order{
		UserID:     userID,
		TotalPrice: declaredTotal,
		Status:     model.OrderStatusPaid,
		OrderDate:  time.Now(),
	}
	if err := tx.Create(order).Error; err != nil {
		return err
	}

	for _, ci := range cartItems {
		var product model.Product
		if err := tx.First(&product, ci.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		// 庫存在 Reserve 時已扣，這裡只做單價快照
		oi := model.OrderItem{
			OrderID:   order.OrderID,
			ProductID: ci.ProductID,
			Quantity:  ci.Quantity,
			Price:     product.Price,
		}
		if err := tx.Create(&oi).Error; err != nil {
			return err
		}
		order.OrderItems = append(order.OrderItems, oi)
	}

	// 硬刪除：(user, product) 唯一索引必須讓給下一次加入購物車
	return tx.Unscoped().Where("user_id = ?", userID).Delete(&model.CartItem{}).Error
}

func finalizeDirect(tx *gorm.DB, order *model.Order, userID uint, declaredTotal int64, lines []OrderLine) error {
	*order = model.Order{
		UserID:     userID,
		TotalPrice: declaredTotal,
		Status:     model.OrderStatusPaid,
		OrderDate:  time.Now(),
	}
	if err := tx.Create(order).Error; err != nil {
		return err
	}

	for _, line := range lines {
		if line.Quantity <= 0 {
			return ErrInvalidAmount
		}
		if err := deductStockLocked(tx, line.ProductID, line.Quantity); err != nil {
			return err
		}

		oi := model.OrderItem{
			OrderID:   order.OrderID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     line.Price,
		}
		if err := tx.Create(&oi).Error; err != nil {
			return err
		}
		order.OrderItems = append(order.OrderItems, oi)
	}
	return nil
}
