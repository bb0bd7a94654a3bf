package db

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"gorm.io/gorm"
)

type CartRepo struct {
	dbDao *DbDao
}

func NewCartRepo(dbDao *DbDao) *CartRepo {
	return &CartRepo{dbDao: dbDao}
}

// Read - 查詢用戶購物車所有項目
func (s *CartRepo) GetCartItemsByUserID(ctx context.Context, userID uint) ([]model.CartItem, error) {
	var items []model.CartItem
	err := s.dbDao.WithContext(ctx).Where("user_id = ?", userID).Find(&items).Error
	return items, err
}

// Read - 查詢單一 (user, product) 購物車項目
func (s *CartRepo) GetCartItem(ctx context.Context, userID, productID uint) (*model.CartItem, error) {
	var item model.CartItem
	err := s.dbDao.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// Read - 購物車總數量
func (s *CartRepo) GetTotalQuantity(ctx context.Context, userID uint) (int, error) {
	var total *int64
	err := s.dbDao.WithContext(ctx).Model(&model.CartItem{}).
		Where("user_id = ?", userID).
		Select("SUM(quantity)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return int(*total), nil
}
