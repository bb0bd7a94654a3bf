package db

import (
	"context"
	"errors"
	"time"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"gorm.io/gorm"
)

type ReportRepo struct {
	dbDao *DbDao
}

func NewReportRepo(dbDao *DbDao) *ReportRepo {
	return &ReportRepo{dbDao: dbDao}
}

type ProductSales struct {
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
	TotalSold int64  `json:"total_sold"`
}

type SaleRecord struct {
	OrderID   uint      `json:"order_id"`
	ProductID uint      `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Price     int64     `json:"price"`
	OrderDate time.Time `json:"order_date"`
}

// TopSales 依累計銷量排序的前 N 名商品
func (s *ReportRepo) TopSales(ctx context.Context, limit int) ([]ProductSales, error) {
	var results []ProductSales
	err := s.dbDao.WithContext(ctx).Model(&model.Product{}).
		Select("products.product_id AS product_id, products.name AS name, COALESCE(SUM(order_items.quantity), 0) AS total_sold").
		Joins("JOIN order_items ON order_items.product_id = products.product_id").
		Group("products.product_id, products.name").
		Order("total_sold DESC").
		Limit(limit).
		Scan(&results).Error
	return results, err
}

// SalesHistory 訂單項目歷史，新到舊
// productID 為 0 時回傳全部商品
func (s *ReportRepo) SalesHistory(ctx context.Context, productID uint) ([]SaleRecord, error) {
	query := s.dbDao.WithContext(ctx).Model(&model.OrderItem{}).
		Select("order_items.order_id, order_items.product_id, order_items.quantity, order_items.price, orders.order_date").
		Joins("JOIN orders ON orders.order_id = order_items.order_id")
	if productID != 0 {
		query = query.Where("order_items.product_id = ?", productID)
	}

	var records []SaleRecord
	err := query.Order("orders.order_date DESC").Scan(&records).Error
	return records, err
}

// TotalSold 單一商品累計銷量
func (s *ReportRepo) TotalSold(ctx context.Context, productID uint) (int64, error) {
	var total *int64
	err := s.dbDao.WithContext(ctx).Model(&model.OrderItem{}).
		Where("product_id = ?", productID).
		Select("SUM(quantity)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}

// OrderTotals 訂單筆數與總營收
func (s *ReportRepo) OrderTotals(ctx context.Context) (count int64, revenue int64, err error) {
	type totals struct {
		Count   int64
		Revenue *int64
	}
	var t totals
	err = s.dbDao.WithContext(ctx).Model(&model.Order{}).
		Select("COUNT(*) AS count, SUM(total_price) AS revenue").
		Scan(&t).Error
	if err != nil {
		return 0, 0, err
	}
	if t.Revenue != nil {
		revenue = *t.Revenue
	}
	return t.Count, revenue, nil
}

// LastPurchased 單一商品最後成交時間，從未成交回傳 nil
func (s *ReportRepo) LastPurchased(ctx context.Context, productID uint) (*time.Time, error) {
	var order model.Order
	err := s.dbDao.WithContext(ctx).Model(&model.Order{}).
		Joins("JOIN order_items ON order_items.order_id = orders.order_id").
		Where("order_items.product_id = ?", productID).
		Order("orders.order_date DESC").
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order.OrderDate, nil
}
