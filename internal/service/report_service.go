package service

import (
	"context"
	"time"

	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/db"
	"github.com/shopspring/decimal"
)

const defaultTopSalesLimit = 10

type ProductStats struct {
	ProductID      uint       `json:"product_id"`
	Name           string     `json:"name"`
	TotalSold      int64      `json:"total_sold"`
	LastPurchased  *time.Time `json:"last_purchased"`
	RemainingStock int        `json:"remaining_stock"`
}

type RevenueSummary struct {
	OrderCount        int64           `json:"order_count"`
	TotalRevenue      int64           `json:"total_revenue"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
}

type IReportService interface {
	TopSales(ctx context.Context, limit int) ([]db.ProductSales, error)
	SalesHistory(ctx context.Context, productID uint) ([]db.SaleRecord, error)
	GetProductStats(ctx context.Context, productID uint) (*ProductStats, error)
	Revenue(ctx context.Context) (*RevenueSummary, error)
}

type ReportService struct {
	reportRepo  db.IReportRepository
	productRepo db.IProductRepository
}

func NewReportService(reportRepo db.IReportRepository, productRepo db.IProductRepository) *ReportService {
	return &ReportService{reportRepo: reportRepo, productRepo: productRepo}
}

func (s *ReportService) TopSales(ctx context.Context, limit int) ([]db.ProductSales, error) {
	if limit <= 0 {
		limit = defaultTopSalesLimit
	}
	return s.reportRepo.TopSales(ctx, limit)
}

func (s *ReportService) SalesHistory(ctx context.Context, productID uint) ([]db.SaleRecord, error) {
	return s.reportRepo.SalesHistory(ctx, productID)
}

func (s *ReportService) GetProductStats(ctx context.Context, productID uint) (*ProductStats, error) {
	product, err := s.productRepo.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	totalSold, err := s.reportRepo.TotalSold(ctx, productID)
	if err != nil {
		return nil, err
	}

	lastPurchased, err := s.reportRepo.LastPurchased(ctx, productID)
	if err != nil {
		return nil, err
	}

	return &ProductStats{
		ProductID:      productID,
		Name:           product.Name,
		TotalSold:      totalSold,
		LastPurchased:  lastPurchased,
		RemainingStock: product.Stock,
	}, nil
}

// Revenue 營收統計，平均客單價以 decimal 計算到分位以下兩位
func (s *ReportService) Revenue(ctx context.Context) (*RevenueSummary, error) {
	count, revenue, err := s.reportRepo.OrderTotals(ctx)
	if err != nil {
		return nil, err
	}

	avg := decimal.Zero
	if count > 0 {
		avg = decimal.NewFromInt(revenue).Div(decimal.NewFromInt(count)).Round(2)
	}

	return &RevenueSummary{
		OrderCount:        count,
		TotalRevenue:      revenue,
		AverageOrderValue: avg,
	}, nil
}

var _ IReportService = (*ReportService)(nil)
