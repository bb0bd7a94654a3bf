package db

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"gorm.io/gorm"
)

type CategoryRepo struct {
	dbDao *DbDao
}

func NewCategoryRepo(dbDao *DbDao) *CategoryRepo {
	return &CategoryRepo{dbDao: dbDao}
}

// Create - 創建分類
func (s *CategoryRepo) CreateCategory(ctx context.Context, category *model.Category) error {
	return s.dbDao.WithContext(ctx).Create(category).Error
}

// Read - 根據ID查詢分類
func (s *CategoryRepo) GetCategoryByID(ctx context.Context, id uint) (*model.Category, error) {
	var category model.Category
	err := s.dbDao.WithContext(ctx).First(&category, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

// Read - 查詢所有分類
func (s *CategoryRepo) GetAllCategories(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	err := s.dbDao.WithContext(ctx).Find(&categories).Error
	return categories, err
}
