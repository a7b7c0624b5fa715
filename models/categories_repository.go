package models

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type CategoriesRepository struct {
	db *gorm.DB
}

func NewCategoriesRepository(db *gorm.DB) *CategoriesRepository {
	return &CategoriesRepository{
		db: db,
	}
}

func (r *CategoriesRepository) GetAllCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := r.db.WithContext(ctx).Order("id").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *CategoriesRepository) GetCategory(ctx context.Context, id uint) (*Category, error) {
	var category Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *CategoriesRepository) CategoryExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&Category{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CategoryNameTaken reports whether another category already uses name.
// Pass excludeID 0 when no record should be skipped.
func (r *CategoriesRepository) CategoryNameTaken(ctx context.Context, name string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&Category{}).Where("nombre = ?", name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *CategoriesRepository) CategoryHasProducts(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&Product{}).Where("categoria_id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *CategoriesRepository) CreateCategory(ctx context.Context, category *Category) error {
	return classifyWrite(r.db.WithContext(ctx).Create(category).Error)
}

// UpdateCategory renames a category and returns the number of affected rows.
func (r *CategoriesRepository) UpdateCategory(ctx context.Context, id uint, name string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&Category{}).Where("id = ?", id).Update("nombre", name)
	if res.Error != nil {
		return 0, classifyWrite(res.Error)
	}
	return res.RowsAffected, nil
}

func (r *CategoriesRepository) DeleteCategory(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&Category{}, id)
	if res.Error != nil {
		return 0, classifyDelete(res.Error)
	}
	return res.RowsAffected, nil
}
