package models

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductsRepository struct {
	db *gorm.DB
}

func NewProductsRepository(db *gorm.DB) *ProductsRepository {
	return &ProductsRepository{
		db: db,
	}
}

func (r *ProductsRepository) GetAllProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := r.db.WithContext(ctx).Order("id").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductsRepository) GetProduct(ctx context.Context, id uint) (*Product, error) {
	var product Product
	if err := r.db.WithContext(ctx).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err // Other DB error
	}
	return &product, nil
}

// ProductNameTaken reports whether another product already uses name.
// Pass excludeID 0 when no record should be skipped.
func (r *ProductsRepository) ProductNameTaken(ctx context.Context, name string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&Product{}).Where("nombre = ?", name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ProductsRepository) ProductHasListItems(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&ListItem{}).Where("producto_id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ProductsRepository) CreateProduct(ctx context.Context, product *Product) error {
	return classifyWrite(r.db.WithContext(ctx).Omit(clause.Associations).Create(product).Error)
}

// UpdateProduct overwrites name, description and category of the product
// with product.ID and returns the number of affected rows.
func (r *ProductsRepository) UpdateProduct(ctx context.Context, product *Product) (int64, error) {
	res := r.db.WithContext(ctx).Model(&Product{}).Where("id = ?", product.ID).Updates(map[string]any{
		"nombre":       product.Name,
		"descripcion":  product.Description,
		"categoria_id": product.CategoryID,
	})
	if res.Error != nil {
		return 0, classifyWrite(res.Error)
	}
	return res.RowsAffected, nil
}

func (r *ProductsRepository) DeleteProduct(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&Product{}, id)
	if res.Error != nil {
		return 0, classifyDelete(res.Error)
	}
	return res.RowsAffected, nil
}
