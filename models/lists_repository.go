package models

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MissingProductsError lists every product id of a list create that does
// not resolve to a stored product.
type MissingProductsError struct {
	IDs []uint
}

func (e *MissingProductsError) Error() string {
	return fmt.Sprintf("products not found: %v", e.IDs)
}

func (e *MissingProductsError) Is(target error) bool {
	return target == ErrMissingReference
}

type ListsRepository struct {
	db *gorm.DB
}

func NewListsRepository(db *gorm.DB) *ListsRepository {
	return &ListsRepository{
		db: db,
	}
}

func (r *ListsRepository) GetAllLists(ctx context.Context) ([]ListHeader, error) {
	var headers []ListHeader
	if err := r.db.WithContext(ctx).Order("id").Find(&headers).Error; err != nil {
		return nil, err
	}
	return headers, nil
}

// GetList returns the header with its items ordered by id.
func (r *ListsRepository) GetList(ctx context.Context, id uint) (*ListWithItems, error) {
	db := r.db.WithContext(ctx)

	var list ListWithItems
	if err := db.First(&list.ListHeader, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := db.Where("listaencabezado_id = ?", id).Order("id").Find(&list.Items).Error; err != nil {
		return nil, err
	}
	return &list, nil
}

// CreateList stores header and items in one transaction. Every product id
// is resolved before anything is written; if any is missing nothing is
// stored and a *MissingProductsError is returned.
func (r *ListsRepository) CreateList(ctx context.Context, header *ListHeader, items []ListItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := missingProducts(tx, items); err != nil {
			return err
		}

		if err := tx.Omit(clause.Associations).Create(header).Error; err != nil {
			return classifyWrite(err)
		}

		for i := range items {
			items[i].ListHeaderID = header.ID
		}
		if len(items) == 0 {
			return nil
		}
		if err := tx.Omit(clause.Associations).Create(&items).Error; err != nil {
			return classifyWrite(err)
		}
		return nil
	})
}

func missingProducts(tx *gorm.DB, items []ListItem) error {
	ids := make([]uint, 0, len(items))
	for _, item := range items {
		if !slices.Contains(ids, item.ProductID) {
			ids = append(ids, item.ProductID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	var found []uint
	if err := tx.Model(&Product{}).Where("id IN ?", ids).Pluck("id", &found).Error; err != nil {
		return err
	}

	var missing []uint
	for _, id := range ids {
		if !slices.Contains(found, id) {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return &MissingProductsError{IDs: missing}
	}
	return nil
}

// DeleteList removes the items of a list and then the header itself, in one
// transaction. It returns the number of deleted headers.
func (r *ListsRepository) DeleteList(ctx context.Context, id uint) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("listaencabezado_id = ?", id).Delete(&ListItem{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&ListHeader{}, id)
		if res.Error != nil {
			return classifyDelete(res.Error)
		}
		deleted = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

// DeleteListItem removes a single item of a list. An item that does not
// exist, or belongs to another list, is not an error: zero rows are reported.
func (r *ListsRepository) DeleteListItem(ctx context.Context, listID, itemID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND listaencabezado_id = ?", itemID, listID).
		Delete(&ListItem{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
