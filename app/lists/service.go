package lists

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/listacompras/listacompras/app/apperr"
	"github.com/listacompras/listacompras/app/validate"
	"github.com/listacompras/listacompras/models"
)

type ListProvider interface {
	GetAllLists(ctx context.Context) ([]models.ListHeader, error)
	GetList(ctx context.Context, id uint) (*models.ListWithItems, error)
	CreateList(ctx context.Context, header *models.ListHeader, items []models.ListItem) error
	DeleteList(ctx context.Context, id uint) (int64, error)
	DeleteListItem(ctx context.Context, listID, itemID uint) (int64, error)
}

// ItemInput is one line of a list being created.
type ItemInput struct {
	ProductID uint
	Quantity  decimal.Decimal
}

var (
	errInvalidList      = apperr.Validation("existen errores que impiden guardar: la lista necesita nombre y al menos un item")
	errListNotFound     = apperr.NotFound("no se encontro la lista")
	errUpdateNotAllowed = apperr.MethodNotAllowed("metodo no permitido")
)

type Service struct {
	repo ListProvider
}

func NewService(r ListProvider) *Service {
	return &Service{repo: r}
}

// List returns every list header, without items.
func (s *Service) List(ctx context.Context) ([]models.ListHeader, error) {
	headers, err := s.repo.GetAllLists(ctx)
	if err != nil {
		return nil, apperr.Unexpected("no se pudieron obtener las listas", err)
	}
	return headers, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*models.ListWithItems, error) {
	list, err := s.repo.GetList(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return nil, errListNotFound
	}
	if err != nil {
		return nil, apperr.Unexpected("no se pudo obtener la lista", err)
	}
	return list, nil
}

// Create stores a list with all of its items and returns the new header id.
// Either every item references an existing product and everything is
// stored, or nothing is.
func (s *Service) Create(ctx context.Context, name string, items []ItemInput) (uint, error) {
	if !validate.Present(name) || len(items) == 0 {
		return 0, errInvalidList
	}

	rows := make([]models.ListItem, len(items))
	for i, item := range items {
		if item.ProductID == 0 {
			return 0, apperr.Validation(fmt.Sprintf("el item %d no tiene producto_id", i+1))
		}
		if !validate.PositiveQuantity(item.Quantity) {
			return 0, apperr.Validation(fmt.Sprintf("el item %d debe tener una cantidad mayor a cero", i+1))
		}
		if !validate.QuantityFits(item.Quantity) {
			return 0, apperr.Validation(fmt.Sprintf("el item %d tiene una cantidad fuera de rango: hasta 2 decimales y menor a 100000000", i+1))
		}
		rows[i] = models.ListItem{ProductID: item.ProductID, Quantity: item.Quantity}
	}

	header := &models.ListHeader{Name: name}
	if err := s.repo.CreateList(ctx, header, rows); err != nil {
		var missing *models.MissingProductsError
		switch {
		case errors.As(err, &missing):
			return 0, apperr.NotFound(fmt.Sprintf("al menos uno de los productos no existe: %v", missing.IDs))
		case errors.Is(err, models.ErrMissingReference):
			return 0, apperr.NotFound("al menos uno de los productos no existe")
		}
		return 0, apperr.Unexpected("no se pudo guardar la lista", fmt.Errorf("create list %q: %w", name, err))
	}
	return header.ID, nil
}

// Update is not supported for lists.
func (s *Service) Update(ctx context.Context, id uint) error {
	return errUpdateNotAllowed
}

// Delete removes the list and all of its items, returning the number of
// removed headers.
func (s *Service) Delete(ctx context.Context, id uint) (int64, error) {
	affected, err := s.repo.DeleteList(ctx, id)
	if err != nil {
		return 0, apperr.Unexpected("no se pudo borrar la lista", fmt.Errorf("delete list %d: %w", id, err))
	}
	return affected, nil
}

// DeleteItem removes one item of a list. No matching item is not an error;
// the returned count is 0 in that case.
func (s *Service) DeleteItem(ctx context.Context, listID, itemID uint) (int64, error) {
	affected, err := s.repo.DeleteListItem(ctx, listID, itemID)
	if err != nil {
		return 0, apperr.Unexpected("no se pudo borrar el item", fmt.Errorf("delete item %d of list %d: %w", itemID, listID, err))
	}
	return affected, nil
}
