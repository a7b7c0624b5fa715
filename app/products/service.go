package products

import (
	"context"
	"errors"
	"fmt"

	"github.com/listacompras/listacompras/app/apperr"
	"github.com/listacompras/listacompras/app/validate"
	"github.com/listacompras/listacompras/models"
)

type ProductProvider interface {
	GetAllProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id uint) (*models.Product, error)
	ProductNameTaken(ctx context.Context, name string, excludeID uint) (bool, error)
	ProductHasListItems(ctx context.Context, id uint) (bool, error)
	CreateProduct(ctx context.Context, product *models.Product) error
	UpdateProduct(ctx context.Context, product *models.Product) (int64, error)
	DeleteProduct(ctx context.Context, id uint) (int64, error)
}

type CategoryChecker interface {
	CategoryExists(ctx context.Context, id uint) (bool, error)
}

// Input holds the writable fields of a product.
type Input struct {
	Name        string
	CategoryID  uint
	Description string
}

var (
	errMissingFields   = apperr.Validation("no enviaste los datos obligatorios que son nombre y categoria")
	errUnknownCategory = apperr.NotFound("esa categoria no existe")
	errNameTaken       = apperr.Conflict("ese nombre de producto ya existe")
	errHasListItems    = apperr.Conflict("este producto tiene items asociados, no se puede borrar")
)

type Service struct {
	repo       ProductProvider
	categories CategoryChecker
}

func NewService(r ProductProvider, c CategoryChecker) *Service {
	return &Service{repo: r, categories: c}
}

func (s *Service) List(ctx context.Context) ([]models.Product, error) {
	products, err := s.repo.GetAllProducts(ctx)
	if err != nil {
		return nil, apperr.Unexpected("no se pudieron obtener los productos", err)
	}
	return products, nil
}

// Get returns the product with id, or nil when there is none.
func (s *Service) Get(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.repo.GetProduct(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Unexpected("no se pudo obtener el producto", err)
	}
	return product, nil
}

// check runs the rules shared by create and update. excludeID is the id of
// the product being updated, 0 on create.
func (s *Service) check(ctx context.Context, in Input, excludeID uint) (*models.Product, error) {
	if !validate.Present(in.Name) || in.CategoryID == 0 {
		return nil, errMissingFields
	}

	exists, err := s.categories.CategoryExists(ctx, in.CategoryID)
	if err != nil {
		return nil, apperr.Unexpected("no se pudo verificar la categoria", err)
	}
	if !exists {
		return nil, errUnknownCategory
	}

	name := validate.NormalizeName(in.Name)
	taken, err := s.repo.ProductNameTaken(ctx, name, excludeID)
	if err != nil {
		return nil, apperr.Unexpected("no se pudo verificar el nombre del producto", err)
	}
	if taken {
		return nil, errNameTaken
	}

	return &models.Product{
		ID:          excludeID,
		Name:        name,
		Description: in.Description,
		CategoryID:  in.CategoryID,
	}, nil
}

// storeError maps a rejected write back to the rule the store enforced.
func storeError(msg string, err error) error {
	switch {
	case errors.Is(err, models.ErrDuplicateName):
		return errNameTaken
	case errors.Is(err, models.ErrMissingReference):
		return errUnknownCategory
	}
	return apperr.Unexpected(msg, err)
}

// Create stores a new product and returns its id.
func (s *Service) Create(ctx context.Context, in Input) (uint, error) {
	product, err := s.check(ctx, in, 0)
	if err != nil {
		return 0, err
	}

	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return 0, storeError("no se pudo guardar el producto", fmt.Errorf("create product %q: %w", product.Name, err))
	}
	return product.ID, nil
}

// Update overwrites the product with id and returns the number of affected rows.
func (s *Service) Update(ctx context.Context, id uint, in Input) (int64, error) {
	product, err := s.check(ctx, in, id)
	if err != nil {
		return 0, err
	}

	affected, err := s.repo.UpdateProduct(ctx, product)
	if err != nil {
		return 0, storeError("no se pudo modificar el producto", fmt.Errorf("update product %d: %w", id, err))
	}
	return affected, nil
}

// Delete removes a product that no list item references.
func (s *Service) Delete(ctx context.Context, id uint) (int64, error) {
	inUse, err := s.repo.ProductHasListItems(ctx, id)
	if err != nil {
		return 0, apperr.Unexpected("no se pudo borrar el producto", err)
	}
	if inUse {
		return 0, errHasListItems
	}

	affected, err := s.repo.DeleteProduct(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrStillReferenced) {
			return 0, errHasListItems
		}
		return 0, apperr.Unexpected("no se pudo borrar el producto", fmt.Errorf("delete product %d: %w", id, err))
	}
	return affected, nil
}
