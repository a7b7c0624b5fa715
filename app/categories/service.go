package categories

import (
	"context"
	"errors"
	"fmt"

	"github.com/listacompras/listacompras/app/apperr"
	"github.com/listacompras/listacompras/app/validate"
	"github.com/listacompras/listacompras/models"
)

type CategoryProvider interface {
	GetAllCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id uint) (*models.Category, error)
	CategoryNameTaken(ctx context.Context, name string, excludeID uint) (bool, error)
	CategoryHasProducts(ctx context.Context, id uint) (bool, error)
	CreateCategory(ctx context.Context, category *models.Category) error
	UpdateCategory(ctx context.Context, id uint, name string) (int64, error)
	DeleteCategory(ctx context.Context, id uint) (int64, error)
}

var (
	errMissingName = apperr.Validation("falta enviar el nombre")
	errNameTaken   = apperr.Conflict("esa categoria ya existe")
	errHasProducts = apperr.Conflict("esta categoria tiene productos asociados, no se puede borrar")
)

type Service struct {
	repo CategoryProvider
}

func NewService(r CategoryProvider) *Service {
	return &Service{repo: r}
}

func (s *Service) List(ctx context.Context) ([]models.Category, error) {
	categories, err := s.repo.GetAllCategories(ctx)
	if err != nil {
		return nil, apperr.Unexpected("no se pudieron obtener las categorias", err)
	}
	return categories, nil
}

// Get returns the category with id, or nil when there is none.
func (s *Service) Get(ctx context.Context, id uint) (*models.Category, error) {
	category, err := s.repo.GetCategory(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Unexpected("no se pudo obtener la categoria", err)
	}
	return category, nil
}

// Create stores a new category and returns its id.
func (s *Service) Create(ctx context.Context, name string) (uint, error) {
	if !validate.Present(name) {
		return 0, errMissingName
	}
	name = validate.NormalizeName(name)

	taken, err := s.repo.CategoryNameTaken(ctx, name, 0)
	if err != nil {
		return 0, apperr.Unexpected("no se pudo guardar la categoria", err)
	}
	if taken {
		return 0, errNameTaken
	}

	category := &models.Category{Name: name}
	if err := s.repo.CreateCategory(ctx, category); err != nil {
		// The unique index is authoritative; the check above only gives an early answer.
		if errors.Is(err, models.ErrDuplicateName) {
			return 0, errNameTaken
		}
		return 0, apperr.Unexpected("no se pudo guardar la categoria", fmt.Errorf("create category %q: %w", name, err))
	}
	return category.ID, nil
}

// Update renames the category and returns the number of affected rows.
func (s *Service) Update(ctx context.Context, id uint, name string) (int64, error) {
	if !validate.Present(name) {
		return 0, errMissingName
	}
	name = validate.NormalizeName(name)

	taken, err := s.repo.CategoryNameTaken(ctx, name, id)
	if err != nil {
		return 0, apperr.Unexpected("no se pudo modificar la categoria", err)
	}
	if taken {
		return 0, errNameTaken
	}

	affected, err := s.repo.UpdateCategory(ctx, id, name)
	if err != nil {
		if errors.Is(err, models.ErrDuplicateName) {
			return 0, errNameTaken
		}
		return 0, apperr.Unexpected("no se pudo modificar la categoria", fmt.Errorf("update category %d: %w", id, err))
	}
	return affected, nil
}

// Delete removes a category that no product references.
func (s *Service) Delete(ctx context.Context, id uint) (int64, error) {
	inUse, err := s.repo.CategoryHasProducts(ctx, id)
	if err != nil {
		return 0, apperr.Unexpected("no se pudo borrar la categoria", err)
	}
	if inUse {
		return 0, errHasProducts
	}

	affected, err := s.repo.DeleteCategory(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrStillReferenced) {
			return 0, errHasProducts
		}
		return 0, apperr.Unexpected("no se pudo borrar la categoria", fmt.Errorf("delete category %d: %w", id, err))
	}
	return affected, nil
}
