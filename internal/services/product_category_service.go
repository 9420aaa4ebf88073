package services

import (
	"context"
	"fmt"

	"travelrental/internal/domain"
	"travelrental/internal/repos"
)

// ProductCategoryService manages the category set attached to a listing.
type ProductCategoryService struct {
	store *repos.Store
}

func NewProductCategoryService(store *repos.Store) *ProductCategoryService {
	return &ProductCategoryService{store: store}
}

func (s *ProductCategoryService) WithStore(store *repos.Store) *ProductCategoryService {
	return &ProductCategoryService{store: store}
}

func (s *ProductCategoryService) ListCategories(ctx context.Context) ([]CategoryDto, error) {
	cats, err := s.store.Categories.List(ctx)
	if err != nil {
		return nil, err
	}
	return toCategoryDtos(cats), nil
}

// CreateProductCategories links product to every id. Duplicates are ignored and any unknown id fails the whole call.
func (s *ProductCategoryService) CreateProductCategories(ctx context.Context, product domain.Product, ids []int64) ([]CategoryDto, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return []CategoryDto{}, nil
	}
	cats, err := s.store.Categories.ByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(cats) != len(ids) {
		found := make(map[int64]bool, len(cats))
		for _, c := range cats {
			found[c.ID] = true
		}
		for _, id := range ids {
			if !found[id] {
				return nil, &BusinessError{Code: CodeCategoryNotFound, Message: fmt.Sprintf("category %d not found", id)}
			}
		}
	}
	for _, c := range cats {
		if err := s.store.Categories.LinkProduct(ctx, product.ID, c.ID); err != nil {
			return nil, err
		}
	}
	return toCategoryDtos(cats), nil
}

func (s *ProductCategoryService) DeleteProductCategoriesByProductID(ctx context.Context, productID string) error {
	return s.store.Categories.UnlinkProduct(ctx, productID)
}

func (s *ProductCategoryService) FindCategoriesByProductID(ctx context.Context, productID string) ([]CategoryDto, error) {
	cats, err := s.store.Categories.ByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return toCategoryDtos(cats), nil
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
