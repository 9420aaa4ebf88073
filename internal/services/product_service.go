package services

import (
	"context"
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"travelrental/internal/cache"
	"travelrental/internal/domain"
	"travelrental/internal/repos"
	"travelrental/internal/validate"
)

const topN = 3

// ProductService owns listing writes and reads. Every write runs in one transaction and
// invalidates the cached detail only after commit.
type ProductService struct {
	store        *repos.Store
	members      *MemberService
	categories   *ProductCategoryService
	images       *ImageService
	reservations *ReservationService
	details      *cache.Cache[ProductDetail]

	// Popularity seeds the ranking counters of new listings.
	Popularity func() domain.Popularity
}

func NewProductService(
	store *repos.Store,
	members *MemberService,
	categories *ProductCategoryService,
	images *ImageService,
	reservations *ReservationService,
	details *cache.Cache[ProductDetail],
) *ProductService {
	return &ProductService{
		store:        store,
		members:      members,
		categories:   categories,
		images:       images,
		reservations: reservations,
		details:      details,
		Popularity:   randomPopularity,
	}
}

// randomPopularity returns placeholder counters for demo listings. The rate count is never zero.
func randomPopularity() domain.Popularity {
	score := 5 + rand.IntN(995)
	return domain.Popularity{
		ViewCount:      rand.IntN(5000),
		TotalRateScore: score,
		TotalRateCount: 1 + rand.IntN(score/5),
	}
}

func productKey(id string) string { return "product:" + id }

func (s *ProductService) CreateProduct(ctx context.Context, req CreateProductRequest, memberID int64) (ProductResponse, error) {
	if err := validate.Struct(req); err != nil {
		return ProductResponse{}, invalidInput(err)
	}

	var out ProductResponse
	err := s.store.WithTx(ctx, func(tx *repos.Store) error {
		member, err := s.members.WithStore(tx).FindMember(ctx, memberID)
		if err != nil {
			return err
		}
		if !member.HasLocation() {
			return ErrNotFoundLocation
		}

		pop := s.Popularity()
		now := domain.Now()
		p := domain.Product{
			ID:                  uuid.NewString(),
			MemberID:            member.ID,
			Title:               req.Title,
			Content:             req.Content,
			BaseFee:             req.BaseFee,
			FeePerDay:           req.FeePerDay,
			OverdueFee:          req.OverdueFee,
			MinimumRentalPeriod: req.MinimumRentalPeriod,
			ViewCount:           pop.ViewCount,
			TotalRateScore:      pop.TotalRateScore,
			TotalRateCount:      pop.TotalRateCount,
			Latitude:            member.Latitude,
			Longitude:           member.Longitude,
			Address:             member.Address,
			CreatedAt:           now,
			UpdatedAt:           now,
		}
		if err := tx.Products.Insert(ctx, p); err != nil {
			return err
		}
		cats, err := s.categories.WithStore(tx).CreateProductCategories(ctx, p, req.CategoryIDs)
		if err != nil {
			return err
		}
		out = ProductResponse{ProductView: newProductView(p), Categories: cats}
		return nil
	})
	if err != nil {
		return ProductResponse{}, err
	}

	zap.L().Info("product created",
		zap.String("product_id", out.ProductID),
		zap.Int64("member_id", memberID),
		zap.Int("categories", len(out.Categories)))
	return out, nil
}

// loadOwned returns the product after checking that both the member and the product exist
// and that the member owns it.
func (s *ProductService) loadOwned(ctx context.Context, tx *repos.Store, productID string, memberID int64) (domain.Product, error) {
	if _, err := s.members.WithStore(tx).FindMember(ctx, memberID); err != nil {
		return domain.Product{}, err
	}
	p, err := findProduct(ctx, tx, productID)
	if err != nil {
		return domain.Product{}, err
	}
	if p.MemberID != memberID {
		return domain.Product{}, ErrUnauthorized
	}
	return p, nil
}

func findProduct(ctx context.Context, store *repos.Store, id string) (domain.Product, error) {
	p, err := store.Products.Get(ctx, id)
	if errors.Is(err, repos.ErrNotFound) {
		return domain.Product{}, ErrProductNotFound
	}
	return p, err
}

func (s *ProductService) UpdateProduct(ctx context.Context, req UpdateProductRequest, productID string, memberID int64) (ProductResponse, error) {
	if err := validate.Struct(req); err != nil {
		return ProductResponse{}, invalidInput(err)
	}

	var out ProductResponse
	err := s.store.WithTx(ctx, func(tx *repos.Store) error {
		p, err := s.loadOwned(ctx, tx, productID, memberID)
		if err != nil {
			return err
		}
		req.Apply(&p)
		p.UpdatedAt = domain.Now()
		if err := tx.Products.Update(ctx, p); err != nil {
			return err
		}

		categories := s.categories.WithStore(tx)
		var cats []CategoryDto
		if req.CategoryIDs != nil {
			if err := categories.DeleteProductCategoriesByProductID(ctx, p.ID); err != nil {
				return err
			}
			cats, err = categories.CreateProductCategories(ctx, p, *req.CategoryIDs)
		} else {
			cats, err = categories.FindCategoriesByProductID(ctx, p.ID)
		}
		if err != nil {
			return err
		}
		out = ProductResponse{ProductView: newProductView(p), Categories: cats}
		return nil
	})
	if err != nil {
		return ProductResponse{}, err
	}

	s.details.Invalidate(productKey(productID))
	zap.L().Info("product updated", zap.String("product_id", productID), zap.Int64("member_id", memberID))
	return out, nil
}

// DeleteProduct hard-deletes a listing with its category links, image rows and saved interests.
// Listings that were ever reserved are kept so reservation history stays intact.
func (s *ProductService) DeleteProduct(ctx context.Context, productID string, memberID int64) error {
	err := s.store.WithTx(ctx, func(tx *repos.Store) error {
		if _, err := s.loadOwned(ctx, tx, productID, memberID); err != nil {
			return err
		}
		n, err := s.reservations.WithStore(tx).CountByProduct(ctx, productID)
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrProductReserved
		}
		if err := s.categories.WithStore(tx).DeleteProductCategoriesByProductID(ctx, productID); err != nil {
			return err
		}
		if err := s.images.WithStore(tx).DeleteImagesByProductID(ctx, productID); err != nil {
			return err
		}
		if err := tx.Interests.DeleteByProduct(ctx, productID); err != nil {
			return err
		}
		return tx.Products.Delete(ctx, productID)
	})
	if err != nil {
		return err
	}

	s.details.Invalidate(productKey(productID))
	zap.L().Info("product deleted", zap.String("product_id", productID), zap.Int64("member_id", memberID))
	return nil
}

// FindProductDetail serves the shared detail from cache and adds the requester's ownership flag.
func (s *ProductService) FindProductDetail(ctx context.Context, productID string, memberID int64) (ProductDetailResponse, error) {
	detail, err := s.details.GetOrFetch(ctx, productKey(productID), func(ctx context.Context) (ProductDetail, error) {
		return s.loadDetail(ctx, productID)
	})
	if err != nil {
		return ProductDetailResponse{}, err
	}
	return ProductDetailResponse{ProductDetail: detail, IsOwner: detail.MemberID == memberID}, nil
}

func (s *ProductService) loadDetail(ctx context.Context, productID string) (ProductDetail, error) {
	p, err := findProduct(ctx, s.store, productID)
	if err != nil {
		return ProductDetail{}, err
	}
	owner, err := s.members.FindMember(ctx, p.MemberID)
	if err != nil {
		return ProductDetail{}, err
	}
	cats, err := s.categories.FindCategoriesByProductID(ctx, p.ID)
	if err != nil {
		return ProductDetail{}, err
	}
	images, err := s.images.FindImageProduct(ctx, p.ID)
	if err != nil {
		return ProductDetail{}, err
	}
	ownerImage, err := s.images.FindImageMember(ctx, p.MemberID)
	if err != nil {
		return ProductDetail{}, err
	}
	return ProductDetail{
		ProductView:   newProductView(p),
		OwnerName:     owner.DisplayName,
		OwnerImageURL: ownerImage,
		Categories:    cats,
		Images:        images,
	}, nil
}

// EvictOwnerDetails drops the cached details of every listing memberID owns, so owner name
// changes show up on the next read.
func (s *ProductService) EvictOwnerDetails(ctx context.Context, memberID int64) error {
	ids, err := s.store.Products.IDsByMember(ctx, memberID)
	if err != nil {
		return err
	}
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, productKey(id))
	}
	s.details.Invalidate(keys...)
	return nil
}

// UpdateView counts one view. The cached detail is left as is, so its count may trail by up to the cache TTL.
func (s *ProductService) UpdateView(ctx context.Context, productID string) error {
	err := s.store.Products.IncrementView(ctx, productID)
	if errors.Is(err, repos.ErrNotFound) {
		return ErrProductNotFound
	}
	return err
}

// FindProducts pages the listings owned by memberID, newest first.
func (s *ProductService) FindProducts(ctx context.Context, memberID int64, page, size int) (ProductPage, error) {
	page, size = clampPage(page, size)
	if _, err := s.members.FindMember(ctx, memberID); err != nil {
		return ProductPage{}, err
	}
	total, err := s.store.Products.CountByMember(ctx, memberID)
	if err != nil {
		return ProductPage{}, err
	}
	rows, err := s.store.Products.ListByMember(ctx, memberID, size, page*size)
	if err != nil {
		return ProductPage{}, err
	}
	return ProductPage{Products: rows, PageInfo: domain.NewPageInfo(page, size, total)}, nil
}

func (s *ProductService) FindTop3ByView(ctx context.Context) ([]repos.ProductSummary, error) {
	return s.store.Products.TopByViews(ctx, topN)
}

func (s *ProductService) FindTop3ByTotalRateScoreRatio(ctx context.Context) ([]repos.ProductSummary, error) {
	return s.store.Products.TopByRateRatio(ctx, topN)
}

// FindTop3ByBaseFee returns the newest listings whose base fee equals baseFee.
func (s *ProductService) FindTop3ByBaseFee(ctx context.Context, baseFee int) ([]repos.ProductSummary, error) {
	if baseFee < 0 {
		return nil, &BusinessError{Code: CodeInvalidInput, Message: "baseFee must not be negative"}
	}
	return s.store.Products.TopByBaseFee(ctx, baseFee, topN)
}
