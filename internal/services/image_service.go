package services

import (
	"context"

	"github.com/pkg/errors"

	"travelrental/internal/repos"
)

// ImageService resolves image URLs. Uploading and storing the files happens elsewhere.
type ImageService struct {
	store *repos.Store
}

func NewImageService(store *repos.Store) *ImageService { return &ImageService{store: store} }

func (s *ImageService) WithStore(store *repos.Store) *ImageService { return &ImageService{store: store} }

func (s *ImageService) FindImageProduct(ctx context.Context, productID string) ([]string, error) {
	return s.store.Images.ProductImageURLs(ctx, productID)
}

// FindImageMember returns the member's profile image URL, or "" when none is set.
func (s *ImageService) FindImageMember(ctx context.Context, memberID int64) (string, error) {
	img, err := s.store.Images.MemberImage(ctx, memberID)
	if errors.Is(err, repos.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return img.ImageURL, nil
}

func (s *ImageService) DeleteImagesByProductID(ctx context.Context, productID string) error {
	return s.store.Images.DeleteByProduct(ctx, productID)
}
