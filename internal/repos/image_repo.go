package repos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"travelrental/internal/domain"
)

type ImageRepo struct{ db sqlx.ExtContext }

func NewImageRepo(db sqlx.ExtContext) *ImageRepo { return &ImageRepo{db: db} }

func (r *ImageRepo) ProductImageURLs(ctx context.Context, productID string) ([]string, error) {
	out := []string{}
	err := sqlx.SelectContext(ctx, r.db, &out, r.db.Rebind(`
	  SELECT image_url FROM product_images
	  WHERE product_id = ?
	  ORDER BY created_at, id`), productID)
	return out, errors.Wrap(err, "image repo: product images")
}

func (r *ImageRepo) MemberImage(ctx context.Context, memberID int64) (domain.MemberImage, error) {
	var img domain.MemberImage
	err := sqlx.GetContext(ctx, r.db, &img, r.db.Rebind(`
	  SELECT id, member_id, image_url FROM member_images WHERE member_id = ?`), memberID)
	if err != nil {
		return domain.MemberImage{}, notFound(err, "image repo: member image")
	}
	return img, nil
}

func (r *ImageRepo) AddProductImage(ctx context.Context, img domain.ProductImage) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
	  INSERT INTO product_images(id, product_id, image_url, created_at) VALUES(?, ?, ?, ?)`),
		img.ID, img.ProductID, img.ImageURL, img.CreatedAt)
	return errors.Wrap(err, "image repo: add product image")
}

func (r *ImageRepo) SetMemberImage(ctx context.Context, img domain.MemberImage) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
	  INSERT INTO member_images(id, member_id, image_url) VALUES(?, ?, ?)
	  ON CONFLICT(member_id) DO UPDATE SET image_url = excluded.image_url`),
		img.ID, img.MemberID, img.ImageURL)
	return errors.Wrap(err, "image repo: set member image")
}

func (r *ImageRepo) DeleteByProduct(ctx context.Context, productID string) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM product_images WHERE product_id = ?`), productID)
	return errors.Wrap(err, "image repo: delete by product")
}
