package repos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"travelrental/internal/domain"
)

type CategoryRepo struct{ db sqlx.ExtContext }

func NewCategoryRepo(db sqlx.ExtContext) *CategoryRepo { return &CategoryRepo{db: db} }

func (r *CategoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	out := []domain.Category{}
	err := sqlx.SelectContext(ctx, r.db, &out, `SELECT id, title, image_url FROM categories ORDER BY id`)
	return out, errors.Wrap(err, "category repo: list")
}

func (r *CategoryRepo) Insert(ctx context.Context, c domain.Category) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`INSERT INTO categories(id, title, image_url) VALUES(?, ?, ?)`),
		c.ID, c.Title, c.ImageURL)
	return errors.Wrap(err, "category repo: insert")
}

// ByIDs returns the categories that exist among ids. Missing ids are simply absent from the result.
func (r *CategoryRepo) ByIDs(ctx context.Context, ids []int64) ([]domain.Category, error) {
	out := []domain.Category{}
	if len(ids) == 0 {
		return out, nil
	}
	query, args, err := sqlx.In(`SELECT id, title, image_url FROM categories WHERE id IN (?) ORDER BY id`, ids)
	if err != nil {
		return nil, errors.Wrap(err, "category repo: by ids")
	}
	err = sqlx.SelectContext(ctx, r.db, &out, r.db.Rebind(query), args...)
	return out, errors.Wrap(err, "category repo: by ids")
}

func (r *CategoryRepo) LinkProduct(ctx context.Context, productID string, categoryID int64) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
	  INSERT INTO product_categories(product_id, category_id) VALUES(?, ?)
	  ON CONFLICT(product_id, category_id) DO NOTHING`), productID, categoryID)
	return errors.Wrap(err, "category repo: link product")
}

func (r *CategoryRepo) UnlinkProduct(ctx context.Context, productID string) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM product_categories WHERE product_id = ?`), productID)
	return errors.Wrap(err, "category repo: unlink product")
}

func (r *CategoryRepo) ByProduct(ctx context.Context, productID string) ([]domain.Category, error) {
	out := []domain.Category{}
	err := sqlx.SelectContext(ctx, r.db, &out, r.db.Rebind(`
	  SELECT c.id, c.title, c.image_url
	  FROM product_categories pc
	  JOIN categories c ON c.id = pc.category_id
	  WHERE pc.product_id = ?
	  ORDER BY c.id`), productID)
	return out, errors.Wrap(err, "category repo: by product")
}
