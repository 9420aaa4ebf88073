package repos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"travelrental/internal/domain"
)

type ProductRepo struct{ db sqlx.ExtContext }

func NewProductRepo(db sqlx.ExtContext) *ProductRepo { return &ProductRepo{db: db} }

// ProductSummary is the row shape of listing and ranking queries.
type ProductSummary struct {
	ID             string  `db:"id" json:"productId"`
	Title          string  `db:"title" json:"title"`
	BaseFee        int     `db:"base_fee" json:"baseFee"`
	FeePerDay      int     `db:"fee_per_day" json:"feePerDay"`
	Address        *string `db:"address" json:"address"`
	ViewCount      int     `db:"view_count" json:"viewCount"`
	TotalRateScore int     `db:"total_rate_score" json:"totalRateScore"`
	TotalRateCount int     `db:"total_rate_count" json:"totalRateCount"`
	MainImageURL   string  `db:"main_image_url" json:"mainImageUrl"`
	CreatedAt      string  `db:"created_at" json:"createdAt"`
}

const productColumns = `
    id, member_id, title, content, base_fee, fee_per_day, overdue_fee, minimum_rental_period,
    view_count, total_rate_score, total_rate_count, latitude, longitude, address,
    created_at, updated_at`

const summaryColumns = `
    p.id, p.title, p.base_fee, p.fee_per_day, p.address, p.view_count,
    p.total_rate_score, p.total_rate_count, p.created_at,
    COALESCE((SELECT i.image_url FROM product_images i
              WHERE i.product_id = p.id
              ORDER BY i.created_at, i.id LIMIT 1), '') AS main_image_url`

func (r *ProductRepo) Insert(ctx context.Context, p domain.Product) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
	  INSERT INTO products(`+productColumns+`)
	  VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		p.ID, p.MemberID, p.Title, p.Content, p.BaseFee, p.FeePerDay, p.OverdueFee, p.MinimumRentalPeriod,
		p.ViewCount, p.TotalRateScore, p.TotalRateCount, p.Latitude, p.Longitude, p.Address,
		p.CreatedAt, p.UpdatedAt)
	return errors.Wrap(err, "product repo: insert")
}

func (r *ProductRepo) Get(ctx context.Context, id string) (domain.Product, error) {
	var p domain.Product
	err := sqlx.GetContext(ctx, r.db, &p, r.db.Rebind(`
	  SELECT`+productColumns+`
	  FROM products
	  WHERE id = ?`), id)
	if err != nil {
		return domain.Product{}, notFound(err, "product repo: get")
	}
	return p, nil
}

// Update persists the mutable listing fields. Owner, location and counters are left alone.
func (r *ProductRepo) Update(ctx context.Context, p domain.Product) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`
	  UPDATE products
	  SET title = ?, content = ?, base_fee = ?, fee_per_day = ?, overdue_fee = ?,
	      minimum_rental_period = ?, updated_at = ?
	  WHERE id = ?`),
		p.Title, p.Content, p.BaseFee, p.FeePerDay, p.OverdueFee, p.MinimumRentalPeriod, p.UpdatedAt, p.ID)
	if err != nil {
		return errors.Wrap(err, "product repo: update")
	}
	return mustAffect(res, "product repo: update")
}

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM products WHERE id = ?`), id)
	if err != nil {
		return errors.Wrap(err, "product repo: delete")
	}
	return mustAffect(res, "product repo: delete")
}

// IncrementView bumps the counter in the database so concurrent viewers never overwrite each other.
func (r *ProductRepo) IncrementView(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`
	  UPDATE products SET view_count = view_count + 1 WHERE id = ?`), id)
	if err != nil {
		return errors.Wrap(err, "product repo: increment view")
	}
	return mustAffect(res, "product repo: increment view")
}

// ListByMember pages a member's listings, newest first.
func (r *ProductRepo) ListByMember(ctx context.Context, memberID int64, limit, offset int) ([]ProductSummary, error) {
	out := []ProductSummary{}
	err := sqlx.SelectContext(ctx, r.db, &out, r.db.Rebind(`
	  SELECT`+summaryColumns+`
	  FROM products p
	  WHERE p.member_id = ?
	  ORDER BY p.created_at DESC, p.id
	  LIMIT ? OFFSET ?`), memberID, limit, offset)
	return out, errors.Wrap(err, "product repo: list by member")
}

func (r *ProductRepo) CountByMember(ctx context.Context, memberID int64) (int, error) {
	var n int
	err := sqlx.GetContext(ctx, r.db, &n, r.db.Rebind(`SELECT COUNT(*) FROM products WHERE member_id = ?`), memberID)
	return n, errors.Wrap(err, "product repo: count by member")
}

func (r *ProductRepo) TopByViews(ctx context.Context, limit int) ([]ProductSummary, error) {
	out := []ProductSummary{}
	err := sqlx.SelectContext(ctx, r.db, &out, r.db.Rebind(`
	  SELECT`+summaryColumns+`
	  FROM products p
	  ORDER BY p.view_count DESC, p.created_at DESC
	  LIMIT ?`), limit)
	return out, errors.Wrap(err, "product repo: top by views")
}

// TopByRateRatio orders by average rating. Products without ratings rank below every rated one.
func (r *ProductRepo) TopByRateRatio(ctx context.Context, limit int) ([]ProductSummary, error) {
	out := []ProductSummary{}
	err := sqlx.SelectContext(ctx, r.db, &out, r.db.Rebind(`
	  SELECT`+summaryColumns+`
	  FROM products p
	  ORDER BY CASE WHEN p.total_rate_count = 0 THEN -1
	           ELSE CAST(p.total_rate_score AS DOUBLE PRECISION) / p.total_rate_count END DESC,
	           p.created_at DESC
	  LIMIT ?`), limit)
	return out, errors.Wrap(err, "product repo: top by rate ratio")
}

func (r *ProductRepo) TopByBaseFee(ctx context.Context, baseFee, limit int) ([]ProductSummary, error) {
	out := []ProductSummary{}
	err := sqlx.SelectContext(ctx, r.db, &out, r.db.Rebind(`
	  SELECT`+summaryColumns+`
	  FROM products p
	  WHERE p.base_fee = ?
	  ORDER BY p.created_at DESC, p.id
	  LIMIT ?`), baseFee, limit)
	return out, errors.Wrap(err, "product repo: top by base fee")
}

// IDsByMember lists the ids of every listing a member owns.
func (r *ProductRepo) IDsByMember(ctx context.Context, memberID int64) ([]string, error) {
	out := []string{}
	err := sqlx.SelectContext(ctx, r.db, &out, r.db.Rebind(`SELECT id FROM products WHERE member_id = ? ORDER BY id`), memberID)
	return out, errors.Wrap(err, "product repo: ids by member")
}
