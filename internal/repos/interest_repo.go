package repos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

// InterestRepo stores the listings a member has saved.
type InterestRepo struct{ db sqlx.ExtContext }

func NewInterestRepo(db sqlx.ExtContext) *InterestRepo { return &InterestRepo{db: db} }

// Add saves productID for memberID. Saving twice keeps the first row.
func (r *InterestRepo) Add(ctx context.Context, memberID int64, productID, createdAt string) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
	  INSERT INTO interests(member_id, product_id, created_at)
	  VALUES(?, ?, ?)
	  ON CONFLICT(member_id, product_id) DO NOTHING`), memberID, productID, createdAt)
	return errors.Wrap(err, "interest repo: add")
}

func (r *InterestRepo) Remove(ctx context.Context, memberID int64, productID string) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
	  DELETE FROM interests WHERE member_id = ? AND product_id = ?`), memberID, productID)
	return errors.Wrap(err, "interest repo: remove")
}

// ListByMember pages the saved listings, most recently saved first.
func (r *InterestRepo) ListByMember(ctx context.Context, memberID int64, limit, offset int) ([]ProductSummary, error) {
	out := []ProductSummary{}
	err := sqlx.SelectContext(ctx, r.db, &out, r.db.Rebind(`
	  SELECT`+summaryColumns+`
	  FROM interests it
	  JOIN products p ON p.id = it.product_id
	  WHERE it.member_id = ?
	  ORDER BY it.created_at DESC, p.id
	  LIMIT ? OFFSET ?`), memberID, limit, offset)
	return out, errors.Wrap(err, "interest repo: list by member")
}

func (r *InterestRepo) CountByMember(ctx context.Context, memberID int64) (int, error) {
	var n int
	err := sqlx.GetContext(ctx, r.db, &n, r.db.Rebind(`SELECT COUNT(*) FROM interests WHERE member_id = ?`), memberID)
	return n, errors.Wrap(err, "interest repo: count by member")
}

// DeleteByProduct clears every member's saved entry for a listing being removed.
func (r *InterestRepo) DeleteByProduct(ctx context.Context, productID string) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM interests WHERE product_id = ?`), productID)
	return errors.Wrap(err, "interest repo: delete by product")
}
