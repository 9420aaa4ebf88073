package repos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"travelrental/internal/domain"
)

type ReservationRepo struct{ db sqlx.ExtContext }

func NewReservationRepo(db sqlx.ExtContext) *ReservationRepo { return &ReservationRepo{db: db} }

// ReservationRow is a reservation joined with the listing it reserves.
type ReservationRow struct {
	ID        string                   `db:"id" json:"reservationId"`
	ProductID string                   `db:"product_id" json:"productId"`
	Title     string                   `db:"title" json:"title"`
	Image     string                   `db:"image" json:"image"`
	Status    domain.ReservationStatus `db:"status" json:"status"`
	StartDate string                   `db:"start_date" json:"startDate"`
	EndDate   string                   `db:"end_date" json:"endDate"`
	TotalFee  int                      `db:"total_fee" json:"totalFee"`
}

func (r *ReservationRepo) Insert(ctx context.Context, res domain.Reservation) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
	  INSERT INTO reservations(id, member_id, product_id, total_fee, start_date, end_date, status, created_at)
	  VALUES(?, ?, ?, ?, ?, ?, ?, ?)`),
		res.ID, res.MemberID, res.ProductID, res.TotalFee, res.StartDate, res.EndDate, string(res.Status), res.CreatedAt)
	return errors.Wrap(err, "reservation repo: insert")
}

func memberFilter(memberID int64, status domain.ReservationStatus) (string, []any) {
	where := `r.member_id = ?`
	args := []any{memberID}
	if status != "" {
		where += ` AND r.status = ?`
		args = append(args, string(status))
	}
	return where, args
}

// ListByMember pages the reservations a member made, latest start date first. An empty status matches all.
func (r *ReservationRepo) ListByMember(ctx context.Context, memberID int64, status domain.ReservationStatus, limit, offset int) ([]ReservationRow, error) {
	where, args := memberFilter(memberID, status)
	args = append(args, limit, offset)
	out := []ReservationRow{}
	err := sqlx.SelectContext(ctx, r.db, &out, r.db.Rebind(`
	  SELECT r.id, r.product_id, p.title,
	         COALESCE((SELECT i.image_url FROM product_images i
	                   WHERE i.product_id = p.id
	                   ORDER BY i.created_at, i.id LIMIT 1), '') AS image,
	         r.status, r.start_date, r.end_date, r.total_fee
	  FROM reservations r
	  JOIN products p ON p.id = r.product_id
	  WHERE `+where+`
	  ORDER BY r.start_date DESC, r.created_at DESC
	  LIMIT ? OFFSET ?`), args...)
	return out, errors.Wrap(err, "reservation repo: list by member")
}

func (r *ReservationRepo) CountByMember(ctx context.Context, memberID int64, status domain.ReservationStatus) (int, error) {
	where, args := memberFilter(memberID, status)
	var n int
	err := sqlx.GetContext(ctx, r.db, &n, r.db.Rebind(`SELECT COUNT(*) FROM reservations r WHERE `+where), args...)
	return n, errors.Wrap(err, "reservation repo: count by member")
}

// CountByProduct counts every reservation that references a product, whatever its status.
func (r *ReservationRepo) CountByProduct(ctx context.Context, productID string) (int, error) {
	var n int
	err := sqlx.GetContext(ctx, r.db, &n, r.db.Rebind(`SELECT COUNT(*) FROM reservations WHERE product_id = ?`), productID)
	return n, errors.Wrap(err, "reservation repo: count by product")
}
