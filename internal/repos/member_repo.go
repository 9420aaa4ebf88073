package repos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"travelrental/internal/domain"
)

type MemberRepo struct{ db sqlx.ExtContext }

func NewMemberRepo(db sqlx.ExtContext) *MemberRepo { return &MemberRepo{db: db} }

func (r *MemberRepo) ByID(ctx context.Context, id int64) (domain.Member, error) {
	var m domain.Member
	err := sqlx.GetContext(ctx, r.db, &m, r.db.Rebind(`
	  SELECT id, email, display_name, latitude, longitude, address, created_at
	  FROM members
	  WHERE id = ?`), id)
	if err != nil {
		return domain.Member{}, notFound(err, "member repo: by id")
	}
	return m, nil
}

func (r *MemberRepo) Insert(ctx context.Context, m domain.Member) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
	  INSERT INTO members(id, email, display_name, latitude, longitude, address, created_at)
	  VALUES(?, ?, ?, ?, ?, ?, ?)`),
		m.ID, m.Email, m.DisplayName, m.Latitude, m.Longitude, m.Address, m.CreatedAt)
	return errors.Wrap(err, "member repo: insert")
}

// UpdateLocation records or clears a member's place. Products keep the location they were created with.
func (r *MemberRepo) UpdateLocation(ctx context.Context, id int64, lat, lng *float64, address *string) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`
	  UPDATE members SET latitude = ?, longitude = ?, address = ? WHERE id = ?`),
		lat, lng, address, id)
	if err != nil {
		return errors.Wrap(err, "member repo: update location")
	}
	return mustAffect(res, "member repo: update location")
}

func (r *MemberRepo) UpdateDisplayName(ctx context.Context, id int64, name string) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`UPDATE members SET display_name = ? WHERE id = ?`), name, id)
	if err != nil {
		return errors.Wrap(err, "member repo: update display name")
	}
	return mustAffect(res, "member repo: update display name")
}
