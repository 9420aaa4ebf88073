package repos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

// ErrNotFound is returned by lookups and targeted writes that match no row.
var ErrNotFound = errors.New("record not found")

// Store groups the repositories over one handle. Inside WithTx every repo is bound to the transaction.
type Store struct {
	db *sqlx.DB
	tx *sqlx.Tx

	Members      *MemberRepo
	Products     *ProductRepo
	Categories   *CategoryRepo
	Images       *ImageRepo
	Reservations *ReservationRepo
	Interests    *InterestRepo
}

func NewStore(db *sqlx.DB) *Store { return newStore(db, nil, db) }

func newStore(db *sqlx.DB, tx *sqlx.Tx, ext sqlx.ExtContext) *Store {
	return &Store{
		db:           db,
		tx:           tx,
		Members:      NewMemberRepo(ext),
		Products:     NewProductRepo(ext),
		Categories:   NewCategoryRepo(ext),
		Images:       NewImageRepo(ext),
		Reservations: NewReservationRepo(ext),
		Interests:    NewInterestRepo(ext),
	}
}

// WithTx runs fn inside a transaction and commits only if fn returns nil.
// A store that is already transactional runs fn directly so the outer call owns commit and rollback.
func (s *Store) WithTx(ctx context.Context, fn func(*Store) error) (err error) {
	if s.tx != nil {
		return fn(s)
	}
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin tx")
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(newStore(s.db, tx, tx)); err != nil {
		return err
	}
	return errors.Wrap(tx.Commit(), "commit tx")
}

func notFound(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return errors.Wrap(err, what)
}

func mustAffect(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, what)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
