package repos

import (
	"context"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"travelrental/internal/config"
)

// OpenDB connects with the given driver and makes sure the schema exists.
// sqlite is limited to one connection, so in-memory databases stay shared and writers never contend.
func OpenDB(driver, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", driver)
	}
	if driver == config.DriverSQLite {
		db.SetMaxOpenConns(1)
	}
	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, errors.Wrapf(err, "ping %s", driver)
	}
	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS members(
  id BIGINT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  display_name TEXT NOT NULL,
  latitude DOUBLE PRECISION,
  longitude DOUBLE PRECISION,
  address TEXT,
  created_at TEXT NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS categories(
  id BIGINT PRIMARY KEY,
  title TEXT NOT NULL,
  image_url TEXT NOT NULL DEFAULT ''
)`,
	`CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  member_id BIGINT NOT NULL REFERENCES members(id),
  title TEXT NOT NULL,
  content TEXT NOT NULL,
  base_fee INTEGER NOT NULL DEFAULT 0 CHECK (base_fee >= 0),
  fee_per_day INTEGER NOT NULL DEFAULT 0 CHECK (fee_per_day >= 0),
  overdue_fee INTEGER NOT NULL DEFAULT 0 CHECK (overdue_fee >= 0),
  minimum_rental_period INTEGER NOT NULL DEFAULT 1,
  view_count INTEGER NOT NULL DEFAULT 0,
  total_rate_score INTEGER NOT NULL DEFAULT 0,
  total_rate_count INTEGER NOT NULL DEFAULT 0,
  latitude DOUBLE PRECISION,
  longitude DOUBLE PRECISION,
  address TEXT,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL DEFAULT ''
)`,
	`CREATE INDEX IF NOT EXISTS idx_products_member ON products(member_id)`,
	`CREATE INDEX IF NOT EXISTS idx_products_views ON products(view_count)`,
	`CREATE INDEX IF NOT EXISTS idx_products_base_fee ON products(base_fee, created_at)`,
	`CREATE TABLE IF NOT EXISTS product_categories(
  product_id TEXT NOT NULL REFERENCES products(id),
  category_id BIGINT NOT NULL REFERENCES categories(id),
  PRIMARY KEY (product_id, category_id)
)`,
	`CREATE TABLE IF NOT EXISTS product_images(
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL REFERENCES products(id),
  image_url TEXT NOT NULL,
  created_at TEXT NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_product_images_product ON product_images(product_id)`,
	`CREATE TABLE IF NOT EXISTS member_images(
  id TEXT PRIMARY KEY,
  member_id BIGINT NOT NULL UNIQUE REFERENCES members(id),
  image_url TEXT NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS reservations(
  id TEXT PRIMARY KEY,
  member_id BIGINT NOT NULL REFERENCES members(id),
  product_id TEXT NOT NULL REFERENCES products(id),
  total_fee INTEGER NOT NULL,
  start_date TEXT NOT NULL,
  end_date TEXT NOT NULL,
  status TEXT NOT NULL CHECK (status IN ('REQUESTED','RESERVED','CANCELED','INUSE','COMPLETED')),
  created_at TEXT NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS interests(
  member_id BIGINT NOT NULL REFERENCES members(id),
  product_id TEXT NOT NULL REFERENCES products(id),
  created_at TEXT NOT NULL,
  PRIMARY KEY (member_id, product_id)
)`,
	`CREATE INDEX IF NOT EXISTS idx_interests_product ON interests(product_id)`,
	`CREATE INDEX IF NOT EXISTS idx_reservations_member ON reservations(member_id, status)`,
	`CREATE INDEX IF NOT EXISTS idx_reservations_product ON reservations(product_id)`,
}

func ensureSchema(db *sqlx.DB) error {
	if db.DriverName() == config.DriverSQLite {
		if _, err := db.Exec(`PRAGMA foreign_keys = ON`); err != nil {
			return errors.Wrap(err, "enable foreign keys")
		}
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return errors.Wrap(err, "ensure schema")
		}
	}
	return nil
}

// Seed inserts demo members, categories, a listing and a reservation when the database is empty.
func Seed(ctx context.Context, db *sqlx.DB) error {
	var n int
	if err := db.GetContext(ctx, &n, `SELECT COUNT(*) FROM categories`); err != nil {
		return errors.Wrap(err, "count categories")
	}
	if n > 0 {
		return nil
	}

	zap.L().Info("seeding demo data")

	return NewStore(db).WithTx(ctx, func(s *Store) error {
		for _, c := range []struct {
			id    int64
			title string
		}{
			{1, "Camping"}, {2, "Camera"}, {3, "Bicycle"}, {4, "Water sports"}, {5, "Travel gear"},
		} {
			if err := s.Categories.Insert(ctx, domainCategory(c.id, c.title)); err != nil {
				return err
			}
		}

		for _, m := range seedMembers() {
			if err := s.Members.Insert(ctx, m); err != nil {
				return err
			}
		}
		if err := s.Images.SetMemberImage(ctx, seedMemberImage()); err != nil {
			return err
		}

		p := seedProduct()
		if err := s.Products.Insert(ctx, p); err != nil {
			return err
		}
		if err := s.Categories.LinkProduct(ctx, p.ID, 1); err != nil {
			return err
		}
		if err := s.Images.AddProductImage(ctx, seedProductImage(p.ID)); err != nil {
			return err
		}
		if err := s.Interests.Add(ctx, seedBorrowerID, p.ID, p.CreatedAt); err != nil {
			return err
		}
		return s.Reservations.Insert(ctx, seedReservation(p.ID))
	})
}
