package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"

	"travelrental/internal/config"
	"travelrental/internal/http/handlers"
	"travelrental/internal/repos"
)

const (
	lender   int64 = 1 // seeded, has a location
	borrower int64 = 2 // seeded, no location
)

// newTestApp wires the real app over a seeded in-memory database.
func newTestApp(t *testing.T, tweak func(*config.Config)) (*fiber.App, *sqlx.DB) {
	t.Helper()
	cfg := config.Default()
	cfg.DBDSN = ":memory:"
	if tweak != nil {
		tweak(&cfg)
	}
	db, err := repos.OpenDB(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := repos.Seed(context.Background(), db); err != nil {
		t.Fatalf("seed: %v", err)
	}
	deps, err := handlers.NewDeps(db, cfg)
	if err != nil {
		t.Fatalf("deps: %v", err)
	}
	return handlers.NewApp(cfg, deps), db
}

// call sends a request as member (0 means anonymous) and returns status and raw body.
func call(t *testing.T, app *fiber.App, method, path string, body any, member int64) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if member != 0 {
		req.Header.Set(handlers.MemberHeader, strconv.FormatInt(member, 10))
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	out, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, out
}

func decode[T any](t *testing.T, b []byte) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		t.Fatalf("decode %s: %v", b, err)
	}
	return v
}

type errResp struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func expectError(t *testing.T, status int, body []byte, wantStatus int, wantCode string) {
	t.Helper()
	if status != wantStatus {
		t.Fatalf("want %d, got %d body=%s", wantStatus, status, body)
	}
	if e := decode[errResp](t, body); e.Code != wantCode {
		t.Fatalf("want code %s, got %q body=%s", wantCode, e.Code, body)
	}
}

func seededProductID(t *testing.T, db *sqlx.DB) string {
	t.Helper()
	var id string
	if err := db.Get(&id, `SELECT id FROM products LIMIT 1`); err != nil {
		t.Fatal(err)
	}
	return id
}
