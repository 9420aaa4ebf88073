package validate_test

import (
	"errors"
	"testing"

	"travelrental/internal/domain"
	"travelrental/internal/validate"
)

func TestPageAndSize(t *testing.T) {
	cases := []struct {
		in         string
		page, size int
	}{
		{"", 0, validate.DefaultPageSize},
		{"-3", 0, validate.DefaultPageSize},
		{"2", 2, 2},
		{"abc", 0, validate.DefaultPageSize},
		{"5000", 5000, validate.MaxPageSize},
		{"9223372036854775807", validate.MaxPage, validate.MaxPageSize},
		{"99999999999", validate.MaxPage, validate.MaxPageSize},
	}
	for _, tc := range cases {
		if got := validate.Page(tc.in); got != tc.page {
			t.Errorf("Page(%q) = %d, want %d", tc.in, got, tc.page)
		}
		if got := validate.Size(tc.in); got != tc.size {
			t.Errorf("Size(%q) = %d, want %d", tc.in, got, tc.size)
		}
	}
}

func TestStatus(t *testing.T) {
	if st, ok := validate.Status(" inuse "); !ok || st != domain.StatusInUse {
		t.Fatalf("want INUSE, got %q %v", st, ok)
	}
	if st, ok := validate.Status(""); !ok || st != "" {
		t.Fatalf("empty status should mean no filter, got %q %v", st, ok)
	}
	if _, ok := validate.Status("LOST"); ok {
		t.Fatal("unknown status accepted")
	}
}

func TestIDs(t *testing.T) {
	if _, ok := validate.ProductID("6f1c2a9e-0b7d-4a51-9d7a-2f7a6b0c1e55"); !ok {
		t.Fatal("uuid rejected")
	}
	if _, ok := validate.ProductID("../etc"); ok {
		t.Fatal("path accepted as id")
	}
	if id, ok := validate.MemberID("42"); !ok || id != 42 {
		t.Fatalf("want 42, got %d %v", id, ok)
	}
	if _, ok := validate.MemberID("0"); ok {
		t.Fatal("zero member id accepted")
	}
}

func TestStructReportsJSONField(t *testing.T) {
	type req struct {
		Title string `json:"title" validate:"required,max=5"`
		Fee   *int   `json:"baseFee" validate:"omitempty,min=0"`
	}
	neg := -1
	err := validate.Struct(req{Title: "ok", Fee: &neg})
	var fe *validate.FieldError
	if !errors.As(err, &fe) || fe.Field != "baseFee" || fe.Tag != "min" {
		t.Fatalf("want baseFee/min, got %v", err)
	}
	if err := validate.Struct(req{Title: "ok"}); err != nil {
		t.Fatalf("nil optional field should pass: %v", err)
	}
}
