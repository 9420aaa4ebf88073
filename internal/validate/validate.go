package validate

import (
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"travelrental/internal/domain"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	// MaxPage keeps page*size inside an int32 offset.
	MaxPage = math.MaxInt32 / MaxPageSize
)

var (
	reID = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

	structs = newValidator()
)

func newValidator() *validator.Validate {
	v := validator.New()
	// report json names so clients see the field they sent
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// FieldError names the first request field that failed its constraints.
type FieldError struct {
	Field string
	Tag   string
	Param string
}

func (e *FieldError) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("%s must satisfy %s=%s", e.Field, e.Tag, e.Param)
	}
	return fmt.Sprintf("%s must satisfy %s", e.Field, e.Tag)
}

// Struct checks the `validate` tags of a request DTO.
func Struct(s any) error {
	err := structs.Struct(s)
	if err == nil {
		return nil
	}
	if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
		fe := verrs[0]
		return &FieldError{Field: fe.Field(), Tag: fe.Tag(), Param: fe.Param()}
	}
	return err
}

// ProductID validates a listing identifier taken from a path.
func ProductID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// MemberID parses a positive numeric member identifier.
func MemberID(s string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// Page parses a zero-based page number. Missing or invalid values mean the first page,
// and pages past MaxPage are clamped to it.
func Page(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return min(n, MaxPage)
}

// Size parses a page size and clamps it to [1, MaxPageSize].
func Size(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return DefaultPageSize
	}
	if n > MaxPageSize {
		return MaxPageSize
	}
	return n
}

// Status validates an optional reservation status filter. An empty value means no filter.
func Status(s string) (domain.ReservationStatus, bool) {
	st := domain.ReservationStatus(strings.ToUpper(strings.TrimSpace(s)))
	if st == "" {
		return "", true
	}
	return st, st.Valid()
}
