package services

import (
	"github.com/pkg/errors"
)

// Code identifies a business rule failure. Clients branch on it.
type Code string

const (
	CodeNotFoundLocation Code = "NOT_FOUND_LOCATION"
	CodeProductNotFound  Code = "PRODUCT_NOT_FOUND"
	CodeMemberNotFound   Code = "MEMBER_NOT_FOUND"
	CodeCategoryNotFound Code = "CATEGORY_NOT_FOUND"
	CodeUnauthorized     Code = "UNAUTHORIZED"
	CodeProductReserved  Code = "PRODUCT_RESERVED"
	CodeInvalidInput     Code = "INVALID_INPUT"
)

type BusinessError struct {
	Code    Code
	Message string
}

func (e *BusinessError) Error() string { return string(e.Code) + ": " + e.Message }

// Is matches any BusinessError with the same code, so sentinels work with errors.Is.
func (e *BusinessError) Is(target error) bool {
	t, ok := target.(*BusinessError)
	return ok && t.Code == e.Code
}

var (
	ErrNotFoundLocation = &BusinessError{Code: CodeNotFoundLocation, Message: "member has no recorded location"}
	ErrProductNotFound  = &BusinessError{Code: CodeProductNotFound, Message: "product not found"}
	ErrMemberNotFound   = &BusinessError{Code: CodeMemberNotFound, Message: "member not found"}
	ErrCategoryNotFound = &BusinessError{Code: CodeCategoryNotFound, Message: "category not found"}
	ErrUnauthorized     = &BusinessError{Code: CodeUnauthorized, Message: "only the owner may change this product"}
	ErrProductReserved  = &BusinessError{Code: CodeProductReserved, Message: "product has reservations"}
	ErrInvalidInput     = &BusinessError{Code: CodeInvalidInput, Message: "invalid input"}
)

func invalidInput(err error) error {
	return &BusinessError{Code: CodeInvalidInput, Message: err.Error()}
}

// AsBusiness extracts the business error from err, if any.
func AsBusiness(err error) (*BusinessError, bool) {
	var be *BusinessError
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}
