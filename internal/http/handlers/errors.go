package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	applog "travelrental/internal/log"
	"travelrental/internal/services"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

const internalMessage = "Something went wrong. Please try again."

var statusByCode = map[services.Code]int{
	services.CodeNotFoundLocation: fiber.StatusUnprocessableEntity,
	services.CodeProductNotFound:  fiber.StatusNotFound,
	services.CodeMemberNotFound:   fiber.StatusNotFound,
	services.CodeCategoryNotFound: fiber.StatusBadRequest,
	services.CodeUnauthorized:     fiber.StatusForbidden,
	services.CodeProductReserved:  fiber.StatusConflict,
	services.CodeInvalidInput:     fiber.StatusBadRequest,
}

// StatusFor maps a business error code to its HTTP status.
func StatusFor(code services.Code) int {
	if s, ok := statusByCode[code]; ok {
		return s
	}
	return fiber.StatusBadRequest
}

// fail writes the response for a service error. Business errors keep their code;
// anything else is logged and reported as INTERNAL without details.
func fail(c *fiber.Ctx, action string, err error) error {
	if be, ok := services.AsBusiness(err); ok {
		status := StatusFor(be.Code)
		fields := map[string]any{"code": string(be.Code)}
		if be.Code == services.CodeUnauthorized {
			applog.Security(c, action+".denied", fields)
		} else {
			applog.Info(c, action+".rejected", fields)
		}
		return c.Status(status).JSON(errorBody{Code: string(be.Code), Message: be.Message})
	}
	applog.Error(c, action+".fail", err, nil)
	return c.Status(fiber.StatusInternalServerError).JSON(errorBody{Code: "INTERNAL", Message: internalMessage})
}

// ErrorHandler renders errors that escape the handlers, such as oversized bodies or panics.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
		code := strings.ToUpper(strings.ReplaceAll(utils.StatusMessage(fe.Code), " ", "_"))
		return c.Status(fe.Code).JSON(errorBody{Code: code, Message: fe.Message})
	}
	applog.Error(c, "server.error", err, nil)
	return c.Status(fiber.StatusInternalServerError).JSON(errorBody{Code: "INTERNAL", Message: internalMessage})
}
