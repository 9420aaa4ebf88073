package handlers

import (
	applog "travelrental/internal/log"
	"travelrental/internal/services"
	"travelrental/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ReservationHandler struct {
	Reservations *services.ReservationService
}

// GET /api/reservations?status=&page=&size=
func (h *ReservationHandler) List(c *fiber.Ctx) error {
	status, ok := validate.Status(c.Query("status"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "status"})
		return fail(c, "reservation.list", services.ErrInvalidInput)
	}
	out, err := h.Reservations.FindReservations(c.UserContext(), memberID(c), status,
		validate.Page(c.Query("page")), validate.Size(c.Query("size")))
	if err != nil {
		return fail(c, "reservation.list", err)
	}
	return c.JSON(out)
}
