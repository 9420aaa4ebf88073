package handlers

import (
	applog "travelrental/internal/log"
	"travelrental/internal/validate"

	"github.com/gofiber/fiber/v2"
)

// MemberHeader carries the caller's member id, set by the upstream gateway that authenticated the request.
const MemberHeader = "X-Member-Id"

// RequireMember rejects requests without a valid member id.
func RequireMember() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Get(MemberHeader)
		id, ok := validate.MemberID(raw)
		if !ok {
			applog.Security(c, "access.denied.member", map[string]any{"header_present": raw != "", "header_len": len(raw)})
			return c.Status(fiber.StatusUnauthorized).JSON(errorBody{
				Code:    "UNAUTHENTICATED",
				Message: "missing or invalid " + MemberHeader,
			})
		}
		c.Locals(applog.MemberKey, id)
		return c.Next()
	}
}

// OptionalMember records the member id when one is sent. Anonymous callers pass through.
func OptionalMember() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Get(MemberHeader)
		if raw == "" {
			return c.Next()
		}
		return RequireMember()(c)
	}
}

func memberID(c *fiber.Ctx) int64 {
	id, _ := c.Locals(applog.MemberKey).(int64)
	return id
}
