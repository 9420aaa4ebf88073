package handlers

import (
	applog "travelrental/internal/log"
	"travelrental/internal/services"
	"travelrental/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type MemberHandler struct {
	Members   *services.MemberService
	Interests *services.InterestService
	Products  *services.ProductService
}

// GET /api/members
func (h *MemberHandler) Me(c *fiber.Ctx) error {
	out, err := h.Members.FindProfile(c.UserContext(), memberID(c))
	if err != nil {
		return fail(c, "member.me", err)
	}
	return c.JSON(out)
}

// PATCH /api/members
func (h *MemberHandler) Update(c *fiber.Ctx) error {
	var req services.UpdateMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	ctx := c.UserContext()
	id := memberID(c)
	out, err := h.Members.UpdateMember(ctx, id, req)
	if err != nil {
		return fail(c, "member.update", err)
	}
	if err := h.Products.EvictOwnerDetails(ctx, id); err != nil {
		applog.Error(c, "member.update.evict", err, nil)
	}
	applog.Audit(c, "member.update", nil)
	return c.JSON(out)
}

// GET /api/members/interests?page=&size=
func (h *MemberHandler) ListInterests(c *fiber.Ctx) error {
	out, err := h.Interests.FindInterests(c.UserContext(), memberID(c),
		validate.Page(c.Query("page")), validate.Size(c.Query("size")))
	if err != nil {
		return fail(c, "interest.list", err)
	}
	return c.JSON(out)
}

// POST /api/members/interests/:productId
func (h *MemberHandler) SaveInterest(c *fiber.Ctx) error {
	id, ok := validate.ProductID(c.Params("productId"))
	if !ok {
		return fail(c, "interest.save", services.ErrProductNotFound)
	}
	if err := h.Interests.SaveInterest(c.UserContext(), memberID(c), id); err != nil {
		return fail(c, "interest.save", err)
	}
	applog.Audit(c, "interest.save", map[string]any{"product": id})
	return c.SendStatus(fiber.StatusNoContent)
}

// DELETE /api/members/interests/:productId
func (h *MemberHandler) DeleteInterest(c *fiber.Ctx) error {
	id, ok := validate.ProductID(c.Params("productId"))
	if !ok {
		return fail(c, "interest.delete", services.ErrProductNotFound)
	}
	if err := h.Interests.DeleteInterest(c.UserContext(), memberID(c), id); err != nil {
		return fail(c, "interest.delete", err)
	}
	applog.Audit(c, "interest.delete", map[string]any{"product": id})
	return c.SendStatus(fiber.StatusNoContent)
}
