package handlers

import (
	"travelrental/internal/services"

	"github.com/gofiber/fiber/v2"
)

type CategoryHandler struct {
	Categories *services.ProductCategoryService
}

// GET /api/categories
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	cats, err := h.Categories.ListCategories(c.UserContext())
	if err != nil {
		return fail(c, "category.list", err)
	}
	return c.JSON(cats)
}
