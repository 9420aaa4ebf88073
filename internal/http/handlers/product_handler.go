package handlers

import (
	"strconv"
	"strings"

	applog "travelrental/internal/log"
	"travelrental/internal/services"
	"travelrental/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	Products *services.ProductService
}

func (h *ProductHandler) productID(c *fiber.Ctx) (string, bool) {
	id, ok := validate.ProductID(c.Params("productId"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "productId"})
	}
	return id, ok
}

func badBody(c *fiber.Ctx, err error) error {
	applog.Security(c, "validation.fail", map[string]any{"field": "body", "reason": err.Error()})
	return c.Status(fiber.StatusBadRequest).JSON(errorBody{
		Code:    string(services.CodeInvalidInput),
		Message: "request body must be a JSON object",
	})
}

// POST /api/products
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var req services.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	resp, err := h.Products.CreateProduct(c.UserContext(), req, memberID(c))
	if err != nil {
		return fail(c, "product.create", err)
	}
	applog.Audit(c, "product.create", map[string]any{"product": resp.ProductID})
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// PATCH /api/products/:productId
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, ok := h.productID(c)
	if !ok {
		return fail(c, "product.update", services.ErrProductNotFound)
	}
	var req services.UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	resp, err := h.Products.UpdateProduct(c.UserContext(), req, id, memberID(c))
	if err != nil {
		return fail(c, "product.update", err)
	}
	applog.Audit(c, "product.update", map[string]any{"product": id})
	return c.JSON(resp)
}

// DELETE /api/products/:productId
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := h.productID(c)
	if !ok {
		return fail(c, "product.delete", services.ErrProductNotFound)
	}
	if err := h.Products.DeleteProduct(c.UserContext(), id, memberID(c)); err != nil {
		return fail(c, "product.delete", err)
	}
	applog.Audit(c, "product.delete", map[string]any{"product": id})
	return c.SendStatus(fiber.StatusNoContent)
}

// GET /api/products/:productId counts the view, then returns the detail.
func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, ok := h.productID(c)
	if !ok {
		return fail(c, "product.detail", services.ErrProductNotFound)
	}
	ctx := c.UserContext()
	if err := h.Products.UpdateView(ctx, id); err != nil {
		return fail(c, "product.detail", err)
	}
	detail, err := h.Products.FindProductDetail(ctx, id, memberID(c))
	if err != nil {
		return fail(c, "product.detail", err)
	}
	return c.JSON(detail)
}

// GET /api/products/members
func (h *ProductHandler) Mine(c *fiber.Ctx) error {
	page := validate.Page(c.Query("page"))
	size := validate.Size(c.Query("size"))
	out, err := h.Products.FindProducts(c.UserContext(), memberID(c), page, size)
	if err != nil {
		return fail(c, "product.mine", err)
	}
	return c.JSON(out)
}

// GET /api/products/top/views
func (h *ProductHandler) TopViews(c *fiber.Ctx) error {
	rows, err := h.Products.FindTop3ByView(c.UserContext())
	if err != nil {
		return fail(c, "product.top.views", err)
	}
	return c.JSON(rows)
}

// GET /api/products/top/rates
func (h *ProductHandler) TopRates(c *fiber.Ctx) error {
	rows, err := h.Products.FindTop3ByTotalRateScoreRatio(c.UserContext())
	if err != nil {
		return fail(c, "product.top.rates", err)
	}
	return c.JSON(rows)
}

// GET /api/products/top/free?baseFee=0
func (h *ProductHandler) TopByBaseFee(c *fiber.Ctx) error {
	baseFee := 0
	if raw := strings.TrimSpace(c.Query("baseFee")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			applog.Security(c, "validation.fail", map[string]any{"field": "baseFee"})
			return fail(c, "product.top.fee", services.ErrInvalidInput)
		}
		baseFee = n
	}
	rows, err := h.Products.FindTop3ByBaseFee(c.UserContext(), baseFee)
	if err != nil {
		return fail(c, "product.top.fee", err)
	}
	return c.JSON(rows)
}
