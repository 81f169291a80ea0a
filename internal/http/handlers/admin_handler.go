package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "shopmate/internal/log"
	"shopmate/internal/repos"
)

// AdminHandler serves the read-only operator view of recent orders.
type AdminHandler struct {
	Orders *repos.OrderRepo
}

func (h *AdminHandler) OrdersPage(c *fiber.Ctx) error {
	orders, err := h.Orders.ListLatest(100)
	if err != nil {
		applog.Error(c, "admin.orders.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("error", fiber.Map{"Message": "Could not load orders"})
	}
	return c.Render("orders", fiber.Map{"Orders": orders, "Count": len(orders)})
}
