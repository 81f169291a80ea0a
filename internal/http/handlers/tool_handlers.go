package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"shopmate/internal/domain"
	applog "shopmate/internal/log"
	"shopmate/internal/services"
	"shopmate/internal/session"
	"shopmate/internal/validate"
)

// ToolHandler exposes the order/cart engine to the voice runtime as
// structured tool calls. Every response carries a "speech" string short
// enough for synthesis, alongside the structured result.
type ToolHandler struct {
	Catalog  *services.CatalogService
	Cart     *services.CartService
	Orders   *services.OrderService
	Sessions *session.Manager
}

func (h *ToolHandler) ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{Name: "sid", Value: sid, Path: "/", HTTPOnly: true})
	}
	h.Sessions.Ensure(sid)
	return sid
}

// speak writes the standard tool response shape.
func speak(c *fiber.Ctx, status int, speech string, data fiber.Map) error {
	body := fiber.Map{"speech": speech}
	for k, v := range data {
		body[k] = v
	}
	return c.Status(status).JSON(body)
}

// toolFail maps domain errors to speech; anything else is a generic 500.
func toolFail(c *fiber.Ctx, action string, err error) error {
	switch {
	case errors.Is(err, domain.ErrItemNotFound):
		return speak(c, fiber.StatusNotFound, "I couldn't find that item in the catalog.", nil)
	case errors.Is(err, domain.ErrNotInCart):
		return speak(c, fiber.StatusNotFound, "That item isn't in your cart.", nil)
	case errors.Is(err, domain.ErrEmptyCart):
		return speak(c, fiber.StatusBadRequest, "Your cart is empty. Add something first.", nil)
	case errors.Is(err, domain.ErrOrderNotFound):
		return speak(c, fiber.StatusNotFound, "I couldn't find that order.", nil)
	case errors.Is(err, domain.ErrAlreadyDelivered):
		return speak(c, fiber.StatusConflict, "That order has already been delivered, so it can't be cancelled.", nil)
	}
	applog.Error(c, action, err, nil)
	return speak(c, fiber.StatusInternalServerError, "Sorry, something went wrong. Please try again.", nil)
}

func (h *ToolHandler) SearchCatalog(c *fiber.Ctx) error {
	h.ensureSID(c)
	var req struct {
		Query    string `json:"query"`
		Category string `json:"category"`
	}
	if err := c.BodyParser(&req); err != nil {
		return speak(c, fiber.StatusBadRequest, "I didn't catch what to search for.", nil)
	}
	q, ok := validate.Q(req.Query)
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "query", "value": req.Query})
		return speak(c, fiber.StatusBadRequest, "I didn't catch what to search for.", nil)
	}

	items, err := h.Catalog.Search(q, strings.TrimSpace(req.Category), 10)
	if err != nil {
		return toolFail(c, "search.fail", err)
	}
	if len(items) == 0 {
		return speak(c, fiber.StatusOK, fmt.Sprintf("I couldn't find anything matching %q.", q), fiber.Map{"items": items})
	}

	names := make([]string, 0, len(items))
	for _, it := range items {
		names = append(names, fmt.Sprintf("%s ($%.2f)", it.Name, it.Price))
	}
	noun := "items"
	if len(items) == 1 {
		noun = "item"
	}
	return speak(c, fiber.StatusOK,
		fmt.Sprintf("I found %d %s: %s.", len(items), noun, strings.Join(names, ", ")),
		fiber.Map{"items": items})
}

func (h *ToolHandler) AddToCart(c *fiber.Ctx) error {
	sid := h.ensureSID(c)
	var req struct {
		ItemID string `json:"itemId"`
		Qty    int    `json:"quantity"`
		Notes  string `json:"notes"`
	}
	if err := c.BodyParser(&req); err != nil {
		return speak(c, fiber.StatusBadRequest, "I didn't catch which item to add.", nil)
	}
	itemID, ok := validate.ID(req.ItemID)
	if !ok {
		return speak(c, fiber.StatusBadRequest, "I didn't catch which item to add.", nil)
	}

	line, total, err := h.Cart.Add(sid, itemID, validate.Qty(req.Qty), validate.Notes(req.Notes))
	if err != nil {
		return toolFail(c, "cart.add.fail", err)
	}
	return speak(c, fiber.StatusOK,
		fmt.Sprintf("Added %s. You now have %d in your cart, total $%.2f.", line.Name, line.Qty, total),
		fiber.Map{"line": line, "total": total})
}

func (h *ToolHandler) RemoveFromCart(c *fiber.Ctx) error {
	sid := h.ensureSID(c)
	var req struct {
		ItemID string `json:"itemId"`
	}
	if err := c.BodyParser(&req); err != nil {
		return speak(c, fiber.StatusBadRequest, "I didn't catch which item to remove.", nil)
	}

	total, err := h.Cart.Remove(sid, strings.TrimSpace(req.ItemID))
	if err != nil {
		return toolFail(c, "cart.remove.fail", err)
	}
	return speak(c, fiber.StatusOK,
		fmt.Sprintf("Removed it. Your cart total is now $%.2f.", total),
		fiber.Map{"total": total})
}

func (h *ToolHandler) SetQuantity(c *fiber.Ctx) error {
	sid := h.ensureSID(c)
	var req struct {
		ItemID string `json:"itemId"`
		Qty    int    `json:"quantity"`
	}
	if err := c.BodyParser(&req); err != nil {
		return speak(c, fiber.StatusBadRequest, "I didn't catch which item to update.", nil)
	}

	total, err := h.Cart.SetQuantity(sid, strings.TrimSpace(req.ItemID), req.Qty)
	if err != nil {
		return toolFail(c, "cart.setqty.fail", err)
	}
	if req.Qty < 1 {
		return speak(c, fiber.StatusOK,
			fmt.Sprintf("Removed it. Your cart total is now $%.2f.", total),
			fiber.Map{"total": total})
	}
	return speak(c, fiber.StatusOK,
		fmt.Sprintf("Updated the quantity to %d. Your cart total is now $%.2f.", req.Qty, total),
		fiber.Map{"total": total})
}

func (h *ToolHandler) ShowCart(c *fiber.Ctx) error {
	sid := h.ensureSID(c)
	cv, err := h.Cart.View(sid)
	if err != nil {
		return toolFail(c, "cart.view.fail", err)
	}
	if len(cv.Lines) == 0 {
		return speak(c, fiber.StatusOK, "Your cart is empty.", fiber.Map{"lines": cv.Lines, "total": cv.Total})
	}

	parts := make([]string, 0, len(cv.Lines))
	for _, l := range cv.Lines {
		parts = append(parts, fmt.Sprintf("%d x %s", l.Qty, l.Name))
	}
	return speak(c, fiber.StatusOK,
		fmt.Sprintf("You have %s. Total $%.2f.", strings.Join(parts, ", "), cv.Total),
		fiber.Map{"lines": cv.Lines, "total": cv.Total})
}

func (h *ToolHandler) AddRecipe(c *fiber.Ctx) error {
	sid := h.ensureSID(c)
	var req struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return speak(c, fiber.StatusBadRequest, "I didn't catch which recipe you meant.", nil)
	}

	added, total, found, err := h.Cart.AddRecipe(sid, req.Name)
	if err != nil {
		return toolFail(c, "cart.recipe.fail", err)
	}
	if !found {
		return speak(c, fiber.StatusOK,
			fmt.Sprintf("I don't have a recipe called %q. I know: %s.",
				strings.TrimSpace(req.Name), strings.Join(services.RecipeNames(), ", ")),
			fiber.Map{"added": []domain.CartLine{}})
	}

	names := make([]string, 0, len(added))
	for _, l := range added {
		names = append(names, l.Name)
	}
	return speak(c, fiber.StatusOK,
		fmt.Sprintf("Added %s for that recipe. Your cart total is $%.2f.", strings.Join(names, ", "), total),
		fiber.Map{"added": added, "total": total})
}

func (h *ToolHandler) PlaceOrder(c *fiber.Ctx) error {
	sid := h.ensureSID(c)
	var req struct {
		CustomerName string `json:"customerName"`
		Address      string `json:"address"`
	}
	if err := c.BodyParser(&req); err != nil {
		return speak(c, fiber.StatusBadRequest, "I need a name and delivery address to place the order.", nil)
	}
	name, ok := validate.Name(req.CustomerName)
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "customerName"})
		return speak(c, fiber.StatusBadRequest, "I need a name for the order.", nil)
	}
	address, ok := validate.Address(req.Address)
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "address"})
		return speak(c, fiber.StatusBadRequest, "I need a delivery address for the order.", nil)
	}

	o, err := h.Orders.Place(sid, name, address)
	if err != nil {
		return toolFail(c, "order.place.fail", err)
	}
	h.Sessions.RecordOrder(sid, o.ID)
	applog.Audit(c, "order.place", map[string]any{"order_id": o.ID, "total": o.Total})

	return speak(c, fiber.StatusOK,
		fmt.Sprintf("Your order is placed, %s. The total is $%.2f and it's on its way soon.", name, o.Total),
		fiber.Map{"orderId": o.ID, "total": o.Total})
}

func (h *ToolHandler) CancelOrder(c *fiber.Ctx) error {
	h.ensureSID(c)
	var req struct {
		OrderID string `json:"orderId"`
	}
	if err := c.BodyParser(&req); err != nil {
		return speak(c, fiber.StatusBadRequest, "I didn't catch which order to cancel.", nil)
	}

	if err := h.Orders.Cancel(strings.TrimSpace(req.OrderID)); err != nil {
		return toolFail(c, "order.cancel.fail", err)
	}
	applog.Audit(c, "order.cancel", map[string]any{"order_id": req.OrderID})
	return speak(c, fiber.StatusOK, "Done, your order is cancelled.", fiber.Map{"orderId": req.OrderID})
}

func (h *ToolHandler) OrderStatus(c *fiber.Ctx) error {
	h.ensureSID(c)
	var req struct {
		OrderID string `json:"orderId"`
	}
	if err := c.BodyParser(&req); err != nil {
		return speak(c, fiber.StatusBadRequest, "I didn't catch which order to check.", nil)
	}

	o, err := h.Orders.Get(strings.TrimSpace(req.OrderID))
	if err != nil {
		return toolFail(c, "order.status.fail", err)
	}
	return speak(c, fiber.StatusOK,
		fmt.Sprintf("Your order is %s, last updated %s.", statusSpeech(o.Status), o.UpdatedAt),
		fiber.Map{"orderId": o.ID, "status": o.Status, "updatedAt": o.UpdatedAt})
}

func statusSpeech(s domain.Status) string {
	switch s {
	case domain.StatusOutForDelivery:
		return "out for delivery"
	default:
		return string(s)
	}
}
