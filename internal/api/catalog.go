package api

import (
	"net/http"

	"catering-service/internal/schedule"
	"catering-service/internal/service"

	"github.com/gin-gonic/gin"
)

func (h *Handler) listProducts(c *gin.Context) {
	products, err := h.svc.Catalog.ListProducts(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (h *Handler) getProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	product, err := h.svc.Catalog.GetProduct(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *Handler) createProduct(c *gin.Context) {
	var req service.CreateProductRequest
	if !bindJSON(c, &req) {
		return
	}
	product, err := h.svc.Catalog.CreateProduct(c.Request.Context(), &req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *Handler) updatePrices(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req service.PriceRequest
	if !bindJSON(c, &req) {
		return
	}
	product, err := h.svc.Catalog.UpdatePrices(c.Request.Context(), id, &req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *Handler) createCart(c *gin.Context) {
	view, err := h.svc.Carts.Create(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (h *Handler) getCart(c *gin.Context) {
	view, err := h.svc.Carts.Get(c.Request.Context(), c.Param("session"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) addCartItem(c *gin.Context) {
	var req service.AddItemRequest
	if !bindJSON(c, &req) {
		return
	}
	view, err := h.svc.Carts.AddItem(c.Request.Context(), c.Param("session"), &req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

type quantityRequest struct {
	Delta int `json:"delta" binding:"required"`
}

func (h *Handler) updateCartItem(c *gin.Context) {
	var req quantityRequest
	if !bindJSON(c, &req) {
		return
	}
	view, err := h.svc.Carts.UpdateQuantity(c.Request.Context(), c.Param("session"), c.Param("key"), req.Delta)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) removeCartItem(c *gin.Context) {
	view, err := h.svc.Carts.RemoveItem(c.Request.Context(), c.Param("session"), c.Param("key"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// getSchedule lists the earliest bookable date and the delivery slots of a date for the requester
func (h *Handler) getSchedule(c *gin.Context) {
	role := requesterRole(c)
	now := h.now()
	minimum := h.validator.MinimumDate(role, now)

	date := minimum
	if s := c.Query("date"); s != "" {
		d, err := schedule.ParseDate(s, h.validator.Location())
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid date",
				"details": err.Error(),
			})
			return
		}
		date = d
	}

	slots := []string{}
	for _, s := range h.validator.Slots(role, date, now) {
		slots = append(slots, s.String())
	}

	resp := gin.H{
		"role":         role,
		"date":         date.Format(schedule.DateLayout),
		"minimum_date": minimum.Format(schedule.DateLayout),
		"slots":        slots,
	}
	if t, ok := h.validator.MinimumTimeToday(role, now); ok {
		resp["minimum_time_today"] = t.String()
	}
	c.JSON(http.StatusOK, resp)
}
