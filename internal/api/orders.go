package api

import (
	"net/http"
	"strconv"

	"catering-service/internal/models"
	"catering-service/internal/service"

	"github.com/gin-gonic/gin"
)

// submitOrder turns a session cart into a pending order
func (h *Handler) submitOrder(c *gin.Context) {
	var req service.SubmitOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := h.svc.Orders.SubmitOrder(c.Request.Context(), requesterRole(c), &req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *Handler) listOrders(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	orders, err := h.svc.Orders.ListOrders(c.Request.Context(), models.Status(c.Query("status")), limit)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// getOrder handles get order by ID
func (h *Handler) getOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	order, err := h.svc.Orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) submitBooking(c *gin.Context) {
	var req service.SubmitBookingRequest
	if !bindJSON(c, &req) {
		return
	}

	booking, err := h.svc.Bookings.SubmitBooking(c.Request.Context(), requesterRole(c), &req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

func (h *Handler) getBooking(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	booking, err := h.svc.Bookings.GetBooking(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// changeStatus applies a fulfillment transition. Guarded transitions answer 409 with the
// prompts to show until the request is repeated with "confirmed": true.
func (h *Handler) changeStatus(c *gin.Context) {
	var req service.ChangeStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	decision, err := h.svc.Statuses.ChangeStatus(c.Request.Context(), refFrom(c), &req, actor(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, decision)
}

func (h *Handler) history(c *gin.Context) {
	entries, err := h.svc.Statuses.History(c.Request.Context(), refFrom(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	if entries == nil {
		entries = []models.StatusHistory{}
	}
	c.JSON(http.StatusOK, gin.H{"history": entries})
}

func (h *Handler) ledgerView(c *gin.Context) {
	view, err := h.svc.Ledger.Ledger(c.Request.Context(), refFrom(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) recordPayment(c *gin.Context) {
	var req service.RecordPaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	payment, err := h.svc.Ledger.Record(c.Request.Context(), refFrom(c), &req, actor(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, payment)
}

func (h *Handler) deletePayment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	payment, err := h.svc.Ledger.Delete(c.Request.Context(), id, actor(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": payment})
}

func (h *Handler) markRefunded(c *gin.Context) {
	summary, err := h.svc.Ledger.MarkRefunded(c.Request.Context(), refFrom(c), actor(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *Handler) resetPaymentStatus(c *gin.Context) {
	summary, err := h.svc.Ledger.ResetPaymentStatus(c.Request.Context(), refFrom(c), actor(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
