package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"catering-service/internal/ledger"
	"catering-service/internal/models"
	"catering-service/internal/schedule"
	"catering-service/internal/service"
	"catering-service/internal/status"
	"catering-service/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const (
	headerRole    = "X-Requester-Role"
	headerStaffID = "X-Staff-ID"
)

// Pinger is a dependency checked by the readiness probe
type Pinger interface {
	Ping(ctx context.Context) error
}

// Services groups the application services the handlers call
type Services struct {
	Catalog  *service.CatalogService
	Carts    *service.CartService
	Orders   *service.OrderService
	Bookings *service.BookingService
	Statuses *service.StatusService
	Ledger   *service.LedgerService
}

// Handler contains HTTP handlers
type Handler struct {
	svc       Services
	validator *schedule.Validator
	checks    map[string]Pinger
	now       func() time.Time
	logger    *zap.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(svc Services, validator *schedule.Validator, checks map[string]Pinger) *Handler {
	return &Handler{
		svc:       svc,
		validator: validator,
		checks:    checks,
		now:       time.Now,
		logger:    util.GetLogger(),
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/products", h.listProducts)
		v1.GET("/products/:id", h.getProduct)
		v1.POST("/products", requireStaff, h.createProduct)
		v1.PUT("/products/:id/prices", requireStaff, h.updatePrices)

		v1.POST("/carts", h.createCart)
		v1.GET("/carts/:session", h.getCart)
		v1.POST("/carts/:session/items", h.addCartItem)
		v1.PATCH("/carts/:session/items/:key", h.updateCartItem)
		v1.DELETE("/carts/:session/items/:key", h.removeCartItem)

		v1.GET("/schedule", h.getSchedule)

		v1.POST("/orders", h.submitOrder)
		v1.GET("/orders", requireStaff, h.listOrders)
		v1.GET("/orders/:id", h.getOrder)

		v1.POST("/bookings", h.submitBooking)
		v1.GET("/bookings/:id", h.getBooking)

		for path, kind := range map[string]models.ParentKind{
			"/orders/:id":   models.ParentOrder,
			"/bookings/:id": models.ParentBooking,
		} {
			parent := v1.Group(path, requireStaff, parentRef(kind))
			parent.PATCH("/status", h.changeStatus)
			parent.GET("/history", h.history)
			parent.GET("/payments", h.ledgerView)
			parent.GET("/ledger", h.ledgerView)
			parent.POST("/payments", requireActor, h.recordPayment)
			parent.POST("/refund", requireActor, h.markRefunded)
			parent.POST("/payment-status/reset", requireActor, h.resetPaymentStatus)
		}

		v1.DELETE("/payments/:id", requireStaff, requireActor, h.deletePayment)
	}
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   h.now().Unix(),
	})
}

// readinessCheck pings every dependency the service cannot work without
func (h *Handler) readinessCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	failed := gin.H{}
	for name, p := range h.checks {
		if err := p.Ping(ctx); err != nil {
			failed[name] = err.Error()
		}
	}

	if len(failed) > 0 {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "not ready",
			"details": failed,
			"time":    h.now().Unix(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   h.now().Unix(),
	})
}

func requesterRole(c *gin.Context) schedule.Role {
	return schedule.ParseRole(c.GetHeader(headerRole))
}

func actor(c *gin.Context) string {
	return c.GetHeader(headerStaffID)
}

// requireStaff rejects requests that do not carry the staff role
func requireStaff(c *gin.Context) {
	if requesterRole(c) != schedule.RolePrivileged {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error": "Staff access required",
		})
		return
	}
	c.Next()
}

// requireActor rejects writes that cannot be attributed to a staff member
func requireActor(c *gin.Context) {
	if actor(c) == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": headerStaffID + " header is required",
		})
		return
	}
	c.Next()
}

const refKey = "parent_ref"

// parentRef resolves the :id path parameter into a ParentRef of kind
func parentRef(kind models.ParentKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			c.Abort()
			return
		}
		c.Set(refKey, models.ParentRef{Kind: kind, ID: id})
		c.Next()
	}
}

func refFrom(c *gin.Context) models.ParentRef {
	return c.MustGet(refKey).(models.ParentRef)
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid " + name,
		})
		return 0, false
	}
	return id, true
}

func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return false
	}
	return true
}

// writeError maps service errors to HTTP responses
func (h *Handler) writeError(c *gin.Context, err error) {
	var verr *service.ValidationError
	var confirm *service.ConfirmationRequiredError

	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"field":   verr.Field,
			"details": verr.Message,
		})
	case errors.As(err, &confirm):
		c.JSON(http.StatusConflict, gin.H{
			"error":         "Confirmation required",
			"decision":      confirm.Decision,
			"confirmations": confirm.Decision.Confirmations,
		})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Not found",
			"details": err.Error(),
		})
	case errors.Is(err, service.ErrSubmissionInFlight), errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{
			"error":   "Conflict",
			"details": err.Error(),
		})
	case errors.Is(err, status.ErrUnknownStatus):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"field":   "status",
			"details": err.Error(),
		})
	case errors.Is(err, status.ErrTerminalState),
		errors.Is(err, status.ErrNoChange),
		errors.Is(err, ledger.ErrNotRefundPending),
		errors.Is(err, ledger.ErrNotRefundState):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "Transition not allowed",
			"details": err.Error(),
		})
	default:
		h.logger.Error("Request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
