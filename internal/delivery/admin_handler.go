package delivery

import (
	"net/http"
	"strconv"

	"coffeeshop/internal/domain"
	"coffeeshop/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// AdminHandler is the management surface: order tracking and catalog CRUD.
// Every route is behind the auth middleware plus the server-side admin check.
type AdminHandler struct {
	orders   usecase.OrderUseCase
	products usecase.ProductUseCase
	log      *logrus.Logger
}

func NewAdminHandler(orders usecase.OrderUseCase, products usecase.ProductUseCase, logger *logrus.Logger) *AdminHandler {
	return &AdminHandler{
		orders:   orders,
		products: products,
		log:      logger,
	}
}

func (h *AdminHandler) RegisterRoutes(router gin.IRouter, authMW, adminMW gin.HandlerFunc) {
	admin := router.Group("/admin", authMW, adminMW)
	{
		admin.GET("/summary", h.GetSummary)
		admin.GET("/orders", h.ListOrders)
		admin.GET("/orders/:id", h.GetOrder)
		admin.PATCH("/orders/:id/status", h.UpdateOrderStatus)
		admin.POST("/products", h.CreateProduct)
		admin.PATCH("/products/:id", h.UpdateProduct)
		admin.DELETE("/products/:id", h.DeleteProduct)
	}
}

func (h *AdminHandler) GetSummary(c *gin.Context) {
	summary, err := h.orders.GetDashboardSummary()
	if err != nil {
		h.log.Errorf("Handler: Failed to load dashboard summary: %v", err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to load summary: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Summary retrieved successfully", summary)
}

func (h *AdminHandler) ListOrders(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	orders, err := h.orders.ListOrders(limit, offset)
	if err != nil {
		h.log.Errorf("Handler: Failed to list orders: %v", err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to retrieve orders: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Orders retrieved successfully", orders)
}

func (h *AdminHandler) GetOrder(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		h.log.Warnf("Handler: Invalid order ID parameter: %s", c.Param("id"))
		ErrorResponse(c, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	order, err := h.orders.GetOrderByID(id)
	if err != nil {
		h.log.Warnf("Handler: Failed to get order %d: %v", id, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to retrieve order: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Order retrieved successfully", order)
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *AdminHandler) UpdateOrderStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		h.log.Warnf("Handler: Invalid order ID parameter for status update: %s", c.Param("id"))
		ErrorResponse(c, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warnf("Handler: Failed to bind JSON for status update of order %d: %v", id, err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	order, err := h.orders.UpdateOrderStatus(id, domain.OrderStatus(req.Status))
	if err != nil {
		h.log.Warnf("Handler: Failed to update status of order %d: %v", id, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to update order status: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Order status updated successfully", order)
}

func (h *AdminHandler) CreateProduct(c *gin.Context) {
	var product domain.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		h.log.Warnf("Handler: Failed to bind JSON for create product: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	created, err := h.products.CreateProduct(&product)
	if err != nil {
		h.log.Warnf("Handler: Failed to create product '%s': %v", product.Name, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to create product: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusCreated, "Product created successfully", created)
}

func (h *AdminHandler) UpdateProduct(c *gin.Context) {
	id := c.Param("id")

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		h.log.Warnf("Handler: Failed to bind JSON for update product %s: %v", id, err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if len(updates) == 0 {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: no fields provided for update")
		return
	}

	updated, err := h.products.UpdateProduct(id, updates)
	if err != nil {
		h.log.Warnf("Handler: Failed to update product %s: %v", id, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to update product: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Product updated successfully", updated)
}

func (h *AdminHandler) DeleteProduct(c *gin.Context) {
	id := c.Param("id")

	if err := h.products.DeleteProduct(id); err != nil {
		h.log.Warnf("Handler: Failed to delete product %s: %v", id, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to delete product: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Product deleted successfully", nil)
}
