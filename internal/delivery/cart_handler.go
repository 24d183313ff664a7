package delivery

import (
	"net/http"

	"coffeeshop/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// CartSessionHeader carries the shopper's cart session id. The first cart
// request without one gets a fresh id echoed back; the client repeats it on
// every later call.
const CartSessionHeader = "X-Cart-Session"

type CartHandler struct {
	useCase usecase.CartUseCase
	log     *logrus.Logger
}

func NewCartHandler(uc usecase.CartUseCase, logger *logrus.Logger) *CartHandler {
	return &CartHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *CartHandler) RegisterRoutes(router gin.IRouter) {
	cart := router.Group("/cart")
	{
		cart.GET("", h.GetCart)
		cart.POST("/items", h.AddItem)
		cart.PATCH("/items/:productId", h.UpdateQuantity)
		cart.DELETE("/items/:productId", h.RemoveItem)
		cart.DELETE("", h.ClearCart)
	}
}

// CartSession resolves the session id for this request, minting one if the
// client has none yet. The id is always echoed in the response header.
func CartSession(c *gin.Context) string {
	sessionID := c.GetHeader(CartSessionHeader)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	c.Header(CartSessionHeader, sessionID)
	return sessionID
}

func (h *CartHandler) GetCart(c *gin.Context) {
	view := h.useCase.GetCart(CartSession(c))
	SuccessResponse(c, http.StatusOK, "Cart retrieved successfully", view)
}

type addItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

func (h *CartHandler) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warnf("Handler: Failed to bind JSON for add cart item: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	view, err := h.useCase.AddItem(CartSession(c), req.ProductID)
	if err != nil {
		h.log.Warnf("Handler: Failed to add product %s to cart: %v", req.ProductID, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to add item to cart: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Item added to cart", view)
}

type updateQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	productID := c.Param("productId")

	var req updateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warnf("Handler: Failed to bind JSON for update quantity of %s: %v", productID, err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	view := h.useCase.UpdateQuantity(CartSession(c), productID, *req.Quantity)
	SuccessResponse(c, http.StatusOK, "Cart updated", view)
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	productID := c.Param("productId")

	view := h.useCase.RemoveItem(CartSession(c), productID)
	SuccessResponse(c, http.StatusOK, "Item removed from cart", view)
}

func (h *CartHandler) ClearCart(c *gin.Context) {
	view := h.useCase.ClearCart(CartSession(c))
	SuccessResponse(c, http.StatusOK, "Cart cleared", view)
}
