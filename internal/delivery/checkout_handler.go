package delivery

import (
	"net/http"

	"coffeeshop/internal/domain"
	"coffeeshop/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type CheckoutHandler struct {
	useCase usecase.CheckoutUseCase
	carts   domain.CartStore
	log     *logrus.Logger
}

func NewCheckoutHandler(uc usecase.CheckoutUseCase, carts domain.CartStore, logger *logrus.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		useCase: uc,
		carts:   carts,
		log:     logger,
	}
}

func (h *CheckoutHandler) RegisterRoutes(router gin.IRouter) {
	router.POST("/checkout", h.Checkout)
}

// Checkout submits the session's cart as an order. On success the response
// carries the committed order and the WhatsApp deep link the client should
// open; the cart is already empty by then.
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var input usecase.CheckoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.log.Warnf("Handler: Failed to bind JSON for checkout: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	cart := h.carts.GetOrCreate(CartSession(c))

	result, err := h.useCase.PlaceOrder(c.Request.Context(), cart, input)
	if err != nil {
		if fields, ok := domain.AsFieldErrors(err); ok {
			ValidationErrorResponse(c, fields)
			return
		}
		h.log.Errorf("Handler: Checkout failed: %v", err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to process order: "+err.Error())
		return
	}

	h.log.Infof("Handler: Order %d placed successfully", result.Order.ID)
	SuccessResponse(c, http.StatusCreated, "Order placed successfully", result)
}
