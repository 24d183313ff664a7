package delivery

import (
	"net/http"

	"coffeeshop/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type CatalogHandler struct {
	useCase usecase.ProductUseCase
	log     *logrus.Logger
}

func NewCatalogHandler(uc usecase.ProductUseCase, logger *logrus.Logger) *CatalogHandler {
	return &CatalogHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *CatalogHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/products", h.ListProducts)
}

// ListProducts serves the storefront menu: every product, newest first.
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	products, err := h.useCase.ListProducts()
	if err != nil {
		h.log.Errorf("Handler: Failed to list products: %v", err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to retrieve products: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Products retrieved successfully", products)
}
