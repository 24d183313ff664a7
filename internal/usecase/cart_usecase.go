package usecase

import (
	"fmt"

	"coffeeshop/internal/domain"

	"github.com/sirupsen/logrus"
)

// CartView is the cart as the storefront sees it: the lines plus the derived
// totals, read together so a response can never mix totals from two states.
type CartView struct {
	Items      []domain.CartLine `json:"items"`
	TotalItems int               `json:"total_items"`
	TotalPrice int64             `json:"total_price"`
}

type CartUseCase interface {
	GetCart(sessionID string) CartView
	AddItem(sessionID, productID string) (CartView, error)
	UpdateQuantity(sessionID, productID string, quantity int) CartView
	RemoveItem(sessionID, productID string) CartView
	ClearCart(sessionID string) CartView
}

type cartUseCase struct {
	carts       domain.CartStore
	productRepo domain.ProductRepository
	log         *logrus.Logger
}

func NewCartUseCase(carts domain.CartStore, productRepo domain.ProductRepository, logger *logrus.Logger) CartUseCase {
	return &cartUseCase{
		carts:       carts,
		productRepo: productRepo,
		log:         logger,
	}
}

func (uc *cartUseCase) GetCart(sessionID string) CartView {
	return viewOf(uc.carts.GetOrCreate(sessionID))
}

// AddItem snapshots the product from the catalog into the cart. The cart line
// keeps whatever name and price the product had at this moment.
func (uc *cartUseCase) AddItem(sessionID, productID string) (CartView, error) {
	product, err := uc.productRepo.GetProductByID(productID)
	if err != nil {
		uc.log.Warnf("Use Case: Cannot add product %s to cart: %v", productID, err)
		return CartView{}, fmt.Errorf("could not add item to cart: %w", err)
	}

	cart := uc.carts.GetOrCreate(sessionID)
	cart.AddItem(*product)

	uc.log.Infof("Use Case: Added product %s ('%s') to cart for session %s", product.ID, product.Name, sessionID)
	return viewOf(cart), nil
}

func (uc *cartUseCase) UpdateQuantity(sessionID, productID string, quantity int) CartView {
	cart := uc.carts.GetOrCreate(sessionID)
	cart.UpdateQuantity(productID, quantity)

	uc.log.Debugf("Use Case: Set quantity of product %s to %d for session %s", productID, quantity, sessionID)
	return viewOf(cart)
}

func (uc *cartUseCase) RemoveItem(sessionID, productID string) CartView {
	cart := uc.carts.GetOrCreate(sessionID)
	cart.RemoveItem(productID)

	uc.log.Debugf("Use Case: Removed product %s from cart for session %s", productID, sessionID)
	return viewOf(cart)
}

func (uc *cartUseCase) ClearCart(sessionID string) CartView {
	cart := uc.carts.GetOrCreate(sessionID)
	cart.Clear()

	uc.log.Infof("Use Case: Cleared cart for session %s", sessionID)
	return viewOf(cart)
}

func viewOf(cart *domain.Cart) CartView {
	return CartView{
		Items:      cart.Lines(),
		TotalItems: cart.TotalItems(),
		TotalPrice: cart.TotalPrice(),
	}
}
