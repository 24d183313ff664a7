package usecase

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"coffeeshop/internal/clients"
	"coffeeshop/internal/domain"

	"github.com/sirupsen/logrus"
)

type CheckoutInput struct {
	CustomerName    string `json:"name"`
	CustomerAddress string `json:"address"`
	PaymentMethod   string `json:"payment_method"`
}

type CheckoutResult struct {
	Order      *domain.Order `json:"order"`
	HandoffURL string        `json:"whatsapp_url"`
}

type CheckoutUseCase interface {
	PlaceOrder(ctx context.Context, cart *domain.Cart, input CheckoutInput) (*CheckoutResult, error)
}

type checkoutUseCase struct {
	orderRepo domain.OrderRepository
	notifier  clients.OrderNotifier
	log       *logrus.Logger
}

func NewCheckoutUseCase(repo domain.OrderRepository, notifier clients.OrderNotifier, logger *logrus.Logger) CheckoutUseCase {
	return &checkoutUseCase{
		orderRepo: repo,
		notifier:  notifier,
		log:       logger,
	}
}

// PlaceOrder runs the checkout transaction: validate, persist one order row,
// then clear the cart and build the handoff link. The ordering is the whole
// point — the insert must succeed before the cart is cleared, and the cart is
// cleared before the handoff link exists.
func (uc *checkoutUseCase) PlaceOrder(ctx context.Context, cart *domain.Cart, input CheckoutInput) (*CheckoutResult, error) {
	input.CustomerName = strings.TrimSpace(input.CustomerName)
	input.CustomerAddress = strings.TrimSpace(input.CustomerAddress)

	if fieldErrs := validateCheckoutInput(input); len(fieldErrs) > 0 {
		uc.log.Warnf("Use Case: Checkout rejected by validation: %v", fieldErrs)
		return nil, fieldErrs
	}

	if !cart.BeginCheckout() {
		uc.log.Warn("Use Case: Checkout rejected, another submission is already in flight for this cart")
		return nil, domain.ErrCheckoutInProgress
	}
	defer cart.EndCheckout()

	items := cart.Snapshot()
	if len(items) == 0 {
		uc.log.Warn("Use Case: Checkout rejected, cart is empty")
		return nil, domain.ErrEmptyCart
	}

	// The total is derived from the snapshot itself, never read back from the
	// cart: a cart mutation racing this checkout must not produce an order
	// whose total disagrees with its own lines.
	var total int64
	for _, item := range items {
		total += item.Subtotal()
	}

	order := &domain.Order{
		CustomerName:    input.CustomerName,
		CustomerAddress: input.CustomerAddress,
		PaymentMethod:   domain.PaymentMethod(input.PaymentMethod),
		TotalPrice:      total,
		Items:           items,
		Status:          domain.StatusPending,
	}

	uc.log.Infof("Use Case: Placing order for '%s' with %d items, total %d", order.CustomerName, len(items), order.TotalPrice)

	created, err := uc.orderRepo.CreateOrder(order)
	if err != nil {
		// The snapshot was never discarded: the cart and the form survive,
		// so the shopper can simply resubmit.
		uc.log.Errorf("Use Case: Failed to persist order for '%s': %v", order.CustomerName, err)
		return nil, fmt.Errorf("could not place order: %w", err)
	}

	cart.Clear()
	uc.log.Infof("Use Case: Order %d committed, cart cleared", created.ID)

	return &CheckoutResult{
		Order:      created,
		HandoffURL: uc.notifier.OrderHandoffLink(created),
	}, nil
}

func validateCheckoutInput(input CheckoutInput) domain.FieldErrors {
	errs := domain.FieldErrors{}

	nameLen := utf8.RuneCountInString(input.CustomerName)
	if nameLen < 2 {
		errs["name"] = "Name must be at least 2 characters"
	} else if nameLen > 100 {
		errs["name"] = "Name must be at most 100 characters"
	}

	addrLen := utf8.RuneCountInString(input.CustomerAddress)
	if addrLen < 10 {
		errs["address"] = "Please enter a complete address"
	} else if addrLen > 500 {
		errs["address"] = "Address must be at most 500 characters"
	}

	if !domain.IsValidPaymentMethod(domain.PaymentMethod(input.PaymentMethod)) {
		errs["payment_method"] = "Payment method must be 'transfer' or 'cod'"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
