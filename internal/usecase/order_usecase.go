package usecase

import (
	"errors"
	"fmt"

	"coffeeshop/internal/domain"

	"github.com/sirupsen/logrus"
)

// DashboardSummary is what the admin landing page shows.
type DashboardSummary struct {
	TotalProducts int   `json:"total_products"`
	TotalOrders   int   `json:"total_orders"`
	PendingOrders int   `json:"pending_orders"`
	Revenue       int64 `json:"revenue"`
}

type OrderUseCase interface {
	GetOrderByID(id int64) (*domain.Order, error)
	ListOrders(limit, offset int) ([]domain.Order, error)
	UpdateOrderStatus(id int64, status domain.OrderStatus) (*domain.Order, error)
	GetDashboardSummary() (*DashboardSummary, error)
}

type orderUseCase struct {
	orderRepo   domain.OrderRepository
	productRepo domain.ProductRepository
	log         *logrus.Logger
}

func NewOrderUseCase(orderRepo domain.OrderRepository, productRepo domain.ProductRepository, logger *logrus.Logger) OrderUseCase {
	return &orderUseCase{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		log:         logger,
	}
}

func (uc *orderUseCase) GetOrderByID(id int64) (*domain.Order, error) {
	if id <= 0 {
		return nil, errors.New("invalid order ID")
	}
	order, err := uc.orderRepo.GetOrderByID(id)
	if err != nil {
		uc.log.Warnf("Use Case: Repository failed to get order ID %d: %v", id, err)
		return nil, err
	}
	return order, nil
}

func (uc *orderUseCase) ListOrders(limit, offset int) ([]domain.Order, error) {
	uc.log.Infof("Use Case: Listing orders (limit: %d, offset: %d)", limit, offset)
	orders, err := uc.orderRepo.ListOrders(limit, offset)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list orders: %v", err)
		return nil, fmt.Errorf("could not retrieve orders: %w", err)
	}
	return orders, nil
}

// UpdateOrderStatus advances an order through its lifecycle. Checkout itself
// never calls this: status only moves through the admin surface.
func (uc *orderUseCase) UpdateOrderStatus(id int64, status domain.OrderStatus) (*domain.Order, error) {
	if id <= 0 {
		return nil, errors.New("invalid order ID for status update")
	}
	if !domain.IsValidStatus(status) {
		return nil, fmt.Errorf("invalid target order status: %s", status)
	}

	uc.log.Infof("Use Case: Attempting to update status for order ID %d to '%s'", id, status)

	currentOrder, err := uc.orderRepo.GetOrderByID(id)
	if err != nil {
		uc.log.Warnf("Use Case: Could not get current order %d for status update check: %v", id, err)
		return nil, err
	}

	if currentOrder.Status == domain.StatusCompleted && status == domain.StatusCancelled {
		uc.log.Warnf("Use Case: Attempt to cancel an already completed order %d", id)
		return nil, errors.New("cannot cancel a completed order")
	}
	if currentOrder.Status == domain.StatusCancelled && status != domain.StatusCancelled {
		uc.log.Warnf("Use Case: Attempt to change status of an already cancelled order %d", id)
		return nil, errors.New("cannot change status of a cancelled order")
	}

	updatedOrder, err := uc.orderRepo.UpdateOrderStatus(id, status)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to update status for order ID %d: %v", id, err)
		return nil, err
	}

	uc.log.Infof("Use Case: Order status updated successfully for ID %d to %s", updatedOrder.ID, updatedOrder.Status)
	return updatedOrder, nil
}

func (uc *orderUseCase) GetDashboardSummary() (*DashboardSummary, error) {
	stats, err := uc.orderRepo.GetOrderStats()
	if err != nil {
		uc.log.Errorf("Use Case: Failed to load order stats for dashboard: %v", err)
		return nil, fmt.Errorf("could not load dashboard summary: %w", err)
	}

	productCount, err := uc.productRepo.CountProducts()
	if err != nil {
		uc.log.Errorf("Use Case: Failed to count products for dashboard: %v", err)
		return nil, fmt.Errorf("could not load dashboard summary: %w", err)
	}

	return &DashboardSummary{
		TotalProducts: productCount,
		TotalOrders:   stats.TotalOrders,
		PendingOrders: stats.PendingOrders,
		Revenue:       stats.Revenue,
	}, nil
}
