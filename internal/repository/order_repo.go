package repository

import (
	"coffeeshop/internal/domain"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

type postgresOrderRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresOrderRepository(db *sql.DB, logger *logrus.Logger) domain.OrderRepository {
	return &postgresOrderRepository{
		db:  db,
		log: logger,
	}
}

// CreateOrder persists the whole order as one row. The line snapshot travels
// in the items_json column, so a single insert is the entire commit boundary.
func (r *postgresOrderRepository) CreateOrder(order *domain.Order) (*domain.Order, error) {
	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		r.log.Errorf("Repository: Failed to marshal order items for customer '%s': %v", order.CustomerName, err)
		return nil, fmt.Errorf("could not encode order items: %w", err)
	}

	query := `
        INSERT INTO orders (customer_name, customer_address, payment_method, total_price, items_json, status)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, status, created_at, updated_at`

	err = r.db.QueryRow(query,
		order.CustomerName,
		order.CustomerAddress,
		order.PaymentMethod,
		order.TotalPrice,
		itemsJSON,
		order.Status,
	).Scan(&order.ID, &order.Status, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23514" {
			r.log.Warnf("Repository: Check constraint violation for order from '%s': %s", order.CustomerName, pqErr.Message)
			return nil, fmt.Errorf("invalid order data: %s", pqErr.Message)
		}
		r.log.Errorf("Repository: Failed to insert order for customer '%s': %v", order.CustomerName, err)
		return nil, fmt.Errorf("could not create order: %w", err)
	}

	r.log.Infof("Repository: Order %d created successfully with %d items, total %d.", order.ID, len(order.Items), order.TotalPrice)
	return order, nil
}

func (r *postgresOrderRepository) GetOrderByID(id int64) (*domain.Order, error) {
	query := `
        SELECT id, customer_name, customer_address, payment_method, total_price, items_json, status, created_at, updated_at
        FROM orders
        WHERE id = $1`

	order := &domain.Order{}
	var itemsJSON []byte

	err := r.db.QueryRow(query, id).Scan(
		&order.ID,
		&order.CustomerName,
		&order.CustomerAddress,
		&order.PaymentMethod,
		&order.TotalPrice,
		&itemsJSON,
		&order.Status,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Repository: Order with ID %d not found", id)
			return nil, fmt.Errorf("order with id %d not found", id)
		}
		r.log.Errorf("Repository: Failed to get order by ID %d: %v", id, err)
		return nil, fmt.Errorf("could not retrieve order: %w", err)
	}

	if err := json.Unmarshal(itemsJSON, &order.Items); err != nil {
		r.log.Errorf("Repository: Failed to decode items for order ID %d: %v", id, err)
		return nil, fmt.Errorf("could not decode order items: %w", err)
	}

	return order, nil
}

func (r *postgresOrderRepository) ListOrders(limit, offset int) ([]domain.Order, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := `
        SELECT id, customer_name, customer_address, payment_method, total_price, items_json, status, created_at, updated_at
        FROM orders
        ORDER BY created_at DESC
        LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(query, limit, offset)
	if err != nil {
		r.log.Errorf("Repository: Failed to list orders (limit %d, offset %d): %v", limit, offset, err)
		return nil, fmt.Errorf("could not retrieve orders: %w", err)
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		var order domain.Order
		var itemsJSON []byte
		if err := rows.Scan(
			&order.ID,
			&order.CustomerName,
			&order.CustomerAddress,
			&order.PaymentMethod,
			&order.TotalPrice,
			&itemsJSON,
			&order.Status,
			&order.CreatedAt,
			&order.UpdatedAt,
		); err != nil {
			r.log.Errorf("Repository: Failed to scan order row: %v", err)
			return nil, fmt.Errorf("error scanning order data: %w", err)
		}
		if err := json.Unmarshal(itemsJSON, &order.Items); err != nil {
			r.log.Errorf("Repository: Failed to decode items for order ID %d: %v", order.ID, err)
			return nil, fmt.Errorf("could not decode order items: %w", err)
		}
		orders = append(orders, order)
	}
	if err = rows.Err(); err != nil {
		r.log.Errorf("Repository: Error during orders iteration: %v", err)
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	r.log.Infof("Repository: Retrieved %d orders (limit %d, offset %d)", len(orders), limit, offset)
	return orders, nil
}

func (r *postgresOrderRepository) UpdateOrderStatus(id int64, status domain.OrderStatus) (*domain.Order, error) {
	query := `
        UPDATE orders
        SET status = $1, updated_at = NOW()
        WHERE id = $2
        RETURNING id, customer_name, customer_address, payment_method, total_price, items_json, status, created_at, updated_at`

	updatedOrder := &domain.Order{}
	var itemsJSON []byte

	err := r.db.QueryRow(query, status, id).Scan(
		&updatedOrder.ID,
		&updatedOrder.CustomerName,
		&updatedOrder.CustomerAddress,
		&updatedOrder.PaymentMethod,
		&updatedOrder.TotalPrice,
		&itemsJSON,
		&updatedOrder.Status,
		&updatedOrder.CreatedAt,
		&updatedOrder.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Repository: Order with ID %d not found for status update", id)
			return nil, fmt.Errorf("order with id %d not found for update", id)
		}
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23514" {
			r.log.Warnf("Repository: Invalid status value '%s' for order ID %d: %v", status, id, err)
			return nil, fmt.Errorf("invalid order status provided: %s", status)
		}
		r.log.Errorf("Repository: Failed to update status for order ID %d: %v", id, err)
		return nil, fmt.Errorf("could not update order status: %w", err)
	}

	if err := json.Unmarshal(itemsJSON, &updatedOrder.Items); err != nil {
		r.log.Errorf("Repository: Failed to decode items for order ID %d after status update: %v", id, err)
		return nil, fmt.Errorf("could not decode order items: %w", err)
	}

	r.log.Infof("Repository: Status updated successfully for order %d to '%s'.", updatedOrder.ID, updatedOrder.Status)
	return updatedOrder, nil
}

// GetOrderStats feeds the admin dashboard. Revenue sums total_price across
// every order regardless of status; cancelled orders stay in the sum.
func (r *postgresOrderRepository) GetOrderStats() (*domain.OrderStats, error) {
	query := `
        SELECT
            COUNT(*),
            COUNT(*) FILTER (WHERE status = 'pending'),
            COALESCE(SUM(total_price), 0)
        FROM orders`

	stats := &domain.OrderStats{}
	err := r.db.QueryRow(query).Scan(&stats.TotalOrders, &stats.PendingOrders, &stats.Revenue)
	if err != nil {
		r.log.Errorf("Repository: Failed to load order stats: %v", err)
		return nil, fmt.Errorf("could not load order stats: %w", err)
	}

	return stats, nil
}
