package domain

import "time"

type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusCompleted  OrderStatus = "completed"
	StatusCancelled  OrderStatus = "cancelled"
)

type PaymentMethod string

const (
	PaymentTransfer PaymentMethod = "transfer"
	PaymentCOD      PaymentMethod = "cod"
)

// Order is the durable artifact of a checkout. Items is an immutable snapshot
// of the cart lines at commit time, stored as a single jsonb column.
type Order struct {
	ID              int64         `json:"id"`
	CustomerName    string        `json:"customer_name"`
	CustomerAddress string        `json:"customer_address"`
	PaymentMethod   PaymentMethod `json:"payment_method"`
	TotalPrice      int64         `json:"total_price"`
	Items           []OrderItem   `json:"items"`
	Status          OrderStatus   `json:"status"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// OrderItem is one frozen cart line inside an order snapshot.
type OrderItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}

func (i OrderItem) Subtotal() int64 {
	return i.UnitPrice * int64(i.Quantity)
}

// OrderStats is the read projection behind the admin dashboard summary.
type OrderStats struct {
	TotalOrders   int   `json:"total_orders"`
	PendingOrders int   `json:"pending_orders"`
	Revenue       int64 `json:"revenue"`
}

type OrderRepository interface {
	CreateOrder(order *Order) (*Order, error)
	GetOrderByID(id int64) (*Order, error)
	ListOrders(limit, offset int) ([]Order, error)
	UpdateOrderStatus(id int64, status OrderStatus) (*Order, error)
	GetOrderStats() (*OrderStats, error)
}

func IsValidStatus(status OrderStatus) bool {
	switch status {
	case StatusPending, StatusProcessing, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

func IsValidPaymentMethod(method PaymentMethod) bool {
	switch method {
	case PaymentTransfer, PaymentCOD:
		return true
	default:
		return false
	}
}
