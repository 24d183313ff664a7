package repository

import (
	"encoding/json"
	"errors"
	"io"
	"regexp"
	"testing"
	"time"

	"coffeeshop/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func sampleOrder() *domain.Order {
	return &domain.Order{
		CustomerName:    "Alice Tan",
		CustomerAddress: "Jl. Melati No. 5, Jakarta 12345",
		PaymentMethod:   domain.PaymentCOD,
		TotalPrice:      50000,
		Items: []domain.OrderItem{
			{ProductID: "p1", Name: "Latte", UnitPrice: 25000, Quantity: 2},
		},
		Status: domain.StatusPending,
	}
}

func TestCreateOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	repo := NewPostgresOrderRepository(db, testLogger())
	order := sampleOrder()

	itemsJSON, _ := json.Marshal(order.Items)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO orders (customer_name, customer_address, payment_method, total_price, items_json, status)")).
		WithArgs("Alice Tan", "Jl. Melati No. 5, Jakarta 12345", domain.PaymentCOD, int64(50000), itemsJSON, domain.StatusPending).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "created_at", "updated_at"}).
			AddRow(int64(7), "pending", now, now))

	created, err := repo.CreateOrder(order)
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}
	if created.ID != 7 {
		t.Errorf("ID = %d, want 7", created.ID)
	}
	if created.Status != domain.StatusPending {
		t.Errorf("Status = %s, want pending", created.Status)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateOrderStoreError(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := NewPostgresOrderRepository(db, testLogger())

	mock.ExpectQuery("INSERT INTO orders").
		WillReturnError(errors.New("connection refused"))

	if _, err := repo.CreateOrder(sampleOrder()); err == nil {
		t.Fatal("expected an error when the insert fails")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListOrders(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := NewPostgresOrderRepository(db, testLogger())

	items := []domain.OrderItem{{ProductID: "p1", Name: "Latte", UnitPrice: 25000, Quantity: 2}}
	itemsJSON, _ := json.Marshal(items)
	now := time.Now()

	rows := sqlmock.NewRows([]string{
		"id", "customer_name", "customer_address", "payment_method",
		"total_price", "items_json", "status", "created_at", "updated_at",
	}).AddRow(int64(2), "Alice Tan", "Jl. Melati No. 5, Jakarta 12345", "cod", int64(50000), itemsJSON, "pending", now, now).
		AddRow(int64(1), "Budi", "Jl. Kenanga No. 9, Bandung 40111", "transfer", int64(18000), []byte(`[]`), "completed", now.Add(-time.Hour), now)

	mock.ExpectQuery("SELECT (.+) FROM orders").
		WithArgs(50, 0).
		WillReturnRows(rows)

	orders, err := repo.ListOrders(50, 0)
	if err != nil {
		t.Fatalf("ListOrders failed: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(orders))
	}
	if orders[0].ID != 2 || len(orders[0].Items) != 1 || orders[0].Items[0].Name != "Latte" {
		t.Errorf("unexpected first order: %+v", orders[0])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateOrderStatusNotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := NewPostgresOrderRepository(db, testLogger())

	mock.ExpectQuery("UPDATE orders").
		WithArgs(domain.StatusCompleted, int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.UpdateOrderStatus(99, domain.StatusCompleted)
	if err == nil {
		t.Fatal("expected a not-found error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetOrderStats(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := NewPostgresOrderRepository(db, testLogger())

	// revenue sums every order, cancelled ones included
	mock.ExpectQuery(regexp.QuoteMeta("COALESCE(SUM(total_price), 0)")).
		WillReturnRows(sqlmock.NewRows([]string{"count", "pending", "revenue"}).
			AddRow(12, 3, int64(480000)))

	stats, err := repo.GetOrderStats()
	if err != nil {
		t.Fatalf("GetOrderStats failed: %v", err)
	}
	if stats.TotalOrders != 12 || stats.PendingOrders != 3 || stats.Revenue != 480000 {
		t.Errorf("unexpected stats: %+v", stats)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
