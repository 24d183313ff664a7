package delivery

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"coffeeshop/internal/clients"
	"coffeeshop/internal/domain"
	"coffeeshop/internal/repository"
	"coffeeshop/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type stubProductRepo struct {
	products map[string]domain.Product
}

func (s *stubProductRepo) GetProductByID(id string) (*domain.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, fmt.Errorf("product with id %s not found", id)
	}
	return &p, nil
}

func (s *stubProductRepo) ListProducts() ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	return out, nil
}

func (s *stubProductRepo) CreateProduct(p *domain.Product) (*domain.Product, error) { return p, nil }

func (s *stubProductRepo) UpdateProduct(id string, updates map[string]interface{}) (*domain.Product, error) {
	return s.GetProductByID(id)
}

func (s *stubProductRepo) DeleteProduct(id string) error { return nil }

func (s *stubProductRepo) CountProducts() (int, error) { return len(s.products), nil }

type stubOrderRepo struct {
	created  []*domain.Order
	failWith error
}

func (s *stubOrderRepo) CreateOrder(order *domain.Order) (*domain.Order, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	order.ID = int64(len(s.created) + 1)
	s.created = append(s.created, order)
	return order, nil
}

func (s *stubOrderRepo) GetOrderByID(id int64) (*domain.Order, error) {
	return nil, errors.New("order not found")
}

func (s *stubOrderRepo) ListOrders(limit, offset int) ([]domain.Order, error) { return nil, nil }

func (s *stubOrderRepo) UpdateOrderStatus(id int64, status domain.OrderStatus) (*domain.Order, error) {
	return nil, errors.New("order not found")
}

func (s *stubOrderRepo) GetOrderStats() (*domain.OrderStats, error) {
	return &domain.OrderStats{}, nil
}

type storefront struct {
	router    *gin.Engine
	orderRepo *stubOrderRepo
}

func newStorefront() *storefront {
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	productRepo := &stubProductRepo{products: map[string]domain.Product{
		"p1": {ID: "p1", Name: "Latte", Price: 25000},
	}}
	orderRepo := &stubOrderRepo{}
	cartStore := repository.NewMemoryCartStore(time.Hour, logger)
	notifier := clients.NewWhatsAppNotifier("6288225691061", logger)

	cartUC := usecase.NewCartUseCase(cartStore, productRepo, logger)
	checkoutUC := usecase.NewCheckoutUseCase(orderRepo, notifier, logger)

	router := gin.New()
	NewCartHandler(cartUC, logger).RegisterRoutes(router)
	NewCheckoutHandler(checkoutUC, cartStore, logger).RegisterRoutes(router)

	return &storefront{router: router, orderRepo: orderRepo}
}

func (s *storefront) do(t *testing.T, method, path, session string, body interface{}) (*httptest.ResponseRecorder, Response) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if session != "" {
		req.Header.Set(CartSessionHeader, session)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var resp Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not valid JSON: %v\n%s", err, w.Body.String())
	}
	return w, resp
}

func cartData(t *testing.T, resp Response) usecase.CartView {
	t.Helper()
	raw, err := json.Marshal(resp.Data)
	if err != nil {
		t.Fatalf("re-marshal data: %v", err)
	}
	var view usecase.CartView
	if err := json.Unmarshal(raw, &view); err != nil {
		t.Fatalf("data is not a cart view: %v", err)
	}
	return view
}

func TestCartEndpoints(t *testing.T) {
	s := newStorefront()

	t.Run("first request mints a session id", func(t *testing.T) {
		w, _ := s.do(t, http.MethodGet, "/cart", "", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
		if w.Header().Get(CartSessionHeader) == "" {
			t.Error("expected a minted session id in the response header")
		}
	})

	t.Run("add, update, remove round-trip", func(t *testing.T) {
		w, resp := s.do(t, http.MethodPost, "/cart/items", "sess-1", gin.H{"product_id": "p1"})
		if w.Code != http.StatusOK {
			t.Fatalf("add status = %d: %s", w.Code, resp.Message)
		}
		if view := cartData(t, resp); view.TotalItems != 1 || view.TotalPrice != 25000 {
			t.Errorf("unexpected cart after add: %+v", view)
		}

		w, resp = s.do(t, http.MethodPatch, "/cart/items/p1", "sess-1", gin.H{"quantity": 3})
		if w.Code != http.StatusOK {
			t.Fatalf("update status = %d: %s", w.Code, resp.Message)
		}
		if view := cartData(t, resp); view.TotalItems != 3 || view.TotalPrice != 75000 {
			t.Errorf("unexpected cart after update: %+v", view)
		}

		w, resp = s.do(t, http.MethodDelete, "/cart/items/p1", "sess-1", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("remove status = %d: %s", w.Code, resp.Message)
		}
		if view := cartData(t, resp); view.TotalItems != 0 {
			t.Errorf("unexpected cart after remove: %+v", view)
		}
	})

	t.Run("adding an unknown product -> 404", func(t *testing.T) {
		w, _ := s.do(t, http.MethodPost, "/cart/items", "sess-1", gin.H{"product_id": "missing"})
		if w.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", w.Code)
		}
	})
}

func TestCheckoutEndpoint(t *testing.T) {
	t.Run("valid checkout commits and returns the handoff link", func(t *testing.T) {
		s := newStorefront()

		if w, _ := s.do(t, http.MethodPost, "/cart/items", "sess-2", gin.H{"product_id": "p1"}); w.Code != http.StatusOK {
			t.Fatalf("seed add failed: %d", w.Code)
		}
		if w, _ := s.do(t, http.MethodPost, "/cart/items", "sess-2", gin.H{"product_id": "p1"}); w.Code != http.StatusOK {
			t.Fatalf("seed add failed: %d", w.Code)
		}

		w, resp := s.do(t, http.MethodPost, "/checkout", "sess-2", gin.H{
			"name":           "Alice Tan",
			"address":        "Jl. Melati No. 5, Jakarta 12345",
			"payment_method": "cod",
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201: %s", w.Code, resp.Message)
		}

		raw, _ := json.Marshal(resp.Data)
		var result usecase.CheckoutResult
		if err := json.Unmarshal(raw, &result); err != nil {
			t.Fatalf("data is not a checkout result: %v", err)
		}
		if result.Order.TotalPrice != 50000 {
			t.Errorf("TotalPrice = %d, want 50000", result.Order.TotalPrice)
		}
		if result.HandoffURL == "" {
			t.Error("expected a handoff URL")
		}
		if len(s.orderRepo.created) != 1 {
			t.Errorf("expected 1 persisted order, got %d", len(s.orderRepo.created))
		}

		// the cart is empty afterwards
		_, resp = s.do(t, http.MethodGet, "/cart", "sess-2", nil)
		if view := cartData(t, resp); view.TotalItems != 0 {
			t.Errorf("cart not cleared after checkout: %+v", view)
		}
	})

	t.Run("validation failure -> 400 with field messages", func(t *testing.T) {
		s := newStorefront()

		if w, _ := s.do(t, http.MethodPost, "/cart/items", "sess-3", gin.H{"product_id": "p1"}); w.Code != http.StatusOK {
			t.Fatalf("seed add failed: %d", w.Code)
		}

		w, resp := s.do(t, http.MethodPost, "/checkout", "sess-3", gin.H{
			"name":           "A",
			"address":        "Jl. Melati No. 5, Jakarta 12345",
			"payment_method": "cod",
		})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", w.Code)
		}
		if resp.Fields == nil {
			t.Error("expected per-field validation messages")
		}
		if len(s.orderRepo.created) != 0 {
			t.Error("validation failure must not persist an order")
		}
	})

	t.Run("store failure -> 5xx and the cart survives", func(t *testing.T) {
		s := newStorefront()
		s.orderRepo.failWith = errors.New("store unreachable")

		if w, _ := s.do(t, http.MethodPost, "/cart/items", "sess-4", gin.H{"product_id": "p1"}); w.Code != http.StatusOK {
			t.Fatalf("seed add failed: %d", w.Code)
		}

		w, _ := s.do(t, http.MethodPost, "/checkout", "sess-4", gin.H{
			"name":           "Alice Tan",
			"address":        "Jl. Melati No. 5, Jakarta 12345",
			"payment_method": "cod",
		})
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("status = %d, want 500", w.Code)
		}

		_, resp := s.do(t, http.MethodGet, "/cart", "sess-4", nil)
		if view := cartData(t, resp); view.TotalItems != 1 {
			t.Errorf("cart must survive a failed checkout: %+v", view)
		}
	})
}
