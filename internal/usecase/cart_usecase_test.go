package usecase

import (
	"fmt"
	"testing"
	"time"

	"coffeeshop/internal/domain"
	"coffeeshop/internal/repository"
)

type fakeProductRepo struct {
	products map[string]domain.Product
}

func (f *fakeProductRepo) GetProductByID(id string) (*domain.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, fmt.Errorf("product with id %s not found", id)
	}
	return &p, nil
}

func (f *fakeProductRepo) ListProducts() ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProductRepo) CreateProduct(p *domain.Product) (*domain.Product, error) { return p, nil }

func (f *fakeProductRepo) UpdateProduct(id string, updates map[string]interface{}) (*domain.Product, error) {
	return f.GetProductByID(id)
}

func (f *fakeProductRepo) DeleteProduct(id string) error { return nil }

func (f *fakeProductRepo) CountProducts() (int, error) { return len(f.products), nil }

func newCartUseCase() CartUseCase {
	repo := &fakeProductRepo{products: map[string]domain.Product{
		"p1": {ID: "p1", Name: "Latte", Price: 25000},
		"p2": {ID: "p2", Name: "Espresso", Price: 18000},
	}}
	store := repository.NewMemoryCartStore(time.Hour, quietLogger())
	return NewCartUseCase(store, repo, quietLogger())
}

func TestCartUseCaseAddItem(t *testing.T) {
	uc := newCartUseCase()

	view, err := uc.AddItem("s1", "p1")
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if view.TotalItems != 1 || view.TotalPrice != 25000 {
		t.Errorf("unexpected view after add: %+v", view)
	}

	view, err = uc.AddItem("s1", "p1")
	if err != nil {
		t.Fatalf("second AddItem failed: %v", err)
	}
	if len(view.Items) != 1 || view.Items[0].Quantity != 2 {
		t.Errorf("expected one merged line with quantity 2, got %+v", view.Items)
	}
}

func TestCartUseCaseAddUnknownProduct(t *testing.T) {
	uc := newCartUseCase()

	if _, err := uc.AddItem("s1", "missing"); err == nil {
		t.Fatal("expected an error for an unknown product")
	}

	if view := uc.GetCart("s1"); view.TotalItems != 0 {
		t.Errorf("failed add must leave the cart empty, got %+v", view)
	}
}

func TestCartUseCaseUpdateAndRemove(t *testing.T) {
	uc := newCartUseCase()
	if _, err := uc.AddItem("s1", "p1"); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	view := uc.UpdateQuantity("s1", "p1", 4)
	if view.TotalItems != 4 || view.TotalPrice != 100000 {
		t.Errorf("unexpected view after quantity update: %+v", view)
	}

	view = uc.UpdateQuantity("s1", "p1", 0)
	if len(view.Items) != 0 {
		t.Errorf("quantity 0 must remove the line, got %+v", view.Items)
	}

	view = uc.RemoveItem("s1", "p1")
	if len(view.Items) != 0 || view.TotalPrice != 0 {
		t.Errorf("remove on an absent line must be a no-op, got %+v", view)
	}
}

func TestCartUseCaseSessionsAreIsolated(t *testing.T) {
	uc := newCartUseCase()
	if _, err := uc.AddItem("s1", "p1"); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if _, err := uc.AddItem("s2", "p2"); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	v1 := uc.GetCart("s1")
	v2 := uc.GetCart("s2")
	if len(v1.Items) != 1 || v1.Items[0].ProductID != "p1" {
		t.Errorf("session s1 sees the wrong cart: %+v", v1.Items)
	}
	if len(v2.Items) != 1 || v2.Items[0].ProductID != "p2" {
		t.Errorf("session s2 sees the wrong cart: %+v", v2.Items)
	}

	uc.ClearCart("s1")
	if view := uc.GetCart("s2"); view.TotalItems != 1 {
		t.Errorf("clearing s1 must not touch s2, got %+v", view)
	}
}
