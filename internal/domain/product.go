package domain

import "time"

// Product is a catalog row. Price is a whole-rupiah amount; there are no
// fractional prices on the menu.
type Product struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Price        int64     `json:"price"`
	Description  string    `json:"description,omitempty"`
	ImageURL     string    `json:"image_url,omitempty"`
	Category     string    `json:"category,omitempty"`
	IsBestseller bool      `json:"is_bestseller"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type ProductRepository interface {
	CreateProduct(product *Product) (*Product, error)
	GetProductByID(id string) (*Product, error)
	ListProducts() ([]Product, error)
	UpdateProduct(id string, updates map[string]interface{}) (*Product, error)
	DeleteProduct(id string) error
	CountProducts() (int, error)
}
