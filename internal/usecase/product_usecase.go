package usecase

import (
	"errors"
	"fmt"
	"strings"

	"coffeeshop/internal/domain"

	"github.com/sirupsen/logrus"
)

type ProductUseCase interface {
	ListProducts() ([]domain.Product, error)
	GetProductByID(id string) (*domain.Product, error)
	CreateProduct(product *domain.Product) (*domain.Product, error)
	UpdateProduct(id string, updates map[string]interface{}) (*domain.Product, error)
	DeleteProduct(id string) error
}

type productUseCase struct {
	productRepo domain.ProductRepository
	log         *logrus.Logger
}

func NewProductUseCase(repo domain.ProductRepository, logger *logrus.Logger) ProductUseCase {
	return &productUseCase{
		productRepo: repo,
		log:         logger,
	}
}

func (uc *productUseCase) ListProducts() ([]domain.Product, error) {
	products, err := uc.productRepo.ListProducts()
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list products: %v", err)
		return nil, fmt.Errorf("could not retrieve products: %w", err)
	}
	return products, nil
}

func (uc *productUseCase) GetProductByID(id string) (*domain.Product, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errors.New("invalid product ID")
	}
	return uc.productRepo.GetProductByID(id)
}

func (uc *productUseCase) CreateProduct(product *domain.Product) (*domain.Product, error) {
	product.Name = strings.TrimSpace(product.Name)
	if product.Name == "" {
		uc.log.Warn("Use Case: Product creation failed - empty name")
		return nil, errors.New("product name cannot be empty")
	}
	if product.Price < 0 {
		uc.log.Warnf("Use Case: Product creation failed - negative price for '%s'", product.Name)
		return nil, errors.New("product price cannot be negative")
	}

	created, err := uc.productRepo.CreateProduct(product)
	if err != nil {
		return nil, err
	}
	uc.log.Infof("Use Case: Product created: ID %s, Name %s", created.ID, created.Name)
	return created, nil
}

func (uc *productUseCase) UpdateProduct(id string, updates map[string]interface{}) (*domain.Product, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errors.New("invalid product ID")
	}
	if len(updates) == 0 {
		return nil, errors.New("no fields provided for update")
	}

	if name, ok := updates["name"].(string); ok && strings.TrimSpace(name) == "" {
		return nil, errors.New("product name cannot be empty")
	}
	if price, ok := updates["price"].(float64); ok && price < 0 {
		return nil, errors.New("product price cannot be negative")
	}

	return uc.productRepo.UpdateProduct(id, updates)
}

func (uc *productUseCase) DeleteProduct(id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.New("invalid product ID")
	}
	return uc.productRepo.DeleteProduct(id)
}
