package repository

import (
	"coffeeshop/internal/domain"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

type postgresProductRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresProductRepository(db *sql.DB, logger *logrus.Logger) domain.ProductRepository {
	return &postgresProductRepository{
		db:  db,
		log: logger,
	}
}

func (r *postgresProductRepository) CreateProduct(product *domain.Product) (*domain.Product, error) {
	query := `
        INSERT INTO products (name, price, description, image_url, category, is_bestseller)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(query,
		product.Name,
		product.Price,
		nullString(product.Description),
		nullString(product.ImageURL),
		nullString(product.Category),
		product.IsBestseller,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23514" {
			r.log.Warnf("Repository: Check constraint violation for product '%s': %s", product.Name, pqErr.Message)
			return nil, fmt.Errorf("product data constraint violation: %s", pqErr.Message)
		}
		r.log.Errorf("Repository: Failed to create product '%s': %v", product.Name, err)
		return nil, fmt.Errorf("could not create product: %w", err)
	}

	r.log.Infof("Repository: Product created successfully with ID: %s, Name: %s", product.ID, product.Name)
	return product, nil
}

func (r *postgresProductRepository) GetProductByID(id string) (*domain.Product, error) {
	query := `
        SELECT id, name, price, description, image_url, category, is_bestseller, created_at, updated_at
        FROM products
        WHERE id = $1`

	product := &domain.Product{}
	var description, imageURL, category sql.NullString

	err := r.db.QueryRow(query, id).Scan(
		&product.ID,
		&product.Name,
		&product.Price,
		&description,
		&imageURL,
		&category,
		&product.IsBestseller,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Repository: Product with ID %s not found", id)
			return nil, fmt.Errorf("product with id %s not found", id)
		}
		r.log.Errorf("Repository: Failed to get product by ID %s: %v", id, err)
		return nil, fmt.Errorf("could not get product by id: %w", err)
	}

	product.Description = description.String
	product.ImageURL = imageURL.String
	product.Category = category.String

	return product, nil
}

// ListProducts returns the whole catalog, newest first; the storefront shows
// everything and filters by category client-side.
func (r *postgresProductRepository) ListProducts() ([]domain.Product, error) {
	query := `
        SELECT id, name, price, description, image_url, category, is_bestseller, created_at, updated_at
        FROM products
        ORDER BY created_at DESC`

	rows, err := r.db.Query(query)
	if err != nil {
		r.log.Errorf("Repository: Failed to list products: %v", err)
		return nil, fmt.Errorf("could not list products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var product domain.Product
		var description, imageURL, category sql.NullString
		if err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.Price,
			&description,
			&imageURL,
			&category,
			&product.IsBestseller,
			&product.CreatedAt,
			&product.UpdatedAt,
		); err != nil {
			r.log.Errorf("Repository: Failed to scan product row: %v", err)
			return nil, fmt.Errorf("error scanning product data: %w", err)
		}
		product.Description = description.String
		product.ImageURL = imageURL.String
		product.Category = category.String
		products = append(products, product)
	}
	if err = rows.Err(); err != nil {
		r.log.Errorf("Repository: Error during products list iteration: %v", err)
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	r.log.Infof("Repository: Retrieved %d products", len(products))
	return products, nil
}

func (r *postgresProductRepository) UpdateProduct(id string, updates map[string]interface{}) (*domain.Product, error) {
	if len(updates) == 0 {
		r.log.Infof("Repository: No fields provided for product update ID %s. Returning current product.", id)
		return r.GetProductByID(id)
	}

	queryBase := "UPDATE products SET "
	args := []interface{}{}
	setClauses := []string{}
	argCounter := 1

	for key, value := range updates {
		column := ""
		argValue := value

		switch key {
		case "name":
			column = "name"
		case "price":
			column = "price"
		case "description":
			column = "description"
		case "image_url":
			column = "image_url"
		case "category":
			column = "category"
		case "is_bestseller":
			column = "is_bestseller"
		default:
			r.log.Warnf("Repository: Skipping unknown field '%s' provided for product update ID %s", key, id)
			continue
		}

		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argCounter))
		args = append(args, argValue)
		argCounter++
	}

	if len(setClauses) == 0 {
		r.log.Warnf("Repository: No valid known fields provided for product update ID %s. Returning current product.", id)
		return r.GetProductByID(id)
	}

	setClauses = append(setClauses, "updated_at = NOW()")
	query := queryBase + strings.Join(setClauses, ", ") + fmt.Sprintf(" WHERE id = $%d", argCounter)
	args = append(args, id)

	r.log.Debugf("Repository: Executing partial update query for ID %s: %s with args: %v", id, query, args)

	result, err := r.db.Exec(query, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23514" {
			r.log.Warnf("Repository: Check constraint violation for product update ID %s: %s", id, pqErr.Message)
			return nil, fmt.Errorf("product data constraint violation: %s", pqErr.Message)
		}
		r.log.Errorf("Repository: Failed to execute partial update for product ID %s: %v", id, err)
		return nil, fmt.Errorf("could not partially update product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.Errorf("Repository: Failed to get rows affected after partial update for ID %s: %v", id, err)
	}
	if rowsAffected == 0 {
		r.log.Warnf("Repository: Product with ID %s not found for update (0 rows affected)", id)
		return nil, fmt.Errorf("product with id %s not found for update", id)
	}

	r.log.Infof("Repository: Partial update successful for product ID %s. Fetching updated product.", id)
	return r.GetProductByID(id)
}

func (r *postgresProductRepository) DeleteProduct(id string) error {
	query := `DELETE FROM products WHERE id = $1`
	result, err := r.db.Exec(query, id)
	if err != nil {
		r.log.Errorf("Repository: Failed to delete product ID %s: %v", id, err)
		return fmt.Errorf("could not delete product: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.Errorf("Repository: Failed to get rows affected after deleting product ID %s: %v", id, err)
		return fmt.Errorf("could not confirm product deletion: %w", err)
	}
	if rowsAffected == 0 {
		r.log.Warnf("Repository: Attempted to delete non-existent product ID %s", id)
		return fmt.Errorf("product with id %s not found for deletion", id)
	}
	r.log.Infof("Repository: Product deleted successfully with ID: %s", id)
	return nil
}

func (r *postgresProductRepository) CountProducts() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM products`).Scan(&count)
	if err != nil {
		r.log.Errorf("Repository: Failed to count products: %v", err)
		return 0, fmt.Errorf("could not count products: %w", err)
	}
	return count, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
