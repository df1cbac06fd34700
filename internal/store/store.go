package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"catering-service/internal/models"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

var (
	// ErrNotFound is returned when a record does not exist
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when a guarded update found the record in another state
	ErrConflict = errors.New("record was changed concurrently")
)

type Store struct {
	db *sqlx.DB
}

// NewStore creates a new database store
func NewStore(databaseURL string) (*Store, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks the database connection
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

const productColumns = `id, name, category, size_scheme, custom_scheme, price,
	price_solo, price_small, price_medium, price_large, price_xl, price_party, created_at, updated_at`

// GetProductByID retrieves a product by ID
func (s *Store) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	err := s.db.GetContext(ctx, &product, "SELECT "+productColumns+" FROM products WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetProducts retrieves all products
func (s *Store) GetProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := s.db.SelectContext(ctx, &products, "SELECT "+productColumns+" FROM products ORDER BY category, name")
	return products, err
}

// CreateProduct inserts a product with its scheme tag
func (s *Store) CreateProduct(ctx context.Context, p *models.Product) error {
	query := `
		INSERT INTO products (name, category, size_scheme, custom_scheme, price,
			price_solo, price_small, price_medium, price_large, price_xl, price_party)
		VALUES (:name, :category, :size_scheme, :custom_scheme, :price,
			:price_solo, :price_small, :price_medium, :price_large, :price_xl, :price_party)
		RETURNING id, created_at, updated_at`

	rows, err := s.db.NamedQueryContext(ctx, query, p)
	if err != nil {
		return err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return err
		}
		return fmt.Errorf("insert product returned no row")
	}
	return rows.StructScan(p)
}

// UpdateProductPrices replaces the price columns of a product
func (s *Store) UpdateProductPrices(ctx context.Context, p *models.Product) error {
	res, err := s.db.NamedExecContext(ctx, `
		UPDATE products SET price = :price, price_solo = :price_solo, price_small = :price_small,
			price_medium = :price_medium, price_large = :price_large, price_xl = :price_xl,
			price_party = :price_party, updated_at = NOW()
		WHERE id = :id`, p)
	if err != nil {
		return err
	}
	return expectOne(res, fmt.Sprintf("product %d", p.ID))
}

func expectOne(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}
