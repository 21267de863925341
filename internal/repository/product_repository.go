package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"tuff-gaming/internal/domain"

	"github.com/jackc/pgx/v5/pgtype"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// SortOrder represents the sort direction
type SortOrder string

const (
	SortOrderAsc  SortOrder = "ASC"
	SortOrderDesc SortOrder = "DESC"
)

// Sort keys accepted by List. Anything else orders by position.
const (
	SortPriceLowHigh = "price-low-high"
	SortPriceHighLow = "price-high-low"
	SortNameAZ       = "name-a-z"
	SortNameZA       = "name-z-a"
	SortPosition     = "position"
)

// ProductFilter narrows a product listing
type ProductFilter struct {
	// Search matches name or any tag as a case-insensitive substring.
	Search string
	// Tags keeps products carrying at least one of these tags.
	Tags []string
}

// ProductListParams describes one page of a filtered, sorted listing
type ProductListParams struct {
	Filter    ProductFilter
	SortBy    string
	SortOrder SortOrder
	Limit     int
	Offset    int
}

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	Upsert(ctx context.Context, product *domain.Product) error
	FindBySlug(ctx context.Context, slug string) (*domain.Product, error)
	List(ctx context.Context, params ProductListParams) ([]*domain.Product, error)
	Count(ctx context.Context, filter ProductFilter) (int, error)
}

type productRepository struct {
	db    *sql.DB
	types *pgtype.Map
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db, types: pgtype.NewMap()}
}

// wishlistsColumn aggregates the product's wishlist entries into a JSON array
const wishlistsColumn = `COALESCE((
		SELECT json_agg(json_build_object('userId', w.user_id) ORDER BY w.created_at, w.id)
		FROM wishlists w
		WHERE w.product_id = p.id
	), '[]'::json)`

// listColumns omits the image gallery to keep listing payloads small
const listColumns = `p.id, p.slug, p.name, p.price, p.description, p.excerpt, p.thumbnail, p.tags, p.stock, p.created_at, p.updated_at`

// Upsert inserts a product or updates the existing one with the same slug
func (r *productRepository) Upsert(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (id, slug, name, price, description, excerpt, images, thumbnail, tags, stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7::text[], $8, $9::text[], $10, $11, $12)
		ON CONFLICT (slug) DO UPDATE
		SET name = EXCLUDED.name, price = EXCLUDED.price, description = EXCLUDED.description,
		    excerpt = EXCLUDED.excerpt, images = EXCLUDED.images, thumbnail = EXCLUDED.thumbnail,
		    tags = EXCLUDED.tags, stock = EXCLUDED.stock, updated_at = EXCLUDED.updated_at
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		product.ID,
		product.Slug,
		product.Name,
		product.Price,
		product.Description,
		product.Excerpt,
		nonNil(product.Images),
		product.Thumbnail,
		nonNil(product.Tags),
		product.Stock,
		product.CreatedAt,
		product.UpdatedAt,
	).Scan(&product.ID, &product.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert product: %w", err)
	}

	return nil
}

// FindBySlug retrieves a product with its images and joined wishlist entries
func (r *productRepository) FindBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s, p.images, %s
		FROM products p
		WHERE p.slug = $1
	`, listColumns, wishlistsColumn)

	product := &domain.Product{}
	var wishlists []byte
	dest := append(productDest(r.types, product), r.types.SQLScanner(&product.Images), &wishlists)

	if err := r.db.QueryRowContext(ctx, query, slug).Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by slug: %w", err)
	}

	if err := json.Unmarshal(wishlists, &product.Wishlists); err != nil {
		return nil, fmt.Errorf("failed to decode product wishlists: %w", err)
	}

	return product, nil
}

// List retrieves one page of products matching params, each joined with its wishlist entries
func (r *productRepository) List(ctx context.Context, params ProductListParams) ([]*domain.Product, error) {
	whereClause, args := buildProductWhere(params.Filter)
	argIndex := len(args) + 1

	query := fmt.Sprintf(`
		SELECT %s, %s
		FROM products p
		%s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, listColumns, wishlistsColumn, whereClause, productOrderBy(params.SortBy, params.SortOrder), argIndex, argIndex+1)

	args = append(args, params.Limit, params.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []*domain.Product{}
	for rows.Next() {
		product := &domain.Product{}
		var wishlists []byte
		if err := rows.Scan(append(productDest(r.types, product), &wishlists)...); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		if err := json.Unmarshal(wishlists, &product.Wishlists); err != nil {
			return nil, fmt.Errorf("failed to decode product wishlists: %w", err)
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// Count returns the number of products matching filter, ignoring pagination
func (r *productRepository) Count(ctx context.Context, filter ProductFilter) (int, error) {
	whereClause, args := buildProductWhere(filter)
	query := fmt.Sprintf("SELECT COUNT(*) FROM products p %s", whereClause)

	var total int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}

	return total, nil
}

// productDest returns scan targets matching listColumns
func productDest(types *pgtype.Map, product *domain.Product) []interface{} {
	return []interface{}{
		&product.ID,
		&product.Slug,
		&product.Name,
		&product.Price,
		&product.Description,
		&product.Excerpt,
		&product.Thumbnail,
		types.SQLScanner(&product.Tags),
		&product.Stock,
		&product.CreatedAt,
		&product.UpdatedAt,
	}
}

// buildProductWhere renders the filter shared by the count and data queries
func buildProductWhere(filter ProductFilter) (string, []interface{}) {
	conditions := []string{}
	args := []interface{}{}

	if search := strings.TrimSpace(filter.Search); search != "" {
		args = append(args, "%"+escapeLike(search)+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf(
			"(p.name ILIKE $%d OR EXISTS (SELECT 1 FROM unnest(p.tags) AS tag WHERE tag ILIKE $%d))", n, n))
	}

	if len(filter.Tags) > 0 {
		args = append(args, filter.Tags)
		conditions = append(conditions, fmt.Sprintf("p.tags && $%d::text[]", len(args)))
	}

	if len(conditions) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

// productOrderBy maps a sort key to a deterministic ORDER BY clause.
// Identifiers are time-ordered UUIDs, so id order is catalog position.
// Names compare by code point.
func productOrderBy(sortBy string, sortOrder SortOrder) string {
	switch sortBy {
	case SortPriceLowHigh:
		return "p.price ASC, p.id ASC"
	case SortPriceHighLow:
		return "p.price DESC, p.id ASC"
	case SortNameAZ:
		return `p.name COLLATE "C" ASC, p.id ASC`
	case SortNameZA:
		return `p.name COLLATE "C" DESC, p.id ASC`
	default:
		if sortOrder == SortOrderDesc {
			return "p.id DESC"
		}
		return "p.id ASC"
	}
}

// escapeLike makes s match literally inside a LIKE pattern
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
