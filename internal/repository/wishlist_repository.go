package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"tuff-gaming/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

var (
	ErrWishlistNotFound = errors.New("wishlist entry not found")
)

// WishlistRepository defines the interface for wishlist data access
type WishlistRepository interface {
	Add(ctx context.Context, userID, productID uuid.UUID) error
	Remove(ctx context.Context, userID, productID uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.WishlistEntry, error)
}

type wishlistRepository struct {
	db    *sql.DB
	types *pgtype.Map
}

// NewWishlistRepository creates a new instance of WishlistRepository
func NewWishlistRepository(db *sql.DB) WishlistRepository {
	return &wishlistRepository{db: db, types: pgtype.NewMap()}
}

// Add records that a user wishlisted a product. Adding an existing pair is a no-op.
func (r *wishlistRepository) Add(ctx context.Context, userID, productID uuid.UUID) error {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("failed to generate wishlist id: %w", err)
	}
	now := time.Now().UTC()

	query := `
		INSERT INTO wishlists (id, user_id, product_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, product_id) DO NOTHING
	`

	_, err = r.db.ExecContext(ctx, query, id, userID, productID, now, now)
	if err != nil {
		switch {
		case isForeignKeyViolation(err, "fk_wishlists_product"):
			return ErrProductNotFound
		case isForeignKeyViolation(err, "fk_wishlists_user"):
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to add wishlist entry: %w", err)
	}

	return nil
}

// Remove deletes the entry for the (user, product) pair
func (r *wishlistRepository) Remove(ctx context.Context, userID, productID uuid.UUID) error {
	query := `DELETE FROM wishlists WHERE user_id = $1 AND product_id = $2`

	result, err := r.db.ExecContext(ctx, query, userID, productID)
	if err != nil {
		return fmt.Errorf("failed to remove wishlist entry: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrWishlistNotFound
	}

	return nil
}

// ListByUser returns the user's entries, oldest first, each with its product summary
func (r *wishlistRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.WishlistEntry, error) {
	query := fmt.Sprintf(`
		SELECT w.id, w.user_id, w.product_id, w.created_at, w.updated_at, %s
		FROM wishlists w
		JOIN products p ON p.id = w.product_id
		WHERE w.user_id = $1
		ORDER BY w.created_at ASC, w.id ASC
	`, listColumns)

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wishlist: %w", err)
	}
	defer rows.Close()

	entries := []*domain.WishlistEntry{}
	for rows.Next() {
		entry := &domain.WishlistEntry{Product: &domain.Product{}}
		dest := []interface{}{
			&entry.ID,
			&entry.UserID,
			&entry.ProductID,
			&entry.CreatedAt,
			&entry.UpdatedAt,
		}
		dest = append(dest, productDest(r.types, entry.Product)...)

		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan wishlist entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating wishlist: %w", err)
	}

	return entries, nil
}
