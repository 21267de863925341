package domain

import (
	"time"

	"github.com/google/uuid"
)

// WishlistEntry is the join record between a user and a product
type WishlistEntry struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"userId" db:"user_id"`
	ProductID uuid.UUID `json:"productId" db:"product_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	// Product is the joined product without its image gallery.
	Product *Product `json:"product,omitempty"`
}
