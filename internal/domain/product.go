package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func init() {
	// Prices are rendered as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product represents a controller in the catalog
type Product struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	Slug        string          `json:"slug" db:"slug"`
	Name        string          `json:"name" db:"name"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Description string          `json:"description" db:"description"`
	Excerpt     string          `json:"excerpt" db:"excerpt"`
	Images      []string        `json:"images,omitempty" db:"images"`
	Thumbnail   string          `json:"thumbnail" db:"thumbnail"`
	Tags        []string        `json:"tags" db:"tags"`
	Stock       int             `json:"stock" db:"stock"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time       `json:"updatedAt" db:"updated_at"`

	// Wishlists holds the joined wishlist entries for this product.
	Wishlists    []WishlistRef `json:"wishlists"`
	IsWishlisted bool          `json:"isWishlisted"`
}

// WishlistRef is the projection of a wishlist entry joined onto a product
type WishlistRef struct {
	UserID uuid.UUID `json:"userId"`
}

// WishlistedBy reports whether userID appears among the product's joined wishlist entries.
func (p *Product) WishlistedBy(userID string) bool {
	if userID == "" {
		return false
	}
	for _, w := range p.Wishlists {
		if w.UserID.String() == userID {
			return true
		}
	}
	return false
}

// Pagination describes a page of a filtered product listing
type Pagination struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalItems  int  `json:"totalItems"`
	HasNext     bool `json:"hasNext"`
	HasPrev     bool `json:"hasPrev"`
	Limit       int  `json:"limit"`
}

// NewPagination computes page metadata from the unpaginated item count.
func NewPagination(page, limit, totalItems int) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = totalItems / limit
		if totalItems%limit != 0 {
			totalPages++
		}
	}
	return Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalItems:  totalItems,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
		Limit:       limit,
	}
}

// ProductPage is a single page of products plus its pagination metadata
type ProductPage struct {
	Items      []*Product
	Pagination Pagination
}
