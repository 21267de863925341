package service

import (
	"context"
	"errors"
	"strings"

	"tuff-gaming/internal/apperror"
	"tuff-gaming/internal/domain"
	"tuff-gaming/internal/repository"

	"github.com/google/uuid"
)

const (
	msgUserIDRequired    = "User ID is required"
	msgInvalidUserID     = "Invalid user ID"
	msgProductIDRequired = "Product ID is required"
	msgInvalidProductID  = "Invalid product ID"
	msgWishlistNotFound  = "Wishlist not found"
)

// WishlistService defines the interface for wishlist business logic.
// Identifiers arrive as strings from the request and are validated here.
type WishlistService interface {
	Add(ctx context.Context, userID, productID string) error
	Remove(ctx context.Context, userID, productID string) error
	ListByUser(ctx context.Context, userID string) ([]*domain.WishlistEntry, error)
}

type wishlistService struct {
	wishlistRepo repository.WishlistRepository
}

// NewWishlistService creates a new instance of WishlistService
func NewWishlistService(wishlistRepo repository.WishlistRepository) WishlistService {
	return &wishlistService{wishlistRepo: wishlistRepo}
}

// Add wishlists a product for the user. Adding an existing entry succeeds without duplicating it.
func (s *wishlistService) Add(ctx context.Context, userID, productID string) error {
	uid, pid, err := parsePair(userID, productID)
	if err != nil {
		return err
	}

	if err := s.wishlistRepo.Add(ctx, uid, pid); err != nil {
		switch {
		case errors.Is(err, repository.ErrProductNotFound):
			return apperror.Wrap(apperror.KindNotFound, err, msgProductNotFound)
		case errors.Is(err, repository.ErrUserNotFound):
			return apperror.Wrap(apperror.KindNotFound, err, "User not found")
		}
		return apperror.Wrap(apperror.KindInternal, err, "failed to add wishlist")
	}
	return nil
}

// Remove deletes the user's entry for the product
func (s *wishlistService) Remove(ctx context.Context, userID, productID string) error {
	uid, pid, err := parsePair(userID, productID)
	if err != nil {
		return err
	}

	if err := s.wishlistRepo.Remove(ctx, uid, pid); err != nil {
		if errors.Is(err, repository.ErrWishlistNotFound) {
			return apperror.Wrap(apperror.KindNotFound, err, msgWishlistNotFound)
		}
		return apperror.Wrap(apperror.KindInternal, err, "failed to remove wishlist")
	}
	return nil
}

// ListByUser returns the user's entries with their product summaries, oldest first
func (s *wishlistService) ListByUser(ctx context.Context, userID string) ([]*domain.WishlistEntry, error) {
	uid, err := parseID(userID, msgUserIDRequired, msgInvalidUserID)
	if err != nil {
		return nil, err
	}

	entries, err := s.wishlistRepo.ListByUser(ctx, uid)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindInternal, err, "failed to list wishlist")
	}
	return entries, nil
}

func parsePair(userID, productID string) (uuid.UUID, uuid.UUID, error) {
	uid, err := parseID(userID, msgUserIDRequired, msgInvalidUserID)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	pid, err := parseID(productID, msgProductIDRequired, msgInvalidProductID)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return uid, pid, nil
}

func parseID(raw, missing, invalid string) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, apperror.Validation(missing)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperror.Wrap(apperror.KindValidation, err, invalid)
	}
	return id, nil
}
