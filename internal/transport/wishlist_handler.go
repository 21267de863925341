package transport

import (
	"net/http"

	"tuff-gaming/internal/domain"
	"tuff-gaming/internal/middleware"
	"tuff-gaming/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// WishlistRequest names the product to add or remove
type WishlistRequest struct {
	ProductID string `json:"productId"`
}

// WishlistResponse lists the caller's wishlist
type WishlistResponse struct {
	Wishlists []*domain.WishlistEntry `json:"wishlists"`
}

// WishlistHandler handles the caller's wishlist endpoints
type WishlistHandler struct {
	wishlistService service.WishlistService
	logger          *zap.Logger
}

// NewWishlistHandler creates a new WishlistHandler
func NewWishlistHandler(wishlistService service.WishlistService, logger *zap.Logger) *WishlistHandler {
	return &WishlistHandler{
		wishlistService: wishlistService,
		logger:          logger,
	}
}

// RegisterRoutes registers the wishlist routes
func (h *WishlistHandler) RegisterRoutes(r chi.Router) {
	r.Route("/wishlist", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Add)
		r.Delete("/", h.Remove)
	})
}

// Add handles adding a product to the caller's wishlist
func (h *WishlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req WishlistRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	userID := middleware.CurrentUserID(r)
	if err := h.wishlistService.Add(r.Context(), userID, req.ProductID); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	h.logger.Info("Wishlist entry added",
		zap.String("user_id", userID),
		zap.String("product_id", req.ProductID),
	)
	middleware.RespondWithJSON(w, http.StatusOK, MessageResponse{Message: "Success add wishlist"})
}

// Remove handles removing a product from the caller's wishlist
func (h *WishlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	var req WishlistRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	userID := middleware.CurrentUserID(r)
	if err := h.wishlistService.Remove(r.Context(), userID, req.ProductID); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	h.logger.Info("Wishlist entry removed",
		zap.String("user_id", userID),
		zap.String("product_id", req.ProductID),
	)
	middleware.RespondWithJSON(w, http.StatusOK, MessageResponse{Message: "Success delete wishlist"})
}

// List handles listing the caller's wishlist
func (h *WishlistHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.wishlistService.ListByUser(r.Context(), middleware.CurrentUserID(r))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, WishlistResponse{Wishlists: entries})
}
