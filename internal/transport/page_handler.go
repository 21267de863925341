package transport

import (
	"net/http"

	"tuff-gaming/internal/apperror"
	"tuff-gaming/internal/domain"
	"tuff-gaming/internal/middleware"
	"tuff-gaming/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const msgPageUnavailable = "Something went wrong. Please try again later."

// HomePage is the data behind the home page
type HomePage struct {
	Products []*domain.Product `json:"products"`
}

// WishlistPage is the data behind the wishlist page
type WishlistPage struct {
	Wishlists     []*domain.WishlistEntry `json:"wishlists"`
	CurrentUserID *string                 `json:"currentUserId"`
}

// PageHandler serves page data documents for the storefront renderer.
// Protected pages are guarded by the identity middleware before reaching it.
type PageHandler struct {
	products  *ProductHandler
	wishlists service.WishlistService
	logger    *zap.Logger
}

// NewPageHandler creates a new PageHandler
func NewPageHandler(products *ProductHandler, wishlists service.WishlistService, logger *zap.Logger) *PageHandler {
	return &PageHandler{
		products:  products,
		wishlists: wishlists,
		logger:    logger,
	}
}

// RegisterRoutes registers the page data routes
func (h *PageHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Home)
	r.Get("/products", h.Products)
	r.Get("/products/{slug}", h.Product)
	r.Get("/wishlist", h.Wishlist)
}

// Home serves the home page data
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.home(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, HomePage{Products: products})
}

// Products serves the catalog page data
func (h *PageHandler) Products(w http.ResponseWriter, r *http.Request) {
	resp, err := h.products.list(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, resp)
}

// Product serves the product detail page data
func (h *PageHandler) Product(w http.ResponseWriter, r *http.Request) {
	product, err := h.products.get(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// Wishlist serves the wishlist page data
func (h *PageHandler) Wishlist(w http.ResponseWriter, r *http.Request) {
	userID := middleware.CurrentUserID(r)
	entries, err := h.wishlists.ListByUser(r.Context(), userID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, WishlistPage{
		Wishlists:     entries,
		CurrentUserID: optionalString(userID),
	})
}

// fail keeps not-found pages distinct; any other failure renders the error banner
func (h *PageHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if apperror.KindOf(err) == apperror.KindNotFound {
		writeError(w, r, h.logger, err)
		return
	}
	h.logger.Error("Failed to load page data",
		zap.Error(err),
		zap.String("path", r.URL.Path),
	)
	middleware.RespondWithError(w, http.StatusInternalServerError, msgPageUnavailable)
}
