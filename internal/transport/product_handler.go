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

// ProductListResponse is one page of the catalog as seen by the caller
type ProductListResponse struct {
	Data          []*domain.Product `json:"data"`
	Pagination    domain.Pagination `json:"pagination"`
	CurrentUserID *string           `json:"currentUserId"`
}

// ProductHandler handles catalog endpoints
type ProductHandler struct {
	productService service.ProductService
	logger         *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService service.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		logger:         logger,
	}
}

// RegisterRoutes registers the catalog routes
func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Home)
	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{slug}", h.Get)
	})
}

// List handles filtered, sorted, paginated listing
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	resp, err := h.list(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, resp)
}

// Get handles product detail by slug
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.get(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// Home handles the home page subset
func (h *ProductHandler) Home(w http.ResponseWriter, r *http.Request) {
	products, err := h.home(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) list(r *http.Request) (*ProductListResponse, error) {
	page, err := h.productService.Query(r.Context(), service.ParseProductQuery(r.URL.Query()))
	if err != nil {
		return nil, err
	}

	userID := middleware.CurrentUserID(r)
	service.StampWishlisted(page.Items, userID)

	return &ProductListResponse{
		Data:          page.Items,
		Pagination:    page.Pagination,
		CurrentUserID: optionalString(userID),
	}, nil
}

func (h *ProductHandler) get(r *http.Request) (*domain.Product, error) {
	slug := chi.URLParam(r, "slug")
	if slug == "" {
		return nil, apperror.Validation("Invalid slug parameter")
	}

	product, err := h.productService.GetBySlug(r.Context(), slug)
	if err != nil {
		return nil, err
	}
	product.IsWishlisted = product.WishlistedBy(middleware.CurrentUserID(r))
	return product, nil
}

func (h *ProductHandler) home(r *http.Request) ([]*domain.Product, error) {
	products, err := h.productService.Home(r.Context())
	if err != nil {
		return nil, err
	}
	service.StampWishlisted(products, middleware.CurrentUserID(r))
	return products, nil
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
