package service

import (
	"context"
	"errors"
	"math"
	"net/url"
	"strconv"
	"strings"

	"tuff-gaming/internal/apperror"
	"tuff-gaming/internal/domain"
	"tuff-gaming/internal/repository"
)

const (
	DefaultPage  = 1
	DefaultLimit = 12

	// The home listing skips the featured products shown above it.
	homeOffset = 4
	homeLimit  = 4

	msgProductNotFound = "Product Not Found"
)

// ProductQuery is a normalized listing request
type ProductQuery struct {
	Page      int
	Limit     int
	Search    string
	Tags      []string
	SortBy    string
	SortOrder string
}

// ParseProductQuery coerces URL query parameters into a ProductQuery.
// Page and limit fall back to their defaults when missing, non-numeric or below 1.
func ParseProductQuery(values url.Values) ProductQuery {
	return ProductQuery{
		Page:      positiveOr(values.Get("page"), DefaultPage),
		Limit:     positiveOr(values.Get("limit"), DefaultLimit),
		Search:    strings.TrimSpace(values.Get("search")),
		Tags:      splitTags(values.Get("tags")),
		SortBy:    strings.TrimSpace(values.Get("sortBy")),
		SortOrder: strings.ToLower(strings.TrimSpace(values.Get("sortOrder"))),
	}
}

// ProductService defines the interface for catalog queries
type ProductService interface {
	Query(ctx context.Context, query ProductQuery) (*domain.ProductPage, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)
	Home(ctx context.Context) ([]*domain.Product, error)
}

type productService struct {
	productRepo repository.ProductRepository
	maxLimit    int
}

// NewProductService creates a new instance of ProductService.
// maxLimit caps the page size; 0 leaves it unbounded.
func NewProductService(productRepo repository.ProductRepository, maxLimit int) ProductService {
	return &productService{
		productRepo: productRepo,
		maxLimit:    maxLimit,
	}
}

// Query returns one page of the filtered, sorted catalog along with pagination
// computed from a count over the same filter.
func (s *productService) Query(ctx context.Context, query ProductQuery) (*domain.ProductPage, error) {
	query = s.normalize(query)
	filter := repository.ProductFilter{Search: query.Search, Tags: query.Tags}

	total, err := s.productRepo.Count(ctx, filter)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindInternal, err, "failed to count products")
	}

	items := []*domain.Product{}
	if offset, ok := pageOffset(query.Page, query.Limit); ok {
		items, err = s.productRepo.List(ctx, repository.ProductListParams{
			Filter:    filter,
			SortBy:    query.SortBy,
			SortOrder: sortOrder(query.SortOrder),
			Limit:     query.Limit,
			Offset:    offset,
		})
		if err != nil {
			return nil, apperror.Wrap(apperror.KindInternal, err, "failed to list products")
		}
	}

	return &domain.ProductPage{
		Items:      items,
		Pagination: domain.NewPagination(query.Page, query.Limit, total),
	}, nil
}

// GetBySlug returns the product detail including images
func (s *productService) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	product, err := s.productRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, apperror.NotFound(msgProductNotFound)
		}
		return nil, apperror.Wrap(apperror.KindInternal, err, "failed to get product")
	}
	return product, nil
}

// Home returns the fixed home page subset in catalog position order
func (s *productService) Home(ctx context.Context) ([]*domain.Product, error) {
	items, err := s.productRepo.List(ctx, repository.ProductListParams{
		SortBy: repository.SortPosition,
		Limit:  homeLimit,
		Offset: homeOffset,
	})
	if err != nil {
		return nil, apperror.Wrap(apperror.KindInternal, err, "failed to list home products")
	}
	return items, nil
}

func (s *productService) normalize(query ProductQuery) ProductQuery {
	if query.Page < 1 {
		query.Page = DefaultPage
	}
	if query.Limit < 1 {
		query.Limit = DefaultLimit
	}
	if s.maxLimit > 0 && query.Limit > s.maxLimit {
		query.Limit = s.maxLimit
	}
	query.Search = strings.TrimSpace(query.Search)
	return query
}

// pageOffset returns the row offset of page. ok is false when the offset
// does not fit in an int; such a page lies past any catalog.
func pageOffset(page, limit int) (offset int, ok bool) {
	if page-1 > math.MaxInt/limit {
		return 0, false
	}
	return (page - 1) * limit, true
}

// StampWishlisted marks each product the user has wishlisted. Anonymous users see none.
func StampWishlisted(products []*domain.Product, userID string) {
	for _, p := range products {
		p.IsWishlisted = p.WishlistedBy(userID)
	}
}

func sortOrder(raw string) repository.SortOrder {
	if raw == "desc" {
		return repository.SortOrderDesc
	}
	return repository.SortOrderAsc
}

func positiveOr(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

func splitTags(raw string) []string {
	var tags []string
	for _, tag := range strings.Split(raw, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
