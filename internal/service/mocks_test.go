package service

import (
	"context"
	"errors"
	"strings"

	"tuff-gaming/internal/domain"
	"tuff-gaming/internal/repository"

	"github.com/google/uuid"
)

// Mock repositories for testing
type mockUserRepository struct {
	users     map[string]*domain.User
	existsErr error
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		users: make(map[string]*domain.User),
	}
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	for _, existing := range m.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return repository.ErrUserAlreadyExists
		}
	}
	m.users[user.Email] = user
	return nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, exists := m.users[email]
	if !exists {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	for _, user := range m.users {
		if user.Username == username || user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

// mockProductRepository filters an ordered in-memory catalog
type mockProductRepository struct {
	products   []*domain.Product
	lastParams repository.ProductListParams
	listErr    error
	countErr   error
}

func (m *mockProductRepository) Upsert(ctx context.Context, product *domain.Product) error {
	m.products = append(m.products, product)
	return nil
}

func (m *mockProductRepository) FindBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	for _, p := range m.products {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, repository.ErrProductNotFound
}

func (m *mockProductRepository) List(ctx context.Context, params repository.ProductListParams) ([]*domain.Product, error) {
	m.lastParams = params
	if m.listErr != nil {
		return nil, m.listErr
	}
	matched := m.filter(params.Filter)
	if params.Offset >= len(matched) {
		return []*domain.Product{}, nil
	}
	end := params.Offset + params.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[params.Offset:end], nil
}

func (m *mockProductRepository) Count(ctx context.Context, filter repository.ProductFilter) (int, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	return len(m.filter(filter)), nil
}

func (m *mockProductRepository) filter(filter repository.ProductFilter) []*domain.Product {
	var out []*domain.Product
	search := strings.ToLower(filter.Search)
	for _, p := range m.products {
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) && !anyContains(p.Tags, search) {
			continue
		}
		if len(filter.Tags) > 0 && !intersects(p.Tags, filter.Tags) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func anyContains(tags []string, needle string) bool {
	for _, tag := range tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

func intersects(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

type wishlistKey struct {
	userID    uuid.UUID
	productID uuid.UUID
}

type mockWishlistRepository struct {
	entries  map[wishlistKey]*domain.WishlistEntry
	order    []wishlistKey
	products map[uuid.UUID]bool
}

func newMockWishlistRepository(productIDs ...uuid.UUID) *mockWishlistRepository {
	m := &mockWishlistRepository{
		entries:  make(map[wishlistKey]*domain.WishlistEntry),
		products: make(map[uuid.UUID]bool),
	}
	for _, id := range productIDs {
		m.products[id] = true
	}
	return m
}

func (m *mockWishlistRepository) Add(ctx context.Context, userID, productID uuid.UUID) error {
	if !m.products[productID] {
		return repository.ErrProductNotFound
	}
	key := wishlistKey{userID, productID}
	if _, exists := m.entries[key]; exists {
		return nil
	}
	m.entries[key] = &domain.WishlistEntry{ID: uuid.New(), UserID: userID, ProductID: productID}
	m.order = append(m.order, key)
	return nil
}

func (m *mockWishlistRepository) Remove(ctx context.Context, userID, productID uuid.UUID) error {
	key := wishlistKey{userID, productID}
	if _, exists := m.entries[key]; !exists {
		return repository.ErrWishlistNotFound
	}
	delete(m.entries, key)
	for i, k := range m.order {
		if k == key {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *mockWishlistRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.WishlistEntry, error) {
	out := []*domain.WishlistEntry{}
	for _, key := range m.order {
		if entry, ok := m.entries[key]; ok && key.userID == userID {
			out = append(out, entry)
		}
	}
	return out, nil
}

// fakeHasher avoids bcrypt cost in unit tests
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (fakeHasher) Verify(password, digest string) (bool, error) {
	if !strings.HasPrefix(digest, "hashed:") {
		return false, errors.New("malformed digest")
	}
	return digest == "hashed:"+password, nil
}
