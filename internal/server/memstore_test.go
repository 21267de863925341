package server

import (
	"context"
	"strings"
	"sync"
	"time"

	"tuff-gaming/internal/domain"
	"tuff-gaming/internal/repository"

	"github.com/google/uuid"
)

// memStore backs all three repositories so wishlist writes show up on product reads
type memStore struct {
	mu        sync.Mutex
	users     []*domain.User
	products  []*domain.Product
	wishlists []*domain.WishlistEntry
}

func (s *memStore) userRepo() repository.UserRepository         { return memUsers{s} }
func (s *memStore) productRepo() repository.ProductRepository   { return memProducts{s} }
func (s *memStore) wishlistRepo() repository.WishlistRepository { return memWishlists{s} }

// snapshot copies p and joins its current wishlist refs
func (s *memStore) snapshot(p *domain.Product) *domain.Product {
	cp := *p
	cp.Wishlists = []domain.WishlistRef{}
	for _, w := range s.wishlists {
		if w.ProductID == p.ID {
			cp.Wishlists = append(cp.Wishlists, domain.WishlistRef{UserID: w.UserID})
		}
	}
	return &cp
}

type memUsers struct{ s *memStore }

func (m memUsers) Create(ctx context.Context, user *domain.User) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, u := range m.s.users {
		if u.Username == user.Username || u.Email == user.Email {
			return repository.ErrUserAlreadyExists
		}
	}
	now := time.Now()
	user.CreatedAt, user.UpdatedAt = now, now
	m.s.users = append(m.s.users, user)
	return nil
}

func (m memUsers) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, u := range m.s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m memUsers) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, u := range m.s.users {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

type memProducts struct{ s *memStore }

func (m memProducts) Upsert(ctx context.Context, product *domain.Product) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for i, p := range m.s.products {
		if p.Slug == product.Slug {
			product.ID = p.ID
			m.s.products[i] = product
			return nil
		}
	}
	if product.ID == uuid.Nil {
		product.ID = uuid.Must(uuid.NewV7())
	}
	m.s.products = append(m.s.products, product)
	return nil
}

func (m memProducts) FindBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, p := range m.s.products {
		if p.Slug == slug {
			return m.s.snapshot(p), nil
		}
	}
	return nil, repository.ErrProductNotFound
}

func (m memProducts) List(ctx context.Context, params repository.ProductListParams) ([]*domain.Product, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	matched := m.filter(params.Filter)
	out := []*domain.Product{}
	for i := params.Offset; i < len(matched) && len(out) < params.Limit; i++ {
		out = append(out, m.s.snapshot(matched[i]))
	}
	return out, nil
}

func (m memProducts) Count(ctx context.Context, filter repository.ProductFilter) (int, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	return len(m.filter(filter)), nil
}

func (m memProducts) filter(filter repository.ProductFilter) []*domain.Product {
	search := strings.ToLower(filter.Search)
	var out []*domain.Product
	for _, p := range m.s.products {
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		out = append(out, p)
	}
	return out
}

type memWishlists struct{ s *memStore }

func (m memWishlists) Add(ctx context.Context, userID, productID uuid.UUID) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	known := false
	for _, p := range m.s.products {
		if p.ID == productID {
			known = true
		}
	}
	if !known {
		return repository.ErrProductNotFound
	}
	for _, w := range m.s.wishlists {
		if w.UserID == userID && w.ProductID == productID {
			return nil
		}
	}
	m.s.wishlists = append(m.s.wishlists, &domain.WishlistEntry{
		ID:        uuid.Must(uuid.NewV7()),
		UserID:    userID,
		ProductID: productID,
	})
	return nil
}

func (m memWishlists) Remove(ctx context.Context, userID, productID uuid.UUID) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for i, w := range m.s.wishlists {
		if w.UserID == userID && w.ProductID == productID {
			m.s.wishlists = append(m.s.wishlists[:i], m.s.wishlists[i+1:]...)
			return nil
		}
	}
	return repository.ErrWishlistNotFound
}

func (m memWishlists) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.WishlistEntry, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	out := []*domain.WishlistEntry{}
	for _, w := range m.s.wishlists {
		if w.UserID != userID {
			continue
		}
		entry := *w
		for _, p := range m.s.products {
			if p.ID == w.ProductID {
				cp := *p
				cp.Images = nil
				entry.Product = &cp
			}
		}
		out = append(out, &entry)
	}
	return out, nil
}
