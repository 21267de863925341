package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"tuff-gaming/internal/config"
	"tuff-gaming/internal/database"
	"tuff-gaming/internal/domain"
	"tuff-gaming/internal/logger"
	"tuff-gaming/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func loadProducts(path string) ([]*domain.Product, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var products []*domain.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	for i, p := range products {
		if p.Slug == "" {
			return nil, fmt.Errorf("product #%d has no slug", i)
		}
	}
	return products, nil
}

// seed upserts products in file order so catalog position follows the file
func seed(ctx context.Context, repo repository.ProductRepository, products []*domain.Product, log *zap.Logger) error {
	for _, p := range products {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate product id: %w", err)
		}
		now := time.Now().UTC()
		p.ID = id
		p.CreatedAt, p.UpdatedAt = now, now

		if err := repo.Upsert(ctx, p); err != nil {
			return fmt.Errorf("failed to seed %q: %w", p.Slug, err)
		}
		log.Info("Seeded product", zap.String("slug", p.Slug), zap.String("id", p.ID.String()))
	}
	return nil
}

func main() {
	file := flag.String("file", "data/products.json", "products JSON file")
	flag.Parse()

	cfg := config.Load()

	log, err := logger.New(cfg.Server.Env)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer log.Sync()

	products, err := loadProducts(*file)
	if err != nil {
		log.Fatal("Failed to load products", zap.Error(err))
	}

	dbService, err := database.New(cfg.Database)
	if err != nil {
		log.Fatal("Failed to open database", zap.Error(err))
	}
	defer dbService.Close()

	if err := database.RunMigrations(dbService.DB(), log); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := seed(ctx, repository.NewProductRepository(dbService.DB()), products, log); err != nil {
		log.Fatal("Seeding failed", zap.Error(err))
	}
	log.Info("Seeding completed", zap.Int("products", len(products)))
}
