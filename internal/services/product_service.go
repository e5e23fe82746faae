package services

import (
	"context"

	"ecommerce-api/internal/models"
)

const featuredLimit = 6

// ProductService fronts the catalog store for the HTTP layer.
type ProductService struct {
	products ProductStore
}

func NewProductService(products ProductStore) *ProductService {
	return &ProductService{products: products}
}

// List returns a catalog page plus the total match count. Page and limit
// are normalized to sane defaults.
func (s *ProductService) List(ctx context.Context, q models.ProductQuery) ([]models.Product, int64, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 10
	}
	return s.products.FindAll(ctx, q)
}

func (s *ProductService) GetByID(ctx context.Context, id string) (*models.Product, error) {
	return s.products.FindByID(ctx, id)
}

func (s *ProductService) GetFeatured(ctx context.Context) ([]models.Product, error) {
	return s.products.FindFeatured(ctx, featuredLimit)
}

func (s *ProductService) GetByCategory(ctx context.Context, category string) ([]models.Product, error) {
	return s.products.FindByCategory(ctx, category)
}

func (s *ProductService) Search(ctx context.Context, term string) ([]models.Product, error) {
	return s.products.Search(ctx, term)
}

func (s *ProductService) Create(ctx context.Context, product *models.Product) error {
	return s.products.Create(ctx, product)
}

func (s *ProductService) Update(ctx context.Context, id string, upd models.ProductUpdate) (*models.Product, error) {
	return s.products.Update(ctx, id, upd)
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	return s.products.Delete(ctx, id)
}
