package services

import (
	"context"

	"github.com/google/uuid"

	"ecommerce-api/internal/apperror"
	"ecommerce-api/internal/models"
)

// CartStore is the persistence surface the cart engine needs.
type CartStore interface {
	FindBySession(ctx context.Context, sessionID string) (*models.Cart, error)
	FindByID(ctx context.Context, id string) (*models.Cart, error)
	Insert(ctx context.Context, cart *models.Cart) error
	Save(ctx context.Context, cart *models.Cart) error
}

// ProductStore is the catalog surface shared by the cart and order
// engines. Stock checks always read the current persisted value; nothing
// is cached across calls.
type ProductStore interface {
	FindByID(ctx context.Context, id string) (*models.Product, error)
	FindAll(ctx context.Context, q models.ProductQuery) ([]models.Product, int64, error)
	FindFeatured(ctx context.Context, limit int) ([]models.Product, error)
	FindByCategory(ctx context.Context, category string) ([]models.Product, error)
	Search(ctx context.Context, term string) ([]models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, id string, upd models.ProductUpdate) (*models.Product, error)
	Delete(ctx context.Context, id string) error
	DecrementStock(ctx context.Context, id string, qty int) error
}

// CartService owns per-session cart state. All mutations recompute the
// derived total before persisting.
type CartService struct {
	carts    CartStore
	products ProductStore
}

func NewCartService(carts CartStore, products ProductStore) *CartService {
	return &CartService{
		carts:    carts,
		products: products,
	}
}

// GenerateSessionID mints an opaque session identifier for clients that
// arrive without one.
func (s *CartService) GenerateSessionID() string {
	return uuid.NewString()
}

// GetOrCreate returns the session's cart, creating an empty one on first
// access.
func (s *CartService) GetOrCreate(ctx context.Context, sessionID string) (*models.Cart, error) {
	cart, err := s.carts.FindBySession(ctx, sessionID)
	if err == nil {
		return cart, nil
	}
	if !apperror.IsNotFound(err) {
		return nil, err
	}

	cart = &models.Cart{
		SessionID:   sessionID,
		Items:       []models.CartItem{},
		TotalAmount: 0,
	}
	if err := s.carts.Insert(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// AddItem appends a line capturing the product's current price, or merges
// into an existing line for the same product. A merged line keeps its
// first-captured price.
func (s *CartService) AddItem(ctx context.Context, sessionID, productID string, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, apperror.NewBadRequest("Quantity must be at least 1")
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if product.Stock < quantity {
		return nil, apperror.NewBadRequest("Insufficient stock available")
	}

	cart, err := s.carts.FindBySession(ctx, sessionID)
	if err != nil {
		if !apperror.IsNotFound(err) {
			return nil, err
		}
		cart = &models.Cart{
			SessionID: sessionID,
			Items: []models.CartItem{{
				ProductID: productID,
				Quantity:  quantity,
				Price:     product.Price,
			}},
		}
		cart.TotalAmount = models.ComputeTotal(cart.Items)
		if err := s.carts.Insert(ctx, cart); err != nil {
			return nil, err
		}
		return cart, nil
	}

	if idx := findItem(cart.Items, productID); idx >= 0 {
		newQuantity := cart.Items[idx].Quantity + quantity
		if product.Stock < newQuantity {
			return nil, apperror.NewBadRequest("Insufficient stock available")
		}
		cart.Items[idx].Quantity = newQuantity
	} else {
		cart.Items = append(cart.Items, models.CartItem{
			ProductID: productID,
			Quantity:  quantity,
			Price:     product.Price,
		})
	}

	cart.TotalAmount = models.ComputeTotal(cart.Items)
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// UpdateItem replaces a line's quantity. The new quantity is absolute,
// not additive.
func (s *CartService) UpdateItem(ctx context.Context, sessionID, productID string, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, apperror.NewBadRequest("Quantity must be at least 1")
	}

	cart, err := s.carts.FindBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	idx := findItem(cart.Items, productID)
	if idx < 0 {
		return nil, apperror.NewNotFound("Item not found in cart")
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if product.Stock < quantity {
		return nil, apperror.NewBadRequest("Insufficient stock available")
	}

	cart.Items[idx].Quantity = quantity
	cart.TotalAmount = models.ComputeTotal(cart.Items)
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveItem drops a line. A product that is not in the cart is a no-op,
// not an error.
func (s *CartService) RemoveItem(ctx context.Context, sessionID, productID string) (*models.Cart, error) {
	cart, err := s.carts.FindBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	kept := cart.Items[:0]
	for _, item := range cart.Items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	cart.Items = kept

	cart.TotalAmount = models.ComputeTotal(cart.Items)
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Clear empties the cart's line sequence. The cart document survives.
func (s *CartService) Clear(ctx context.Context, sessionID string) (*models.Cart, error) {
	cart, err := s.carts.FindBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	cart.Items = []models.CartItem{}
	cart.TotalAmount = 0
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// GetByID fetches a cart by document ID. Order creation uses this.
func (s *CartService) GetByID(ctx context.Context, cartID string) (*models.Cart, error) {
	return s.carts.FindByID(ctx, cartID)
}

func findItem(items []models.CartItem, productID string) int {
	for i, item := range items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}
