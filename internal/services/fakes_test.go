package services

import (
	"context"
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"ecommerce-api/internal/apperror"
	"ecommerce-api/internal/models"
)

// In-memory stores for exercising the services without a live database.
// They hand out copies so un-persisted mutations never leak back, the
// same way a document store would behave.

type fakeProductStore struct {
	products map[string]*models.Product
}

func newFakeProductStore(products ...*models.Product) *fakeProductStore {
	s := &fakeProductStore{products: make(map[string]*models.Product)}
	for _, p := range products {
		if p.ID.IsZero() {
			p.ID = primitive.NewObjectID()
		}
		s.products[p.ID.Hex()] = p
	}
	return s
}

func (s *fakeProductStore) FindByID(_ context.Context, id string) (*models.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, apperror.NewNotFound("Product not found")
	}
	copied := *p
	return &copied, nil
}

func (s *fakeProductStore) FindAll(_ context.Context, q models.ProductQuery) ([]models.Product, int64, error) {
	out := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		if q.Category != "" && p.Category != q.Category {
			continue
		}
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (s *fakeProductStore) FindFeatured(_ context.Context, limit int) ([]models.Product, error) {
	out := make([]models.Product, 0)
	for _, p := range s.products {
		if p.Featured && len(out) < limit {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *fakeProductStore) FindByCategory(_ context.Context, category string) ([]models.Product, error) {
	out := make([]models.Product, 0)
	for _, p := range s.products {
		if p.Category == category {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *fakeProductStore) Search(_ context.Context, _ string) ([]models.Product, error) {
	return nil, nil
}

func (s *fakeProductStore) Create(_ context.Context, product *models.Product) error {
	product.ID = primitive.NewObjectID()
	copied := *product
	s.products[product.ID.Hex()] = &copied
	return nil
}

func (s *fakeProductStore) Update(_ context.Context, id string, upd models.ProductUpdate) (*models.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, apperror.NewNotFound("Product not found")
	}
	if upd.Stock != nil {
		p.Stock = *upd.Stock
	}
	if upd.Price != nil {
		p.Price = *upd.Price
	}
	copied := *p
	return &copied, nil
}

func (s *fakeProductStore) Delete(_ context.Context, id string) error {
	if _, ok := s.products[id]; !ok {
		return apperror.NewNotFound("Product not found")
	}
	delete(s.products, id)
	return nil
}

func (s *fakeProductStore) DecrementStock(_ context.Context, id string, qty int) error {
	p, ok := s.products[id]
	if !ok {
		return apperror.NewNotFound("Product not found")
	}
	if p.Stock < qty {
		return apperror.NewBadRequest("Insufficient stock for product: " + p.Name)
	}
	p.Stock -= qty
	return nil
}

func (s *fakeProductStore) stockOf(id string) int {
	return s.products[id].Stock
}

type fakeCartStore struct {
	carts map[string]*models.Cart // keyed by hex ID
}

func newFakeCartStore(carts ...*models.Cart) *fakeCartStore {
	s := &fakeCartStore{carts: make(map[string]*models.Cart)}
	for _, cart := range carts {
		if cart.ID.IsZero() {
			cart.ID = primitive.NewObjectID()
		}
		s.carts[cart.ID.Hex()] = cart
	}
	return s
}

func copyCart(cart *models.Cart) *models.Cart {
	copied := *cart
	copied.Items = append([]models.CartItem(nil), cart.Items...)
	return &copied
}

func (s *fakeCartStore) FindBySession(_ context.Context, sessionID string) (*models.Cart, error) {
	for _, cart := range s.carts {
		if cart.SessionID == sessionID {
			return copyCart(cart), nil
		}
	}
	return nil, apperror.NewNotFound("Cart not found")
}

func (s *fakeCartStore) FindByID(_ context.Context, id string) (*models.Cart, error) {
	cart, ok := s.carts[id]
	if !ok {
		return nil, apperror.NewNotFound("Cart not found")
	}
	return copyCart(cart), nil
}

func (s *fakeCartStore) Insert(_ context.Context, cart *models.Cart) error {
	for _, existing := range s.carts {
		if existing.SessionID == cart.SessionID {
			return apperror.NewBadRequest("Duplicate field value entered")
		}
	}
	cart.ID = primitive.NewObjectID()
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	s.carts[cart.ID.Hex()] = copyCart(cart)
	return nil
}

func (s *fakeCartStore) Save(_ context.Context, cart *models.Cart) error {
	if _, ok := s.carts[cart.ID.Hex()]; !ok {
		return apperror.NewNotFound("Cart not found")
	}
	s.carts[cart.ID.Hex()] = copyCart(cart)
	return nil
}

func (s *fakeCartStore) bySession(sessionID string) *models.Cart {
	for _, cart := range s.carts {
		if cart.SessionID == sessionID {
			return cart
		}
	}
	return nil
}

type fakeOrderStore struct {
	orders []models.Order
}

func (s *fakeOrderStore) Insert(_ context.Context, order *models.Order) error {
	order.ID = primitive.NewObjectID()
	copied := *order
	copied.Items = append([]models.OrderItem(nil), order.Items...)
	s.orders = append(s.orders, copied)
	return nil
}

func (s *fakeOrderStore) FindByID(_ context.Context, id string) (*models.Order, error) {
	for i := range s.orders {
		if s.orders[i].ID.Hex() == id {
			copied := s.orders[i]
			return &copied, nil
		}
	}
	return nil, apperror.NewNotFound("Order not found")
}

func (s *fakeOrderStore) FindByNumber(_ context.Context, orderNumber string) (*models.Order, error) {
	for i := range s.orders {
		if s.orders[i].OrderNumber == orderNumber {
			copied := s.orders[i]
			return &copied, nil
		}
	}
	return nil, apperror.NewNotFound("Order not found")
}

func (s *fakeOrderStore) FindAll(_ context.Context, page, limit int) ([]models.Order, int64, error) {
	sorted := append([]models.Order(nil), s.orders...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	start := (page - 1) * limit
	if start > len(sorted) {
		start = len(sorted)
	}
	end := start + limit
	if end > len(sorted) {
		end = len(sorted)
	}
	return sorted[start:end], int64(len(s.orders)), nil
}

func (s *fakeOrderStore) FindByEmail(_ context.Context, email string) ([]models.Order, error) {
	out := make([]models.Order, 0)
	for _, order := range s.orders {
		if order.CustomerInfo.Email == email {
			out = append(out, order)
		}
	}
	return out, nil
}

func (s *fakeOrderStore) UpdateStatus(_ context.Context, id string, status models.OrderStatus) (*models.Order, error) {
	for i := range s.orders {
		if s.orders[i].ID.Hex() == id {
			s.orders[i].Status = status
			copied := s.orders[i]
			return &copied, nil
		}
	}
	return nil, apperror.NewNotFound("Order not found")
}
