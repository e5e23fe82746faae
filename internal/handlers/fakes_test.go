package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"ecommerce-api/internal/apperror"
	"ecommerce-api/internal/models"
)

// Minimal in-memory stores backing real services in handler tests.

type stubProductStore struct {
	products map[string]*models.Product
}

func newStubProductStore(products ...*models.Product) *stubProductStore {
	s := &stubProductStore{products: make(map[string]*models.Product)}
	for _, p := range products {
		if p.ID.IsZero() {
			p.ID = primitive.NewObjectID()
		}
		s.products[p.ID.Hex()] = p
	}
	return s
}

func (s *stubProductStore) FindByID(_ context.Context, id string) (*models.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, apperror.NewNotFound("Product not found")
	}
	copied := *p
	return &copied, nil
}

func (s *stubProductStore) FindAll(_ context.Context, q models.ProductQuery) ([]models.Product, int64, error) {
	out := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		if q.Category != "" && p.Category != q.Category {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	total := int64(len(out))
	start := (q.Page - 1) * q.Limit
	if start > len(out) {
		start = len(out)
	}
	end := start + q.Limit
	if end > len(out) {
		end = len(out)
	}
	return out[start:end], total, nil
}

func (s *stubProductStore) FindFeatured(_ context.Context, limit int) ([]models.Product, error) {
	out := make([]models.Product, 0)
	for _, p := range s.products {
		if p.Featured && len(out) < limit {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *stubProductStore) FindByCategory(_ context.Context, category string) ([]models.Product, error) {
	out := make([]models.Product, 0)
	for _, p := range s.products {
		if p.Category == category {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *stubProductStore) Search(_ context.Context, term string) ([]models.Product, error) {
	out := make([]models.Product, 0)
	for _, p := range s.products {
		if strings.Contains(strings.ToLower(p.Name), strings.ToLower(term)) {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *stubProductStore) Create(_ context.Context, product *models.Product) error {
	product.ID = primitive.NewObjectID()
	copied := *product
	s.products[product.ID.Hex()] = &copied
	return nil
}

func (s *stubProductStore) Update(_ context.Context, id string, upd models.ProductUpdate) (*models.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, apperror.NewNotFound("Product not found")
	}
	if upd.Price != nil {
		p.Price = *upd.Price
	}
	if upd.Stock != nil {
		p.Stock = *upd.Stock
	}
	copied := *p
	return &copied, nil
}

func (s *stubProductStore) Delete(_ context.Context, id string) error {
	if _, ok := s.products[id]; !ok {
		return apperror.NewNotFound("Product not found")
	}
	delete(s.products, id)
	return nil
}

func (s *stubProductStore) DecrementStock(_ context.Context, id string, qty int) error {
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

type stubCartStore struct {
	carts map[string]*models.Cart
}

func newStubCartStore(carts ...*models.Cart) *stubCartStore {
	s := &stubCartStore{carts: make(map[string]*models.Cart)}
	for _, cart := range carts {
		if cart.ID.IsZero() {
			cart.ID = primitive.NewObjectID()
		}
		s.carts[cart.ID.Hex()] = cart
	}
	return s
}

func (s *stubCartStore) copyOf(cart *models.Cart) *models.Cart {
	copied := *cart
	copied.Items = append([]models.CartItem(nil), cart.Items...)
	return &copied
}

func (s *stubCartStore) FindBySession(_ context.Context, sessionID string) (*models.Cart, error) {
	for _, cart := range s.carts {
		if cart.SessionID == sessionID {
			return s.copyOf(cart), nil
		}
	}
	return nil, apperror.NewNotFound("Cart not found")
}

func (s *stubCartStore) FindByID(_ context.Context, id string) (*models.Cart, error) {
	cart, ok := s.carts[id]
	if !ok {
		return nil, apperror.NewNotFound("Cart not found")
	}
	return s.copyOf(cart), nil
}

func (s *stubCartStore) Insert(_ context.Context, cart *models.Cart) error {
	cart.ID = primitive.NewObjectID()
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	s.carts[cart.ID.Hex()] = s.copyOf(cart)
	return nil
}

func (s *stubCartStore) Save(_ context.Context, cart *models.Cart) error {
	if _, ok := s.carts[cart.ID.Hex()]; !ok {
		return apperror.NewNotFound("Cart not found")
	}
	s.carts[cart.ID.Hex()] = s.copyOf(cart)
	return nil
}

type stubOrderStore struct {
	orders []models.Order
}

func (s *stubOrderStore) Insert(_ context.Context, order *models.Order) error {
	order.ID = primitive.NewObjectID()
	copied := *order
	copied.Items = append([]models.OrderItem(nil), order.Items...)
	s.orders = append(s.orders, copied)
	return nil
}

func (s *stubOrderStore) FindByID(_ context.Context, id string) (*models.Order, error) {
	for i := range s.orders {
		if s.orders[i].ID.Hex() == id {
			copied := s.orders[i]
			return &copied, nil
		}
	}
	return nil, apperror.NewNotFound("Order not found")
}

func (s *stubOrderStore) FindByNumber(_ context.Context, orderNumber string) (*models.Order, error) {
	for i := range s.orders {
		if s.orders[i].OrderNumber == orderNumber {
			copied := s.orders[i]
			return &copied, nil
		}
	}
	return nil, apperror.NewNotFound("Order not found")
}

func (s *stubOrderStore) FindAll(_ context.Context, page, limit int) ([]models.Order, int64, error) {
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

func (s *stubOrderStore) FindByEmail(_ context.Context, email string) ([]models.Order, error) {
	out := make([]models.Order, 0)
	for _, order := range s.orders {
		if order.CustomerInfo.Email == email {
			out = append(out, order)
		}
	}
	return out, nil
}

func (s *stubOrderStore) UpdateStatus(_ context.Context, id string, status models.OrderStatus) (*models.Order, error) {
	for i := range s.orders {
		if s.orders[i].ID.Hex() == id {
			s.orders[i].Status = status
			copied := s.orders[i]
			return &copied, nil
		}
	}
	return nil, apperror.NewNotFound("Order not found")
}

// envelope mirrors Response with raw data for per-test decoding.
type envelope struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Pagination *Pagination     `json:"pagination"`
	SessionID  string          `json:"sessionId"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func init() {
	gin.SetMode(gin.TestMode)
}
