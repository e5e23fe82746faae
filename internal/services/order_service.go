package services

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"ecommerce-api/internal/apperror"
	"ecommerce-api/internal/models"
)

// OrderStore is the persistence surface for finalized orders.
type OrderStore interface {
	Insert(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id string) (*models.Order, error)
	FindByNumber(ctx context.Context, orderNumber string) (*models.Order, error)
	FindAll(ctx context.Context, page, limit int) ([]models.Order, int64, error)
	FindByEmail(ctx context.Context, email string) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error)
}

// DirectOrderInput is the frontend-submitted order payload: the client
// sends priced lines plus the total it computed, which must match ours.
type DirectOrderInput struct {
	Name        string            `json:"name" binding:"required"`
	Email       string            `json:"email" binding:"required,email"`
	Address     string            `json:"address" binding:"required"`
	Items       []models.CartItem `json:"items" binding:"required,min=1,dive"`
	TotalAmount float64           `json:"totalAmount"`
}

// OrderService converts carts into immutable orders. Clock and rng feed
// order-number generation and are injectable for tests.
type OrderService struct {
	orders   OrderStore
	carts    CartStore
	products ProductStore
	now      func() time.Time
	rng      *rand.Rand
}

func NewOrderService(orders OrderStore, carts CartStore, products ProductStore) *OrderService {
	return &OrderService{
		orders:   orders,
		carts:    carts,
		products: products,
		now:      time.Now,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// WithClock pins the clock and rng, for deterministic order numbers.
func (s *OrderService) WithClock(now func() time.Time, rng *rand.Rand) *OrderService {
	s.now = now
	s.rng = rng
	return s
}

// CreateOrder snapshots a cart into an order: validate every line first,
// then decrement stock, persist the order and empty the source cart. No
// stock is touched until the whole cart has passed validation.
func (s *OrderService) CreateOrder(ctx context.Context, customerInfo models.CustomerInfo, cartID string) (*models.Order, error) {
	cart, err := s.carts.FindByID(ctx, cartID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewBadRequest("Cart not found or empty")
		}
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, apperror.NewBadRequest("Cart not found or empty")
	}

	orderItems, totalAmount, err := s.buildOrderItems(ctx, cart.Items)
	if err != nil {
		return nil, err
	}

	if err := s.applyStockDecrements(ctx, orderItems); err != nil {
		return nil, err
	}

	order := &models.Order{
		OrderNumber:  models.GenerateOrderNumber(s.now(), s.rng),
		CustomerInfo: customerInfo,
		Items:        orderItems,
		TotalAmount:  totalAmount,
		Status:       models.OrderStatusPending,
	}
	if err := s.orders.Insert(ctx, order); err != nil {
		return nil, err
	}

	// Clear the source cart after the order is in
	cart.Items = []models.CartItem{}
	cart.TotalAmount = 0
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}

	return order, nil
}

// CreateOrderFromItems finalizes an order from client-submitted lines.
// The claimed total must agree with the computed one to a cent.
func (s *OrderService) CreateOrderFromItems(ctx context.Context, input DirectOrderInput) (*models.Order, error) {
	orderItems, totalAmount, err := s.buildOrderItems(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	if math.Abs(totalAmount-input.TotalAmount) > 0.01 {
		return nil, apperror.NewBadRequest("Total amount mismatch")
	}

	if err := s.applyStockDecrements(ctx, orderItems); err != nil {
		return nil, err
	}

	order := &models.Order{
		OrderNumber: models.GenerateOrderNumber(s.now(), s.rng),
		CustomerInfo: models.CustomerInfo{
			Name:    input.Name,
			Email:   input.Email,
			Address: input.Address,
		},
		Items:       orderItems,
		TotalAmount: totalAmount,
		Status:      models.OrderStatusPending,
	}
	if err := s.orders.Insert(ctx, order); err != nil {
		return nil, err
	}

	return order, nil
}

// buildOrderItems walks the lines in storage order, verifying each
// line's quantity and price and that its product exists with sufficient
// stock, freezing name and line total. Nothing is mutated here. The
// quantity check matters on the client-submitted path: a negative
// quantity would slip past the stock comparison and turn the decrement
// into an increment.
func (s *OrderService) buildOrderItems(ctx context.Context, items []models.CartItem) ([]models.OrderItem, float64, error) {
	orderItems := make([]models.OrderItem, 0, len(items))
	var totalAmount float64

	for _, item := range items {
		if item.Quantity < 1 {
			return nil, 0, apperror.NewBadRequest("Quantity must be at least 1")
		}
		if item.Price < 0 {
			return nil, 0, apperror.NewBadRequest("Invalid item price")
		}

		product, err := s.products.FindByID(ctx, item.ProductID)
		if err != nil {
			if apperror.IsNotFound(err) {
				return nil, 0, apperror.NewNotFound(fmt.Sprintf("Product with ID %s not found", item.ProductID))
			}
			return nil, 0, err
		}

		if product.Stock < item.Quantity {
			return nil, 0, apperror.NewBadRequest("Insufficient stock for product: " + product.Name)
		}

		itemTotal := item.Price * float64(item.Quantity)
		orderItems = append(orderItems, models.OrderItem{
			ProductID:   item.ProductID,
			ProductName: product.Name,
			Quantity:    item.Quantity,
			Price:       item.Price,
			TotalPrice:  itemTotal,
		})
		totalAmount += itemTotal
	}

	return orderItems, totalAmount, nil
}

// applyStockDecrements consumes stock for every validated line. A line
// that loses a concurrent race fails the order; decrements already
// applied are not compensated (single-store limitation).
func (s *OrderService) applyStockDecrements(ctx context.Context, items []models.OrderItem) error {
	for _, item := range items {
		if err := s.products.DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
			return err
		}
	}
	return nil
}

// GetByID fetches a single order.
func (s *OrderService) GetByID(ctx context.Context, orderID string) (*models.Order, error) {
	return s.orders.FindByID(ctx, orderID)
}

// GetByNumber fetches an order by its order number.
func (s *OrderService) GetByNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	return s.orders.FindByNumber(ctx, orderNumber)
}

// List returns a page of orders, newest first, with the total count.
func (s *OrderService) List(ctx context.Context, page, limit int) ([]models.Order, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return s.orders.FindAll(ctx, page, limit)
}

// GetByEmail returns a customer's orders, newest first.
func (s *OrderService) GetByEmail(ctx context.Context, email string) ([]models.Order, error) {
	return s.orders.FindByEmail(ctx, email)
}

// UpdateStatus overwrites an order's status. Unknown statuses are
// rejected; known ones apply unconditionally.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID, status string) (*models.Order, error) {
	parsed, err := models.ParseOrderStatus(status)
	if err != nil {
		return nil, apperror.NewBadRequest("Invalid order status")
	}
	return s.orders.UpdateStatus(ctx, orderID, parsed)
}
