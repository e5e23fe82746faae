package models

import (
	"errors"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// ParseOrderStatus maps a raw status string to an OrderStatus.
func ParseOrderStatus(status string) (OrderStatus, error) {
	switch OrderStatus(strings.ToLower(status)) {
	case OrderStatusPending:
		return OrderStatusPending, nil
	case OrderStatusConfirmed:
		return OrderStatusConfirmed, nil
	case OrderStatusShipped:
		return OrderStatusShipped, nil
	case OrderStatusDelivered:
		return OrderStatusDelivered, nil
	case OrderStatusCancelled:
		return OrderStatusCancelled, nil
	default:
		return "", errors.New("invalid order status")
	}
}

// CustomerInfo identifies the buyer on an order.
type CustomerInfo struct {
	Name    string `json:"name" bson:"name" binding:"required"`
	Email   string `json:"email" bson:"email" binding:"required,email"`
	Address string `json:"address" bson:"address" binding:"required"`
}

// OrderItem is a frozen cart line: the product name and unit price are
// snapshots taken at conversion time.
type OrderItem struct {
	ProductID   string  `json:"productId" bson:"product_id"`
	ProductName string  `json:"productName" bson:"product_name"`
	Quantity    int     `json:"quantity" bson:"quantity"`
	Price       float64 `json:"price" bson:"price"`
	TotalPrice  float64 `json:"totalPrice" bson:"total_price"`
}

// Order is immutable once created except for Status.
type Order struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	OrderNumber  string             `json:"orderNumber" bson:"order_number"`
	CustomerInfo CustomerInfo       `json:"customerInfo" bson:"customer_info"`
	Items        []OrderItem        `json:"items" bson:"items"`
	TotalAmount  float64            `json:"totalAmount" bson:"total_amount"`
	Status       OrderStatus        `json:"status" bson:"status"`
	CreatedAt    time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt    time.Time          `json:"updatedAt" bson:"updated_at"`
}

const orderSuffixSpace = 36 * 36 * 36 * 36 * 36 // five base36 digits

// GenerateOrderNumber builds the human-facing order identifier:
// ORD-<base36 unix millis>-<base36 random suffix>, uppercased. Clock and
// rng are injected so callers can pin both in tests.
func GenerateOrderNumber(now time.Time, rng *rand.Rand) string {
	ts := strconv.FormatInt(now.UnixMilli(), 36)
	suffix := strconv.FormatInt(rng.Int63n(orderSuffixSpace), 36)
	for len(suffix) < 5 {
		suffix = "0" + suffix
	}
	return strings.ToUpper("ORD-" + ts + "-" + suffix)
}
