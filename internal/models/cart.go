package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem is a line in a cart. Price is captured when the line is first
// added and is never re-captured when quantities merge.
type CartItem struct {
	ProductID string  `json:"productId" bson:"product_id" binding:"required"`
	Quantity  int     `json:"quantity" bson:"quantity" binding:"required,min=1"`
	Price     float64 `json:"price" bson:"price" binding:"min=0"`
}

// Cart holds the per-session shopping state. One cart per session,
// created lazily on first access and emptied (not deleted) when it is
// converted into an order.
type Cart struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	SessionID   string             `json:"sessionId" bson:"session_id"`
	Items       []CartItem         `json:"items" bson:"items"`
	TotalAmount float64            `json:"totalAmount" bson:"total_amount"`
	CreatedAt   time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updated_at"`
}

// ComputeTotal derives a cart's total from its lines. TotalAmount is never
// set independently; every mutation recomputes it through this function.
func ComputeTotal(items []CartItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}
