package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Valid product categories.
const (
	CategoryElectronics = "electronics"
	CategoryClothing    = "clothing"
	CategoryBooks       = "books"
	CategoryHome        = "home"
	CategorySports      = "sports"
	CategoryBeauty      = "beauty"
)

// Product is the source of truth for current price and stock. Cart and
// order line items freeze the price at the time of the action.
type Product struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name" binding:"required,max=100"`
	Description string             `json:"description" bson:"description" binding:"required,max=1000"`
	Price       float64            `json:"price" bson:"price" binding:"min=0"`
	Image       string             `json:"image" bson:"image" binding:"required"`
	Category    string             `json:"category" bson:"category" binding:"required,oneof=electronics clothing books home sports beauty"`
	Stock       int                `json:"stock" bson:"stock" binding:"min=0"`
	Featured    bool               `json:"featured" bson:"featured"`
	CreatedAt   time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updated_at"`
}

// ProductUpdate carries the updatable fields of a product.
type ProductUpdate struct {
	Name        *string  `json:"name,omitempty" binding:"omitempty,max=100"`
	Description *string  `json:"description,omitempty" binding:"omitempty,max=1000"`
	Price       *float64 `json:"price,omitempty" binding:"omitempty,min=0"`
	Image       *string  `json:"image,omitempty"`
	Category    *string  `json:"category,omitempty" binding:"omitempty,oneof=electronics clothing books home sports beauty"`
	Stock       *int     `json:"stock,omitempty" binding:"omitempty,min=0"`
	Featured    *bool    `json:"featured,omitempty"`
}

// ProductQuery is the typed query specification for catalog listings.
// It is translated to the store's native filter form inside the
// repository, never above it.
type ProductQuery struct {
	Page     int
	Limit    int
	Sort     string // field name, "-" prefix for descending
	Category string
	Search   string
}
