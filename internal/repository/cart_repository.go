package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"ecommerce-api/internal/apperror"
	"ecommerce-api/internal/models"
)

type CartRepository struct {
	collection *mongo.Collection
}

func NewCartRepository(collection *mongo.Collection) *CartRepository {
	return &CartRepository{
		collection: collection,
	}
}

// FindBySession returns the cart bound to a session ID.
func (r *CartRepository) FindBySession(ctx context.Context, sessionID string) (*models.Cart, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var cart models.Cart
	err := r.collection.FindOne(ctx, bson.M{"session_id": sessionID}).Decode(&cart)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperror.NewNotFound("Cart not found")
		}
		return nil, err
	}

	return &cart, nil
}

// FindByID returns a cart by its hex ID.
func (r *CartRepository) FindByID(ctx context.Context, id string) (*models.Cart, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperror.NewNotFound("Cart not found")
	}

	var cart models.Cart
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&cart)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperror.NewNotFound("Cart not found")
		}
		return nil, err
	}

	return &cart, nil
}

// Insert creates a new cart. The session_id unique index turns concurrent
// first-access races into a conflict instead of a second cart.
func (r *CartRepository) Insert(ctx context.Context, cart *models.Cart) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cart.ID = primitive.NewObjectID()
	cart.CreatedAt = time.Now()
	cart.UpdatedAt = time.Now()
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}

	_, err := r.collection.InsertOne(ctx, cart)
	if mongo.IsDuplicateKeyError(err) {
		return apperror.NewBadRequest("Duplicate field value entered")
	}
	return err
}

// Save persists a cart's current lines and derived total.
func (r *CartRepository) Save(ctx context.Context, cart *models.Cart) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cart.UpdatedAt = time.Now()
	update := bson.M{
		"$set": bson.M{
			"items":        cart.Items,
			"total_amount": cart.TotalAmount,
			"updated_at":   cart.UpdatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": cart.ID}, update)
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return apperror.NewNotFound("Cart not found")
	}

	return nil
}
