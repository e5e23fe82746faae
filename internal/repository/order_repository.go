package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ecommerce-api/internal/apperror"
	"ecommerce-api/internal/models"
)

type OrderRepository struct {
	collection *mongo.Collection
}

func NewOrderRepository(collection *mongo.Collection) *OrderRepository {
	return &OrderRepository{
		collection: collection,
	}
}

// Insert persists a new order.
func (r *OrderRepository) Insert(ctx context.Context, order *models.Order) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	order.ID = primitive.NewObjectID()
	order.CreatedAt = time.Now()
	order.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, order)
	if mongo.IsDuplicateKeyError(err) {
		return apperror.NewBadRequest("Duplicate field value entered")
	}
	return err
}

// FindByID returns an order by its hex ID.
func (r *OrderRepository) FindByID(ctx context.Context, id string) (*models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperror.NewNotFound("Order not found")
	}

	var order models.Order
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperror.NewNotFound("Order not found")
		}
		return nil, err
	}

	return &order, nil
}

// FindByNumber returns an order by its human-facing order number.
func (r *OrderRepository) FindByNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var order models.Order
	err := r.collection.FindOne(ctx, bson.M{"order_number": orderNumber}).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperror.NewNotFound("Order not found")
		}
		return nil, err
	}

	return &order, nil
}

// FindAll lists orders newest first with skip/limit pagination.
func (r *OrderRepository) FindAll(ctx context.Context, page, limit int) ([]models.Order, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	totalCh := make(chan int64, 1)
	errCh := make(chan error, 1)

	go func() {
		total, err := r.collection.CountDocuments(ctx, bson.M{})
		if err != nil {
			errCh <- err
			return
		}
		totalCh <- total
	}()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	orders := make([]models.Order, 0)
	if err = cursor.All(ctx, &orders); err != nil {
		return nil, 0, err
	}

	var total int64
	select {
	case total = <-totalCh:
	case err := <-errCh:
		return orders, 0, err
	case <-ctx.Done():
		return orders, 0, ctx.Err()
	}

	return orders, total, nil
}

// FindByEmail returns a customer's orders, newest first.
func (r *OrderRepository) FindByEmail(ctx context.Context, email string) ([]models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"customer_info.email": email}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	orders := make([]models.Order, 0)
	if err = cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateStatus overwrites an order's status and returns the updated
// order. Any known status may replace any other.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperror.NewNotFound("Order not found")
	}

	update := bson.M{
		"$set": bson.M{
			"status":     status,
			"updated_at": time.Now(),
		},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var order models.Order
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": objID}, update, opts).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperror.NewNotFound("Order not found")
		}
		return nil, err
	}

	return &order, nil
}
