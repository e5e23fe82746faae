package repository

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ecommerce-api/internal/apperror"
	"ecommerce-api/internal/models"
)

type ProductRepository struct {
	collection *mongo.Collection
}

func NewProductRepository(collection *mongo.Collection) *ProductRepository {
	return &ProductRepository{
		collection: collection,
	}
}

// FindByID returns a product by its hex ID. Malformed IDs surface as
// not-found, matching how the store treats uncastable identifiers.
func (r *ProductRepository) FindByID(ctx context.Context, id string) (*models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperror.NewNotFound("Product not found")
	}

	var product models.Product
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&product)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperror.NewNotFound("Product not found")
		}
		return nil, err
	}

	return &product, nil
}

// FindAll lists products for a typed query. The query specification is
// translated to the store's filter form here and nowhere else.
func (r *ProductRepository) FindAll(ctx context.Context, q models.ProductQuery) ([]models.Product, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := buildProductFilter(q)

	// Count in parallel with the page fetch
	totalCh := make(chan int64, 1)
	errCh := make(chan error, 1)

	go func() {
		total, err := r.collection.CountDocuments(ctx, filter)
		if err != nil {
			errCh <- err
			return
		}
		totalCh <- total
	}()

	findOptions := options.Find().SetSort(buildProductSort(q.Sort))
	if q.Page > 0 && q.Limit > 0 {
		findOptions.SetSkip(int64((q.Page - 1) * q.Limit))
		findOptions.SetLimit(int64(q.Limit))
	} else {
		findOptions.SetLimit(100)
	}

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	products := make([]models.Product, 0)
	if err = cursor.All(ctx, &products); err != nil {
		return nil, 0, err
	}

	var total int64
	select {
	case total = <-totalCh:
	case err := <-errCh:
		return products, 0, err
	case <-ctx.Done():
		return products, 0, ctx.Err()
	}

	return products, total, nil
}

// FindFeatured returns up to limit featured products.
func (r *ProductRepository) FindFeatured(ctx context.Context, limit int) ([]models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetLimit(int64(limit))
	cursor, err := r.collection.Find(ctx, bson.M{"featured": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	products := make([]models.Product, 0)
	if err = cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// FindByCategory returns all products in a category.
func (r *ProductRepository) FindByCategory(ctx context.Context, category string) ([]models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{"category": category})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	products := make([]models.Product, 0)
	if err = cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Search matches term against product names and descriptions.
func (r *ProductRepository) Search(ctx context.Context, term string) ([]models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.collection.Find(ctx, searchFilter(term))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	products := make([]models.Product, 0)
	if err = cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Create inserts a new product.
func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	product.ID = primitive.NewObjectID()
	product.CreatedAt = time.Now()
	product.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, product)
	return err
}

// Update applies the non-nil fields of upd and returns the updated
// product.
func (r *ProductRepository) Update(ctx context.Context, id string, upd models.ProductUpdate) (*models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperror.NewNotFound("Product not found")
	}

	set := bson.M{"updated_at": time.Now()}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.Price != nil {
		set["price"] = *upd.Price
	}
	if upd.Image != nil {
		set["image"] = *upd.Image
	}
	if upd.Category != nil {
		set["category"] = *upd.Category
	}
	if upd.Stock != nil {
		set["stock"] = *upd.Stock
	}
	if upd.Featured != nil {
		set["featured"] = *upd.Featured
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var product models.Product
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": objID}, bson.M{"$set": set}, opts).Decode(&product)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperror.NewNotFound("Product not found")
		}
		return nil, err
	}

	return &product, nil
}

// Delete removes a product.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperror.NewNotFound("Product not found")
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}

	if result.DeletedCount == 0 {
		return apperror.NewNotFound("Product not found")
	}

	return nil
}

// DecrementStock atomically subtracts qty from a product's stock. The
// update only matches while stock >= qty, so stock can never go negative
// even when concurrent orders drain the same product.
func (r *ProductRepository) DecrementStock(ctx context.Context, id string, qty int) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperror.NewNotFound("Product not found")
	}

	filter := bson.M{
		"_id":   objID,
		"stock": bson.M{"$gte": qty},
	}
	update := bson.M{
		"$inc": bson.M{"stock": -qty},
		"$set": bson.M{"updated_at": time.Now()},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		// Either the product vanished or the guard lost to a concurrent
		// decrement; look again to report the right failure.
		var product models.Product
		err := r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&product)
		if err == mongo.ErrNoDocuments {
			return apperror.NewNotFound("Product not found")
		}
		if err != nil {
			return err
		}
		return apperror.NewBadRequest("Insufficient stock for product: " + product.Name)
	}

	return nil
}

func buildProductFilter(q models.ProductQuery) bson.M {
	filter := bson.M{}

	if q.Category != "" {
		filter["category"] = q.Category
	}

	if q.Search != "" {
		filter["$or"] = searchFilter(q.Search)["$or"]
	}

	return filter
}

func searchFilter(term string) bson.M {
	return bson.M{
		"$or": []bson.M{
			{"name": bson.M{"$regex": term, "$options": "i"}},
			{"description": bson.M{"$regex": term, "$options": "i"}},
		},
	}
}

func buildProductSort(sort string) bson.D {
	if sort == "" {
		return bson.D{{Key: "created_at", Value: -1}}
	}

	order := 1
	field := sort
	if strings.HasPrefix(sort, "-") {
		order = -1
		field = strings.TrimPrefix(sort, "-")
	}

	return bson.D{{Key: field, Value: order}}
}
