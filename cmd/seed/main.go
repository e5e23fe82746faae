// Seeds the products collection with a demo catalog. Existing products
// are dropped first.
package main

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"ecommerce-api/internal/config"
	"ecommerce-api/internal/database"
	"ecommerce-api/internal/models"
)

var sampleProducts = []models.Product{
	{
		Name:        "Wireless Bluetooth Headphones",
		Description: "High-quality wireless headphones with noise cancellation and long battery life. Perfect for music lovers and professionals.",
		Price:       99.99,
		Image:       "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=400",
		Category:    models.CategoryElectronics,
		Stock:       50,
		Featured:    true,
	},
	{
		Name:        "Smartphone Pro Max",
		Description: "Latest smartphone with advanced camera system, powerful processor, and all-day battery life.",
		Price:       999.99,
		Image:       "https://images.unsplash.com/photo-1511707171634-5f897ff02aa9?w=400",
		Category:    models.CategoryElectronics,
		Stock:       30,
		Featured:    true,
	},
	{
		Name:        "Cozy Cotton T-Shirt",
		Description: "Comfortable 100% cotton t-shirt available in multiple colors. Perfect for casual wear.",
		Price:       24.99,
		Image:       "https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?w=400",
		Category:    models.CategoryClothing,
		Stock:       100,
	},
	{
		Name:        "JavaScript: The Definitive Guide",
		Description: "Comprehensive guide to JavaScript programming. Essential for web developers.",
		Price:       49.99,
		Image:       "https://images.unsplash.com/photo-1544716278-ca5e3f4abd8c?w=400",
		Category:    models.CategoryBooks,
		Stock:       25,
		Featured:    true,
	},
	{
		Name:        "Ergonomic Office Chair",
		Description: "Comfortable office chair with lumbar support and adjustable height. Great for long work sessions.",
		Price:       299.99,
		Image:       "https://images.unsplash.com/photo-1586023492125-27b2c045efd7?w=400",
		Category:    models.CategoryHome,
		Stock:       15,
	},
	{
		Name:        "Yoga Mat Premium",
		Description: "Non-slip yoga mat with extra cushioning. Perfect for yoga, pilates, and other exercises.",
		Price:       39.99,
		Image:       "https://images.unsplash.com/photo-1544367567-0f2fcb009e0b?w=400",
		Category:    models.CategorySports,
		Stock:       40,
		Featured:    true,
	},
	{
		Name:        "Organic Face Moisturizer",
		Description: "Natural organic moisturizer for all skin types. Hydrates and nourishes your skin.",
		Price:       34.99,
		Image:       "https://images.unsplash.com/photo-1556228578-8c89e6adf883?w=400",
		Category:    models.CategoryBeauty,
		Stock:       60,
	},
	{
		Name:        "Laptop Stand Adjustable",
		Description: "Adjustable aluminum laptop stand for better ergonomics and cooling.",
		Price:       79.99,
		Image:       "https://images.unsplash.com/photo-1527864550417-7fd91fc51a46?w=400",
		Category:    models.CategoryElectronics,
		Stock:       35,
		Featured:    true,
	},
}

func main() {
	cfg := config.LoadConfig()
	client := database.Connect(cfg.MongoURI)
	defer database.Disconnect(client)

	collection := client.Database(cfg.MongoDB).Collection("products")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := collection.DeleteMany(ctx, bson.M{}); err != nil {
		log.Fatalf("❌ Failed to clear products: %v", err)
	}
	log.Println("Cleared existing products")

	now := time.Now()
	docs := make([]interface{}, 0, len(sampleProducts))
	for _, p := range sampleProducts {
		p.ID = primitive.NewObjectID()
		p.CreatedAt = now
		p.UpdatedAt = now
		docs = append(docs, p)
	}

	result, err := collection.InsertMany(ctx, docs)
	if err != nil {
		log.Fatalf("❌ Failed to insert sample products: %v", err)
	}

	log.Printf("Inserted %d sample products", len(result.InsertedIDs))
	log.Println("✅ Database seeded successfully!")
}
