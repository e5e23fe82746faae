package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI       string
	MongoDB        string
	Port           string
	AllowedOrigins []string
	Env            string
}

func LoadConfig() *Config {
	// Only load .env when running locally; deployed environments inject
	// their variables directly.
	if _, err := os.Stat(".env"); err == nil {
		err := godotenv.Load()
		if err != nil {
			log.Println("⚠️ Error loading .env file:", err)
		} else {
			log.Println("✅ .env file loaded successfully")
		}
	} else {
		log.Println("🌐 Using system environment variables")
	}

	return &Config{
		MongoURI:       getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDB:        getEnv("MONGO_DB", "ecommerce_db"),
		Port:           getEnv("PORT", "5000"),
		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:3000"), ","),
		Env:            getEnv("APP_ENV", "development"),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
