package main

import (
	"log"
	"os"
	"time"

	"github.com/campushub/analytics-api/internal/infrastructure/cache"
	"github.com/campushub/analytics-api/internal/infrastructure/database"
	"github.com/campushub/analytics-api/internal/interfaces/http/middleware"
	"github.com/campushub/analytics-api/internal/interfaces/http/routes"
	"github.com/campushub/analytics-api/internal/utils"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
)

// setupCache seleciona o backend de cache por CACHE_BACKEND
// (memory | file | redis). O padrão é memória.
func setupCache() (cache.Store, error) {
	switch os.Getenv("CACHE_BACKEND") {
	case "file":
		dir := os.Getenv("CACHE_DIR")
		if dir == "" {
			dir = "./cache"
		}
		return cache.NewFileStore(dir)
	case "redis":
		opts, err := redis.ParseURL(os.Getenv("REDIS_URL"))
		if err != nil {
			return nil, err
		}
		return cache.NewRedisStore(redis.NewClient(opts), ""), nil
	default:
		return cache.NewMemoryStore(), nil
	}
}

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, using system environment variables")
	}

	// Initialize database
	db, err := database.SetupDatabase()
	if err != nil {
		log.Fatalf("❌ Error setting up database: %v", err)
	}

	// Initialize cache backend
	store, err := setupCache()
	if err != nil {
		log.Fatalf("❌ Error setting up cache: %v", err)
	}
	log.Printf("🗄️ Cache backend: %T", store)

	// Redes internas do campus (tráfego marcado como is_internal)
	networks, err := utils.ParseTrustedNetworks(os.Getenv("TRUSTED_NETWORKS"))
	if err != nil {
		log.Fatalf("❌ Invalid TRUSTED_NETWORKS: %v", err)
	}

	// Configure Fiber for better performance
	app := fiber.New(fiber.Config{
		// Increase concurrency for better performance
		Concurrency: 256 * 1024,
		// Desabilitado modo Prefork pois causa instabilidade no container
		Prefork: false,
		// Set reasonable body limit
		BodyLimit: 1 * 1024 * 1024, // 1MB
		// Configure server for better performance
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	})

	// Setup middleware
	middleware.SetupMiddlewares(app)
	app.Use(middleware.PerformanceLogger())

	// Setup routes
	routes.SetupRoutes(app, db, store, networks)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🚀 Server is running on port %s", port)
	log.Fatal(app.Listen(":" + port))
}
