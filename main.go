package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	catalogControllers "github.com/FabioFebre/tienda-api/controllers/catalog"
	"github.com/FabioFebre/tienda-api/middleware"
	"github.com/FabioFebre/tienda-api/models"
	"github.com/FabioFebre/tienda-api/routes"
	"github.com/FabioFebre/tienda-api/services/cart"
)

func main() {
	log.Println("✅ Starting application...")

	// Load environment variables
	_ = godotenv.Load()

	// Init DB
	db := initDatabase()

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Category{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Complaint{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}

	// Cart consistency manager: guest carts on disk, user carts in the DB,
	// invalidations over websockets.
	localStore, err := cart.NewLocalStore(cartDataDir())
	if err != nil {
		log.Fatalf("❌ Failed to init guest cart store: %v", err)
	}
	hub := cart.NewHub()
	reconciler := cart.NewReconciler(localStore, cart.NewDBStore(db), hub)

	// Gin setup
	r := gin.Default()

	// Allow large image uploads
	r.MaxMultipartMemory = 64 << 20 // 64MB

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Every request gets a resolved session; bad tokens degrade to guest.
	r.Use(middleware.ResolveSession)

	// Metrics
	metrics := middleware.NewServerMetrics("storefront")
	r.Use(metrics.Instrument)
	r.GET("/metrics", middleware.MetricsHandler())

	// Serve uploaded images
	r.Static("/uploads", catalogControllers.UploadDir())

	// Setup routes
	routes.SetupRoutes(r, db, reconciler, hub)

	// Prune abandoned guest carts at 2 AM daily; guest tokens only live a
	// day, so anything older than 48h is unreachable.
	go startDailyCartPruneAtFixedTime(localStore, 48*time.Hour, 2, 0)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🚀 Server running on port %s...", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// initDatabase sets up the GORM DB connection
func initDatabase() *gorm.DB {
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{TranslateError: true})
		if err != nil {
			log.Fatalf("❌ DB connection failed: %v", err)
		}
		return db
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host, user, password, dbname, port,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("❌ Failed to connect DB: %v", err)
	}
	return db
}

func cartDataDir() string {
	if dir := os.Getenv("CART_DATA_DIR"); dir != "" {
		return dir
	}
	return "./data/carts"
}

// startDailyCartPruneAtFixedTime removes stale guest carts daily at a fixed hour
func startDailyCartPruneAtFixedTime(store *cart.LocalStore, retention time.Duration, hour, min int) {
	for {
		now := time.Now()
		next := time.Date(now.Year(), now.Month(), now.Day(), hour, min, 0, 0, now.Location())
		if !next.After(now) {
			next = next.Add(24 * time.Hour)
		}
		log.Printf("⏳ Next guest cart prune scheduled at: %s", next.Format("2006-01-02 15:04:05"))
		time.Sleep(next.Sub(now))

		store.PruneStale(retention)
	}
}
