package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/mercadito/mercadito-backend/internal/modules/auth"
	"github.com/mercadito/mercadito-backend/internal/modules/catalog"
	"github.com/mercadito/mercadito-backend/internal/modules/driver"
	"github.com/mercadito/mercadito-backend/internal/modules/order"
	"github.com/mercadito/mercadito-backend/internal/modules/user"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using process environment")
	}

	// ── Repositories ────────────────────────────────────────
	// DATABASE_URL selects the durable Postgres collaborator; without it
	// everything runs on the in-memory tables.
	var (
		accountRepo auth.Repository
		userRepo    user.Repository
		driverRepo  driver.Repository
		storeRepo   catalog.StoreRepository
		productRepo catalog.ProductRepository
		orderRepo   order.Repository
	)
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		db, err := sql.Open("postgres", dsn)
		if err != nil {
			log.Fatal(err)
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			log.Fatal(err)
		}
		fmt.Println("Successfully connected to the database!")

		accountRepo = auth.NewPostgresRepository(db)
		userRepo = user.NewPostgresRepository(db)
		driverRepo = driver.NewPostgresRepository(db)
		storeRepo = catalog.NewStorePostgresRepository(db)
		productRepo = catalog.NewProductPostgresRepository(db)
		orderRepo = order.NewPostgresRepository(db)
	} else {
		accountRepo = auth.NewMemoryRepository()
		userRepo = user.NewMemoryRepository()
		driverRepo = driver.NewMemoryRepository()
		storeRepo = catalog.NewStoreMemoryRepository()
		productRepo = catalog.NewProductMemoryRepository()
		orderRepo = order.NewMemoryRepository()
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-secret"
	}

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)
	router.Use(middleware.Timeout(15 * time.Second))
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// ── Services & routes ───────────────────────────────────
	authService := auth.NewService(accountRepo, []byte(secret))

	userService := user.NewService(userRepo, authService)
	user.NewHandler(userService).RegisterRoutes(router)

	driverService := driver.NewService(driverRepo, authService)
	driver.NewHandler(driverService).RegisterRoutes(router)

	catalogService := catalog.NewService(storeRepo, productRepo)
	catalog.NewHandler(catalogService, authService).RegisterRoutes(router)

	orderService := order.NewService(orderRepo, catalogService)
	order.NewHandler(orderService, authService).RegisterRoutes(router)

	// ── Start Server ────────────────────────────────────────
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	fmt.Printf("Mercadito API server starting on :%s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}
