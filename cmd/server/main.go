// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	catalogrepository "keyshop/internal/catalog/repository"
	catalogservice "keyshop/internal/catalog/service"
	cataloghttp "keyshop/internal/catalog/transport/http"
	"keyshop/internal/config"
	intentrepository "keyshop/internal/intent/repository"
	intentservice "keyshop/internal/intent/service"
	intenthttp "keyshop/internal/intent/transport/http"
	invoicerepository "keyshop/internal/invoice/repository"
	invoicehttp "keyshop/internal/invoice/transport/http"
	mediarepository "keyshop/internal/media/repository"
	mediaservice "keyshop/internal/media/service"
	mediahttp "keyshop/internal/media/transport/http"
	"keyshop/internal/metrics"
	keyrepository "keyshop/internal/productkey/repository"
	keyservice "keyshop/internal/productkey/service"
	keyhttp "keyshop/internal/productkey/transport/http"
	settingsrepository "keyshop/internal/settings/repository"
	settingshttp "keyshop/internal/settings/transport/http"
	tokenrepository "keyshop/internal/token/repository"
	userrepository "keyshop/internal/user/repository"
	userservice "keyshop/internal/user/service"
	userhttp "keyshop/internal/user/transport/http"
	"keyshop/pkg/db"
	"keyshop/pkg/middleware"
)

var server *http.Server

func main() {
	fmt.Println("Keyshop API starting...")
	cfg := config.Load()
	fmt.Println("Config loaded")

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Println("Database connected")

	metrics.InitMetrics()

	// --- ИНИЦИАЛИЗАЦИЯ СЛОЁВ ---
	userRepo := userrepository.NewPostgresUserRepository(database)
	userService := userservice.NewUserService(userRepo)
	refreshTokenRepo := tokenrepository.NewRefreshTokenRepository(database)
	userHandler := userhttp.NewHandler(userService, cfg.JWTSecret, refreshTokenRepo)

	catalogRepo := catalogrepository.NewPostgresCatalogRepository(database)
	catalogService := catalogservice.NewService(catalogRepo)
	catalogHandler := cataloghttp.NewCatalogHandler(catalogService)

	keyRepo := keyrepository.NewPostgresKeyRepository(database)
	keyService := keyservice.NewService(keyRepo)
	keyHandler := keyhttp.NewKeyHandler(keyService)

	intentRepo := intentrepository.NewPostgresIntentRepository(database)
	intentService := intentservice.NewService(intentRepo, keyRepo)
	intentHandler := intenthttp.NewIntentHandler(intentService, keyService, catalogService)

	settingsRepo := settingsrepository.NewPostgresSettingsRepository(database)
	settingsHandler := settingshttp.NewSettingsHandler(settingsRepo)

	templateRepo := invoicerepository.NewPostgresTemplateRepository(database)
	invoiceHandler := invoicehttp.NewInvoiceHandler(templateRepo, intentService, catalogService, settingsRepo)

	mediaRepo := mediarepository.NewPostgresMediaRepository(database)
	mediaService := mediaservice.NewService(mediaRepo, cfg.MediaDir)
	mediaHandler := mediahttp.NewMediaHandler(mediaService)

	// --- РОУТЕР ---
	r := chi.NewRouter()

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   strings.Split(cfg.AllowedOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.MetricsMiddleware)
	r.Use(middleware.ValidateRequest)

	// Публичные роуты (витрина + форма заявки)
	r.Post("/auth/register", userHandler.Register)
	r.Post("/auth/login", userHandler.Login)
	r.Post("/auth/refresh", userHandler.Refresh)

	r.Get("/api/products", catalogHandler.ListPublic)
	r.Get("/api/products/{id}", catalogHandler.GetProduct)
	r.Get("/api/categories", catalogHandler.ListCategories)
	r.Get("/api/settings", settingsHandler.GetSettings)
	r.Get("/api/winning-photos", mediaHandler.ListWinningPhotos)

	intentLimiter := middleware.NewRateLimiter(10, 1*time.Minute)
	r.With(intentLimiter.Middleware).Post("/api/purchase-intents", intentHandler.Submit)

	// Статика платёжных QR
	fileServer := http.StripPrefix("/media/", http.FileServer(http.Dir(cfg.MediaDir)))
	r.Get("/media/*", fileServer.ServeHTTP)

	// 🔐 Защищённая группа маршрутов (админка)
	r.Group(func(pr chi.Router) {
		pr.Use(middleware.JWTAuth(cfg.JWTSecret))

		// Заявки и выдача ключей
		pr.Get("/api/admin/intents", intentHandler.List)
		pr.Post("/api/admin/intents/{id}/claim-key", intentHandler.ClaimKey)
		pr.Post("/api/admin/intents/delete", intentHandler.DeleteMany)
		pr.Get("/api/admin/intents/{id}/invoice", invoiceHandler.RenderForIntent)

		// Пул ключей
		pr.Get("/api/admin/keys", keyHandler.ListKeys)
		pr.Post("/api/admin/keys", keyHandler.AddKeys)
		pr.Delete("/api/admin/keys/{id}", keyHandler.DeleteKey)
		pr.Get("/api/admin/keys/available/{productId}", keyHandler.AvailableCount)

		// Каталог
		pr.Get("/api/admin/products", catalogHandler.ListAll)
		pr.Post("/api/admin/products", catalogHandler.CreateProduct)
		pr.Put("/api/admin/products/{id}", catalogHandler.UpdateProduct)
		pr.Delete("/api/admin/products/{id}", catalogHandler.DeleteProduct)
		pr.Post("/api/admin/categories", catalogHandler.CreateCategory)
		pr.Delete("/api/admin/categories/{id}", catalogHandler.DeleteCategory)

		// Настройки и шаблоны счетов
		pr.Put("/api/admin/settings", settingsHandler.SaveSettings)
		pr.Get("/api/admin/invoice-templates", invoiceHandler.ListTemplates)
		pr.Put("/api/admin/invoice-templates", invoiceHandler.SaveTemplate)

		// Медиа
		pr.Get("/api/admin/purchase-images", mediaHandler.ListPurchaseImages)
		pr.Post("/api/admin/purchase-images", mediaHandler.CreatePurchaseImage)
		pr.Delete("/api/admin/purchase-images/{id}", mediaHandler.DeletePurchaseImage)
		pr.Post("/api/admin/winning-photos", mediaHandler.AddWinningPhoto)
		pr.Post("/api/admin/winning-photos/delete", mediaHandler.DeleteWinningPhotos)
		pr.Post("/api/admin/winning-photos/move", mediaHandler.MoveWinningPhotos)

		// Пользователи админки
		pr.Get("/api/admin/users", userHandler.ListUsers)
		pr.Post("/api/admin/users", userHandler.CreateUser)
		pr.Put("/api/admin/users/password", userHandler.UpdatePassword)
	})

	// Метрики за базовой аутентификацией
	r.With(middleware.BasicAuth(cfg.MetricsUser, cfg.MetricsPassword)).
		Get("/metrics", promhttp.Handler().ServeHTTP)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Чистка протухших refresh токенов
	go func() {
		ticker := time.NewTicker(12 * time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if err := refreshTokenRepo.DeleteExpired(context.Background()); err != nil {
				log.Printf("Failed to delete expired refresh tokens: %v", err)
			}
		}
	}()

	server = &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: r,
	}

	log.Printf("Server running on %s", cfg.ListenAddr)

	// Graceful shutdown на сигналы ОС
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig

		log.Println("Shutdown signal received, starting graceful shutdown")
		shutdownServer()
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}

func shutdownServer() {
	log.Println("Starting server shutdown process")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped")
}
