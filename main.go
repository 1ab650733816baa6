package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"gatekeeper/api/config"
	"gatekeeper/api/database"
	"gatekeeper/api/generator"
	"gatekeeper/api/handlers"
	"gatekeeper/api/middleware"
	"gatekeeper/api/store"
	"gatekeeper/api/utils"
)

func main() {
	// Load .env file at the very start
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found or error loading .env: %v", err)
	}

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	cfg := config.Load()
	if cfg.GitHubToken == "" || (cfg.AdminSecret == "" && cfg.AdminSecretHash == "") {
		log.Println("WARNING: GITHUB_TOKEN and ADMIN_SECRET (or ADMIN_SECRET_HASH) must be set for the gateway to function")
	}

	// --- Remote document store ---
	github := database.NewGitHubClient(cfg)

	// --- Stores ---
	catalogStore := store.NewCatalogStore(github, cfg.ProductsPath)
	clickStore := store.NewClickStore(github, cfg.ClicksPath)
	wisdomStore := store.NewWisdomStore(github, cfg.WisdomPath)

	// --- Generator and access guard ---
	gen := generator.New(cfg)
	guard := utils.NewAccessGuard(cfg.AdminSecret, cfg.AdminSecretHash)
	jwtSecret := []byte(cfg.JWTSecret)

	// --- Handlers ---
	productHandlers := handlers.NewProductHandlers(catalogStore, gen)
	trackHandlers := handlers.NewTrackHandlers(clickStore)
	analyticsHandlers := handlers.NewAnalyticsHandlers(catalogStore, clickStore)
	wisdomHandlers := handlers.NewWisdomHandlers(wisdomStore)
	authHandlers := handlers.NewAuthHandlers(guard, jwtSecret)

	r := gin.Default()

	r.Use(middleware.CORSMiddleware(cfg.FrontendOrigin))

	health := func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) }
	r.GET("/health", health)
	r.GET("/status", health)

	r.GET("/products", productHandlers.ListProducts)
	r.GET("/wisdom", wisdomHandlers.ListWisdom)
	r.GET("/analytics", analyticsHandlers.GetAnalytics)

	// The click log is fed by the public storefront, so tracking stays open.
	r.POST("/track", trackHandlers.TrackClick)
	r.POST("/track-click", trackHandlers.TrackClick)

	r.POST("/admin/login", authHandlers.AdminLogin)

	// Mutating routes require the admin secret or a session token.
	protected := r.Group("/")
	protected.Use(middleware.AdminRequired(guard, jwtSecret))
	{
		protected.POST("/products", productHandlers.AddProduct)
		protected.POST("/update-products", productHandlers.ReplaceProducts)
		protected.POST("/auto-update", productHandlers.AutoUpdate)
		protected.POST("/wisdom", wisdomHandlers.AddWisdom)
		protected.POST("/update-wisdom", wisdomHandlers.ReplaceWisdom)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Printf("Gatekeeper running on http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Gatekeeper failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
