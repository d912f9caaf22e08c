package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/egreat/storefront-api/docs"
	"github.com/egreat/storefront-api/internal/api/handler"
	"github.com/egreat/storefront-api/internal/api/middleware"
	"github.com/egreat/storefront-api/internal/core/domain"
	"github.com/egreat/storefront-api/internal/core/ports"
	"github.com/egreat/storefront-api/internal/core/service"
	mongodb "github.com/egreat/storefront-api/internal/infrastructure/db/mongo"
	redisdb "github.com/egreat/storefront-api/internal/infrastructure/db/redis"
)

// RouterConfig carries everything the router needs to assemble the
// repositories, services, and handlers.
type RouterConfig struct {
	Log          zerolog.Logger
	DB           *mongo.Database
	Redis        *goredis.Client
	Images       ports.ImageStore
	Cleanup      ports.ImageCleanup
	JWTSecret    string
	TokenTTL     time.Duration
	SecureCookie bool
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("storefront"))

	// --- Repositories ---
	users := mongodb.NewUserRepository(cfg.DB)
	products := mongodb.NewProductRepository(cfg.DB)
	categories := mongodb.NewCategoryRepository(cfg.DB)
	subcategories := mongodb.NewSubcategoryRepository(cfg.DB)
	heroes := mongodb.NewHeroRepository(cfg.DB)
	settings := mongodb.NewSettingsRepository(cfg.DB)
	cache := redisdb.NewCache(cfg.Redis)

	// --- Services ---
	authService := service.NewAuthService(users, cfg.JWTSecret, cfg.TokenTTL, cfg.Log)
	productService := service.NewProductService(products, categories, subcategories, cfg.Images, cfg.Cleanup, cfg.Log)
	categoryService := service.NewCategoryService(categories, products, cfg.Images, cfg.Cleanup, cfg.Log)
	subcategoryService := service.NewSubcategoryService(subcategories, products, cfg.Log)
	heroService := service.NewHeroService(heroes, cfg.Images, cfg.Cleanup, cache, cfg.Log)
	settingsService := service.NewSettingsService(settings, cache, cfg.Log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService, cfg.TokenTTL, cfg.SecureCookie)
	productHandler := handler.NewProductHandler(productService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	subcategoryHandler := handler.NewSubcategoryHandler(subcategoryService)
	heroHandler := handler.NewHeroHandler(heroService)
	settingsHandler := handler.NewSettingsHandler(settingsService)
	healthHandler := handler.NewHealthHandler(cfg.DB, cfg.Redis)

	authn := middleware.Auth(cfg.JWTSecret, users)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	// --- Auth routes ---
	auth := e.Group("/api/v1/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/admin/login", authHandler.AdminLogin)
	auth.GET("/me", authHandler.Me, authn)
	auth.PATCH("/me", authHandler.UpdateProfile, authn)
	auth.PATCH("/password", authHandler.ChangePassword, authn)

	// --- Catalog routes (reads are public, writes are admin-only) ---
	product := e.Group("/api/v1/product")
	product.GET("", productHandler.List)
	product.GET("/featured", productHandler.ListFeatured)
	product.GET("/:id", productHandler.Get)
	product.POST("", productHandler.Create, authn, adminOnly)
	product.PATCH("/:id", productHandler.Update, authn, adminOnly)
	product.DELETE("/:id", productHandler.Delete, authn, adminOnly)
	product.DELETE("/image/:id", productHandler.DeleteImage, authn, adminOnly)

	category := e.Group("/api/v1/category")
	category.GET("", categoryHandler.List)
	category.GET("/:id", categoryHandler.Get)
	category.POST("", categoryHandler.Create, authn, adminOnly)
	category.PATCH("/:id", categoryHandler.Update, authn, adminOnly)
	category.DELETE("/:id", categoryHandler.Delete, authn, adminOnly)

	subcategory := e.Group("/api/v1/subcategory")
	subcategory.GET("", subcategoryHandler.List)
	subcategory.GET("/name/:name", subcategoryHandler.InstancesByName)
	subcategory.GET("/:id", subcategoryHandler.Get)
	subcategory.GET("/:id/products", subcategoryHandler.Products)
	subcategory.POST("", subcategoryHandler.Create, authn, adminOnly)
	subcategory.PATCH("/:id", subcategoryHandler.Update, authn, adminOnly)
	subcategory.DELETE("/:id", subcategoryHandler.Delete, authn, adminOnly)

	// --- Content routes ---
	hero := e.Group("/api/v1/hero")
	hero.GET("", heroHandler.List)
	hero.POST("", heroHandler.Create, authn, adminOnly)
	hero.PATCH("/:id", heroHandler.Update, authn, adminOnly)
	hero.DELETE("/:id", heroHandler.Delete, authn, adminOnly)

	site := e.Group("/api/v1/settings")
	site.GET("", settingsHandler.Get)
	site.PATCH("", settingsHandler.Update, authn, adminOnly)

	// --- Operational endpoints ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
