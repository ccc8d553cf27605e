package main

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/wichananm65/mitrro-backend/internal/auth"
	"github.com/wichananm65/mitrro-backend/internal/cart"
	"github.com/wichananm65/mitrro-backend/internal/category"
	"github.com/wichananm65/mitrro-backend/internal/checkout"
	"github.com/wichananm65/mitrro-backend/internal/config"
	"github.com/wichananm65/mitrro-backend/internal/database"
	"github.com/wichananm65/mitrro-backend/internal/inquiry"
	"github.com/wichananm65/mitrro-backend/internal/logging"
	"github.com/wichananm65/mitrro-backend/internal/offer"
	"github.com/wichananm65/mitrro-backend/internal/order"
	"github.com/wichananm65/mitrro-backend/internal/payment"
	"github.com/wichananm65/mitrro-backend/internal/product"
	"github.com/wichananm65/mitrro-backend/internal/profile"
	"github.com/wichananm65/mitrro-backend/internal/review"
	"github.com/wichananm65/mitrro-backend/internal/wishlist"
)

// repositories groups the storage implementations chosen at startup.
type repositories struct {
	products   product.Repository
	categories category.Repository
	orders     order.Repository
	wishlist   wishlist.Repository
	reviews    review.Repository
	inquiries  inquiry.Repository
	offers     offer.Repository
	profiles   profile.Repository
}

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	if cfg.JWTSecret == "" {
		logger.Fatal().Msg("JWT_SECRET is not set")
	}

	repos, closeDB := openRepositories(cfg, logger)
	defer closeDB()

	cartStorage := mustCartStorage(cfg, logger)
	sessions := cart.NewSessions(cartStorage, logger)

	productService := product.NewService(repos.products)
	orderService := order.NewService(repos.orders)

	gateway := payment.NewHTTPGateway(cfg.Gateway, &http.Client{})
	verifier := payment.NewVerifier(cfg.Gateway.KeySecret, orderService)
	paymentService := payment.NewService(gateway, orderService, cfg.Gateway.KeyID, cfg.Gateway.Currency, logger)

	checkoutService := checkout.NewService(productService, orderService, verifier, logger,
		checkout.NewCashOnDelivery(productService, logger),
		checkout.NewGatewayPayment(gateway, orderService, cfg.Gateway.KeyID, cfg.Gateway.Currency, logger),
	)

	productHandler := product.NewHandler(productService)
	categoryHandler := category.NewHandler(category.NewService(repos.categories))
	offerHandler := offer.NewHandler(offer.NewService(repos.offers))
	cartHandler := cart.NewHandler(sessions, productService)
	checkoutHandler := checkout.NewHandler(checkoutService, sessions)
	paymentHandler := payment.NewHandler(paymentService, verifier)
	orderHandler := order.NewHandler(orderService)
	wishlistHandler := wishlist.NewHandler(wishlist.NewService(repos.wishlist, productService))
	reviewHandler := review.NewHandler(review.NewService(repos.reviews))
	inquiryHandler := inquiry.NewHandler(inquiry.NewService(repos.inquiries, logger))
	profileHandler := profile.NewHandler(profile.NewService(repos.profiles))

	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, " + cart.SessionHeader,
		ExposeHeaders:    cart.SessionHeader,
		AllowCredentials: cfg.CORSOrigins != "*",
	}))
	app.Use(logging.Middleware(logger))
	// guests and signed-in users share the public routes; a valid token only attaches the user id
	app.Use(auth.Optional(cfg.JWTSecret))

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	productHandler.RegisterPublicRoutes(app)
	categoryHandler.RegisterPublicRoutes(app)
	offerHandler.RegisterPublicRoutes(app)
	cartHandler.RegisterPublicRoutes(app)
	checkoutHandler.RegisterPublicRoutes(app)
	paymentHandler.RegisterPublicRoutes(app)
	reviewHandler.RegisterPublicRoutes(app)
	inquiryHandler.RegisterPublicRoutes(app)

	app.Use(auth.New(cfg.JWTSecret))

	orderHandler.RegisterProtectedRoutes(app)
	wishlistHandler.RegisterProtectedRoutes(app)
	profileHandler.RegisterProtectedRoutes(app)

	admin := app.Group("/api/v1/admin", auth.RequireAdmin())
	productHandler.RegisterAdminRoutes(admin)
	offerHandler.RegisterAdminRoutes(admin)
	orderHandler.RegisterAdminRoutes(admin)
	reviewHandler.RegisterAdminRoutes(admin)
	inquiryHandler.RegisterAdminRoutes(admin)
	profileHandler.RegisterAdminRoutes(admin)

	logger.Info().Str("addr", cfg.Addr).Str("cart_storage", cfg.CartStorage).Msg("starting server")
	if err := app.Listen(cfg.Addr); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

// openRepositories uses Postgres when DATABASE_URL is set and in-memory
// repositories otherwise.
func openRepositories(cfg config.Config, logger zerolog.Logger) (repositories, func()) {
	if cfg.DatabaseURL == "" {
		logger.Warn().Msg("DATABASE_URL is not set, using in-memory repositories")
		return repositories{
			products:   product.NewInMemoryRepository(nil),
			categories: category.NewInMemoryRepository(nil),
			orders:     order.NewInMemoryRepository(),
			wishlist:   wishlist.NewInMemoryRepository(),
			reviews:    review.NewInMemoryRepository(),
			inquiries:  inquiry.NewInMemoryRepository(),
			offers:     offer.NewInMemoryRepository(nil),
			profiles:   profile.NewInMemoryRepository(),
		}, func() {}
	}

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("database unavailable")
	}
	if cfg.RunMigrations {
		if err := database.Migrate(db); err != nil {
			logger.Fatal().Err(err).Msg("migrations failed")
		}
		logger.Info().Msg("migrations applied")
	}
	return postgresRepositories(db), func() { db.Close() }
}

func postgresRepositories(db *sql.DB) repositories {
	return repositories{
		products:   product.NewPostgresRepository(db),
		categories: category.NewPostgresRepository(db),
		orders:     order.NewPostgresRepository(db),
		wishlist:   wishlist.NewPostgresRepository(db),
		reviews:    review.NewPostgresRepository(db),
		inquiries:  inquiry.NewPostgresRepository(db),
		offers:     offer.NewPostgresRepository(db),
		profiles:   profile.NewPostgresRepository(db),
	}
}

func mustCartStorage(cfg config.Config, logger zerolog.Logger) cart.Storage {
	switch cfg.CartStorage {
	case config.CartStorageRedis:
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("invalid REDIS_URL")
		}
		client := redis.NewClient(opts)
		if err := client.Ping(context.Background()).Err(); err != nil {
			logger.Fatal().Err(err).Msg("redis unavailable")
		}
		return cart.NewRedisStorage(client, cfg.CartTTL)
	case config.CartStorageFile:
		storage, err := cart.NewFileStorage(cfg.CartDir)
		if err != nil {
			logger.Fatal().Err(err).Str("dir", cfg.CartDir).Msg("cart directory unavailable")
		}
		return storage
	case config.CartStorageMemory:
		return cart.NewMemoryStorage()
	default:
		logger.Warn().Str("cart_storage", cfg.CartStorage).Msg("unknown CART_STORAGE, using memory")
		return cart.NewMemoryStorage()
	}
}
