// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"time"

	"hanapbahay/internal/cache"
	"hanapbahay/internal/config"
	"hanapbahay/internal/database"
	"hanapbahay/internal/middleware"
	"hanapbahay/internal/models"
	"hanapbahay/internal/repository"
	"hanapbahay/internal/service"
	"hanapbahay/internal/storage"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers.
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	promMiddleware *fiberprometheus.FiberPrometheus

	propertyRepo    repository.PropertyRepository
	amenityRepo     repository.AmenityRepository
	reservationRepo repository.ReservationRepository
	convoRepo       repository.ConversationRepository
	wishlistRepo    repository.WishlistRepository

	propertyService    *service.PropertyService
	reservationService *service.ReservationService
	chatService        *service.ChatService
	wishlistService    *service.WishlistService
	uploadService      *service.UploadService
}

// NewServer creates a server instance, establishing the database, Redis and
// blob store connections itself.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	blobs, err := storage.NewMinioStorage(cfg)
	if err != nil {
		return nil, fmt.Errorf("blob storage init failed: %w", err)
	}
	for _, container := range []string{service.ImageContainer, service.UploadContainer} {
		if err := blobs.EnsureContainer(context.Background(), container); err != nil {
			return nil, fmt.Errorf("blob container %q init failed: %w", container, err)
		}
	}

	return NewServerWithDeps(cfg, db, cache.GetClient(), blobs), nil
}

// NewServerWithDeps creates a Server from already-initialized dependencies.
// Tests and bootstrap layers use this to substitute sqlite, miniredis or a
// fake blob store.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, blobs storage.BlobStorage) *Server {
	middleware.InitMiddleware(cfg)

	propertyRepo := repository.NewPropertyRepository(db)
	amenityRepo := repository.NewAmenityRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	convoRepo := repository.NewConversationRepository(db)
	wishlistRepo := repository.NewWishlistRepository(db)

	logger := middleware.Logger
	resolver := service.NewAmenityResolver(amenityRepo, logger)
	media := service.NewMediaService(blobs, propertyRepo, logger)

	s := &Server{
		config:          cfg,
		db:              db,
		redis:           redisClient,
		promMiddleware:  middleware.InitMetrics("hanapbahay-api"),
		propertyRepo:    propertyRepo,
		amenityRepo:     amenityRepo,
		reservationRepo: reservationRepo,
		convoRepo:       convoRepo,
		wishlistRepo:    wishlistRepo,
	}
	s.propertyService = service.NewPropertyService(propertyRepo, resolver, media, logger)
	s.reservationService = service.NewReservationService(reservationRepo, propertyRepo, logger)
	s.chatService = service.NewChatService(convoRepo, propertyRepo, logger)
	s.wishlistService = service.NewWishlistService(wishlistRepo, propertyRepo, logger)
	s.uploadService = service.NewUploadService(blobs, logger)

	return s
}

// Shutdown releases the server's backing connections.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			return err
		}
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SetupMiddleware configures the middleware chain for the Fiber app.
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	// CORS runs before middlewares that can short-circuit (e.g. limiter) so
	// browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application.
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	api := app.Group("/api")

	// Public browse routes
	properties := api.Group("/properties")
	properties.Get("/", s.GetProperties)
	properties.Get("/filter", s.FilterProperties)
	properties.Get("/amenities", s.GetAmenityOptions)
	properties.Get("/mine", middleware.AuthRequired, middleware.RoleRequired(models.RoleLandlord), s.GetMyProperties)
	// Generic /:id routes come after the named ones.
	properties.Get("/:id", s.GetProperty)

	// Landlord mutations
	properties.Post("/", middleware.AuthRequired, middleware.RoleRequired(models.RoleLandlord), s.CreateProperty)
	properties.Put("/:id", middleware.AuthRequired, middleware.RoleRequired(models.RoleLandlord), s.UpdateProperty)
	properties.Delete("/:id", middleware.AuthRequired, middleware.RoleRequired(models.RoleLandlord), s.DeleteProperty)

	// Reservations
	properties.Post("/:id/reservations", middleware.AuthRequired, middleware.RoleRequired(models.RoleRenter), s.ProposeReservation)
	properties.Get("/:id/reservations", middleware.AuthRequired, middleware.RoleRequired(models.RoleLandlord), s.GetPropertyReservations)
	reservations := api.Group("/reservations", middleware.AuthRequired)
	reservations.Get("/mine", s.GetMyReservations)
	reservations.Patch("/:id", s.UpdateReservation)

	// Conversations
	properties.Post("/:id/conversations", middleware.AuthRequired, middleware.RoleRequired(models.RoleRenter), s.StartConversation)
	conversations := api.Group("/conversations", middleware.AuthRequired)
	conversations.Get("/", s.GetConversations)
	conversations.Get("/:id/messages", s.GetMessages)
	conversations.Post("/:id/messages", s.SendMessage)

	// Wishlist
	wishlist := api.Group("/wishlist", middleware.AuthRequired)
	wishlist.Get("/", s.GetWishlist)
	wishlist.Put("/:propertyId", s.AddToWishlist)
	wishlist.Delete("/:propertyId", s.RemoveFromWishlist)

	// Generic uploads
	uploads := api.Group("/uploads", middleware.AuthRequired)
	uploads.Post("/", s.UploadFile)
	uploads.Get("/signed-url", s.GetSignedURL)
}

// LivenessCheck handles liveness probe requests.
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests. The database is required;
// Redis is reported but does not fail readiness because the app degrades
// without it.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overall := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overall = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overall,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}
