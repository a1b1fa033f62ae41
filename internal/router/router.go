package router

import (
	"log"

	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/scream-social/backend/internal/handlers"
	"github.com/scream-social/backend/internal/identity"
	"github.com/scream-social/backend/internal/middleware"
	"github.com/scream-social/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/mongo"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.HTTPErrorHandler = JSONErrorHandler
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, db *mongo.Database, idClient *identity.Client, images handlers.ImageStore, storageBucket string) {
	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewMongoUserRepository(db)
	screamRepo := repositories.NewMongoScreamRepository(db)
	commentRepo := repositories.NewMongoCommentRepository(db)
	likeRepo := repositories.NewMongoLikeRepository(db)
	notificationRepo := repositories.NewMongoNotificationRepository(db)

	// --- Route groups ---
	public := e.Group("")
	protected := e.Group("")
	protected.Use(middleware.FirebaseAuthMiddleware(idClient, userRepo))
	log.Println("Firebase authentication middleware applied to protected routes.")

	// Auth routes
	authHandler := handlers.NewAuthHandler(userRepo, idClient, storageBucket)
	authHandler.RegisterAuthRoutes(public)
	log.Println("Auth routes configured.")

	// Scream routes
	screamHandler := handlers.NewScreamHandler(screamRepo, commentRepo)
	screamHandler.RegisterScreamRoutes(public, protected)
	log.Println("Scream routes configured.")

	// Comment routes
	commentHandler := handlers.NewCommentHandler(commentRepo, screamRepo)
	commentHandler.RegisterCommentRoutes(protected)
	log.Println("Comment routes configured.")

	// Like routes
	likeHandler := handlers.NewLikeHandler(likeRepo, screamRepo)
	likeHandler.RegisterLikeRoutes(protected)
	log.Println("Like routes configured.")

	// User routes
	userHandler := handlers.NewUserHandler(userRepo, screamRepo, likeRepo, notificationRepo, images)
	userHandler.RegisterUserRoutes(public, protected)
	log.Println("User routes configured.")

	log.Println("All routes configured.")
}
