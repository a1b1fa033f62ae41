package main

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"
	"github.com/scream-social/backend/internal/identity"
	"github.com/scream-social/backend/internal/repositories"
	"github.com/scream-social/backend/internal/router"
	"github.com/scream-social/backend/internal/triggers"
	"github.com/scream-social/backend/pkg/config"
	"github.com/scream-social/backend/pkg/firebase"
	"github.com/scream-social/backend/validators"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connection
	db, err := config.InitDB(cfg.MongoURI)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.CloseDB()

	// Initialize Firebase
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath, cfg.StorageBucket)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}
	idClient := identity.NewClient(firebaseApp.AuthClient, cfg.FirebaseAPIKey)

	// Start the change-stream triggers: notification fan-out and cascade cleanup
	database := db.Mongo.Database(cfg.MongoDatabase)
	screamRepo := repositories.NewMongoScreamRepository(database)
	fanout := triggers.NewFanout(screamRepo, repositories.NewMongoNotificationRepository(database))
	cascade := triggers.NewCascade(
		repositories.NewMongoTxnRunner(db.Mongo),
		repositories.NewMongoCommentRepository(database),
		repositories.NewMongoLikeRepository(database),
		repositories.NewMongoNotificationRepository(database),
		screamRepo,
	)
	triggers.NewWatcher(database, fanout, cascade).Start(ctx)

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, database, idClient, firebaseApp.Images, cfg.StorageBucket)

	// Validator
	e.Validator = validators.NewValidator()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
