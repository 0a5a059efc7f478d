package main

import (
	"fmt"
	"os"
	"time"

	"github.com/yungbote/packdb-backend/internal/db"
	"github.com/yungbote/packdb-backend/internal/handlers"
	"github.com/yungbote/packdb-backend/internal/logger"
	"github.com/yungbote/packdb-backend/internal/middleware"
	"github.com/yungbote/packdb-backend/internal/repos"
	"github.com/yungbote/packdb-backend/internal/server"
	"github.com/yungbote/packdb-backend/internal/services"
	"github.com/yungbote/packdb-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTL := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)
	port := utils.GetEnv("PORT", "8080", log)
	corsOrigins := utils.GetEnvAsSlice("CORS_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}, log)

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Fatal("Postgres init failed", "error", err)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Fatal("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Default catalog
	if err := db.SeedDefaults(thePG, log); err != nil {
		log.Fatal("Seeding default domains failed", "error", err)
	}

	// Repos
	log.Info("Setting up Repos from main...")
	userRepo := repos.NewUserRepo(thePG, log)
	userTokenRepo := repos.NewUserTokenRepo(thePG, log)
	packRepo := repos.NewPackRepo(thePG, log)
	domainRepo := repos.NewDomainRepo(thePG, log)
	fieldRepo := repos.NewFieldRepo(thePG, log)
	valueRepo := repos.NewFieldValueRepo(thePG, log)
	commentRepo := repos.NewCommentRepo(thePG, log)
	priorityRepo := repos.NewSourcePriorityRepo(thePG, log)

	// Services
	log.Info("Setting up Services from main...")
	priorityService := services.NewSourcePriorityService(thePG, log, priorityRepo)
	resolverService := services.NewResolverService(thePG, log, domainRepo, fieldRepo, valueRepo, commentRepo, userRepo, priorityService)
	authService := services.NewAuthService(
		thePG, log, userRepo, userTokenRepo, priorityService,
		jwtSecretKey,
		time.Duration(accessTokenTTL)*time.Second,
		time.Duration(refreshTokenTTL)*time.Second,
	)
	packService := services.NewPackService(thePG, log, packRepo, userRepo, resolverService)
	domainService := services.NewDomainService(thePG, log, domainRepo, fieldRepo)
	valueService := services.NewValueService(thePG, log, packRepo, fieldRepo, valueRepo, userRepo, commentRepo, resolverService)
	commentService := services.NewCommentService(thePG, log, valueRepo, commentRepo, userRepo)
	compareService := services.NewCompareService(log, packRepo, userRepo, resolverService)

	// Handlers
	log.Info("Setting up Handlers from main...")
	authHandler := handlers.NewAuthHandler(authService, userRepo)
	packHandler := handlers.NewPackHandler(packService)
	domainHandler := handlers.NewDomainHandler(domainService)
	fieldHandler := handlers.NewFieldHandler(domainService)
	valueHandler := handlers.NewValueHandler(valueService)
	commentHandler := handlers.NewCommentHandler(commentService)
	compareHandler := handlers.NewCompareHandler(compareService)
	priorityHandler := handlers.NewSourcePriorityHandler(priorityService)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(authService, log)

	// Router
	router := server.NewRouter(server.RouterConfig{
		CORSOrigins:           corsOrigins,
		AuthMiddleware:        authMiddleware,
		AuthHandler:           authHandler,
		PackHandler:           packHandler,
		DomainHandler:         domainHandler,
		FieldHandler:          fieldHandler,
		ValueHandler:          valueHandler,
		CommentHandler:        commentHandler,
		CompareHandler:        compareHandler,
		SourcePriorityHandler: priorityHandler,
	})

	log.Info("Starting server", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Server exited", "error", err)
	}
}
