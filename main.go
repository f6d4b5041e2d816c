package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"

	"github.com/instantfolio/Backend-Instant-Portfolio/src/config"
	"github.com/instantfolio/Backend-Instant-Portfolio/src/controllers"
	"github.com/instantfolio/Backend-Instant-Portfolio/src/lib"
	"github.com/instantfolio/Backend-Instant-Portfolio/src/middleware"
	"github.com/instantfolio/Backend-Instant-Portfolio/src/repository"
	"github.com/instantfolio/Backend-Instant-Portfolio/src/routes"
	"github.com/instantfolio/Backend-Instant-Portfolio/src/services"
	"github.com/instantfolio/Backend-Instant-Portfolio/src/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}
	cfg := config.LoadConfig()
	lib.JWTSecret = cfg.JWTSecret

	lib.ConnectDB(cfg.MongoURI, cfg.MongoDBName)
	if err := lib.EnsureIndexes(context.Background()); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}
	lib.ConnectCache(cfg.RedisAddr)

	userRepo := repository.NewUserRepository(lib.DB)
	portfolioRepo := repository.NewPortfolioRepository(lib.DB)

	userService := services.NewUserService(userRepo, portfolioRepo)
	portfolioService := services.NewPortfolioService(portfolioRepo)

	imageStore, err := storage.NewS3ImageStore(context.Background(), cfg.S3Bucket, cfg.S3Region)
	if err != nil {
		log.Fatalf("Failed to create image store: %v", err)
	}

	app := fiber.New()

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"live":    true,
			"message": "Instant Portfolio Server is Running",
		})
	})

	protect := middleware.Protect(userRepo)

	routes.UserRoutes(app, controllers.NewUserController(userService), protect)
	routes.PortfolioRoutes(app, controllers.NewPortfolioController(portfolioService), protect)
	routes.UploadRoutes(app, controllers.NewUploadController(imageStore), protect)
	routes.PreviewRoutes(app, controllers.NewPreviewController(portfolioService))

	fmt.Println("Server is running on http://localhost:" + cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
