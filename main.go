package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/asheemsiwach08/homi-apis/database"
	"github.com/asheemsiwach08/homi-apis/internal/config"
	"github.com/asheemsiwach08/homi-apis/internal/routes"
	"github.com/asheemsiwach08/homi-apis/internal/services"
	"github.com/asheemsiwach08/homi-apis/internal/storage"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found - using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Select the storage backend once: Postgres when reachable, otherwise
	// the in-memory fallback. Missing database credentials never crash
	// the process.
	store := storage.NewStore(cfg, database.Connect)

	whatsappService, err := services.NewWhatsAppService(cfg)
	if err != nil {
		log.Fatal("Failed to initialize WhatsApp service:", err)
	}
	log.Println("WhatsApp service initialized")

	ttl := time.Duration(cfg.OTPExpiryMinutes) * time.Minute
	otpService := services.NewOTPService(store, whatsappService, ttl)

	basicAppClient := services.NewBasicApplicationClient(cfg)
	leadService := services.NewLeadService(store, basicAppClient, whatsappService)

	app := fiber.New(fiber.Config{
		AppName: "HOM-i API v1.0.0",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"success": false,
				"message": err.Error(),
			})
		},
	})

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	routes.Setup(app, cfg, store, otpService, leadService, whatsappService)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	log.Printf("HOM-i backend starting on port %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
