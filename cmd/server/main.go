package main

import (
	"errors"
	"runtime"
	"time"

	"github.com/fadilmartias/resume-scorecard/internal/config"
	"github.com/fadilmartias/resume-scorecard/internal/domain/fiber/handler"
	"github.com/fadilmartias/resume-scorecard/internal/middleware"
	"github.com/fadilmartias/resume-scorecard/internal/service"
	"github.com/fadilmartias/resume-scorecard/internal/usecase"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		logrus.Info("Could not load .env file")
	}

	appConfig := config.LoadAppConfig()
	analyzerConfig := config.LoadAnalyzerConfig()
	if !appConfig.IsProduction() {
		logrus.SetLevel(logrus.DebugLevel)
	}

	app := fiber.New(fiber.Config{
		AppName: appConfig.Name,
		// leave room for the multipart envelope around the largest upload
		BodyLimit: int(analyzerConfig.MaxUploadBytes) + 1024*1024,
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			// Status code defaults to 500
			code := fiber.StatusInternalServerError

			// Retrieve the custom status code if it's a *fiber.Error
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}

			message := err.Error()
			if message == "" {
				message = "Internal Server Error"
			}
			if code >= fiber.StatusInternalServerError {
				logrus.WithError(err).WithField("path", ctx.Path()).Error("request failed")
			}

			return ctx.Status(code).JSON(fiber.Map{"error": message})
		},
	})
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	// Use middleware
	app.Use(recover.New(recover.Config{
		EnableStackTrace: !appConfig.IsProduction(),
	}))

	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed, // 1
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.IsProduction()
		},
	}))
	app.Use(healthcheck.New())

	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))

	app.Use(middleware.ClientID())
	app.Use(middleware.RateLimiter(appConfig.RateLimitMax, 1*time.Minute))

	analyzer := service.NewAnalyzerService(analyzerConfig)
	registry := usecase.NewRegistry(analyzer, logrus.StandardLogger())
	handler := handler.NewScorecardHandler(registry, analyzerConfig.MaxUploadBytes)

	handler.RegisterRoutes(app)

	// Monitor goroutine count and in-flight submissions
	go func() {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			logrus.WithFields(logrus.Fields{
				"goroutines": runtime.NumGoroutine(),
				"pending":    registry.Active(),
			}).Debug("runtime stats")
		}
	}()

	logrus.WithFields(logrus.Fields{
		"port":     appConfig.Port,
		"analyzer": analyzerConfig.BaseURL,
	}).Info("Server running")
	if err := app.Listen(appConfig.Port); err != nil {
		logrus.Fatal(err)
	}
}
