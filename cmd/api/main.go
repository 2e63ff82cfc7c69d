package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"minemarket/internal/config"
	"minemarket/internal/database"
	"minemarket/internal/middleware"
	"minemarket/internal/modules/analytics"
	"minemarket/internal/modules/auth"
	"minemarket/internal/modules/listing"
	"minemarket/internal/modules/machine"
	"minemarket/internal/modules/message"
	"minemarket/internal/modules/offer"
	"minemarket/internal/modules/payment"
	"minemarket/internal/modules/upload"
	"minemarket/internal/modules/user"
	jwtsvc "minemarket/internal/pkg/jwt"
	"minemarket/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	mineRepo := repository.NewMineRepository(db)
	mineralRepo := repository.NewMineralRepository(db)
	machineRepo := repository.NewMachineRepository(db)
	offerRepo := repository.NewOfferRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	uploadRepo := repository.NewUploadRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)
	hub := message.NewHub()
	defer hub.Close()

	authHandler := auth.NewHandler(auth.NewService(userRepo, j))
	userHandler := user.NewHandler(user.NewService(userRepo))
	listingHandler := listing.NewHandler(
		listing.NewMineService(mineRepo),
		listing.NewMineralService(mineralRepo),
	)
	machineHandler := machine.NewHandler(machine.NewService(machineRepo, userRepo))
	offerHandler := offer.NewHandler(offer.NewService(offerRepo, mineRepo, userRepo))
	messageHandler := message.NewHandler(
		message.NewService(messageRepo, userRepo, mineRepo, hub),
		hub,
		j,
	)
	analyticsHandler := analytics.NewHandler(analytics.NewService(analyticsRepo))
	paymentHandler := payment.NewHandler(payment.NewService(payment.NewStripeClient(cfg.StripeSecretKey)))
	uploadHandler := upload.NewHandler(upload.NewService(uploadRepo, cfg.UploadDir, upload.StaticURLBase))

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())
	r.Static(upload.StaticURLBase, cfg.UploadDir)

	api := r.Group("/api")
	{
		protected := api.Group("/")
		protected.Use(middleware.Auth(j))

		authHandler.RegisterRoutes(api, protected)
		listingHandler.RegisterRoutes(api, protected)
		machineHandler.RegisterRoutes(api, protected)
		messageHandler.RegisterRoutes(api, protected)
		offerHandler.RegisterRoutes(protected)
		userHandler.RegisterRoutes(protected)
		analyticsHandler.RegisterRoutes(protected)
		paymentHandler.RegisterRoutes(protected)
		uploadHandler.RegisterRoutes(protected)
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
