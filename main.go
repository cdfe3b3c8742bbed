package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/CuCryptos/cruise-photos/config"
	"github.com/CuCryptos/cruise-photos/database"
	"github.com/CuCryptos/cruise-photos/handler"
	"github.com/CuCryptos/cruise-photos/helper"
	"github.com/CuCryptos/cruise-photos/middleware"
	"github.com/CuCryptos/cruise-photos/payment"
	"github.com/CuCryptos/cruise-photos/router"
	"github.com/CuCryptos/cruise-photos/utils"
)

func main() {
	app := fiber.New(fiber.Config{
		BodyLimit: 100 * 1024 * 1024, // full-resolution photo uploads
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     config.Config("APP_URL"),
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept",
		AllowCredentials: true,
		ExposeHeaders:    "Set-Cookie",
		MaxAge:           600,
	}))

	db, err := database.Connect()
	if err != nil {
		log.Fatal(err)
	}

	storage := helper.NewCloudinaryStorage(helper.InitCloudinary())
	mailer := utils.NewSMTPMailer()
	rdb := middleware.NewRedisClient()

	h := handler.NewHandlers(db, payment.NewClover(), mailer, storage, rdb)
	router.SetupRoutes(app, h, rdb)

	helper.StartPhotoRetentionSweeper(h.Photos, storage)
	defer helper.StopPhotoRetentionSweeper()
	helper.StartDailySummaryScheduler(h.Orders, mailer)
	defer helper.StopDailySummaryScheduler()

	port := config.Config("PORT")
	if port == "" {
		port = "8002"
	}
	log.Fatal(app.Listen(":" + port))
}
