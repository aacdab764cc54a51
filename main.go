package main

import (
	"log"
	"time"

	"renomapro/config"
	"renomapro/database"
	routes "renomapro/internal/app/http"
	"renomapro/internal/billing"
	"renomapro/internal/mail"
	"renomapro/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(cfg.DBURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.SeedAdmin(db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatal(err)
	}

	st := store.New(db)

	var billingClient billing.Client
	if client, err := billing.NewStripeClient(cfg.StripeSecretKey, cfg.StripePriceID); err == nil {
		billingClient = client
	} else {
		log.Println("Stripe not configured; checkout endpoint disabled.")
	}

	var mailer mail.Mailer
	if m := mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom, cfg.SMTPPassword, cfg.NotifyEmail); m != nil {
		mailer = m
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, routes.Deps{
		Cfg:     cfg,
		DB:      db,
		Store:   st,
		Billing: billingClient,
		Mailer:  mailer,
	})

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
