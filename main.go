package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"agromopomulo.id/bankpohon/config"
	"agromopomulo.id/bankpohon/handlers"
	"agromopomulo.id/bankpohon/logger"
	"agromopomulo.id/bankpohon/middleware"
	"agromopomulo.id/bankpohon/routes"
	"agromopomulo.id/bankpohon/services"
	"agromopomulo.id/bankpohon/storage"
)

var (
	Version   = "dev"
	BuildTime = ""
)

func main() {

	versionFlag := flag.Bool("version", false, "Print version info and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("Version:   %s\n", Version)
		fmt.Printf("BuildTime: %s\n", BuildTime)
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.App().WithError(err).Fatal("invalid configuration")
	}
	if err := logger.Init(&cfg.Log); err != nil {
		logger.App().WithError(err).Fatal("could not initialise logging")
	}
	log := logger.App()

	if err := config.Connect(cfg); err != nil {
		log.WithError(err).Fatal("could not connect to database")
	}

	// Run migrations
	if err := config.Migrations(config.DB); err != nil {
		log.WithError(err).Fatal("could not run migrations")
	}

	// Seeding skips rows that already exist
	if err := config.RunAllSeeding(config.DB, cfg); err != nil {
		log.WithError(err).Warn("seeding encountered issues")
	}
	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		_, created, err := services.NewUserService(config.DB).EnsureAdmin(context.Background(), cfg.AdminEmail, cfg.AdminPassword)
		if err != nil {
			log.WithError(err).Warn("could not ensure admin account")
		} else if created {
			log.WithField("email", cfg.AdminEmail).Info("admin account created")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	uploader, err := storage.New(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("could not initialise storage")
	}
	middleware.ConfigureJWT(cfg.JWTSecret, cfg.JWTTTL())

	api := handlers.NewAPI(config.DB, uploader, handlers.Options{
		MaxUploadBytes: cfg.MaxUploadBytes(),
		Location:       cfg.Location(),
	})
	var uploadDir string
	if cfg.StorageDriver == "local" {
		uploadDir = cfg.UploadDir
	}
	handler := middleware.CORS(cfg.CORSOrigins)(routes.RegisterRoutes(api, uploadDir))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("port", cfg.Port).WithField("version", Version).Info("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
	if c, ok := uploader.(interface{ Close() error }); ok {
		c.Close()
	}
}
