package main

import (
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"jobsite/internal/httpserver"
	"jobsite/internal/logger"
	"jobsite/internal/models"
)

func main() {
	_ = godotenv.Load()
	lg := logger.New()
	defer lg.Sync()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		lg.Fatalw("DATABASE_URL is empty")
	}
	if os.Getenv("TOKEN_SECRET") == "" {
		lg.Fatalw("TOKEN_SECRET is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		lg.Fatalw("db connect failed", "error", err)
	}
	if err := db.AutoMigrate(
		&models.User{}, &models.Client{}, &models.Job{},
		&models.Estimate{}, &models.Order{}, &models.Trade{}, &models.Service{},
		&models.Material{}, &models.Labor{}, &models.JobFile{}, &models.Report{},
	); err != nil {
		lg.Fatalw("automigrate failed", "error", err)
	}

	router := httpserver.NewRouter(db, lg)
	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}
	lg.Infow("listening", "port", port)
	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatal(err)
	}
}
