package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/cantina-escolar/cantina-api/internal/config"
	"github.com/cantina-escolar/cantina-api/internal/database"
	"github.com/cantina-escolar/cantina-api/internal/handlers"
	"github.com/go-chi/chi/v5"
)

func main() {
	// Load Configuration
	cfg := config.LoadConfig()

	// Connect to Database
	db := database.Connect(cfg)

	// Initialize Handlers
	studentHandler := handlers.NewStudentHandler(db)
	productHandler := handlers.NewProductHandler(db)
	consumptionHandler := handlers.NewConsumptionHandler(db)
	reportHandler := handlers.NewReportHandler(db)
	dashboardHandler := handlers.NewDashboardHandler(db, cfg.DashboardTopN)

	// Initialize Router
	r := chi.NewRouter()

	// Register Routes
	handlers.RegisterRoutes(r, studentHandler, productHandler, consumptionHandler, reportHandler, dashboardHandler)

	// Start Server
	log.Printf("Starting server on port %s", cfg.Port)
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), r); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
