package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"bus_logistics/internal/config"
	"bus_logistics/internal/controllers"
	"bus_logistics/internal/logger"
	"bus_logistics/internal/middleware"
	"bus_logistics/internal/repository"
	"bus_logistics/internal/routes"
	"bus_logistics/internal/services"
)

func main() {
	// Initialize structured logging to file
	logger.Setup()

	// Connect to the database
	config.InitDB()

	repo := repository.NewGorm(config.DB)

	// Ensure the role rows exist before serving traffic
	if err := services.SeedRoles(context.Background(), repo); err != nil {
		log.Fatalf("role seeding failed: %v", err)
	}

	controllers.Setup(repo)

	// Setup Gin router
	r := routes.SetupRouter()

	// Wrap with CORS
	handler := middleware.EnableCORS(r)

	addr := "0.0.0.0:" + port()
	log.Printf("🚀 Server running at :%s", port())
	log.Fatal(http.ListenAndServe(addr, handler))
}

func port() string {
	if p := os.Getenv("PORT"); p != "" {
		return p
	}
	return "8080"
}
