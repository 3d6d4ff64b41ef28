package main

import (
	"log"

	"github.com/warungin/portal-api/config"
	"github.com/warungin/portal-api/controllers"
	"github.com/warungin/portal-api/routes"
	"github.com/warungin/portal-api/utils"
)

func main() {
	// Initialize logger
	if err := utils.InitLogger(); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	// Load environment variables
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.LogError("Error loading config: %v", err)
		log.Fatal("Error loading config:", err)
	}

	// Initialize database
	config.InitDB()

	// Seed the first super admin if none exists
	if err := controllers.CreateSampleAdmin(); err != nil {
		utils.LogError("Failed to seed admin account: %v", err)
		log.Fatal("Failed to seed admin account:", err)
	}

	// Set up router
	router := routes.SetupRouter()

	utils.LogInfo("Server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		utils.LogError("Error starting server: %v", err)
		log.Fatal("Error starting server:", err)
	}
}
