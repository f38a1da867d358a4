package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/fooddash/fooddash-go/config"
	"github.com/fooddash/fooddash-go/devserver"
	"github.com/fooddash/fooddash-go/router"
	"github.com/fooddash/fooddash-go/utils"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}
	utils.InitLogger()
}

// main runs the development backend the mobile client packages talk to in
// local setups and integration tests. The production platform exposes the
// same surface.
func main() {
	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	if err := devserver.AutoMigrate(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to migrate database: %v", err)
	}
	if err := devserver.SeedDemoData(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to seed demo data: %v", err)
	}

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := router.SetupRouter(db)

	port := config.Port()
	utils.InfoLogger.Infof("FoodDash dev server listening on :%s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatalf("Server error: %v", err)
	}
}
