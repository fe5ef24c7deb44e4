package main

import (
	"log"
	"net/http"

	"citypulse-be/config"
	"citypulse-be/controllers"
	"citypulse-be/routes"
	"citypulse-be/store"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	db := config.ConnectDB()
	if db == nil {
		log.Fatal("Failed to connect to MongoDB")
	}
	log.Println("MongoDB connection established successfully!")

	issueStore, err := store.NewMongo(db)
	if err != nil {
		log.Fatalf("Failed to prepare issue store: %v", err)
	}
	controllers.Store = issueStore

	config.ConnectRedis()

	r := gin.Default()

	routes.AuthRoutes(r)
	routes.IssueRoutes(r)
	routes.AdminRoutes(r)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
