package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/trygraphite/platter-sub000/configs"
	"github.com/trygraphite/platter-sub000/middlewares"
	"github.com/trygraphite/platter-sub000/routes"
	"github.com/trygraphite/platter-sub000/ws"
)

func main() {
	cfg := configs.LoadConfig()

	// DB
	configs.ConnectionDB(cfg.DBSource)
	db := configs.DB()
	configs.SetupDatabase()

	if err := configs.SeedAdmin(cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatalf("seed admin failed: %v", err)
	}
	if err := configs.SeedLookups(); err != nil {
		log.Fatalf("seed lookups failed: %v", err)
	}

	// one broker per process; every publisher gets this handle
	hub := ws.NewHub()

	// HTTP
	r := gin.Default()
	r.Use(middlewares.CORSMiddleware())
	routes.RegisterRoutes(r, db, cfg, hub)

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Println("server running at", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
