package main

import (
	"fmt"
	"log"

	"github.com/chandanamca2024-dotco/canteenapp-sub001/availability"
	"github.com/chandanamca2024-dotco/canteenapp-sub001/configs"
	"github.com/chandanamca2024-dotco/canteenapp-sub001/routes"
	"github.com/chandanamca2024-dotco/canteenapp-sub001/ws"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := configs.LoadConfig()

	// DB
	configs.ConnectionDB(cfg.DBSource)
	configs.SetupDatabase()

	if err := configs.SeedAdmin(); err != nil {
		log.Fatalf("seed admin failed: %v", err)
	}
	if err := configs.SeedLookups(); err != nil {
		log.Fatalf("seed lookups failed: %v", err)
	}
	if err := configs.SeedMenu(); err != nil {
		log.Fatalf("seed menu failed: %v", err)
	}

	// Realtime change feed
	hub := ws.NewEventHub()
	go hub.Run()

	// Push a canteen_status event whenever the open/closed state flips so
	// clients swap the banner without polling.
	window := availability.Window{OpensAt: cfg.OpenTime, ClosesAt: cfg.CloseTime}
	var lastStatus availability.Status
	ticker := window.Tick(func(st availability.Status, _ string) {
		if st != lastStatus {
			lastStatus = st
			hub.Notify("canteen_status")
		}
	})
	defer ticker.Stop()

	// HTTP
	r := gin.Default()
	routes.RegisterRoutes(r, cfg, hub)

	addr := ":" + cfg.Port
	fmt.Println("DineDesk listening on", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
