package main

import (
	"fmt"
	"log"

	"github.com/SYAAGalib/money-flow/internal/config"
	"github.com/SYAAGalib/money-flow/internal/database"
	"github.com/SYAAGalib/money-flow/internal/router"

	"github.com/joho/godotenv"
)

func main() {
	// optional .env for local overrides
	_ = godotenv.Load()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	db, err := database.Init(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	r := router.SetupRouter(cfg, db)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	log.Printf("server listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("run server: %v", err)
	}
}
