package main

import (
	"context"
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/go-redis/redis/v8"

	"github.com/enosgb/admarket-back/config"
	"github.com/enosgb/admarket-back/database"
	"github.com/enosgb/admarket-back/routes"
	"github.com/enosgb/admarket-back/services"
	"github.com/enosgb/admarket-back/utils"
)

func main() {
	cfg := config.LoadConfig()

	if err := utils.InitLogger(); err != nil {
		log.Printf("failed to init file loggers: %v", err)
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	log.Println("Connected to PostgreSQL")

	utils.SetDB(db)

	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}
	log.Println("Migration complete")

	if err := database.SeedAdmin(db); err != nil {
		log.Fatalf("failed to seed admin user: %v", err)
	}
	log.Println("Admin user seeded (if needed)")

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	utils.SetRedis(rdb)
	utils.SetCache(utils.NewRedisCache(rdb))
	log.Println("Connected to Redis")

	services.StartAdExpiryCron(db)
	log.Println("Ad expiry cron started")

	r := routes.SetupRouter()

	log.Printf("Server is running on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
