package config

import (
	"log"
	"os"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"p9e.in/inspectly/pkg/cache"
	"p9e.in/inspectly/pkg/logger"
)

var (
	DB    *gorm.DB
	Cache cache.Cache
	Log   *zap.Logger
)

func Connect() {
	Log = logger.FromEnv()

	dsn := os.Getenv("DB_DSN")
	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: os.Getenv("REDIS_PASSWORD"),
		})
		Cache = cache.NewRedis(client, os.Getenv("CACHE_PREFIX"))
		Log.Info("query cache backed by redis", zap.String("addr", addr))
	} else {
		Cache = cache.NewMemory()
		Log.Info("query cache running in-process; set REDIS_ADDR to share it")
	}

	if err := Migrations(DB); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	SeedAdminProfile()
}
