package database

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// KeyDB speaks the Redis protocol, so the go-redis client is used as-is.
// The client may be nil when KEYDB_HOST is not set: cache reads then miss and
// OTP endpoints report the store as unavailable.
var KeyDB *redis.Client

func ConnectKeyDB() {
	host := os.Getenv("KEYDB_HOST")
	if host == "" {
		log.Println("⚠️ KEYDB_HOST not set, running without cache (OTP disabled)")
		return
	}
	port := os.Getenv("KEYDB_PORT")
	if port == "" {
		port = "6379"
	}

	KeyDB = redis.NewClient(&redis.Options{
		Addr:         host + ":" + port,
		Password:     os.Getenv("KEYDB_PASSWORD"),
		DB:           0,
		MaxRetries:   3,
		PoolSize:     10,
		MinIdleConns: 5,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := KeyDB.Ping(ctx).Err(); err != nil {
		log.Printf("❌ KeyDB ping failed: %v (continuing without cache)", err)
		KeyDB = nil
		return
	}
	log.Println("✅ KeyDB connected.")
}

func CloseKeyDB() {
	if KeyDB != nil {
		_ = KeyDB.Close()
	}
}
