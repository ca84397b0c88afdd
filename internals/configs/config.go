package configs

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var (
	JWTSecret        string
	JWTRefreshSecret string
	GoogleClientID   string
	FernetKey        string
	MidtransKey      string
	SendgridKey      string
	TextbeltKey      string
	TextbeltURL      string
	DefaultFromEmail string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ no .env file found, using system ENV")
		} else {
			log.Println("✅ .env file loaded")
		}
	} else {
		log.Println("🚀 running on Railway, using system ENV")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	JWTRefreshSecret = GetEnv("JWT_REFRESH_SECRET")
	GoogleClientID = GetEnv("GOOGLE_CLIENT_ID")
	FernetKey = GetEnv("FERNET_KEY")
	MidtransKey = GetEnv("MIDTRANS_SERVER_KEY")
	SendgridKey = GetEnv("SENDGRID_API_KEY")
	TextbeltKey = GetEnv("TEXTBELT_KEY")
	TextbeltURL = GetEnv("TEXTBELT_URL", "https://textbelt.com/text")
	DefaultFromEmail = GetEnv("DEFAULT_FROM_EMAIL", "no-reply@madrasahku.app")

	warnIfEmpty("JWT_SECRET", JWTSecret)
	warnIfEmpty("JWT_REFRESH_SECRET", JWTRefreshSecret)
	warnIfEmpty("FERNET_KEY", FernetKey)
}

func warnIfEmpty(key, val string) {
	if val == "" {
		log.Printf("❌ %s is not set!", key)
	} else {
		log.Printf("✅ %s loaded.", key)
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}
