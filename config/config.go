package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv     string
	Port       string
	DBDriver   string
	DBURL      string
	JWTSecret  string
	CORSOrigin string
	RedisAddr  string

	// Language every book and series must carry at least one title in.
	CanonicalLang     string
	EditorsEditOthers bool
	LockOverrideRole  string
}

// LoadEnv reads .env.local then .env (existing OS variables always win) and
// builds the Config. Missing required variables are fatal.
func LoadEnv() Config {
	loaded := loadDotEnv()
	if len(loaded) == 0 {
		log.Println("No .env file found. Using system environment variables.")
	}

	return Config{
		AppEnv:     getEnv("APP_ENV", "development"),
		Port:       getEnv("PORT", "8080"),
		DBDriver:   strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		DBURL:      mustEnv("DB_URL"),
		JWTSecret:  mustEnv("JWT_SECRET"),
		CORSOrigin: getEnv("CORS_ORIGIN", "*"),
		RedisAddr:  getEnv("REDIS_ADDR", ""),

		CanonicalLang:     getEnv("CANONICAL_LANG", "ja"),
		EditorsEditOthers: getBool("EDITORS_EDIT_OTHERS", true),
		LockOverrideRole:  getEnv("LOCK_OVERRIDE_ROLE", "admin"),
	}
}

func loadDotEnv() []string {
	var loaded []string
	for _, f := range []string{".env.local", ".env"} {
		if _, err := os.Stat(f); err == nil {
			loaded = append(loaded, f)
		}
	}
	if len(loaded) > 0 {
		_ = godotenv.Load(loaded...)
	}
	return loaded
}

func mustEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("Missing required environment variable: %s", key)
	}
	return v
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("Ignoring invalid boolean %s=%q", key, v)
		return fallback
	}
	return b
}
