package config

import (
	"log"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	AppPort    string
	AppEnv     string

	JWTSecret     string
	SessionSecret string
	SessionDir    string
	CSRFKey       string
	Timezone      string
	PublicBaseURL string

	InternalSecretKey string

	MailServer   string
	MailPort     int
	MailUseTLS   bool
	MailUsername string
	MailPassword string
	MailSender   string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBPort:     os.Getenv("DB_PORT"),
		AppPort:    getEnv("APP_PORT", "8080"),
		AppEnv:     os.Getenv("APP_ENV"),

		JWTSecret:     os.Getenv("JWT_SECRET"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		SessionDir:    os.Getenv("SESSION_DIR"),
		CSRFKey:       os.Getenv("CSRF_KEY"),
		Timezone:      getEnv("APP_TIMEZONE", "America/Sao_Paulo"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:8080"),

		InternalSecretKey: os.Getenv("INTERNAL_SECRET_KEY"),

		MailServer:   getEnv("MAIL_SERVER", "smtp.googlemail.com"),
		MailPort:     getEnvInt("MAIL_PORT", 587),
		MailUseTLS:   getEnvBool("MAIL_USE_TLS", true),
		MailUsername: os.Getenv("MAIL_USERNAME"),
		MailPassword: os.Getenv("MAIL_PASSWORD"),
		MailSender:   getEnv("MAIL_SENDER", "noreply@restaurant.com"),
	}

	if cfg.DBHost == "" {
		log.Fatal("Environment variables not loaded properly")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

// Location resolves the restaurant's local timezone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Printf("unknown timezone %q, using UTC", c.Timezone)
		return time.UTC
	}
	return loc
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
