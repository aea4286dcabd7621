package config

import (
	"log"
	"os"
	"strconv"
)

// Cloudinary holds the credentials for the external image host.
type Cloudinary struct {
	BaseURL   string
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

// Config holds application configuration values. It is built once at
// startup and passed by reference to every component that needs it.
type Config struct {
	Secret         string
	DatabaseDSN    string
	HTTPPort       string
	FrontendOrigin string
	LogLevel       string
	Cloudinary     Cloudinary
}

// Load reads configuration from environment variables with reasonable defaults.
func Load() *Config {
	secret := os.Getenv("TOKEN_SECRET_KEY")
	if secret == "" {
		secret = "dev_secret"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		dsn = "storefront.db"
	}

	origin := os.Getenv("FRONTEND_URL")
	if origin == "" {
		origin = "http://localhost:3000"
	}

	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "info"
	}

	cloudinaryURL := os.Getenv("CLOUDINARY_BASE_URL")
	if cloudinaryURL == "" {
		cloudinaryURL = "https://api.cloudinary.com"
	}

	folder := os.Getenv("CLOUDINARY_FOLDER")
	if folder == "" {
		folder = "products"
	}

	// Validate that port is numeric.
	if _, err := strconv.Atoi(port); err != nil {
		log.Printf("invalid HTTP_PORT value %q, defaulting to 8080", port)
		port = "8080"
	}

	return &Config{
		Secret:         secret,
		DatabaseDSN:    dsn,
		HTTPPort:       port,
		FrontendOrigin: origin,
		LogLevel:       level,
		Cloudinary: Cloudinary{
			BaseURL:   cloudinaryURL,
			CloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
			APIKey:    os.Getenv("CLOUDINARY_API_KEY"),
			APISecret: os.Getenv("CLOUDINARY_API_SECRET"),
			Folder:    folder,
		},
	}
}
