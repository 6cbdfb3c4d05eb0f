package config

import (
	"os"
	"sync"
	"time"
)

// AppConfig holds global application configuration
var AppConfig *Config
var once sync.Once

type Config struct {
	AppName string
	Port    string
	Env     string
	Debug   bool

	// REST backend serving categories/products/carts/orders/users
	BaseAPIURL string

	// Image host (imgbb compatible)
	ImageUploadURL string
	ImageUploadKey string

	// Authentication provider web API key
	AuthAPIKey string

	SessionTTL   time.Duration
	CookieSecure bool
}

// NewConfig reads configuration from the environment.
func NewConfig() *Config {
	ttl, err := time.ParseDuration(GetEnv("SESSION_TTL", "168h"))
	if err != nil || ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &Config{
		AppName:        GetEnv("APP_NAME", "grocery.GO"),
		Port:           GetEnv("PORT", "8080"),
		Env:            os.Getenv("APP_ENV"),
		Debug:          os.Getenv("DEBUG") == "true",
		BaseAPIURL:     GetEnv("BASE_API_URL", "http://localhost:5000"),
		ImageUploadURL: GetEnv("IMAGE_UPLOAD_URL", "https://api.imgbb.com/1/upload"),
		ImageUploadKey: os.Getenv("IMAGE_UPLOAD_KEY"),
		AuthAPIKey:     os.Getenv("AUTH_API_KEY"),
		SessionTTL:     ttl,
		CookieSecure:   os.Getenv("APP_ENV") == "production",
	}
}

// LoadAppConfig initializes the global AppConfig variable
func LoadAppConfig() {
	once.Do(func() {
		AppConfig = NewConfig()
	})
}
