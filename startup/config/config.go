package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port              string
	MongoURI          string
	SecretKey         string
	DefaultOwnerID    string
	ImageCacheAddress string
	HDFSUri           string
	JaegerAddress     string
	LogFile           string
	AllowedOrigin     string
}

// NewConfig loads configuration from the environment, reading a local
// .env file first when one exists. MONGO_DB_URI and SECRET_KEY have no
// sensible defaults, missing either is fatal.
func NewConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	config := &Config{
		Port:              os.Getenv("PORT"),
		MongoURI:          os.Getenv("MONGO_DB_URI"),
		SecretKey:         os.Getenv("SECRET_KEY"),
		DefaultOwnerID:    os.Getenv("DEFAULT_OWNER_ID"),
		ImageCacheAddress: os.Getenv("IMAGE_CACHE_ADDRESS"),
		HDFSUri:           os.Getenv("HDFS_URI"),
		JaegerAddress:     os.Getenv("JAEGER_ADDRESS"),
		LogFile:           os.Getenv("LOG_FILE"),
		AllowedOrigin:     os.Getenv("ALLOWED_ORIGIN"),
	}

	if config.Port == "" {
		config.Port = "8000"
	}
	if config.AllowedOrigin == "" {
		config.AllowedOrigin = "*"
	}
	if config.MongoURI == "" {
		log.Fatal("MONGO_DB_URI is required")
	}
	if config.SecretKey == "" {
		log.Fatal("SECRET_KEY is required")
	}

	return config
}
