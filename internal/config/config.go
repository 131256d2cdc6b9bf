package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port       string
	DBDSN      string
	MediaDir   string
	UploadsDir string
	LogFile    string
	JWTSecret  string
}

func Load() Config {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Printf("[config] no .env file, using process environment")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "bathstore.db"
	} // sqlite file in project root
	media := os.Getenv("MEDIA_DIR")
	if media == "" {
		media = "./web/media"
	}
	uploads := os.Getenv("UPLOADS_DIR")
	if uploads == "" {
		uploads = "./uploads" // payment slips live outside the public media tree
	}
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./bathstore.log"
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-only-secret"
		log.Printf("[config] JWT_SECRET not set, using insecure dev default")
	}

	cfg := Config{Port: port, DBDSN: dsn, MediaDir: media, UploadsDir: uploads, LogFile: logFile, JWTSecret: secret}
	log.Printf("[config] PORT=%s DB_DSN=%s MEDIA_DIR=%s UPLOADS_DIR=%s LOG_FILE=%s", cfg.Port, cfg.DBDSN, cfg.MediaDir, cfg.UploadsDir, cfg.LogFile)
	return cfg
}
