package main

import (
	"os"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"ideaspark/internal/router"
	"ideaspark/internal/store"
	"ideaspark/internal/utils"
	"ideaspark/pkg/logger"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		logger.Log.Info("No .env file found, finding env vars from system")
	}

	// Profile-scoped persisted store
	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "./data"
	}
	kv, err := store.NewFileKV(dataDir)
	if err != nil {
		logger.Log.WithError(err).Fatal("failed to open data dir")
	}

	st := store.New(kv, store.SeedIdeas())
	// Run the reconcile once so first requests hit a healed store. A failed
	// self-heal write is survivable; requests keep working from memory.
	if _, err := st.Load(); err != nil {
		logger.Log.WithError(err).Warn("initial store reconcile could not persist")
	}

	cache, err := utils.NewCache(500)
	if err != nil {
		logger.Log.WithError(err).Fatal("failed to create cache")
	}

	// Initialize Gin
	r := gin.Default()

	// Setup Sessions
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "secret_key_change_me"
	}
	cookieStore := cookie.NewStore([]byte(secret))
	r.Use(sessions.Sessions("ideaspark_session", cookieStore))

	// Static Assets (default hero image lives here)
	r.Static("/static", "./web/static")

	router.RegisterRoutes(r, st, cache)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logger.Log.Infof("IdeaSpark server starting on :%s", port)
	if err := r.Run(":" + port); err != nil {
		logger.Log.Fatal(err)
	}
}
