package main

import (
	"net/http"
	"os"

	"lyricsync/cache"
	"lyricsync/config"
	"lyricsync/middleware"
	"lyricsync/services/resolver"

	"golang.org/x/time/rate"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
)

var conf = config.Get()

var (
	persistentCache *cache.PersistentCache
	lyricsResolver  *resolver.Resolver
)

func init() {
	log.SetFormatter(&log.JSONFormatter{})
	log.SetOutput(os.Stdout)
	log.SetLevel(log.InfoLevel) // Set to InfoLevel (change to DebugLevel for detailed logs)

	err := godotenv.Load()
	if err != nil {
		log.Warn("Error loading .env file, using environment variables")
	}
}

func main() {
	var err error
	persistentCache, err = setupCache()
	if err != nil {
		log.Fatalf("Failed to initialize cache: %v", err)
	}
	defer persistentCache.Close()

	lyricsResolver = setupResolver(persistentCache)

	router := mux.NewRouter()
	setupRoutes(router)

	port := conf.Configuration.Port
	if port == "" {
		port = "8080"
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"https://music.youtube.com", "http://localhost:3000"},
		AllowCredentials: true,
	})

	limiter := middleware.NewIPRateLimiter(rate.Limit(conf.Configuration.RateLimitPerSecond), conf.Configuration.RateLimitBurstLimit)

	// logging middleware

	loggedRouter := middleware.LoggingMiddleware(router)
	// chain cors middleware
	corsHandler := c.Handler(loggedRouter)

	//chain rate limiter
	handler := limitMiddleware(corsHandler, limiter)

	log.Infof("Server listening on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}
