package main

import (
	"log"
	"strconv"
	"time"

	"tutorhub/config"
	"tutorhub/controllers"
	"tutorhub/db"
	"tutorhub/internal/events"
	"tutorhub/internal/health"
	"tutorhub/middlewares"
	"tutorhub/ranking"
	"tutorhub/routes"
	"tutorhub/services"
	"tutorhub/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load the configuration from the specified YAML file
	cfg, err := config.LoadConfig("./config/config.yml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to MongoDB using the URI from the configuration
	store, err := db.ConnectMongoDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	log.Println("Connected to MongoDB")

	// Redis backs the fallback cache and the event stream. The service runs
	// without it, it just loses degraded-mode reads and UI refresh events.
	if err := db.InitRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB); err != nil {
		log.Printf("Redis unavailable, running without fallback cache: %v", err)
	}

	healthState := health.NewState(health.DefaultFailureThreshold)
	cache := db.NewCache(db.RedisClient)
	bus := events.NewBus(db.RedisClient)

	hub := websocket.NewHub()
	if consumer := events.NewStreamConsumer(db.RedisClient, hub); consumer != nil {
		if err := consumer.Start(); err != nil {
			log.Printf("Failed to start event consumer: %v", err)
		}
	}

	notifier := services.NewHubNotifier(hub)
	reviewService := services.NewReviewService(store, cache, bus, notifier, healthState)

	rankingDefaults := rankingConfig(cfg)
	rng := ranking.NewLockedShuffler(time.Now().UnixNano())
	answerService := services.NewAnswerService(ranking.New(rng), rankingDefaults)

	healthController := controllers.NewHealthController(healthState)

	router := setupRouter()
	routes.SetupRoutes(router, reviewService, answerService, healthController, hub)

	port := strconv.Itoa(cfg.Server.Port)
	log.Printf("Server starting on port %s", port)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRouter() *gin.Engine {
	router := gin.Default()

	router.SetTrustedProxies([]string{"127.0.0.1", "localhost"})
	router.Use(middlewares.RequestLogger())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))
	router.OPTIONS("/*path", func(c *gin.Context) { c.Status(204) })

	return router
}

// rankingConfig builds the ranking defaults from config, falling back to the
// built-in defaults for unset values.
func rankingConfig(cfg *config.Config) ranking.Config {
	defaults := ranking.DefaultConfig()
	if cfg.Ranking.HideVotesWindowHours > 0 {
		defaults.HideVotesWindowHours = cfg.Ranking.HideVotesWindowHours
	}
	if cfg.Ranking.ShuffleBoundaryCount > 0 {
		defaults.ShuffleBoundaryCount = cfg.Ranking.ShuffleBoundaryCount
	}
	if cfg.Ranking.NewContributorQuota > 0 {
		defaults.NewContributorQuota = cfg.Ranking.NewContributorQuota
	}
	if cfg.Ranking.EstablishedContributorQuota > 0 {
		defaults.EstablishedContributorQuota = cfg.Ranking.EstablishedContributorQuota
	}
	return defaults
}
