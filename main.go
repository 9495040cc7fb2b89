package main

import (
	"context"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/Taosit/Lingpal-server/game"
	"github.com/Taosit/Lingpal-server/migrations"
	"github.com/Taosit/Lingpal-server/shared/configs"
	"github.com/Taosit/Lingpal-server/shared/logger"
	"github.com/Taosit/Lingpal-server/storage"
	"github.com/Taosit/Lingpal-server/words"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

const defaultPort = "5050"

func CreateServer(allowedOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/health", func(ctx *gin.Context) { ctx.String(http.StatusOK, "healthy") })

	r.Use(func(ctx *gin.Context) {
		origin := ctx.Request.Header.Get("Origin")
		if origin == "" || slices.Contains(allowedOrigins, origin) {
			ctx.Next()
			return
		}
		ctx.String(http.StatusForbidden, "forbidden origin")
		ctx.Abort()
	})

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowCredentials: true,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{
			"Content-Type",
			"Upgrade",
			"Connection",
			"Sec-WebSocket-Key",
			"Sec-WebSocket-Version",
			"Sec-WebSocket-Extensions",
			"Sec-WebSocket-Protocol",
		},
	}))

	return r
}

func main() {
	godotenv.Load()
	configs.Load()

	if configs.Envs.GIN_MODE == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	allowedOrigins := []string{"http://localhost:3000"}
	if configs.Envs.ALLOWED_ORIGINS != "" {
		allowedOrigins = strings.Split(configs.Envs.ALLOWED_ORIGINS, ",")
	}

	// The stats store is optional: without a database the coordinator
	// still runs, it just stops persisting lifetime stats.
	var stats game.StatsRecorder
	if configs.Envs.POSTGRES_URL != "" {
		if err := migrations.Migrate(configs.Envs.POSTGRES_URL); err != nil {
			logger.Fatalf("migrations failed: %v", err)
		}
		repo, err := storage.NewPostgresStatsRepo(context.Background(), configs.Envs.POSTGRES_URL)
		if err != nil {
			logger.Fatalf("could not connect to postgres: %v", err)
		}
		defer repo.Close()
		stats = repo
	} else {
		logger.Warning("POSTGRES_URL not set, lifetime stats will not be recorded")
	}

	hub := game.NewHub()
	service := game.NewService(hub, words.NewSupplier(), stats)
	handler := game.NewGameHandler(service, hub, allowedOrigins)

	pingTicker := time.NewTicker(30 * time.Second)
	defer pingTicker.Stop()
	go func() {
		for range pingTicker.C {
			hub.PingAll()
		}
	}()

	r := CreateServer(allowedOrigins)
	game.RegisterRoutes(r, handler)

	port := configs.Envs.PORT
	if port == "" {
		port = defaultPort
	}
	logger.Infof("lingpal server listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		logger.Fatalf("could not start server: %v", err)
	}
}
