package bootstrap

import (
	"database/sql"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	httpapi "github.com/GoSim-25-26J-441/progress-tracker/internal/api/http"
	"github.com/GoSim-25-26J-441/progress-tracker/internal/api/http/middleware"
	"github.com/GoSim-25-26J-441/progress-tracker/internal/api/http/routes"
	"github.com/GoSim-25-26J-441/progress-tracker/internal/projects/cache"
	"github.com/GoSim-25-26J-441/progress-tracker/internal/projects/domain"
	projectshttp "github.com/GoSim-25-26J-441/progress-tracker/internal/projects/http"
	"github.com/GoSim-25-26J-441/progress-tracker/internal/projects/repository"
	"github.com/GoSim-25-26J-441/progress-tracker/internal/projects/service"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	Logger      *zap.Logger

	DB *sql.DB
	// Pool, when set, is used for health checks instead of DB.
	Pool *pgxpool.Pool
	// Redis enables the read-through cache when non-nil.
	Redis    *redis.Client
	CacheTTL time.Duration

	Policy         domain.ProgressPolicy
	AllowedOrigins []string
	RateLimitRPS   float64
	RateLimitBurst int
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware(dep.Logger))
	r.Use(middleware.MetricsMiddleware())
	r.Use(cors.New(corsConfig(dep.AllowedOrigins)))

	var projectStore service.ProjectStore = repository.NewProjectRepository(dep.DB)
	var progressStore service.ProgressStore = repository.NewProgressRepository(dep.DB)

	var cachePinger httpapi.Pinger
	if dep.Redis != nil {
		c := cache.New(dep.Redis, dep.CacheTTL)
		projectStore = cache.NewProjectStore(projectStore, c)
		progressStore = cache.NewProgressStore(progressStore, c)
		cachePinger = c
	}

	var dbPinger httpapi.Pinger = httpapi.PingFunc(dep.DB.PingContext)
	if dep.Pool != nil {
		dbPinger = dep.Pool
	}

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dbPinger, cachePinger)
	healthHandler.RegisterRoutes(r)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	var apiMiddleware []gin.HandlerFunc
	if dep.RateLimitRPS > 0 {
		apiMiddleware = append(apiMiddleware, middleware.RateLimitMiddleware(dep.RateLimitRPS, dep.RateLimitBurst))
	}

	projectsHandler := projectshttp.New(
		service.NewProjectService(projectStore),
		service.NewProgressService(projectStore, progressStore, dep.Policy),
	)
	routes.RegisterV1(r, routes.V1Deps{
		Projects:   projectsHandler,
		Middleware: apiMiddleware,
	})

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
