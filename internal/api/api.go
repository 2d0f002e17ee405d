// internal/api/api.go
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/andresuchdata/storebrain/backend-go/internal/api/handlers"
	"github.com/andresuchdata/storebrain/backend-go/internal/api/middleware"
	"github.com/andresuchdata/storebrain/backend-go/internal/service"
	"github.com/andresuchdata/storebrain/backend-go/internal/store"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Services struct {
	Store         *store.SyncLedger
	ReportService *service.ReportService
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	if services != nil {
		if services.Store != nil {
			storeHandler := handlers.NewStoreHandler(services.Store)
			storeGroup := apiGroup.Group("/store")
			{
				storeGroup.GET("/snapshot", storeHandler.GetSnapshot)
				storeGroup.GET("/orders", storeHandler.GetOrders)
				storeGroup.GET("/sales", storeHandler.GetSales)
				storeGroup.GET("/pending", storeHandler.GetPendingDeliveries)
			}
		}

		if services.ReportService != nil {
			reportHandler := handlers.NewReportHandler(services.ReportService)
			runsGroup := apiGroup.Group("/runs")
			{
				runsGroup.GET("", reportHandler.ListRuns)
				runsGroup.GET("/:run/latest", reportHandler.GetLatest)
				runsGroup.GET("/:run/days", reportHandler.GetDays)
				runsGroup.GET("/:run/orders", reportHandler.GetOrders)
			}
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
