// Package server assembles the HTTP API from the domain handlers.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"beachbox/internal/config"
	"beachbox/internal/database"
	"beachbox/internal/domain/booking"
	"beachbox/internal/domain/client"
	"beachbox/internal/domain/court"
	"beachbox/internal/domain/report"
	"beachbox/internal/domain/unit"
	"beachbox/internal/middleware"
	"beachbox/internal/pkg/response"
)

// NewRouter wires repositories, services and handlers over db.
func NewRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := middleware.NewMetrics(reg)

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.AccessLog(),
		middleware.ErrorLogger(),
		middleware.CORS(cfg.CORSOrigins),
		metrics.Handler(),
	)

	unitRepo := unit.NewRepository(db)
	clientRepo := client.NewRepository(db)
	courtRepo := court.NewRepository(db)

	unitHandler := unit.NewHandler(unit.NewService(unitRepo))
	clientHandler := client.NewHandler(client.NewService(clientRepo))
	courtHandler := court.NewHandler(court.NewService(courtRepo, unitRepo))
	bookingHandler := booking.NewHandler(booking.NewService(
		booking.NewBookingRepository(db),
		clientRepo,
		courtRepo,
	))
	reportHandler := report.NewHandler(report.NewService(
		report.NewRepository(db),
		report.Hours{Opening: cfg.OpeningHour, Closing: cfg.ClosingHour},
		cfg.MaxReportDays,
	))

	root := r.Group("")
	clientHandler.RegisterRoutes(root)
	unitHandler.RegisterRoutes(root)
	courtHandler.RegisterRoutes(root)
	bookingHandler.RegisterRoutes(root)
	reportHandler.RegisterRoutes(root)

	r.GET("/health", healthHandler(db))
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, "Rota não encontrada")
	})
	r.NoMethod(func(c *gin.Context) {
		response.Error(c, http.StatusMethodNotAllowed, "Método não permitido")
	})
	r.HandleMethodNotAllowed = true

	return r
}

func healthHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := database.Ping(ctx, db); err != nil {
			_ = c.Error(err)
			response.Error(c, http.StatusServiceUnavailable, "Banco de dados indisponível")
			return
		}
		response.Success(c, http.StatusOK, "ok", gin.H{"database": "up"})
	}
}
