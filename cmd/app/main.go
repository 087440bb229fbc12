package main

import (
	"context"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"go.uber.org/fx"

	"pointage/cmd/fx/accuracyfx"
	"pointage/cmd/fx/attendancefx"
	"pointage/cmd/fx/dbfx"
	"pointage/cmd/fx/eventsfx"
	"pointage/cmd/fx/metricsfx"
	"pointage/cmd/fx/sitesfx"
	"pointage/internal/api/controllers"
	"pointage/pkg/metrics"
	"pointage/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("no .env file found")
	}
	logrus.SetFormatter(&logrus.JSONFormatter{})

	app := fx.New(
		dbfx.Module,
		metricsfx.Module,
		eventsfx.Module,
		sitesfx.Module,
		accuracyfx.Module,
		attendancefx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := os.Getenv("PORT")
				if port == "" {
					port = "8080"
				}
				logrus.WithField("port", port).Info("starting HTTP server")
				if err := engine.Run(":" + port); err != nil {
					logrus.WithError(err).Fatal("failed to start server")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logrus.Info("stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	attendanceController *controllers.AttendanceController,
	metricsRegistry *metrics.Registry) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, attendanceController, metricsRegistry)

	return r
}

func RegisterRoutes(r *gin.Engine,
	attendanceController *controllers.AttendanceController,
	metricsRegistry *metrics.Registry) {

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", metricsRegistry.Handler())

	attendances := r.Group("/attendances")
	attendances.Use(middleware.JWTAuthMiddleware())
	attendances.POST("/office/checkin", attendanceController.OfficeCheckinHandler)
	attendances.POST("/mission/:missionId/checkin", attendanceController.MissionCheckinHandler)
	attendances.GET("/today", attendanceController.TodayHandler)
	attendances.GET("", attendanceController.ListHandler)
}
