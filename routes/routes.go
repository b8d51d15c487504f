package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"agendly/handlers"
)

// RegisterRoutes wires every endpoint onto the router.
func RegisterRoutes(r *gin.Engine, sched *handlers.SchedulingHandler, mgmt *handlers.ManagementHandler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", handlers.HealthCheck)

	scheduling := r.Group("/api/scheduling")
	{
		scheduling.GET("/slots", sched.GetAvailableSlots)
		scheduling.POST("", sched.CreateScheduling)
		scheduling.GET("", sched.ListSchedulings)
		scheduling.DELETE("/:schedulingID", sched.CancelScheduling)
	}

	management := r.Group("/api/management")
	{
		management.PUT("/availability", mgmt.SetAvailability)
		management.PUT("/config", mgmt.SetConfig)
		management.POST("/workers", mgmt.CreateWorker)
		management.POST("/appointments", mgmt.CreateAppointment)
	}
}
