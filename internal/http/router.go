package api

import (
	"log"
	stdhttp "net/http"

	intconfig "railbooking/internal/config"
	h "railbooking/internal/http/handlers"
	"railbooking/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// NewRouter wires the reservation workflow behind the HTTP surface.
func NewRouter(env intconfig.Env, api *h.API) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	root := r.Group("/api")
	{
		root.GET("/health", h.Health)

		auth := root.Group("/auth")
		auth.POST("/register", api.Register)
		auth.POST("/login", api.Login)

		trains := root.Group("/trains")
		trains.GET("", api.SearchTrains)
		trains.GET("/:number/seats", api.SeatMap)
		trains.GET("/:number/status", api.TrainStatus)

		res := root.Group("/reservations")
		res.POST("", api.SubmitQuery)
		res.GET("/:id", api.GetReservation)
		res.DELETE("/:id", api.Abandon)
		res.POST("/:id/train", api.SelectTrain)
		res.POST("/:id/identity", api.RequestIdentity)
		res.POST("/:id/identity/verify", api.VerifyIdentity)
		res.POST("/:id/seats", api.SelectSeats)
		res.POST("/:id/pay", api.Pay)
		res.POST("/:id/cancel", api.Cancel)
		res.GET("/:id/eticket", api.ETicket)
		res.GET("/:id/refund-receipt", api.RefundReceipt)

		authed := root.Group("/bookings")
		authed.Use(middleware.RequireAuth(api.JWTSecret))
		authed.GET("", api.MyBookings)
	}

	return r
}
