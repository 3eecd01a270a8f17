package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"studiobook/internal/booking"
	"studiobook/internal/class"
	"studiobook/internal/client"
	"studiobook/internal/clock"
	"studiobook/internal/config"
	"studiobook/internal/email"
	"studiobook/internal/instructor"
)

type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *sqlx.DB
	config *config.Config
}

func New(db *sqlx.DB, cfg *config.Config, emailService *email.Service, clk clock.Clock) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(RateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst))

	instructorRepo := instructor.NewRepository(db)
	classRepo := class.NewRepository(db)
	clientRepo := client.NewRepository(db)
	bookingRepo := booking.NewRepository(db, clientRepo)

	instructorService := instructor.NewService(instructorRepo, cfg.StoreTimeout)
	classService := class.NewService(classRepo, instructorRepo, clk, cfg.StoreTimeout)

	// email.Service may be nil when SMTP is not configured; the booking
	// service skips confirmations in that case.
	var notifier booking.Notifier
	if emailService != nil {
		notifier = emailService
	}
	bookingService := booking.NewService(bookingRepo, classRepo, clientRepo, notifier, clk, cfg.StoreTimeout)

	instructorHandler := instructor.NewHandler(instructorService)
	classHandler := class.NewHandler(classService)
	bookingHandler := booking.NewHandler(bookingService)

	router.GET("/classes", classHandler.ListClasses)
	router.POST("/classes", classHandler.CreateClass)
	router.GET("/bookings", bookingHandler.ListBookings)
	router.POST("/bookings", bookingHandler.CreateBooking)
	router.POST("/instructors", instructorHandler.CreateInstructor)

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	SetupSwagger(router)

	return &Server{
		router: router,
		http: &http.Server{
			Addr:         ":" + cfg.Port,
			Handler:      router,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		db:     db,
		config: cfg,
	}
}

func (s *Server) Start() error {
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// Router exposes the gin engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
