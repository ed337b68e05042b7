package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"gymdesk/internal/auth"
	"gymdesk/internal/booking"
	"gymdesk/internal/cache"
	"gymdesk/internal/config"
	"gymdesk/internal/events"
	"gymdesk/internal/membership"
	"gymdesk/internal/room"
	"gymdesk/internal/subscription"
	"gymdesk/internal/training"
	"gymdesk/internal/user"
)

type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	db         *sqlx.DB
	config     *config.Config

	Memberships membership.Service
}

func New(db *sqlx.DB, cfg *config.Config, scheduleCache *cache.Client, publisher *events.Publisher) *Server {
	router := gin.Default()
	router.Use(corsMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(RateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst))

	userRepo := user.NewRepository(db)
	roomRepo := room.NewRepository(db)
	subscriptionRepo := subscription.NewRepository(db)
	trainingRepo := training.NewRepository(db)
	bookingRepo := booking.NewRepository(db)
	membershipRepo := membership.NewRepository(db)

	userService := user.NewService(userRepo, cfg.JWTSecret)
	trainingService := training.NewService(trainingRepo, userRepo, roomRepo, time.Now)
	bookingService := booking.NewService(bookingRepo, trainingRepo, publisher)
	membershipService := membership.NewService(membershipRepo, subscriptionRepo, publisher, time.Now)

	userHandler := user.NewHandler(userService)
	roomHandler := room.NewHandler(roomRepo)
	subscriptionHandler := subscription.NewHandler(subscriptionRepo)
	trainingHandler := training.NewHandler(trainingService, scheduleCache)
	bookingHandler := booking.NewHandler(bookingService, scheduleCache)
	membershipHandler := membership.NewHandler(membershipService)

	public := router.Group("/auth")
	{
		public.POST("/register", userHandler.Register)
		public.POST("/login", userHandler.Login)
	}

	router.GET("/rooms", roomHandler.ListRooms)
	router.GET("/subscriptions", subscriptionHandler.ListSubscriptions)
	router.GET("/trainings", trainingHandler.ListTrainings)

	authMiddleware := auth.Middleware(cfg.JWTSecret)
	clientOnly := auth.RequireRole(auth.RoleClient)
	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", userHandler.GetMe)
		// Booking and subscription requests are client actions; trainers
		// and admins hold other surfaces.
		protected.POST("/bookings", clientOnly, bookingHandler.CreateBooking)
		protected.DELETE("/bookings", clientOnly, bookingHandler.CancelBooking)
		protected.GET("/bookings", bookingHandler.ListMyBookings)
		protected.POST("/memberships/request", clientOnly, membershipHandler.SubmitRequest)
		protected.GET("/memberships/my", membershipHandler.ListMyMemberships)
	}

	trainer := router.Group("/trainings")
	trainer.Use(authMiddleware, auth.RequireRole(auth.RoleTrainer, auth.RoleAdmin))
	{
		trainer.POST("", trainingHandler.CreateTraining)
		trainer.PATCH("/:trainingID", trainingHandler.UpdateTraining)
		trainer.DELETE("/:trainingID", trainingHandler.DeleteTraining)
		trainer.GET("/my", trainingHandler.ListMyTrainings)
	}

	admin := router.Group("/admin")
	admin.Use(authMiddleware, auth.RequireRole(auth.RoleAdmin))
	{
		admin.GET("/users", userHandler.ListUsers)
		admin.POST("/users", userHandler.CreateUser)
		admin.POST("/rooms", roomHandler.CreateRoom)
		admin.PATCH("/rooms/:roomID", roomHandler.UpdateRoom)
		admin.DELETE("/rooms/:roomID", roomHandler.DeleteRoom)
		admin.POST("/subscriptions", subscriptionHandler.CreateSubscription)
		admin.PATCH("/subscriptions/:subID", subscriptionHandler.UpdateSubscription)
		admin.DELETE("/subscriptions/:subID", subscriptionHandler.DeleteSubscription)
		admin.GET("/requests", membershipHandler.ListPendingRequests)
		admin.PATCH("/requests/:requestID", membershipHandler.ResolveRequest)
		admin.POST("/memberships/sweep", membershipHandler.SweepMemberships)
	}

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	SetupSwagger(router)

	return &Server{
		router:      router,
		db:          db,
		config:      cfg,
		Memberships: membershipService,
	}
}

func (s *Server) Start(port string) error {
	s.httpServer = &http.Server{
		Addr:    ":" + port,
		Handler: s.router,
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
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
