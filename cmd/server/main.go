// Package main runs the practice backend HTTP server with graceful shutdown.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	webrtc "github.com/pion/webrtc/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/calm-lily/backend/config"
	"github.com/calm-lily/backend/internal/ai"
	"github.com/calm-lily/backend/internal/auth"
	"github.com/calm-lily/backend/internal/blog"
	"github.com/calm-lily/backend/internal/bookings"
	"github.com/calm-lily/backend/internal/emaillogs"
	"github.com/calm-lily/backend/internal/events"
	"github.com/calm-lily/backend/internal/goals"
	"github.com/calm-lily/backend/internal/leads"
	"github.com/calm-lily/backend/internal/middleware"
	"github.com/calm-lily/backend/internal/notes"
	"github.com/calm-lily/backend/internal/profile"
	"github.com/calm-lily/backend/internal/resources"
	"github.com/calm-lily/backend/internal/settings"
	"github.com/calm-lily/backend/internal/testimonials"
	"github.com/calm-lily/backend/internal/video"
	"github.com/calm-lily/backend/internal/worker"
	"github.com/calm-lily/backend/pkg/database"
	"github.com/calm-lily/backend/pkg/mailer"
	"github.com/calm-lily/backend/pkg/queue"
	"github.com/calm-lily/backend/pkg/redis"
	"github.com/calm-lily/backend/pkg/response"

	"github.com/google/uuid"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()
	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
	if err != nil {
		logger.Fatal("redis", zap.Error(err))
	}
	defer rdb.Close()

	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpireHours)
	jobQueue := queue.NewQueue(rdb.Client, logger)
	mail := mailer.New(mailer.Config{
		APIKey:        cfg.Email.APIKey,
		APIURL:        cfg.Email.APIURL,
		FromAddress:   cfg.Email.FromAddress,
		FromName:      cfg.Email.FromName,
		TestMode:      cfg.Email.TestMode,
		TestRecipient: cfg.Email.TestRecipient,
	}, logger)
	settingsStore := settings.NewStore(cfg)

	iceServers := make([]webrtc.ICEServer, 0, len(cfg.WebRTC.ICEUrls))
	for _, u := range cfg.WebRTC.ICEUrls {
		if u != "" {
			iceServers = append(iceServers, webrtc.ICEServer{URLs: []string{u}})
		}
	}

	// Auth + profile
	authRepo := auth.NewRepository(pool)
	authHandler := auth.NewHandler(authRepo, jwtService, logger)
	profileHandler := profile.NewHandler(authRepo, logger)

	// Bookings
	emailLogsRepo := emaillogs.NewRepository(pool)
	bookingRepo := bookings.NewRepository(pool)
	notifier := bookings.NewNotifier(jobQueue, mail, emailLogsRepo, cfg.Email.AdminAddress, logger)
	bookingHandler := bookings.NewHandler(bookingRepo, authRepo, notifier, logger)

	// Video signalling
	videoRepo := video.NewRepository(pool)
	videoHandler := video.NewHandler(videoRepo, bookingRepo, iceServers, logger)

	// Content
	blogRepo := blog.NewRepository(pool)
	blogHandler := blog.NewHandler(blogRepo, cfg.Server.SiteURL, logger)
	eventRepo := events.NewRepository(pool)
	eventHandler := events.NewHandler(eventRepo, logger)
	resourceRepo := resources.NewRepository(pool)
	resourceHandler := resources.NewHandler(resourceRepo, logger)
	testimonialRepo := testimonials.NewRepository(pool)
	testimonialHandler := testimonials.NewHandler(testimonialRepo, logger)

	// Funnel
	leadRepo := leads.NewRepository(pool)
	leadHandler := leads.NewHandler(leadRepo, jobQueue, cfg.Email.AdminAddress, cfg.Server.SiteURL, logger)

	// Client area
	goalRepo := goals.NewRepository(pool)
	goalHandler := goals.NewHandler(goalRepo, logger)
	noteRepo := notes.NewRepository(pool)
	noteHandler := notes.NewHandler(noteRepo, logger)

	// Assistant. The client is built whenever a key is configured so the
	// runtime ai_enabled toggle works without a restart.
	var aiClient ai.Client
	if cfg.AI.APIKey != "" {
		client, err := ai.NewGeminiClient(ctx, cfg.AI.APIKey, cfg.AI.Model, cfg.AI.SystemPrompt, cfg.AI.MaxTokens)
		if err != nil {
			logger.Warn("assistant unavailable", zap.Error(err))
		} else {
			aiClient = client
			defer client.Close()
		}
	}
	aiRepo := ai.NewRepository(pool)
	aiHandler := ai.NewHandler(aiClient, ai.NewLimiter(rdb.Client), aiRepo, settingsStore, logger)

	settingsHandler := settings.NewHandler(settingsStore)
	emailLogsHandler := emaillogs.NewHandler(emailLogsRepo, jobQueue, logger)
	emailProcessor := worker.NewEmailProcessor(mail, emailLogsRepo, jobQueue, logger)

	jwtValidate := func(token string) (uuid.UUID, string, string, error) {
		claims, err := jwtService.Validate(token)
		if err != nil {
			return uuid.Nil, "", "", err
		}
		return claims.UserID, claims.Email, claims.Role, nil
	}
	requireAuth := middleware.JWT(jwtValidate)
	optionalAuth := middleware.OptionalJWT(jwtValidate)
	adminOnly := middleware.RequireRole("admin")

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.Logger(logger))

	router.GET("/health", func(c *gin.Context) { response.OK(c, gin.H{"status": "ok"}) })

	// Auth
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register/", middleware.RateLimit(10, 20, logger), authHandler.Register)
		authGroup.POST("/login/", middleware.RateLimit(10, 20, logger), authHandler.Login)
		authGroup.GET("/me/", requireAuth, authHandler.Me)
	}

	// Bookings
	router.GET("/bookings/slots/", bookingHandler.ListAvailableSlots)
	bookingGroup := router.Group("/bookings", requireAuth)
	{
		bookingGroup.POST("/create/", bookingHandler.Create)
		bookingGroup.GET("/mine/", bookingHandler.ListMine)
		bookingGroup.POST("/:id/cancel/", bookingHandler.Cancel)
	}

	// Video rooms and signalling
	videoGroup := router.Group("/video", requireAuth)
	{
		videoGroup.GET("/room/:bookingId/", videoHandler.GetRoom)
		videoGroup.POST("/:roomId/signal/send/", videoHandler.Send)
		videoGroup.GET("/:roomId/signal/poll/", videoHandler.Poll)
		videoGroup.POST("/:roomId/event/", videoHandler.LogEvent)
	}

	// Blog (public)
	blogGroup := router.Group("/blog")
	{
		blogGroup.GET("/", blogHandler.List)
		blogGroup.GET("/pinned/", blogHandler.Pinned)
		blogGroup.GET("/tags/", blogHandler.Tags)
		blogGroup.GET("/:slug/", blogHandler.Get)
		blogGroup.GET("/:slug/og/", blogHandler.Meta)
	}

	// Events (public)
	router.GET("/events/", eventHandler.List)
	router.GET("/events/:id/", eventHandler.Get)

	// Resources (public; premium checks inside)
	resourceGroup := router.Group("/resources", optionalAuth)
	{
		resourceGroup.GET("/categories/", resourceHandler.ListCategories)
		resourceGroup.GET("/", resourceHandler.List)
		resourceGroup.GET("/:slug/", resourceHandler.Get)
		resourceGroup.POST("/:slug/download/", resourceHandler.Download)
	}

	router.GET("/testimonials/", testimonialHandler.List)

	// Funnel (public, rate limited)
	router.POST("/lead-magnet/", middleware.RateLimit(5, 10, logger), leadHandler.SubmitLeadMagnet)
	router.POST("/contact/", middleware.RateLimit(5, 10, logger), leadHandler.SubmitContact)

	// Assistant
	router.GET("/ai/status/", aiHandler.Status)
	router.POST("/ai/chat/", optionalAuth, aiHandler.Chat)
	router.POST("/ai/test/", requireAuth, adminOnly, aiHandler.AdminTest)

	// Client area
	goalGroup := router.Group("/goals", requireAuth)
	{
		goalGroup.GET("/", goalHandler.ListMine)
		goalGroup.GET("/:id/", goalHandler.GetMine)
	}
	noteGroup := router.Group("/notes", requireAuth)
	{
		noteGroup.GET("/", noteHandler.List)
		noteGroup.POST("/", noteHandler.Create)
		noteGroup.GET("/:id/", noteHandler.Get)
		noteGroup.PATCH("/:id/", noteHandler.Patch)
		noteGroup.DELETE("/:id/", noteHandler.Delete)
	}
	profileGroup := router.Group("/profile", requireAuth)
	{
		profileGroup.POST("/update/", profileHandler.Update)
		profileGroup.POST("/change-password/", profileHandler.ChangePassword)
	}

	// Settings
	router.GET("/settings/public/", settingsHandler.Public)
	router.GET("/settings/", requireAuth, adminOnly, settingsHandler.Get)
	router.PATCH("/settings/update/", requireAuth, adminOnly, settingsHandler.Update)

	// Admin
	admin := router.Group("/admin", requireAuth, adminOnly)
	{
		admin.GET("/bookings/", bookingHandler.AdminListAll)
		admin.POST("/bookings/:id/confirm/", bookingHandler.AdminConfirm)
		admin.GET("/bookings/slots/", bookingHandler.AdminListSlots)
		admin.POST("/bookings/slots/create/", bookingHandler.AdminCreateSlot)
		admin.POST("/bookings/slots/bulk/", bookingHandler.AdminBulkCreateSlots)
		admin.DELETE("/bookings/slots/:id/delete/", bookingHandler.AdminDeleteSlot)

		admin.GET("/blog/", blogHandler.AdminList)
		admin.POST("/blog/create/", blogHandler.AdminCreate)
		admin.GET("/blog/:id/", blogHandler.AdminGet)
		admin.PATCH("/blog/:id/", blogHandler.AdminPatch)
		admin.POST("/blog/:id/publish/", blogHandler.AdminSetPublished)
		admin.DELETE("/blog/:id/", blogHandler.AdminDelete)

		admin.GET("/events/", eventHandler.AdminList)
		admin.POST("/events/create/", eventHandler.AdminCreate)
		admin.PATCH("/events/:id/", eventHandler.AdminPatch)
		admin.DELETE("/events/:id/", eventHandler.AdminDelete)

		admin.POST("/resources/categories/", resourceHandler.AdminCreateCategory)
		admin.DELETE("/resources/categories/:id/", resourceHandler.AdminDeleteCategory)
		admin.POST("/resources/create/", resourceHandler.AdminCreate)
		admin.PATCH("/resources/:id/", resourceHandler.AdminPatch)
		admin.DELETE("/resources/:id/", resourceHandler.AdminDelete)

		admin.GET("/testimonials/", testimonialHandler.AdminList)
		admin.POST("/testimonials/create/", testimonialHandler.AdminCreate)
		admin.DELETE("/testimonials/:id/", testimonialHandler.AdminDelete)

		admin.GET("/leads/", leadHandler.AdminListLeads)
		admin.GET("/messages/", leadHandler.AdminListMessages)
		admin.POST("/messages/:id/read/", leadHandler.AdminMarkMessageRead)

		admin.POST("/goals/create/", goalHandler.AdminCreate)
		admin.PATCH("/goals/:id/", goalHandler.AdminPatch)
		admin.DELETE("/goals/:id/", goalHandler.AdminDelete)
		admin.GET("/clients/:clientId/goals/", goalHandler.AdminListForClient)

		admin.GET("/ai/usage/", aiHandler.AdminListUsage)
		admin.GET("/video/:roomId/events/", videoHandler.AdminListEvents)

		admin.GET("/emails/", emailLogsHandler.List)
		admin.POST("/emails/:id/resend/", emailLogsHandler.Resend)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// In-process email worker; cmd/worker runs the same loop standalone.
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()
	go emailProcessor.Run(workerCtx)
	logger.Info("email worker started")

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	workerCancel()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
