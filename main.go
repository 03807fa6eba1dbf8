package main

import (
	"context"
	"net/http"
	"time"

	"mocktest-service/internal/config"
	"mocktest-service/internal/db"
	"mocktest-service/internal/event"
	"mocktest-service/internal/handlers"
	"mocktest-service/internal/repository"
	"mocktest-service/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("no .env file found, using system env")
	}
	cfg := config.Load()
	if cfg.MongoURI == "" {
		logrus.Fatal("MONGO_URI is required")
	}
	if err := db.InitMongo(cfg.MongoURI); err != nil {
		logrus.WithError(err).Fatal("failed to connect to MongoDB")
	}

	// RabbitMQ event publisher
	var publisher *event.EventPublisher
	if cfg.RabbitURI != "" && cfg.RabbitExchange != "" {
		var err error
		publisher, err = event.NewEventPublisher(cfg.RabbitURI, cfg.RabbitExchange)
		if err != nil {
			logrus.WithError(err).Fatal("failed to connect to RabbitMQ")
		}
		defer publisher.Close()
	} else {
		logrus.Info("RabbitMQ not configured, events will not be published")
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Content-Length", "Accept-Encoding", "Authorization", "accept", "origin", "Cache-Control", "X-Requested-With", "X-User-ID", "X-User-Name"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	database := db.Client.Database(cfg.MongoDatabase)

	testRepo := repository.NewTestRepository(database)
	subRepo := repository.NewSubmissionRepository(database)
	feedbackRepo := repository.NewFeedbackRepository(database)
	ensureIndexes(testRepo, subRepo, feedbackRepo)

	testService := service.NewTestService(testRepo)
	testHandler := handlers.NewTestHandler(testService)

	subService := service.NewSubmissionService(testRepo, subRepo)
	subHandler := handlers.NewSubmissionHandler(subService)

	resultService := service.NewResultService(testRepo, subRepo)
	resultHandler := handlers.NewResultHandler(resultService)

	feedbackService := service.NewFeedbackService(testRepo, feedbackRepo)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackService)

	// Public routes - anyone holding a link token or test id
	public := r.Group("/public/mocktest/test")
	{
		public.GET("/link/:token", testHandler.GetTestByLink)
		public.GET("/:id/leaderboard", resultHandler.Leaderboard)
		public.GET("/:id/leaderboard/export", resultHandler.ExportLeaderboard)
		public.GET("/:id/feedback/summary", feedbackHandler.Summary)
	}

	// Protected routes - caller identity arrives as gateway headers
	protected := r.Group("/protected/mocktest/test")
	protected.Use(requireUser())
	{
		protected.POST("", func(c *gin.Context) {
			testHandler.CreateTest(c)
			publish(publisher, c, "mocktest.test.created", nil)
		})
		protected.GET("/mine", testHandler.MyTests)
		protected.GET("/registered", testHandler.RegisteredTests)
		protected.PUT("/:id", func(c *gin.Context) {
			testHandler.UpdateTest(c)
			publish(publisher, c, "mocktest.test.updated", gin.H{"test_id": c.Param("id")})
		})
		protected.DELETE("/:id", func(c *gin.Context) {
			testHandler.DeleteTest(c)
			publish(publisher, c, "mocktest.test.deleted", gin.H{"test_id": c.Param("id")})
		})

		protected.POST("/link/:token/register", func(c *gin.Context) {
			testHandler.Register(c)
			publish(publisher, c, "mocktest.test.registered", gin.H{"token": c.Param("token")})
		})
		protected.POST("/link/:token/unregister", func(c *gin.Context) {
			testHandler.Unregister(c)
			publish(publisher, c, "mocktest.test.unregistered", gin.H{"token": c.Param("token")})
		})

		protected.POST("/:id/submit", func(c *gin.Context) {
			subHandler.Submit(c)
			publish(publisher, c, "mocktest.submission.received", gin.H{"test_id": c.Param("id")})
		})
		protected.GET("/:id/result", resultHandler.MyResult)

		protected.POST("/:id/feedback", func(c *gin.Context) {
			feedbackHandler.SubmitFeedback(c)
			publish(publisher, c, "mocktest.feedback.received", gin.H{"test_id": c.Param("id")})
		})
	}

	logrus.WithField("port", cfg.Port).Info("mocktest service listening")
	if err := r.Run(":" + cfg.Port); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}

func requireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("X-User-ID") == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
				"code":  "MISSING_USER_ID",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

func publish(p *event.EventPublisher, c *gin.Context, eventType string, payload gin.H) {
	if p == nil || c.Writer.Status() >= http.StatusBadRequest {
		return
	}
	if payload == nil {
		payload = gin.H{}
	}
	payload["user_id"] = c.GetHeader("X-User-ID")
	payload["timestamp"] = time.Now().UTC()
	if err := p.Publish(eventType, payload); err != nil {
		logrus.WithError(err).WithField("event", eventType).Warn("event publish failed")
	}
}

type indexEnsurer interface {
	EnsureIndexes(ctx context.Context) error
}

func ensureIndexes(repos ...indexEnsurer) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	for _, repo := range repos {
		if err := repo.EnsureIndexes(ctx); err != nil {
			logrus.WithError(err).Fatal("failed to create indexes")
		}
	}
}
