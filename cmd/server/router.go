package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"quantpulse/internal/config"
	"quantpulse/internal/news"
	"quantpulse/internal/prediction"
	"quantpulse/internal/quote"
)

type quoteService interface {
	Get(ctx context.Context, ticker string) (quote.Formatted, error)
}

type newsService interface {
	Report(ctx context.Context, ticker string, days int) (news.Report, error)
}

type predictionService interface {
	Predict(ctx context.Context, ticker string) (prediction.Prediction, error)
}

type server struct {
	app         config.App
	quotes      quoteService
	news        newsService
	predictions predictionService
	log         logrus.FieldLogger
}

func newRouter(cfg config.Config, quotes quoteService, reports newsService, predictions predictionService, log logrus.FieldLogger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestID(), requestLogger(log))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", requestIDHeader},
		ExposeHeaders:    []string{requestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(gzipResponses())

	s := &server{app: cfg.App, quotes: quotes, news: reports, predictions: predictions, log: log}
	router.GET("/", s.handleRoot)
	router.GET("/health", s.handleHealth)
	router.GET("/stock/:symbol", s.handleStock)
	router.GET("/news-sentiment/:symbol", s.handleNews)
	router.GET("/ai-prediction/:symbol", s.handlePrediction)
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not Found"})
	})
	return router
}
