package main

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"quantpulse/internal/news"
	"quantpulse/internal/quote"
)

var symbolPattern = regexp.MustCompile(`^[A-Z0-9.]+$`)

func (s *server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":     "Welcome to QuantPulse India API",
		"description": "AI-powered stock market analytics for NSE",
		"version":     s.app.Version,
		"health":      "/health",
	})
}

func (s *server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"service":   s.app.Name,
		"version":   s.app.Version,
		"timestamp": time.Now().Format(quote.TimestampLayout),
	})
}

func (s *server) handleStock(c *gin.Context) {
	symbol, ok := symbolParam(c)
	if !ok {
		return
	}
	q, err := s.quotes.Get(c.Request.Context(), symbol)
	if err != nil {
		writeError(c, err, "Failed to fetch stock data")
		return
	}
	c.JSON(http.StatusOK, q)
}

func (s *server) handleNews(c *gin.Context) {
	symbol, ok := symbolParam(c)
	if !ok {
		return
	}
	days, err := strconv.Atoi(c.DefaultQuery("days", strconv.Itoa(news.DefaultDays)))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, detail("Invalid query", "days must be an integer"))
		return
	}
	report, err := s.news.Report(c.Request.Context(), symbol, days)
	if err != nil {
		if errors.Is(err, news.ErrNotConfigured) {
			c.JSON(http.StatusServiceUnavailable, detail("News unavailable", "The news provider is not configured on this server."))
			return
		}
		writeError(c, err, "Failed to fetch news")
		return
	}
	c.JSON(http.StatusOK, report)
}

func (s *server) handlePrediction(c *gin.Context) {
	symbol, ok := symbolParam(c)
	if !ok {
		return
	}
	p, err := s.predictions.Predict(c.Request.Context(), symbol)
	if err != nil {
		writeError(c, err, "Failed to generate prediction")
		return
	}
	c.JSON(http.StatusOK, p)
}

// symbolParam validates the :symbol path parameter and writes a 422 when it
// does not match.
func symbolParam(c *gin.Context) (string, bool) {
	symbol := c.Param("symbol")
	if !symbolPattern.MatchString(symbol) {
		c.JSON(http.StatusUnprocessableEntity, detail(
			"Invalid symbol",
			fmt.Sprintf("Symbol '%s' must contain only uppercase letters, digits and dots.", symbol),
		))
		return "", false
	}
	return symbol, true
}

// writeError translates core errors into client responses. Technical
// details were logged by the service and are never written here.
func writeError(c *gin.Context, err error, title string) {
	var nf *quote.NotFoundError
	if errors.As(err, &nf) {
		body := detail("Stock not found", nf.Message())
		body["detail"].(gin.H)["hint"] = nf.Hint
		c.JSON(http.StatusNotFound, body)
		return
	}
	msg := "An unexpected error occurred. Please try again later."
	var pe *quote.ProviderError
	if errors.As(err, &pe) {
		msg = pe.Message()
	}
	c.JSON(http.StatusInternalServerError, detail(title, msg))
}

func detail(title, message string) gin.H {
	return gin.H{"detail": gin.H{"error": title, "message": message}}
}
