package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"quantpulse/internal/config"
	"quantpulse/internal/httpx"
	"quantpulse/internal/logger"
	"quantpulse/internal/news"
	"quantpulse/internal/prediction"
	"quantpulse/internal/provider/newsapi"
	"quantpulse/internal/provider/yahoo"
	"quantpulse/internal/quote"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	gin.SetMode(gin.ReleaseMode)
	httpClient := httpx.New(time.Duration(cfg.Server.RequestTimeoutSec) * time.Second)

	if cfg.Yahoo.Crumb == "" {
		log.Warn("YAHOO_CRUMB not set; quote requests may be rejected as unauthorized")
	}
	yahooClient := yahoo.NewClient(
		yahoo.WithHTTPClient(httpClient),
		yahoo.WithBaseURL(cfg.Yahoo.BaseURL),
		yahoo.WithCrumb(cfg.Yahoo.Crumb, cfg.Yahoo.Cookie),
	)
	quotes := quote.NewService(yahooClient, log)
	predictions := prediction.NewService(yahooClient, log)

	var searcher news.Searcher
	if cfg.NewsAPI.APIKey != "" {
		searcher = newsapi.NewClient(cfg.NewsAPI.APIKey,
			newsapi.WithHTTPClient(httpClient),
			newsapi.WithBaseURL(cfg.NewsAPI.BaseURL),
		)
	} else {
		log.Warn("NEWSAPI_KEY not set; /news-sentiment will return 503")
	}
	reports := news.NewService(searcher, quotes, log)

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           newRouter(cfg, quotes, reports, predictions, log),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		log.WithFields(logrus.Fields{"addr": srv.Addr, "version": cfg.App.Version}).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	})

	// graceful shutdown
	group.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
	log.Info("server stopped")
}
