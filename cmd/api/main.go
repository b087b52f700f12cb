package main

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"enquirycrm/internal/config"
	"enquirycrm/internal/database"
	"enquirycrm/internal/httpapi"
	"enquirycrm/internal/logger"
	"enquirycrm/internal/metrics"
	"enquirycrm/internal/notify"
	"enquirycrm/internal/services"
	"enquirycrm/internal/store"
	"enquirycrm/internal/util"
	"enquirycrm/internal/worker"

	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

const (
	shutdownTimeout   = 30 * time.Second
	readTimeout       = 15 * time.Second
	writeTimeout      = 15 * time.Second
	idleTimeout       = 60 * time.Second
	dbStatsInterval   = 15 * time.Second
	defaultSecretKey  = "change-me-in-production"
	minSecretKeyBytes = 32
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Log); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialise logger: %v\n", err)
		os.Exit(1)
	}
	log := logger.For("API")

	if err := checkSecret(cfg); err != nil {
		if !cfg.App.Debug {
			log.WithError(err).Fatal("Configuration validation failed")
		}
		log.WithError(err).Warn("Insecure secret key accepted in debug mode")
	}

	log.WithFields(logrus.Fields{
		"version": cfg.App.Version,
		"debug":   cfg.App.Debug,
		"host":    cfg.App.Host,
		"port":    cfg.App.Port,
	}).Infof("Starting %s", cfg.App.Name)

	loc, err := cfg.FollowUp.Location()
	if err != nil {
		log.WithError(err).Fatal("Invalid follow-up timezone")
	}

	if err := database.Init(cfg.Database); err != nil {
		log.WithError(err).Fatal("Failed to initialize database")
	}
	db := database.GetDB()
	defer func() {
		log.Info("Closing database connections")
		if sqlDB, err := db.DB(); err == nil {
			if closeErr := sqlDB.Close(); closeErr != nil {
				log.WithError(closeErr).Error("Error closing database")
			}
		}
	}()

	enquiries := store.NewEnquiryStore(db)
	salesPersons := store.NewSalesPersonStore(db)
	users := store.NewUserStore(db)
	tokens := util.NewTokenManager(cfg.Auth.SecretKey, cfg.Auth.TokenExpiry())
	opts := []services.Option{services.WithLocation(loc)}

	followUps := services.NewFollowUpScanner(enquiries, opts...)
	svc := httpapi.Services{
		Enquiries:    services.NewEnquiryService(enquiries, salesPersons, opts...),
		Assignment:   services.NewAssignmentService(enquiries, salesPersons, users, opts...),
		Query:        services.NewQueryService(enquiries),
		FollowUps:    followUps,
		SalesPersons: services.NewSalesPersonService(salesPersons, opts...),
		Comments:     services.NewCommentService(store.NewCommentStore(db), enquiries, opts...),
		Activities:   services.NewActivityService(store.NewActivityStore(db), opts...),
		Auth:         services.NewAuthService(users, tokens, opts...),
		Health:       services.NewHealthService(cfg.App.Name, cfg.App.Version, database.HealthCheck),
	}
	api := httpapi.New(svc, tokens, loc)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	var background sync.WaitGroup

	if cfg.FollowUp.Enabled {
		notifiers, closeNotifiers := buildNotifiers(cfg, salesPersons, loc)
		defer closeNotifiers()
		w := worker.NewFollowUpWorker(followUps, cfg.FollowUp.Interval, cfg.FollowUp.UpcomingDays, notifiers...)
		background.Add(1)
		go func() {
			defer background.Done()
			w.Start(ctx)
		}()
	}

	background.Add(1)
	go func() {
		defer background.Done()
		reportDBStats(ctx)
	}()

	rootHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			promhttp.Handler().ServeHTTP(w, r)
			return
		}
		api.ServeHTTP(w, r)
	})

	// Security -> CORS -> Logging -> Prometheus -> Handler
	handler := setupSecurityHeaders(setupCORS(requestLogging(metrics.PrometheusMiddleware(rootHandler)), cfg), cfg)

	addr := fmt.Sprintf("%s:%s", cfg.App.Host, cfg.App.Port)
	httpLog := logger.For("HTTP").WriterLevel(logrus.ErrorLevel)
	defer httpLog.Close()
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
		ErrorLog:     stdlog.New(httpLog, "", 0),
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Infof("Server listening on %s", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("server error: %w", err)
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		log.WithError(err).Error("Server failed")
	case sig := <-shutdown:
		log.WithField("signal", sig.String()).Info("Starting graceful shutdown")
	}

	stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Error during graceful shutdown")
		if errors.Is(err, context.DeadlineExceeded) {
			log.Warn("Shutdown timeout exceeded, forcing close")
			_ = httpServer.Close()
		}
	}
	background.Wait()
	log.Info("Server shutdown complete")
}

// checkSecret rejects the placeholder key and keys too short for HS256.
func checkSecret(cfg *config.Config) error {
	if cfg.Auth.SecretKey == defaultSecretKey {
		return fmt.Errorf("SECRET_KEY must be changed from its default value")
	}
	if len(cfg.Auth.SecretKey) < minSecretKeyBytes {
		return fmt.Errorf("SECRET_KEY must be at least %d characters", minSecretKeyBytes)
	}
	return nil
}

// buildNotifiers assembles the enabled delivery channels. The log channel is
// always on; a queue that cannot be reached is skipped.
func buildNotifiers(cfg *config.Config, recipients notify.Recipients, loc *time.Location) ([]notify.Notifier, func()) {
	log := logger.For("FOLLOW_UP")
	notifiers := []notify.Notifier{notify.LogNotifier{}}
	closeAll := func() {}

	if cfg.Email.Enabled {
		notifiers = append(notifiers, notify.NewEmailNotifier(cfg.Email, recipients, loc))
	}
	if cfg.Queue.Enabled {
		q, err := notify.DialQueue(cfg.Queue)
		if err != nil {
			log.WithError(err).Error("Queue notifications disabled")
		} else {
			notifiers = append(notifiers, q)
			closeAll = func() {
				if err := q.Close(); err != nil {
					log.WithError(err).Warn("Failed to close queue connection")
				}
			}
		}
	}

	names := make([]string, 0, len(notifiers))
	for _, n := range notifiers {
		names = append(names, n.Name())
	}
	log.WithField("channels", names).Info("Follow-up notifications configured")
	return notifiers, closeAll
}

func reportDBStats(ctx context.Context) {
	ticker := time.NewTicker(dbStatsInterval)
	defer ticker.Stop()
	for {
		stats, err := database.GetStats()
		if err == nil {
			metrics.UpdateDBConnections(stats.InUse, stats.Idle)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// setupSecurityHeaders adds security headers to responses
func setupSecurityHeaders(handler http.Handler, cfg *config.Config) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Permissions-Policy", "geolocation=(), microphone=(), camera=()")
		w.Header().Set("Server", "")

		// HSTS only when served over TLS outside debug
		if !cfg.App.Debug && r.TLS != nil {
			w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		handler.ServeHTTP(w, r)
	})
}

func setupCORS(handler http.Handler, cfg *config.Config) http.Handler {
	allowAll := len(cfg.CORS.AllowedOrigins) == 0 || cfg.CORS.AllowedOrigins[0] == "*"
	return cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		ExposedHeaders:   []string{"Content-Type", "X-Request-Id"},
		AllowCredentials: !allowAll,
		MaxAge:           cfg.CORS.MaxAge,
	})(handler)
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// requestLogging logs every request except health checks.
func requestLogging(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" || r.URL.Path == "/metrics" {
			handler.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		wrapped := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		handler.ServeHTTP(wrapped, r)

		entry := logger.For("HTTP").WithFields(logrus.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"remote_addr": r.RemoteAddr,
			"status":      wrapped.statusCode,
			"duration":    time.Since(start).String(),
		})
		switch {
		case wrapped.statusCode >= 500:
			entry.Error("Request completed")
		case wrapped.statusCode >= 400:
			entry.Warn("Request completed")
		default:
			entry.Info("Request completed")
		}
	})
}
