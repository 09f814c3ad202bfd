// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"loan-eligibility-workers/internal/applicants"
	"loan-eligibility-workers/internal/common/aws"
	"loan-eligibility-workers/internal/common/camunda"
	"loan-eligibility-workers/internal/common/config"
	"loan-eligibility-workers/internal/common/database"
	"loan-eligibility-workers/internal/common/logger"
	"loan-eligibility-workers/internal/common/observability"
	"loan-eligibility-workers/pkg/registry"

	ee "loan-eligibility-workers/internal/workers/eligibility/evaluate-eligibility"
	ner "loan-eligibility-workers/internal/workers/eligibility/notify-eligibility-result"
	re "loan-eligibility-workers/internal/workers/eligibility/reevaluate-eligibility"
)

const (
	serviceName     = "loan-eligibility-workers"
	readyTimeout    = 3 * time.Second
	shutdownTimeout = 30 * time.Second
)

func main() {
	bootLog, err := logger.New(logger.Options{Level: "info", Format: "console", Service: serviceName})
	if err != nil {
		panic(err)
	}

	cfg, err := config.Load()
	if err != nil {
		bootLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog, err := logger.New(logger.Options{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		OutputPaths: []string{cfg.Logging.Output},
		Service:     serviceName,
	})
	if err != nil {
		bootLog.Fatal("logger init failed", zap.Error(err))
	}
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	log.Info("Starting worker manager", map[string]interface{}{
		"environment": cfg.App.Environment,
		"version":     cfg.App.Version,
	})

	obs, err := observability.New(serviceName, prometheus.DefaultRegisterer)
	if err != nil {
		zapLog.Fatal("observability init failed", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Zeebe ---
	zeebe, err := camunda.Connect(ctx, &camunda.ClientConfig{
		GatewayAddress:         cfg.Camunda.BrokerAddress,
		UsePlaintextConnection: cfg.Camunda.UsePlaintext,
		ConnectionTimeout:      config.GetDuration(cfg.Camunda.RequestTimeout),
	}, log)
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}

	// --- PostgreSQL ---
	var pg *database.PostgresClient
	err = camunda.Retry(ctx, camunda.DefaultRetryConfig, "PostgreSQL connection", log, func(ctx context.Context) error {
		client, err := database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		if err := client.Ping(ctx); err != nil {
			client.Close()
			return err
		}
		pg = client
		return nil
	})
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	log.Info("PostgreSQL connected", nil)

	// --- Redis ---
	redis := database.NewRedis(cfg.Database.Redis)
	err = camunda.Retry(ctx, camunda.DefaultRetryConfig, "Redis connection", log, redis.Ping)
	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	log.Info("Redis connected", nil)

	finder := applicants.NewCachedFinder(
		applicants.NewRepository(pg.DB()),
		redis.Client(),
		cfg.Eligibility.ProfileCacheTTL,
		log,
	)

	// --- Workers ---
	activities := registry.Default()
	if err := activities.Validate(); err != nil {
		zapLog.Fatal("activity registry invalid", zap.Error(err))
	}
	group := camunda.NewWorkerGroup(zeebe.Zeebe(), log)
	for _, reg := range registrations(ctx, cfg, finder, log) {
		if _, ok := activities.Find(reg.TaskType); !ok {
			log.Warn("Worker has no registry entry", map[string]interface{}{"taskType": reg.TaskType})
		}
		group.Start(camunda.Registration{
			TaskType: reg.TaskType,
			Handler:  obs.Instrument(reg.TaskType, reg.Handler),
		}, config.GetWorkerConfig(cfg, reg.TaskType))
	}
	log.Info("Workers registered", map[string]interface{}{"running": group.Running()})

	// --- HTTP ---
	server := &http.Server{
		Addr:              cfg.Server.Address(),
		Handler:           newMux(activities, zeebe, pg, redis),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info("HTTP server listening", map[string]interface{}{"address": server.Addr})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server failed", map[string]interface{}{"error": err.Error()})
		}
	}()

	// --- Graceful Shutdown ---
	<-ctx.Done()
	log.Info("Shutdown signal received, stopping workers...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Error stopping HTTP server", map[string]interface{}{"error": err.Error()})
	}
	group.Close()
	if err := zeebe.Close(); err != nil {
		log.Error("Error closing Zeebe client", map[string]interface{}{"error": err.Error()})
	}
	if err := redis.Close(); err != nil {
		log.Error("Error closing Redis client", map[string]interface{}{"error": err.Error()})
	}
	if err := pg.Close(); err != nil {
		log.Error("Error closing PostgreSQL client", map[string]interface{}{"error": err.Error()})
	}
	if err := obs.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down observability", map[string]interface{}{"error": err.Error()})
	}

	log.Info("Worker manager stopped", nil)
}

func registrations(ctx context.Context, cfg *config.Config, finder applicants.Finder, log logger.Logger) []camunda.Registration {
	locale, err := language.Parse(cfg.Eligibility.Locale)
	if err != nil {
		locale = language.MustParse("en-IN")
	}

	evaluateWorker := config.GetWorkerConfig(cfg, ee.TaskType)
	evaluate := ee.NewHandler(&ee.Config{
		Timeout:      config.GetDuration(evaluateWorker.Timeout),
		Locale:       locale,
		AllowSamples: cfg.Eligibility.AllowSamples,
		MaxRetries:   evaluateWorker.MaxRetries,
	}, finder, log)

	reevaluateWorker := config.GetWorkerConfig(cfg, re.TaskType)
	reevaluate := re.NewHandler(&re.Config{
		Timeout:    config.GetDuration(reevaluateWorker.Timeout),
		MaxRetries: reevaluateWorker.MaxRetries,
	}, log)

	notifyWorker := config.GetWorkerConfig(cfg, ner.TaskType)
	notifyCfg := &ner.Config{
		EmailEnabled: cfg.Notifications.Email.Enabled,
		SMSEnabled:   cfg.Notifications.SMS.Enabled,
		FromEmail:    cfg.Notifications.Email.FromEmail,
		SenderID:     cfg.Notifications.SMS.SenderID,
		Locale:       locale,
		Timeout:      config.GetDuration(notifyWorker.Timeout),
		MaxRetries:   notifyWorker.MaxRetries,
	}
	var (
		sesClient ner.SESService
		snsClient ner.SNSService
	)
	if notifyCfg.EmailEnabled || notifyCfg.SMSEnabled {
		clients, err := aws.NewClients(ctx, cfg.Notifications.AWS.Region)
		if err != nil {
			log.Error("AWS clients unavailable, notifications disabled", map[string]interface{}{"error": err.Error()})
			notifyCfg.EmailEnabled, notifyCfg.SMSEnabled = false, false
		} else {
			sesClient, snsClient = clients.SES, clients.SNS
		}
	}
	notify := ner.NewHandler(notifyCfg, finder, sesClient, snsClient, log)

	return []camunda.Registration{
		{TaskType: ee.TaskType, Handler: evaluate.Handle},
		{TaskType: re.TaskType, Handler: reevaluate.Handle},
		{TaskType: ner.TaskType, Handler: notify.Handle},
	}
}

func newMux(activities *registry.ActivityRegistry, pingers ...database.Pinger) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{"status": "healthy"})
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		checks, ready := database.CheckAll(r.Context(), readyTimeout, pingers...)
		status, code := "ready", http.StatusOK
		if !ready {
			status, code = "not_ready", http.StatusServiceUnavailable
		}
		writeJSON(w, code, map[string]interface{}{"status": status, "checks": checks})
	})
	mux.HandleFunc("/activities", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, activities)
	})
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func writeJSON(w http.ResponseWriter, code int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}
