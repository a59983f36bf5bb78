package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"enrollhub/internal/audit"
	auditsink "enrollhub/internal/audit/sink"
	auditpg "enrollhub/internal/audit/store/postgres"
	auditworker "enrollhub/internal/audit/worker"
	dochandler "enrollhub/internal/document/handler"
	docmetrics "enrollhub/internal/document/metrics"
	docservice "enrollhub/internal/document/service"
	docstore "enrollhub/internal/document/store"
	enrollhandler "enrollhub/internal/enrollment/handler"
	enrollservice "enrollhub/internal/enrollment/service"
	payhandler "enrollhub/internal/payment/handler"
	paymetrics "enrollhub/internal/payment/metrics"
	payservice "enrollhub/internal/payment/service"
	paystore "enrollhub/internal/payment/store"
	"enrollhub/internal/platform/config"
	"enrollhub/internal/platform/database"
	"enrollhub/internal/platform/httpserver"
	"enrollhub/internal/platform/logger"
	"enrollhub/internal/platform/metrics"
	platformredis "enrollhub/internal/platform/redis"
	progcache "enrollhub/internal/program/cache"
	proghandler "enrollhub/internal/program/handler"
	progservice "enrollhub/internal/program/service"
	progstore "enrollhub/internal/program/store"
	reghandler "enrollhub/internal/registration/handler"
	regmetrics "enrollhub/internal/registration/metrics"
	regservice "enrollhub/internal/registration/service"
	regstore "enrollhub/internal/registration/store"
	schedhandler "enrollhub/internal/schedule/handler"
	schedservice "enrollhub/internal/schedule/service"
	schedstore "enrollhub/internal/schedule/store"
	httptransport "enrollhub/internal/transport/http"
	userhandler "enrollhub/internal/user/handler"
	userservice "enrollhub/internal/user/service"
	userstore "enrollhub/internal/user/store"
)

// main wires dependencies and owns the process lifecycle. Business logic
// lives in the internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	redisClient, err := platformredis.New(ctx, cfg.RedisAddr)
	if err != nil {
		log.Error("redis connection failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	auditStore := auditpg.New(db)
	auditPublisher := audit.NewPublisher(auditStore, log)

	httpMetrics := metrics.New()

	userSvc := userservice.NewService(userstore.NewPostgres(db), log,
		userservice.WithAudit(auditPublisher),
	)

	var catalogCache *progcache.Catalog
	if redisClient != nil {
		catalogCache = progcache.NewCatalog(redisClient.Client, cfg.CatalogCacheTTL, log)
	}
	programSvc := progservice.NewService(progstore.NewPostgres(db), log,
		progservice.WithCatalogCache(catalogCache),
		progservice.WithAudit(auditPublisher),
	)

	scheduleSvc := schedservice.NewService(schedstore.NewPostgres(db), programSvc, log,
		schedservice.WithAudit(auditPublisher),
	)

	registrationStore := regstore.NewPostgres(db)
	registrationSvc := regservice.NewService(registrationStore, userSvc, programSvc, log,
		regservice.WithMetrics(regmetrics.New()),
		regservice.WithAudit(auditPublisher),
	)

	paymentStore := paystore.NewPostgres(db)
	paymentSvc := payservice.NewService(paymentStore, registrationSvc, log,
		payservice.WithMetrics(paymetrics.New()),
		payservice.WithAudit(auditPublisher),
	)

	documentStore := docstore.NewPostgres(db)
	documentSvc := docservice.NewService(documentStore, registrationSvc, log,
		docservice.WithMetrics(docmetrics.New()),
		docservice.WithAudit(auditPublisher),
	)

	enrollmentSvc := enrollservice.NewService(registrationStore, paymentStore, documentStore, log)

	router := httptransport.NewRouter(
		httptransport.Config{Logger: log, Metrics: httpMetrics, DB: db},
		userhandler.New(userSvc, log),
		proghandler.New(programSvc, log),
		schedhandler.New(scheduleSvc, log),
		reghandler.New(registrationSvc, log),
		payhandler.New(paymentSvc, log),
		dochandler.New(documentSvc, log),
		enrollhandler.New(enrollmentSvc, log),
	)

	srv := httpserver.New(cfg.Addr, router)

	group, groupCtx := errgroup.WithContext(ctx)

	if len(cfg.KafkaBrokers) > 0 {
		sink, err := auditsink.NewKafka(cfg.KafkaBrokers, cfg.AuditTopic)
		if err != nil {
			log.Error("kafka connection failed", "error", err)
			os.Exit(1)
		}
		defer sink.Close()
		worker := auditworker.New(auditStore, sink, log)
		group.Go(func() error {
			if err := worker.Run(groupCtx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	group.Go(func() error {
		log.Info("starting enrollhub", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
