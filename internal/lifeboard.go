/*
 *    Copyright 2025 blockarchitech
 *
 *    Licensed under the Apache License, Version 2.0 (the "License");
 *    you may not use this file except in compliance with the License.
 *    You may obtain a copy of the License at
 *
 *        http://www.apache.org/licenses/LICENSE-2.0
 *
 *    Unless required by applicable law or agreed to in writing, software
 *    distributed under the License is distributed on an "AS IS" BASIS,
 *    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *    See the License for the specific language governing permissions and
 *    limitations under the License.
 */

package lifeboard

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.20.0"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"blockarchitech.com/lifeboard/internal/config"
	"blockarchitech.com/lifeboard/internal/handler"
	"blockarchitech.com/lifeboard/internal/repository"
	"blockarchitech.com/lifeboard/internal/service"
	"blockarchitech.com/lifeboard/internal/storage"
	"blockarchitech.com/lifeboard/internal/view"
)

const serviceName = "lifeboard"

type App struct {
	logger *zap.Logger
	cfg    *config.Config
	server *http.Server
}

func NewApp() *App {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	return &App{
		logger: logger,
		cfg:    cfg,
	}
}

func (a *App) Config() *config.Config {
	return a.cfg
}

// Open connects the configured document store and builds the module services
// over it. The returned func releases the store.
func (a *App) Open(ctx context.Context) (*service.Services, func() error, error) {
	store, err := a.initStore(ctx)
	if err != nil {
		return nil, nil, err
	}
	repos := repository.New(store, a.logger)
	services := service.New(repos, otel.Tracer(serviceName), a.logger, a.cfg.Location)
	return services, repos.Close, nil
}

func (a *App) Run() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var tp *sdktrace.TracerProvider
	if a.cfg.OtelExporterEndpoint != "" {
		tp = a.initTracerProvider(ctx)
		defer func() {
			flushCtx, cancelFlush := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancelFlush()
			if err := tp.Shutdown(flushCtx); err != nil {
				a.logger.Error("Error shutting down tracer provider", zap.Error(err))
			}
		}()
		otel.SetTracerProvider(tp)
		otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))
	}

	services, closeStore, err := a.Open(ctx)
	if err != nil {
		a.logger.Fatal("Failed to initialize document store", zap.Error(err))
	}
	defer closeStore()

	a.server, err = a.newServer(ctx, services, tp)
	if err != nil {
		a.logger.Fatal("Failed to build HTTP server", zap.Error(err))
	}

	go func() {
		a.logger.Info("Server starting",
			zap.String("address", a.server.Addr),
			zap.String("storage", a.cfg.StorageType),
			zap.String("timezone", a.cfg.Location.String()),
		)
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.logger.Fatal("Could not listen on address", zap.String("address", a.server.Addr), zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	a.logger.Info("Server shutting down...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelShutdown()

	// Request contexts derive from ctx, so this ends open event streams.
	cancel()
	if err := a.server.Shutdown(ctxShutdown); err != nil {
		a.logger.Error("Server shutdown failed", zap.Error(err))
		return
	}
	a.logger.Info("Server exited properly")
}

// newServer builds the HTTP server over services. Every request context is
// derived from ctx.
func (a *App) newServer(ctx context.Context, services *service.Services, tp *sdktrace.TracerProvider) (*http.Server, error) {
	views, err := view.NewHTMLTemplateManager(a.logger)
	if err != nil {
		return nil, fmt.Errorf("load HTML templates: %w", err)
	}

	handlers := handler.NewHttpHandlers(a.logger, a.cfg, services, views, otel.Tracer(serviceName))

	router := a.setupRouter(handlers, tp)

	// No WriteTimeout: event streams stay open for as long as the client listens.
	return &http.Server{
		Addr:              fmt.Sprintf(":%s", a.cfg.Port),
		Handler:           router,
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}, nil
}

func (a *App) initTracerProvider(ctx context.Context) *sdktrace.TracerProvider {
	traceExporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpoint(a.cfg.OtelExporterEndpoint), otlptracehttp.WithInsecure())
	if err != nil {
		a.logger.Fatal("Failed to create OTLP HTTP trace exporter", zap.Error(err))
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(serviceName),
			semconv.ServiceVersionKey.String(a.cfg.Version),
		),
	)
	if err != nil {
		a.logger.Fatal("Failed to create OpenTelemetry resource", zap.Error(err))
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(res),
	)
	a.logger.Info("OTLP HTTP trace exporter initialized", zap.String("endpoint", a.cfg.OtelExporterEndpoint))
	return tp
}

func (a *App) initStore(ctx context.Context) (storage.DocumentStore, error) {
	switch a.cfg.StorageType {
	case config.StorageFirestore:
		if a.cfg.GCPProjectID == "" {
			return nil, fmt.Errorf("firestore storage selected but GCP_PROJECT_ID is not set")
		}
		var opts []option.ClientOption
		if a.cfg.FirestoreCredentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(a.cfg.FirestoreCredentialsFile))
		}
		if host := os.Getenv("FIRESTORE_EMULATOR_HOST"); host != "" {
			a.logger.Info("Using Firestore emulator", zap.String("host", host))
		}
		return storage.NewFirestoreStore(ctx, a.cfg.GCPProjectID, a.cfg.FirestoreDatabaseID, a.logger, opts...)
	case config.StorageDisk:
		return storage.NewDiskStore(a.cfg.DataDir, a.logger)
	case config.StorageInMemory:
		a.logger.Warn("using inmemory document store. Data is lost on exit.")
		return storage.NewInMemoryStore(a.logger), nil
	default:
		return nil, fmt.Errorf("invalid storage type: %s", a.cfg.StorageType)
	}
}

func (a *App) setupRouter(handlers *handler.HttpHandlers, tp *sdktrace.TracerProvider) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	if tp != nil {
		router.Use(otelgin.Middleware("lifeboard-http", otelgin.WithTracerProvider(tp)))
	}

	handlers.RegisterRoutes(router)

	router.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	router.GET("/robots.txt", func(c *gin.Context) {
		c.Header("Content-Type", "text/plain")
		c.String(http.StatusOK, "User-agent: *\nDisallow: /\n")
	})

	return router
}
