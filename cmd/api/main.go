// Command api runs the storefront HTTP service.
package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"

	"github.com/storelab/storefront/internal/cart"
	"github.com/storelab/storefront/internal/catalog"
	"github.com/storelab/storefront/internal/checkout"
	"github.com/storelab/storefront/internal/config"
	"github.com/storelab/storefront/internal/httpapi"
	"github.com/storelab/storefront/internal/orders"
	"github.com/storelab/storefront/internal/postgres"
	"github.com/storelab/storefront/internal/users"
	"github.com/storelab/storefront/pkg/webhook"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	tp, err := initTracer(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			log.Printf("Error shutting down tracer: %v", err)
		}
	}()

	mp, err := initMetrics(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize metrics: %v", err)
	}
	defer func() {
		if err := mp.Shutdown(context.Background()); err != nil {
			log.Printf("Error shutting down meter: %v", err)
		}
	}()

	dbPool, err := postgres.Connect(context.Background(), cfg.DSN(), cfg.DatabaseMaxConns)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer dbPool.Close()

	var notifier webhook.Notifier = webhook.NopNotifier{}
	if cfg.OrderWebhookURL != "" {
		notifier = webhook.NewRestyNotifier(cfg.OrderWebhookURL)
	}

	catalogRepo := catalog.NewRepository(dbPool)
	cartRepo := cart.NewRepository(dbPool)
	ordersRepo := orders.NewRepository(dbPool)
	usersRepo := users.NewRepository(dbPool)

	catalogUseCase := catalog.NewUseCase(catalogRepo)
	cartUseCase := cart.NewUseCase(cartRepo, catalogRepo)
	ordersUseCase := orders.NewUseCase(ordersRepo, notifier)
	usersUseCase := users.NewUseCase(usersRepo)
	checkoutUseCase := checkout.NewUseCase(
		checkout.NewRepository(dbPool),
		cartRepo,
		ordersRepo,
		tp.Tracer(cfg.ServiceName),
	)

	catalogHandler := catalog.NewHandler(catalogUseCase)
	cartHandler := cart.NewHandler(cartUseCase)
	ordersHandler := orders.NewHandler(ordersUseCase)
	usersHandler := users.NewHandler(usersUseCase)
	checkoutHandler := checkout.NewHandler(checkoutUseCase)

	r := gin.Default()
	r.Use(otelgin.Middleware(cfg.ServiceName))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": cfg.ServiceName})
	})

	products := r.Group("/products")
	{
		products.GET("", catalogHandler.List)
		products.GET("/:id", catalogHandler.Get)
		products.POST("", httpapi.RequireAdmin(), catalogHandler.Create)
		products.PATCH("/:id", httpapi.RequireAdmin(), catalogHandler.Update)
		products.DELETE("/:id", httpapi.RequireAdmin(), catalogHandler.Delete)
	}

	cartRoutes := r.Group("/cart", httpapi.RequireUser())
	{
		cartRoutes.POST("", cartHandler.AddItem)
		cartRoutes.GET("", cartHandler.List)
		cartRoutes.PATCH("/:id", cartHandler.UpdateItem)
		cartRoutes.DELETE("/:id", cartHandler.RemoveItem)
		cartRoutes.DELETE("", cartHandler.Clear)
	}

	orderRoutes := r.Group("/orders", httpapi.RequireUser())
	{
		orderRoutes.POST("", checkoutHandler.Create)
		orderRoutes.GET("", ordersHandler.List)
		orderRoutes.GET("/all", httpapi.RequireAdmin(), ordersHandler.ListAll)
		orderRoutes.GET("/:id", ordersHandler.Get)
		orderRoutes.PATCH("/:id/status", httpapi.RequireAdmin(), ordersHandler.UpdateStatus)
	}

	userRoutes := r.Group("/users")
	{
		userRoutes.POST("", usersHandler.Create)
		userRoutes.GET("", httpapi.RequireAdmin(), usersHandler.List)
		userRoutes.GET("/:id", usersHandler.Get)
		userRoutes.PATCH("/:id", httpapi.RequireAdmin(), usersHandler.Update)
		userRoutes.DELETE("/:id", httpapi.RequireAdmin(), usersHandler.Delete)
	}

	log.Printf("storefront API listening on port %s", cfg.Port)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  30 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func initTracer(cfg *config.Config) (*sdktrace.TracerProvider, error) {
	ctx := context.Background()

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(cfg.OTLPEndpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion("1.0.0"),
		),
	)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	otel.SetTracerProvider(tp)

	return tp, nil
}

func initMetrics(cfg *config.Config) (*sdkmetric.MeterProvider, error) {
	ctx := context.Background()

	exporter, err := otlpmetrichttp.New(ctx,
		otlpmetrichttp.WithEndpoint(cfg.OTLPEndpoint),
		otlpmetrichttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion("1.0.0"),
		),
	)
	if err != nil {
		return nil, err
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	return mp, nil
}
