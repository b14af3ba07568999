package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/palstyle/storefront/internal/automation"
	"github.com/palstyle/storefront/internal/bridge"
	"github.com/palstyle/storefront/internal/cart"
	cartcache "github.com/palstyle/storefront/internal/cart/cache"
	cartrepo "github.com/palstyle/storefront/internal/cart/repository"
	"github.com/palstyle/storefront/internal/catalog"
	"github.com/palstyle/storefront/internal/checkout"
	"github.com/palstyle/storefront/internal/domain"
	"github.com/palstyle/storefront/internal/events"
	"github.com/palstyle/storefront/internal/genai"
	h "github.com/palstyle/storefront/internal/http"
	"github.com/palstyle/storefront/internal/prefs"
)

type Config struct {
	HTTPPort          string
	CatalogDBPath     string
	CatalogMigrations string
	MongoURI          string
	MongoDatabase     string
	RedisAddr         string
	KafkaBrokers      string
	RequestTimeout    time.Duration
	ShutdownTimeout   time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:          getEnv("HTTP_PORT", "8080"),
		CatalogDBPath:     getEnv("CATALOG_DB_PATH", "storefront.db"),
		CatalogMigrations: getEnv("CATALOG_MIGRATIONS", "migrations/catalog"),
		MongoURI:          getEnv("MONGO_URI", ""),
		MongoDatabase:     getEnv("MONGO_DATABASE", "storefront"),
		RedisAddr:         getEnv("REDIS_ADDR", ""),
		KafkaBrokers:      getEnv("KAFKA_BROKERS", ""),
		RequestTimeout:    30 * time.Second,
		ShutdownTimeout:   10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	cfg := loadConfig()

	// Catalog on sqlite
	catalogRepo, err := catalog.NewSQLiteRepository(cfg.CatalogDBPath)
	if err != nil {
		log.Fatalf("failed to open catalog db: %v", err)
	}
	defer catalogRepo.Close()
	if err := catalogRepo.RunMigrations(cfg.CatalogMigrations); err != nil {
		log.Fatalf("failed to run catalog migrations: %v", err)
	}
	catalogSvc := catalog.NewService(catalogRepo)
	seedCatalog(catalogSvc)

	// Automation engine consumes domain events in-process
	engine := automation.NewEngine(nil)
	defer engine.Close()

	// Kafka publisher fans the same events out to the orders worker
	var sink domain.EventSink = engine
	if cfg.KafkaBrokers != "" {
		publisher := events.NewKafkaPublisher(strings.Split(cfg.KafkaBrokers, ",")...)
		defer publisher.Close()
		sink = domain.FanoutSink{engine, publisher}
	}

	// Cart on mongo when configured, memory otherwise
	var repo cartrepo.CartRepository
	if cfg.MongoURI != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		db, err := cartrepo.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDatabase)
		cancel()
		if err != nil {
			log.Fatalf("failed to connect to mongodb: %v", err)
		}
		repo = cartrepo.NewMongoRepository(db)
	} else {
		log.Printf("MONGO_URI not set, using in-memory cart storage")
		repo = cartrepo.NewMemoryRepository()
	}

	var cartCache cartcache.CartCache = cartcache.NopCache{}
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer client.Close()
		cartCache = cartcache.NewRedisCache(client)
	}

	ledger := cart.NewLedger(repo, cartCache, sink)

	// Checkout
	sessions := checkout.NewMemoryStore()
	defer sessions.Close()
	flow := checkout.NewService(sessions, ledger, &checkout.SimulatedGateway{Delay: time.Second}, sink)

	// Admin collaborators
	prefStore := prefs.NewStore()
	syncSvc := bridge.NewSyncService(catalogSvc, engine, &bridge.TrendyolBridge{}, &bridge.ShopifyBridge{})
	genaiSvc := genai.NewService(genai.StubTextGenerator{}, &genai.StubVideoBackend{PollsUntilDone: 2})

	router := h.NewRouter(h.Handlers{
		Products:       h.NewProductHandler(catalogSvc, genaiSvc, cfg.RequestTimeout),
		Cart:           h.NewCartHandler(ledger, catalogSvc, h.PrefsCurrency{Store: prefStore}, cfg.RequestTimeout),
		Checkout:       h.NewCheckoutHandler(flow, h.PrefsCurrency{Store: prefStore}, cfg.RequestTimeout),
		Admin:          h.NewAdminHandler(syncSvc, engine, genaiSvc, cfg.RequestTimeout),
		Prefs:          h.NewPrefsHandler(prefStore),
		RequestTimeout: cfg.RequestTimeout,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(router, "storefront"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("storefront starting on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}

// seedCatalog loads the launch collection into an empty catalog.
func seedCatalog(svc *catalog.Service) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	existing, err := svc.List(ctx)
	if err != nil {
		log.Printf("failed to check catalog before seeding: %v", err)
		return
	}
	if len(existing) > 0 {
		return
	}

	seed := make([]*domain.Product, len(catalog.SeedProducts))
	for i := range catalog.SeedProducts {
		seed[i] = &catalog.SeedProducts[i]
	}
	if err := svc.ImportBulk(ctx, seed); err != nil {
		log.Printf("failed to seed catalog: %v", err)
		return
	}
	log.Printf("seeded catalog with %d products", len(seed))
}
