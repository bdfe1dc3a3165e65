package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc"

	"github.com/rl1809/catalog/internal/adapter/handler"
	"github.com/rl1809/catalog/internal/adapter/handler/catalogrpc"
	"github.com/rl1809/catalog/internal/adapter/storage"
	"github.com/rl1809/catalog/internal/config"
	"github.com/rl1809/catalog/internal/core/service"
	"github.com/rl1809/catalog/internal/port"
)

type catalogStore interface {
	port.UnitOfWork
	port.HealthChecker
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	// Prices go out as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	// Initialize storage
	store, closer, err := openStore(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("failed to open %s store: %v", cfg.Database.Driver, err)
	}
	log.Printf("connected to %s store", cfg.Database.Driver)

	// Initialize Redis, used only for Idempotency-Key tracking
	var rdb *redis.Client
	var idempotency port.IdempotencyStore
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			PoolSize: 100,
		})
		redisAdapter := storage.NewRedisAdapter(rdb)
		if err := redisAdapter.Ping(ctx); err != nil {
			log.Fatalf("failed to connect redis: %v", err)
		}
		idempotency = redisAdapter
		log.Println("connected to redis")
	}

	// Initialize services
	categoryService := service.NewCategoryService(store)
	itemService := service.NewItemService(store)

	// Initialize gRPC server
	var grpcServer *grpc.Server
	if cfg.GRPCAddr != "" {
		grpcServer = grpc.NewServer()
		catalogrpc.RegisterCatalogServiceServer(grpcServer, handler.NewGRPCHandler(categoryService, itemService))

		lis, err := net.Listen("tcp", cfg.GRPCAddr)
		if err != nil {
			log.Fatalf("failed to listen: %v", err)
		}

		go func() {
			log.Printf("gRPC server listening on %s", cfg.GRPCAddr)
			if err := grpcServer.Serve(lis); err != nil {
				log.Printf("gRPC server error: %v", err)
			}
		}()
	}

	// Initialize HTTP server
	httpHandler := handler.NewHTTPHandler(categoryService, itemService, store, cfg.BasePath)
	router := handler.NewRouter(httpHandler, handler.RouterOptions{
		BasePath:       cfg.BasePath,
		AllowedOrigins: cfg.AllowedOrigins,
		Idempotency:    idempotency,
	})

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	go func() {
		log.Printf("HTTP server listening on %s", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP shutdown: %v", err)
	}
	log.Println("HTTP server stopped")

	if grpcServer != nil {
		grpcServer.GracefulStop()
		log.Println("gRPC server stopped")
	}

	// Close connections
	if rdb != nil {
		rdb.Close()
	}
	if err := closer.Close(); err != nil {
		log.Printf("close store: %v", err)
	}
	log.Println("connections closed")
}

func openStore(ctx context.Context, cfg config.Database) (catalogStore, io.Closer, error) {
	if cfg.Driver == config.DriverMemory {
		return storage.NewMemoryAdapter(), io.NopCloser(nil), nil
	}

	db, err := storage.OpenDatabase(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	adapter := storage.NewGormAdapter(db)
	if cfg.AutoMigrate {
		if err := adapter.Migrate(ctx); err != nil {
			adapter.Close()
			return nil, nil, err
		}
		log.Println("schema migrated")
	}
	return adapter, adapter, nil
}
