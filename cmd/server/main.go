package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"junglepets/catalog"
	"junglepets/common/errors"
	"junglepets/common/logger"
	"junglepets/config"
	"junglepets/routes"
	"junglepets/services"
	"junglepets/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load environment configuration
	cfg := config.Load()

	logger.Initialize(cfg.Env)
	defer logger.Log.Sync()
	zap.ReplaceGlobals(logger.Log)

	backend, err := newBackend(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize storage backend", zap.Error(err))
	}

	codec := newCodec(cfg)
	cat := catalog.Default()

	userStore := services.NewUserStore(backend, codec)
	cartStore := services.NewCartStore(backend, cat)

	ctx := context.Background()
	if err := userStore.Init(ctx); err != nil {
		logger.Log.Fatal("Failed to initialize user store", zap.Error(err))
	}

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.RequestLogger())
	router.Use(errors.ErrorMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	routes.Register(router, userStore, cartStore, cat)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("Server is running", zap.String("port", cfg.Port), zap.String("backend", cfg.StorageBackend))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down gracefully")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Fatal("Shutdown error", zap.Error(err))
	}
	logger.Info("Server shutdown complete")
}

func newBackend(cfg config.Config) (storage.Backend, error) {
	switch cfg.StorageBackend {
	case config.BackendMemory:
		return storage.NewMemory(), nil
	case config.BackendRedis:
		client, err := storage.NewRedisClient(cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		return storage.NewRedis(client), nil
	default:
		return storage.NewFile(cfg.StorageFile)
	}
}

func newCodec(cfg config.Config) services.PasswordCodec {
	if cfg.PasswordCodec == config.CodecBcrypt {
		return services.BcryptCodec{}
	}
	return services.Base64Codec{}
}
