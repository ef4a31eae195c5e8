// Package app 提供应用程序的初始化和装配.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yeisme/agrivault/pkg/configs"
	"github.com/yeisme/agrivault/pkg/internal/handle"
	"github.com/yeisme/agrivault/pkg/internal/router"
	"github.com/yeisme/agrivault/pkg/internal/service"
	"github.com/yeisme/agrivault/pkg/internal/storage"
	"github.com/yeisme/agrivault/pkg/log"
	"github.com/yeisme/agrivault/pkg/metrics"
	"github.com/yeisme/agrivault/pkg/middleware"
)

// App 装配完成的应用.
type App struct {
	Engine *gin.Engine
	config *configs.AppConfig
}

// NewApp 按 配置 -> 日志 -> 指标 -> 存储 -> 服务 -> 处理器 -> 路由
// 的顺序装配应用，任何一步失败直接退出.
func NewApp(configPath string) *App {
	ctx := context.Background()

	if err := configs.InitConfig(configPath); err != nil {
		fmt.Printf("Error initializing config: %v\n", err)
		os.Exit(1)
	}

	config := configs.GetConfig()

	if err := metrics.InitMetrics(config.Metrics); err != nil {
		fmt.Printf("Error initializing metrics: %v\n", err)
		os.Exit(1)
	}

	manager, err := storage.Init(ctx)
	if err != nil {
		fmt.Printf("Error initializing storage: %v\n", err)
		os.Exit(1)
	}

	l := log.Logger()
	gin.DefaultWriter = log.NewGinWriter(l, zerolog.InfoLevel)
	gin.DefaultErrorWriter = log.NewGinWriter(l, zerolog.ErrorLevel)

	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		middleware.GinLoggerMiddleware(),
		middleware.CORSMiddleware(config.Server),
		middleware.RateLimitMiddleware(config.RateLimit),
		middleware.CircuitBreakerMiddleware(config.CircuitBreaker),
		middleware.PrometheusMiddleware(),
		gzip.Gzip(gzip.DefaultCompression),
	)

	router.Register(engine, buildHandlers(manager, config))

	if config.Metrics.Enabled {
		_ = metrics.StartMetricsServer(config.Metrics, engine)
	}

	return &App{
		Engine: engine,
		config: config,
	}
}

// buildHandlers 构造服务与处理器，依赖显式注入.
func buildHandlers(manager *storage.Manager, config *configs.AppConfig) *router.Handlers {
	market := service.NewMarketService(manager.GetDBClient())
	uploadSvc := service.NewUploadService(manager.GetS3Client(), config.S3.GetSignedURLExpiry())

	return &router.Handlers{
		Upload:         handle.NewUploadHandler(uploadSvc),
		Book:           handle.NewBookHandler(service.NewBookService(market)),
		Category:       handle.NewCategoryHandler(service.NewCategoryService(market)),
		Review:         handle.NewReviewHandler(service.NewReviewService(market)),
		Subscription:   handle.NewSubscriptionHandler(service.NewSubscriptionService(market)),
		Wallet:         handle.NewWalletHandler(service.NewWalletService(market)),
		Dashboard:      handle.NewDashboardHandler(service.NewDashboardService(market, config.Market.CommissionRate)),
		Curriculum:     handle.NewCurriculumHandler(service.NewCurriculumService(market)),
		WebsiteContent: handle.NewWebsiteContentHandler(service.NewWebsiteContentService(market)),
		Health:         handle.NewHealthHandler(manager),
	}
}

// Run 启动HTTP服务并在收到终止信号时优雅退出.
func (a *App) Run() error {
	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", a.config.Server.Host, a.config.Server.Port),
		Handler:           a.Engine,
		ReadHeaderTimeout: a.config.Server.GetTimeoutDuration(),
	}

	errCh := make(chan error, 1)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	log.Logger().Info().Str("addr", srv.Addr).Msg("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Logger().Info().Str("signal", sig.String()).Msg("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.config.Server.GetTimeoutDuration())
	defer cancel()

	return srv.Shutdown(ctx)
}
