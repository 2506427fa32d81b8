package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/kashala/atm-finder-go/internal/api"
	"github.com/kashala/atm-finder-go/internal/config"
	"github.com/kashala/atm-finder-go/internal/database"
	"github.com/kashala/atm-finder-go/internal/handler"
	"github.com/kashala/atm-finder-go/internal/realtime"
	"github.com/kashala/atm-finder-go/internal/repository"
	"github.com/kashala/atm-finder-go/internal/routing"
	"github.com/kashala/atm-finder-go/internal/search"
	"github.com/kashala/atm-finder-go/internal/service"
)

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化数据库
	db, err := database.Open(database.Config{Path: cfg.DBPath})
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer db.Close()

	atmRepo := repository.NewATMRepository(db)
	stateRepo := repository.NewStateRepository(db)
	visitRepo := repository.NewVisitRepository(db)
	userRepo := repository.NewUserRepository(db)

	// 可选的 Elasticsearch 附近搜索索引
	var searcher service.ATMSearcher
	if cfg.ElasticURL != "" {
		store, err := search.NewStore(cfg.ElasticURL, cfg.ElasticIndex)
		if err != nil {
			log.Printf("Nearby search index unavailable, using sqlite only: %v", err)
		} else {
			searcher = store
		}
	}

	// 变更通知：SSE + 可选 Kafka
	hub := realtime.NewHub()
	notifier := realtime.Fanout{hub}
	if cfg.KafkaBroker != "" {
		publisher := realtime.NewPublisher(cfg.KafkaBroker, cfg.KafkaTopic)
		defer publisher.Close()
		notifier = append(notifier, publisher)
	}

	osrm := routing.NewClient(cfg.OSRMBaseURL, cfg.RoutingTimeout)

	atmService := service.NewATMService(atmRepo, searcher)
	selector := service.NewSelectorService(osrm, cfg.RoutingWorkers, cfg.RoutingTimeout)
	availability := service.NewAvailabilityService(stateRepo, notifier)
	visits := service.NewVisitService(visitRepo)
	auth := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)

	if err := availability.Refresh(context.Background()); err != nil {
		log.Printf("Warning: could not preload availability states: %v", err)
	}

	handlers := api.Handlers{
		ATMs:   handler.NewATMHandler(atmService, selector, osrm),
		States: handler.NewStateHandler(availability, hub),
		Visits: handler.NewVisitHandler(visits),
		Auth:   handler.NewAuthHandler(auth),
		Legacy: handler.NewLegacyHandler(auth),
	}

	// 初始化路由
	router := api.SetupRouter(cfg, auth, handlers)

	srv := &http.Server{
		Addr:    cfg.Port,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 启动服务器
	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server:", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Forced shutdown: %v", err)
	}
}
