package main

import (
	"context"

	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"

	"github.com/nkroberts01/virtual-interviews/internal/auth"
	"github.com/nkroberts01/virtual-interviews/internal/cache"
	"github.com/nkroberts01/virtual-interviews/internal/config"
	"github.com/nkroberts01/virtual-interviews/internal/database"
	"github.com/nkroberts01/virtual-interviews/internal/handler"
	"github.com/nkroberts01/virtual-interviews/internal/logger"
	"github.com/nkroberts01/virtual-interviews/internal/repository"
	"github.com/nkroberts01/virtual-interviews/internal/session"
)

type application struct {
	Logger  *zap.Logger
	Config  *config.Config
	Handler *handler.Handler
}

func main() {
	ctx := context.Background()
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, _ := logger.NewLogger(cfg.Env)
	defer log.Sync()
	sugar := log.Sugar()
	sugar.Infof("config loaded, env=%s", cfg.Env)

	pool, err := database.Connect(ctx, cfg.DB)
	if err != nil {
		sugar.Fatal(err)
	}
	defer pool.Close()

	var sessions session.Store
	if cfg.Redis.Addr != "" {
		client := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := cache.Ping(ctx, client); err != nil {
			sugar.Fatalf("redis ping failed: %v", err)
		}
		sessions = session.NewRedisStore(client)
	} else {
		sugar.Warn("no redis addr configured, using in-memory session store")
		sessions = session.NewMemoryStore()
	}

	hub := session.NewHub()
	events, unsubscribe := hub.Subscribe()
	defer unsubscribe()
	go func() {
		for e := range events {
			sugar.Infow("session change", "type", e.Type, "session_id", e.SessionID, "user_id", e.UserID)
		}
	}()

	repo := repository.NewRepository(pool)

	app := &application{
		Logger: log,
		Config: cfg,
		Handler: &handler.Handler{
			Logger:       log,
			Users:        repo,
			Interviews:   repo,
			Applications: repo,
			TokenMaker:   auth.NewJWTMaker(cfg.JWT.Secret),
			Sessions:     sessions,
			Hub:          hub,
			AccessTTL:    cfg.JWT.AccessTokenTTL,
			ConfirmTTL:   cfg.Signup.ConfirmTokenTTL,
		},
	}

	if err := app.serve(); err != nil {
		sugar.Fatal(err)
	}
}
