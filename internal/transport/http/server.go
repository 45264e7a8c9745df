package http

import (
	"context"
	"fmt"
	"log"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bloglist/internal/config"
	"bloglist/internal/database"
	"bloglist/internal/handler"
	"bloglist/internal/repository"
	"bloglist/internal/service"
	"bloglist/internal/worker"
)

func Run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := database.EnsureSchema(db); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}

	userRepo := repository.NewUserRepository(db)
	blogRepo := repository.NewBlogRepository(db)

	userService := service.NewUserService(userRepo, blogRepo)
	authService := service.NewAuthService(cfg)
	blogService := service.NewBlogService(blogRepo, userRepo)

	router := NewRouter(RouterConfig{
		AuthHandler: handler.NewAuthHandler(userService, authService),
		UserHandler: handler.NewUserHandler(userService),
		BlogHandler: handler.NewBlogHandler(blogService),
		JWTSecret:   cfg.JWTSecret,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var reconciler *worker.Reconciler
	if cfg.ReconcileInterval > 0 {
		reconciler = worker.NewReconciler(blogRepo, userRepo,
			time.Duration(cfg.ReconcileInterval)*time.Second)
		reconciler.Start(ctx)
	}

	srv := &stdhttp.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting server on :%s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != stdhttp.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Println("Shutting down...")
	if reconciler != nil {
		reconciler.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
