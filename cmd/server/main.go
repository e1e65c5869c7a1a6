package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"Yatube/internal/api/middleware"
	"Yatube/internal/api/routes"
	"Yatube/internal/config"
	"Yatube/internal/core/comments"
	"Yatube/internal/core/feeds"
	"Yatube/internal/core/follows"
	"Yatube/internal/core/groups"
	"Yatube/internal/core/images"
	"Yatube/internal/core/posts"
	"Yatube/internal/core/users"
	"Yatube/internal/db/migrations"
	postgresRepo "Yatube/internal/db/postgres"
	"Yatube/internal/web"
)

func main() {
	// .env is optional; real environment variables win
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Warning: failed to load .env: %v", err)
	}

	cfg := config.FromEnv()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))

	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database:", err)
	}
	log.Println("Connected to database")

	if err := migrations.Up(db); err != nil {
		log.Fatal(err)
	}
	log.Println("Migrations completed successfully")

	// Initialize repositories
	userRepo := postgresRepo.NewUserRepository(db)
	groupRepo := postgresRepo.NewGroupRepository(db)
	postRepo := postgresRepo.NewPostRepository(db)
	commentRepo := postgresRepo.NewCommentRepository(db)
	followRepo := postgresRepo.NewFollowRepository(db)
	feedRepo := postgresRepo.NewFeedRepository(db)

	imageStore, err := images.NewDiskStore(cfg.MediaRoot, cfg.ImageMaxWidth, cfg.MaxUploadBytes())
	if err != nil {
		log.Fatal("Failed to initialize media storage:", err)
	}

	// Initialize services
	indexCache := feeds.NewIndexCache(cfg.IndexCacheTTL)
	userService := users.NewUserService(userRepo)
	followService := follows.NewFollowService(followRepo, userRepo)

	cookieStore, err := middleware.NewCookieStore(cfg.SessionSecret, cfg.SecureCookies)
	if err != nil {
		log.Fatal("Failed to initialize sessions:", err)
	}
	auth := middleware.NewSessionAuth(cookieStore, userService)

	templates, err := web.NewTemplates()
	if err != nil {
		log.Fatal("Failed to load web templates:", err)
	}

	h := web.NewHandlers(web.Deps{
		Templates:      templates,
		Auth:           auth,
		Feeds:          feeds.NewFeedService(feedRepo, groupRepo, userRepo, followService, indexCache),
		Posts:          posts.NewPostService(postRepo, groupRepo, imageStore),
		Comments:       comments.NewCommentService(commentRepo, postRepo),
		Follows:        followService,
		Users:          userService,
		Groups:         groups.NewGroupService(groupRepo),
		MaxUploadBytes: cfg.MaxUploadBytes(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)
	go rateLimiter.Run(ctx)

	router := routes.NewRouter(routes.RouterConfig{
		Handlers:    h,
		Auth:        auth,
		RateLimiter: rateLimiter,
		StaticDir:   cfg.StaticDir,
		MediaRoot:   cfg.MediaRoot,
		AccessLog:   true,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handlers.ProxyHeaders(handlers.CompressHandler(router)),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	ln, err := net.Listen("tcp", server.Addr)
	if err != nil {
		log.Fatal("Failed to listen:", err)
	}

	slog.Info("Yatube starting", "port", cfg.Port, "index_cache_ttl", cfg.IndexCacheTTL)
	if err := serve(ctx, server, ln, shutdownTimeout); err != nil {
		log.Fatal(err)
	}

	hits, misses := indexCache.Stats()
	slog.Info("server stopped", "index_cache_hits", hits, "index_cache_misses", misses)
}
