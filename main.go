package main

import (
	"context"
	"flag"
	"log"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/jonascoder/surf-shop/config"
	"github.com/jonascoder/surf-shop/controllers"
	"github.com/jonascoder/surf-shop/geocoding"
	"github.com/jonascoder/surf-shop/middleware"
	"github.com/jonascoder/surf-shop/query"
	"github.com/jonascoder/surf-shop/repository"
	"github.com/jonascoder/surf-shop/routes"
	"github.com/jonascoder/surf-shop/seeds"
	"github.com/jonascoder/surf-shop/session"
	"github.com/jonascoder/surf-shop/storage"
	"github.com/jonascoder/surf-shop/utils"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

// newHandler wraps the router with the outer middleware. Recovery and the
// access log sit outside the router so unmatched routes are covered too.
func newHandler(router http.Handler, allowedOrigins []string, logger *zap.Logger) http.Handler {
	corsOptions := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})
	return middleware.Recovery(logger)(
		middleware.AccessLog(logger)(
			corsOptions.Handler(middleware.MethodOverride(router)),
		),
	)
}

func main() {
	seed := flag.Bool("seed", false, "replace all posts with random seed data and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := config.NewLogger(cfg.Log.Level)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := config.ConnectDB(ctx, cfg.Mongo, logger)
	if err != nil {
		logger.Fatal("Failed to connect to the database", zap.Error(err))
	}
	defer config.CloseDBConnection(client, logger)

	collections := config.InitCollections(client, cfg.Mongo.Database)
	if err := config.EnsureIndexes(ctx, collections); err != nil {
		logger.Fatal("Failed to create indexes", zap.Error(err))
	}

	posts := repository.NewPostRepository(collections)
	reviews := repository.NewReviewRepository(collections)
	users := repository.NewUserRepository(collections)

	if *seed {
		if err := seeds.SeedPosts(ctx, users, posts, rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())), logger); err != nil {
			logger.Fatal("Failed to seed posts", zap.Error(err))
		}
		return
	}

	rdb, err := config.NewRedis(ctx, cfg.Redis, logger)
	if err != nil {
		logger.Fatal("Failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	images, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		logger.Fatal("Failed to set up image storage", zap.Error(err))
	}

	geocoder := geocoding.NewMapbox(cfg.Mapbox.BaseURL, cfg.Mapbox.Token, cfg.Mapbox.Timeout)
	tokens := utils.NewTokenIssuer(cfg.Auth.JWTKey, cfg.Auth.TokenTTL)

	h := &controllers.Handler{
		Posts:       posts,
		Reviews:     reviews,
		Users:       users,
		ResetTokens: repository.NewTokenRepository(rdb),
		Images:      images,
		Geocoder:    geocoder,
		Listing:     query.NewPipeline(query.NewBuilder(geocoder), posts),
		Tokens:      tokens,
		Mailer:      utils.NewSMTPMailer(cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.Username, cfg.Mail.Password, cfg.Mail.From),
		Validate:    validator.New(),
		Logger:      logger,
		MapboxToken: cfg.Mapbox.Token,
		ResetTTL:    cfg.Auth.ResetTTL,
	}
	m := &middleware.Middleware{
		Users:   users,
		Posts:   posts,
		Reviews: reviews,
		Tokens:  tokens,
		Logger:  logger,
	}
	sessions := session.NewStore(rdb, cfg.Auth.SessionTTL, cfg.Auth.SecureCookie, logger)

	router := mux.NewRouter()
	if local, ok := images.(*storage.LocalStorage); ok {
		prefix := strings.TrimSuffix(cfg.Storage.LocalURL, "/") + "/"
		router.PathPrefix(prefix).Handler(http.StripPrefix(prefix, http.FileServer(http.Dir(local.BasePath()))))
	}
	router.Use(sessions.Middleware, m.Authenticate)
	routes.Routes(router, h, m)

	handler := newHandler(router, cfg.Server.AllowedOrigins, logger)

	server := &http.Server{
		Addr:           ":" + cfg.Server.Port,
		Handler:        handler,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		logger.Info("Server running", zap.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Error starting server", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during server shutdown", zap.Error(err))
	}
	logger.Info("Server gracefully stopped")
}
