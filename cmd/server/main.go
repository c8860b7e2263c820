package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/vedran77/chatbin/internal/config"
	"github.com/vedran77/chatbin/internal/database"
	"github.com/vedran77/chatbin/internal/repository"
	"github.com/vedran77/chatbin/internal/service"
	"github.com/vedran77/chatbin/internal/store"
	"github.com/vedran77/chatbin/internal/transport/http/handlers"
	"github.com/vedran77/chatbin/internal/transport/http/middleware"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	// Client-local storage: the anonymous handle, the sequence counter and
	// the hosted-bin id live here, outside the shared document.
	local, err := store.NewFileLocal(cfg.ProfileFile)
	if err != nil {
		log.Fatal(err)
	}

	backend, cleanup, err := newBackend(cfg, local)
	if err != nil {
		log.Fatal(err)
	}
	if cleanup != nil {
		defer cleanup()
	}
	log.Printf("Using %s store backend", cfg.StoreBackend)

	// Repository and services
	repo := repository.NewDocumentRepository(backend)
	identity := service.NewIdentityService(local, repo)
	channelService := service.NewChannelService(repo, identity)
	dmService := service.NewDMService(repo, identity)
	adminService := service.NewAdminService(repo, identity)

	// Handlers
	dataHandler := handlers.NewDataHandler(repo)
	identityHandler := handlers.NewIdentityHandler(identity)
	channelHandler := handlers.NewChannelHandler(channelService)
	dmHandler := handlers.NewDMHandler(dmService, identity)
	adminHandler := handlers.NewAdminHandler(adminService, channelService, identity)

	// Routes
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok"}`))
	})

	// Raw document, the surface the original static UI talks to
	mux.HandleFunc("GET /api/data", dataHandler.Get)
	mux.HandleFunc("POST /api/data", dataHandler.Post)

	// Identity
	mux.HandleFunc("GET /api/v1/me", identityHandler.Me)

	// Channels
	mux.HandleFunc("POST /api/v1/channels", channelHandler.Create)
	mux.HandleFunc("GET /api/v1/channels", channelHandler.List)
	mux.HandleFunc("POST /api/v1/channels/join-private", channelHandler.JoinPrivate)
	mux.HandleFunc("POST /api/v1/channels/{id}/join", channelHandler.Join)
	mux.HandleFunc("POST /api/v1/channels/{id}/messages", channelHandler.PostMessage)

	// Direct messages
	mux.HandleFunc("POST /api/v1/dms", dmHandler.Start)
	mux.HandleFunc("GET /api/v1/dms", dmHandler.List)
	mux.HandleFunc("POST /api/v1/dms/{id}/messages", dmHandler.PostMessage)

	// Admin panel and announcements
	mux.HandleFunc("POST /api/v1/admin/login", adminHandler.Login)
	mux.HandleFunc("POST /api/v1/admin/logout", adminHandler.Logout)
	mux.HandleFunc("POST /api/v1/admin/password", adminHandler.ChangePassword)
	mux.HandleFunc("POST /api/v1/admin/username", adminHandler.SetUsername)
	mux.HandleFunc("GET /api/v1/admin/channels", adminHandler.ListChannels)
	mux.HandleFunc("POST /api/v1/admin/channels/{id}/join", adminHandler.JoinChannel)
	mux.HandleFunc("POST /api/v1/announcements", adminHandler.CreateAnnouncement)
	mux.HandleFunc("GET /api/v1/announcements", adminHandler.ListAnnouncements)

	// Start server with CORS
	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.Printf("Starting server on %s", addr)
	log.Fatal(http.ListenAndServe(addr, middleware.CORS(mux)))
}

func newBackend(cfg *config.Config, local store.LocalStore) (store.Backend, func(), error) {
	switch cfg.StoreBackend {
	case "memory":
		return store.NewMemory(), nil, nil
	case "local":
		return store.NewLocal(local), nil, nil
	case "file":
		return store.NewFile(cfg.DataFile), nil, nil
	case "jsonbin":
		if cfg.JSONBinKey == "" {
			return nil, nil, fmt.Errorf("JSONBIN_API_KEY is required for the jsonbin backend")
		}
		return store.NewJSONBin(cfg.JSONBinURL, cfg.JSONBinKey, local), nil, nil
	case "postgres":
		pool, err := database.Connect(context.Background(), cfg)
		if err != nil {
			return nil, nil, err
		}
		backend, err := store.NewPostgres(context.Background(), pool)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		return backend, pool.Close, nil
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisURL})
		if err := client.Ping(context.Background()).Err(); err != nil {
			return nil, nil, fmt.Errorf("unable to ping redis: %w", err)
		}
		return store.NewRedis(client, cfg.RedisKey), func() { client.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
