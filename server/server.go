package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"AuraFM/cache"
	"AuraFM/config"
	"AuraFM/core/agent"
	"AuraFM/core/aggregator"
	"AuraFM/core/catalog"
	"AuraFM/core/player"
	"AuraFM/facade"
	"AuraFM/logger"
	"AuraFM/repository"
)

// Start initializes and starts the HTTP server.
func Start() {
	cfg := config.Load()

	logger.InitLogger(logger.Config{
		Level:      logger.LogLevel(cfg.LogLevel),
		OutputPath: cfg.LogPath,
		MaxSize:    100,
		MaxBackups: 3,
		MaxAge:     28,
	})

	catalogCache := cache.Connect(cfg)
	defer catalogCache.Close()

	store := repository.NewMemoryStore()
	catalogClient := catalog.NewClient(cfg.SpotifyClientID, cfg.SpotifyClientSecret)
	if !catalogClient.Configured() {
		logger.Warn("Spotify credentials missing, catalog results disabled")
	}

	agg := aggregator.NewService(store, catalogClient, catalogCache)

	supportAgent := agent.NewSupportAgent(&agent.SupportAgentConfig{
		APIBaseURL:  cfg.AIAPIBaseURL,
		APIKey:      cfg.AIAPIKey,
		Model:       cfg.AIModel,
		MaxTokens:   cfg.AIMaxTokens,
		Temperature: cfg.AITemperature,
	})
	if !supportAgent.Configured() {
		logger.Warn("AI API key missing, support chat runs in offline mode")
	}

	playerCtl := player.NewController()
	playerCtl.Start()
	defer playerCtl.Close()

	app := facade.New(store, agg, supportAgent)

	apiHandler := NewAPIHandler(app, playerCtl)
	chatHandler := NewChatHandler(app.AI)

	router := mux.NewRouter()
	router.Use(corsMiddleware)

	router.HandleFunc("/api/tracks", apiHandler.GetTracksHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/tracks", apiHandler.AddTrackHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/tracks/search", apiHandler.SearchTracksHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/playlists", apiHandler.GetPlaylistsHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/stats", apiHandler.GetStatsHandler).Methods(http.MethodGet)

	router.HandleFunc("/api/chat", chatHandler.ChatHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/chat/history", chatHandler.ChatHistoryHandler).Methods(http.MethodGet)
	router.HandleFunc("/ws/chat", chatHandler.WebSocketChatHandler)

	router.HandleFunc("/api/player", apiHandler.PlayerStatusHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/player/select", apiHandler.PlayerSelectHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/player/toggle", apiHandler.PlayerToggleHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/player/next", apiHandler.PlayerNextHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/player/prev", apiHandler.PlayerPrevHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/player/position", apiHandler.PlayerPositionHandler).Methods(http.MethodPost)

	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Server starting", logger.String("addr", cfg.ServerAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", logger.ErrorField(err))
		}
	}()

	<-stop
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	logger.Info("Server stopped")
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
