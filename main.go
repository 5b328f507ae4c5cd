package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	ginGzip "github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	cachecontrol "go.eigsys.de/gin-cachecontrol/v2"
	"golang.org/x/time/rate"
)

// App wires the word source, room store, notifier, and per-client sessions
// together with the server configuration.
type App struct {
	Words  WordSource
	Rooms  RoomStore
	Notify *notifier

	Sessions     map[string]*Session
	SessionMutex sync.RWMutex

	LimiterMap   map[string]*rate.Limiter
	LimiterMutex sync.Mutex

	IsProduction   bool
	StartTime      time.Time
	SessionTimeout time.Duration
	CookieMaxAge   time.Duration
	RoomTTL        time.Duration
	RateLimitRPS   int
	RateLimitBurst int
}

func newApp(words WordSource, rooms RoomStore) *App {
	return &App{
		Words:          words,
		Rooms:          rooms,
		Notify:         newNotifier(),
		Sessions:       make(map[string]*Session),
		LimiterMap:     make(map[string]*rate.Limiter),
		IsProduction:   os.Getenv("GIN_MODE") == "release" || os.Getenv("ENV") == "production",
		StartTime:      time.Now(),
		SessionTimeout: getEnvDuration("SESSION_TIMEOUT", 2*time.Hour),
		CookieMaxAge:   getEnvDuration("COOKIE_MAX_AGE", 2*time.Hour),
		RoomTTL:        getEnvDuration("ROOM_TTL", 24*time.Hour),
		RateLimitRPS:   getEnvInt("RATE_LIMIT_RPS", 5),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 10),
	}
}

func main() {
	_ = godotenv.Load()

	dataDir := getEnvString("DATA_DIR", "data")

	words, err := loadWordLists(dataDir + "/words.json")
	if err != nil {
		logFatal("Failed to load words: %v", err)
	}
	logInfo("Word lists loaded for lengths %v", words.Lengths())

	rooms, err := NewFileRoomStore(dataDir)
	if err != nil {
		logFatal("Failed to initialise room store: %v", err)
	}

	app := newApp(words, rooms)
	logInfo("Starting Wordroom in %s mode", map[bool]string{true: "production", false: "development"}[app.IsProduction])

	router := app.buildRouter()

	stopCleanup := make(chan struct{})
	go app.cleanupLoop(rooms, stopCleanup)

	startServer(router, stopCleanup)
}

// buildRouter assembles the gin engine with middleware and routes.
func (app *App) buildRouter() *gin.Engine {
	router := gin.Default()

	router.Use(requestIDMiddleware())
	// The event stream needs unbuffered writes, so it skips compression.
	router.Use(ginGzip.Gzip(ginGzip.DefaultCompression,
		ginGzip.WithExcludedPathsRegexs([]string{`/events$`})))
	router.Use(cachecontrol.New(cachecontrol.Config{
		NoStore:        true,
		NoCache:        true,
		MustRevalidate: true,
	}))

	if err := router.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logWarn("Failed to set trusted proxies: %v", err)
	}

	router.GET(RouteState, app.stateHandler)
	router.POST(RouteRooms, app.rateLimitMiddleware(), app.createRoomHandler)
	router.POST(RouteRoomJoin, app.rateLimitMiddleware(), app.joinRoomHandler)
	router.GET(RouteRoomSnapshot, app.roomSnapshotHandler)
	router.GET(RouteRoomEvents, app.roomEventsHandler)
	router.POST(RouteLetters, app.addLetterHandler)
	router.DELETE(RouteLetters, app.removeLetterHandler)
	router.POST(RouteGuess, app.rateLimitMiddleware(), app.guessHandler)
	router.POST(RouteReset, app.rateLimitMiddleware(), app.resetHandler)
	router.POST(RouteLeave, app.rateLimitMiddleware(), app.leaveHandler)
	router.GET(RouteValidate, app.validateWordHandler)
	router.GET(RouteHealth, app.healthzHandler)

	return router
}

// cleanupLoop periodically removes stale room files and idle sessions.
func (app *App) cleanupLoop(store *FileRoomStore, stop <-chan struct{}) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if _, err := store.Cleanup(app.RoomTTL); err != nil {
				logWarn("Room cleanup failed: %v", err)
			}
			app.cleanupSessions(app.SessionTimeout)
		case <-stop:
			return
		}
	}
}

func startServer(router *gin.Engine, stopCleanup chan struct{}) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// No write timeout: the room event stream holds its response open.
		IdleTimeout: 120 * time.Second,
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, syscall.SIGINT, syscall.SIGTERM)
		<-sigint
		logInfo("Shutdown signal received, shutting down server gracefully...")
		close(stopCleanup)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logWarn("HTTP server Shutdown: %v", err)
		}
		close(idleConnsClosed)
	}()

	logInfo("Server starting on http://localhost:%s", port)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		logFatal("Server failed to start: %v", err)
	}
	<-idleConnsClosed
	logInfo("Server shutdown complete")
}
