package server

import (
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/thereayou/roomhub/internal/admission"
	"github.com/thereayou/roomhub/internal/directory"
	"github.com/thereayou/roomhub/internal/handlers"
	"github.com/thereayou/roomhub/internal/presence"
	"github.com/thereayou/roomhub/internal/websocket"
)

// Config is the process-level configuration, all environment-supplied.
type Config struct {
	Port          string
	RoomTTL       time.Duration
	SweepInterval time.Duration
}

type Server struct {
	Router    *gin.Engine
	Directory *directory.Directory
	Hub       *websocket.Hub
	Sweeper   *directory.Sweeper
	cfg       Config
}

func NewServer() *Server {
	if err := godotenv.Load(".env.local"); err != nil {
		if err := godotenv.Load(); err != nil {
			log.Println(".env not found, using environment variables")
		}
	}

	cfg := loadConfig()

	dir := directory.New()
	hub := websocket.NewHub(dir)
	dir.SetNotifier(hub)

	tracker := presence.NewTracker(dir, hub)
	gate := admission.NewGate(dir)
	sweeper := directory.NewSweeper(dir, hub, cfg.RoomTTL, cfg.SweepInterval)

	roomH := handlers.NewRoomHandler(dir, gate)
	eventH := handlers.NewEventHandler(dir, tracker, hub)
	wsH := handlers.NewWebSocketHandler(hub, eventH)

	router := gin.Default()
	router.Use(cors.Default())
	APIEndpoints(router, roomH, wsH)

	return &Server{
		Router:    router,
		Directory: dir,
		Hub:       hub,
		Sweeper:   sweeper,
		cfg:       cfg,
	}
}

func (s *Server) Run() {
	go s.Hub.Run()
	go s.Sweeper.Run()

	log.Printf("Server starting on port %s (room TTL %s)", s.cfg.Port, s.cfg.RoomTTL)
	if err := s.Router.Run(":" + s.cfg.Port); err != nil {
		log.Fatalf("Server run error: %v", err)
	}
}

func loadConfig() Config {
	cfg := Config{
		Port:          os.Getenv("PORT"),
		RoomTTL:       directory.DefaultTTL,
		SweepInterval: directory.DefaultSweepInterval,
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if v := os.Getenv("ROOM_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil || ttl <= 0 {
			log.Printf("Invalid ROOM_TTL %q, using %s", v, cfg.RoomTTL)
		} else {
			cfg.RoomTTL = ttl
		}
	}
	if v := os.Getenv("SWEEP_INTERVAL"); v != "" {
		interval, err := time.ParseDuration(v)
		if err != nil || interval <= 0 {
			log.Printf("Invalid SWEEP_INTERVAL %q, using %s", v, cfg.SweepInterval)
		} else {
			cfg.SweepInterval = interval
		}
	}
	return cfg
}
