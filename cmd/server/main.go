// cmd/server/main.go
package main

import (
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"github.com/faithplay/hilo/internal/arbiter"
	"github.com/faithplay/hilo/internal/auth"
	"github.com/faithplay/hilo/internal/cache"
	"github.com/faithplay/hilo/internal/config"
	"github.com/faithplay/hilo/internal/database"
	"github.com/faithplay/hilo/internal/engine"
	"github.com/faithplay/hilo/internal/handlers"
	"github.com/faithplay/hilo/internal/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	auth.Init()
	database.ConnectDB(cfg.PostgresDSN())

	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)

	if err := cache.ConnectRedis(cfg.RedisAddr, cfg.RedisDB); err != nil {
		// The submission audit queue is best effort; play works without it.
		logger.Warnf("redis unavailable, submission records disabled: %v", err)
	}

	judge := engine.NewAnswerJudge(arbiter.NewClient(cfg.ArbiterURL, cfg.ArbiterAPIKey))
	gs := handlers.NewGameServer(logger, judge, cfg.SubmissionQueue)

	logged := middleware.LogMiddleware(logger)
	mux := http.NewServeMux()

	// player identity
	mux.HandleFunc("/user/create", handlers.CreateUserHandler)
	mux.HandleFunc("/user/login", handlers.LoginHandler)
	mux.HandleFunc("/user/claim", handlers.ClaimEphemeralHandler)

	// operator endpoints
	mux.Handle("/admin/games/ingest", logged(handlers.IngestGameHandler(gs)))
	mux.Handle("/admin/games/activate", logged(handlers.ActivateGameHandler(gs)))
	mux.Handle("/admin/games/close", logged(handlers.CompleteGameHandler(gs)))

	// gameplay
	mux.Handle("/games/submit", logged(handlers.SubmitAnswerHandler(gs)))
	mux.Handle("/games/ws/", logged(handlers.LiveWSHandler(logger, gs)))
	mux.Handle("/games/", logged(gameReadRouter(gs)))

	server := &http.Server{
		Handler:      mux,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
	}

	l, err := net.Listen("tcp", fmt.Sprintf(":%s", cfg.Port))
	if err != nil {
		log.Fatalf("failed to listen: %v", err)
	}
	logger.Infof("Running on %s", l.Addr())

	errc := make(chan error, 1)
	go func() {
		errc <- server.Serve(l)
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt)
	select {
	case err := <-errc:
		logger.Errorf("failed to serve: %v", err)
	case sig := <-sigs:
		logger.Infof("terminating: %v", sig)
	}
}

// gameReadRouter dispatches /games/{id} and its sub-resources.
func gameReadRouter(gs *handlers.GameServer) http.Handler {
	get := handlers.GetGameHandler(gs)
	halftime := handlers.HalftimeHandler(gs)
	board := handlers.LeaderboardHandler(gs)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/halftime"):
			halftime(w, r)
		case strings.HasSuffix(r.URL.Path, "/leaderboard"):
			board(w, r)
		default:
			get(w, r)
		}
	})
}
