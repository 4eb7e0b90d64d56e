// cmd/server/main.go
package main

import (
	"net"
	"net/http"
	"os"
	"os/signal"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"github.com/playscrew/screw/internal/auth"
	"github.com/playscrew/screw/internal/cache"
	"github.com/playscrew/screw/internal/database"
	"github.com/playscrew/screw/internal/handlers"
	"github.com/playscrew/screw/internal/middleware"
)

func main() {
	logger := logrus.New()
	if os.Getenv("SCREW_DEBUG") != "" {
		logger.SetLevel(logrus.DebugLevel)
	}

	if err := auth.Init(); err != nil {
		logger.Fatalf("failed to init auth: %v", err)
	}
	if err := database.ConnectDB(); err != nil {
		logger.Fatalf("failed to connect to database: %v", err)
	}
	defer database.DB.Close()

	if err := cache.ConnectRedis(); err != nil {
		// The action journal is optional; play continues without it.
		logger.Warnf("redis unavailable, action journaling disabled: %v", err)
	}

	srv := handlers.NewSessionServer(logger)

	mux := http.NewServeMux()
	mux.HandleFunc("/", handlers.PingHandler)

	mux.HandleFunc("/user/create", handlers.CreateUserHandler)
	mux.HandleFunc("/user/login", handlers.LoginHandler)
	mux.HandleFunc("/user/claim", handlers.ClaimEphemeralHandler)

	withLog := middleware.LogMiddleware(logger)
	mux.Handle("/session/create", withLog(handlers.CreateSessionHandler(srv)))
	mux.Handle("/session/state/", withLog(handlers.SessionStateHandler(srv)))
	mux.Handle("/session/ws/", withLog(handlers.SessionWSHandler(logger, srv)))

	server := &http.Server{
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	addr := ":8080"
	if port := os.Getenv("SCREW_SERVICE_PORT"); port != "" {
		addr = ":" + port
	}
	l, err := net.Listen("tcp", addr)
	if err != nil {
		logger.Fatalf("failed to listen: %v", err)
	}
	logger.Infof("listening on %s", l.Addr())

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
