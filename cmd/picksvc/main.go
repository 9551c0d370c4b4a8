package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/httprate"

	config "github.com/courtside/picks-services/configs"
	mongodb "github.com/courtside/picks-services/internal/mongo"
	nats "github.com/courtside/picks-services/internal/nats"
	"github.com/courtside/picks-services/internal/picksvc/broker"
	"github.com/courtside/picks-services/internal/picksvc/db"
	"github.com/courtside/picks-services/internal/picksvc/facade"
	handlers "github.com/courtside/picks-services/internal/picksvc/handlers"
	"github.com/courtside/picks-services/internal/picksvc/service"
	"github.com/courtside/picks-services/internal/picksvc/store"
	log "github.com/sirupsen/logrus"
)

const SERVICE_NAME = "picks"

// cacheTTL backstops missed invalidation events.
const cacheTTL = 5 * time.Minute

var instanceId string

func init() {
	instanceId = "001"
	config.Logging(SERVICE_NAME + "_service_" + instanceId)
	config.LoadEnv(SERVICE_NAME)
}

func main() {

	// pg connection
	dbpool, err := db.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer db.ClosePool()
	log.Printf("pg connection established successfully")

	// mongo connection for news content
	contentDB, cancelMongo, err := mongodb.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to content DB: %v", err)
	}
	defer cancelMongo()
	if err := mongodb.EnsureNewsIndexes(contentDB); err != nil {
		log.Errorf("Error ensuring news indexes: %v", err)
	}
	log.Printf("mongo connection established successfully")

	zone := config.ReportingZone()
	log.Infof("reporting time zone: %s", zone)

	gameStore := store.NewGameStore(dbpool)
	predStore := store.NewPredictionStore(dbpool)
	newsStore := store.NewNewsStore(contentDB)
	userStore := store.NewUserStore(dbpool)

	gameService := service.NewGameService(gameStore, predStore, zone)
	newsService := service.NewNewsService(newsStore)
	analyticsService := service.NewAnalyticsService(predStore, zone, service.DefaultComparator())
	userService := service.NewUserService(userStore)

	// Connect to NATS
	n, err := nats.Connect()
	if err != nil {
		log.Errorf("Error: unable to connect to NATS server %v", err)
		os.Exit(0)
	}

	defer n.Conn.Close()
	log.Printf("NATS connection established successfully %s", n.Url)

	eventBroker := broker.NewBroker(n.Conn)

	cache := facade.NewCache(cacheTTL)
	picksFacade := facade.New(gameService, newsService, analyticsService, userService, eventBroker, cache, zone)

	// keep the cache coherent with writes from other instances
	subs, err := picksFacade.SubscribeInvalidation(n.Conn)
	if err != nil {
		log.Errorf("Error: unable to subscribe for cache invalidation %v", err)
		os.Exit(0)
	}

	// Setup router
	r := chi.NewRouter()
	c := config.CORS()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(config.CustomLoggerMiddleware())
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(c.Handler)

	// to protect the service api from any over requests
	rateLimitStr := os.Getenv("RATE_LIMIT")
	rateLimit, err := strconv.Atoi(rateLimitStr)
	if err != nil {
		log.Fatalf("Invalid RATE_LIMIT value: %v", err)
	}
	r.Use(httprate.LimitByIP(rateLimit, 1*time.Minute))

	// Init handlers and routes
	h := handlers.NewHandler(picksFacade)
	h.InitAuth()
	h.SetRoutes(r)

	// Create server with timeout settings
	server := &http.Server{
		Addr:         ":" + os.Getenv("PICKS_SERVICE_PORT"),
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()
	log.Infof("%s service running at port %s", SERVICE_NAME, server.Addr)

	// Wait for interrupt signal to gracefully shutdown the server
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	for _, sub := range subs {
		sub.Unsubscribe()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("%s service shutdown Failed:%+v", SERVICE_NAME, err)
	}
	log.Infof("%s service gracefully stopped", SERVICE_NAME)
}
