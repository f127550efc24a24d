package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "railbooking/internal/config"
	intdb "railbooking/internal/db"
	"railbooking/internal/domain"
	router "railbooking/internal/http"
	"railbooking/internal/http/handlers"
	"railbooking/internal/repositories"
	"railbooking/internal/services"

	"github.com/gin-gonic/gin"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	db := intconfig.ConnectDB(env.DBDSN)
	defer intconfig.CloseDB()

	var (
		catalog  domain.Catalog
		registry domain.PNRRegistry
		users    repositories.UserStore
	)
	if db != nil {
		if err := intdb.EnsureSchema(db); err != nil {
			log.Fatalf("failed to ensure schema: %v", err)
		}
		catalog = repositories.CatalogRepository{DB: db}
		registry = repositories.PNRRepository{DB: db}
		users = repositories.UserRepository{DB: db}
	} else {
		log.Println("no DB_DSN configured, running with in-memory stores")
		catalog = services.NewSeededCatalog()
		registry = services.NewMemoryRegistry()
		users = repositories.NewMemoryUserStore()
	}

	inventory := services.NewInventoryService(env.HoldTTL, env.SeatRows)
	verifier := services.NewOTPVerifier(env.ChallengeTTL)
	fare := services.FareService{Policy: services.FlatRefundPolicy{Percent: env.RefundPercent}}
	workflow := services.NewWorkflowService(catalog, inventory, verifier, services.SimGateway{}, registry, fare)

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	inventory.StartSweep(sweepCtx, env.SweepInterval)

	api := &handlers.API{
		Workflow:  workflow,
		Catalog:   catalog,
		Inventory: inventory,
		Docs:      services.DocsService{Registry: registry},
		Users:     users,
		JWTSecret: []byte(env.JWTSecret),
	}

	r := router.NewRouter(env, api)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("server listening on http://localhost%s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server shutdown failed: %v", err)
	}

	log.Println("server stopped cleanly")
}
