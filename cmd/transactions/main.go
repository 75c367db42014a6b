package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/brunowerneck/payflow/internal/api"
	"github.com/brunowerneck/payflow/internal/config"
	"github.com/brunowerneck/payflow/internal/events"
	"github.com/brunowerneck/payflow/internal/handler"
	"github.com/brunowerneck/payflow/internal/infrastructure/kafka"
	"github.com/brunowerneck/payflow/internal/infrastructure/observability"
	"github.com/brunowerneck/payflow/internal/infrastructure/usersclient"
	core "github.com/brunowerneck/payflow/internal/repository/postgres"
	service "github.com/brunowerneck/payflow/internal/services"
)

func main() {
	cfg := config.LoadTransactions()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	shutdownTracing := observability.Setup("transactions-service", cfg.LogLevel)
	defer shutdownTracing(context.Background())

	db, err := sql.Open("postgres", cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("Failed to connect to Postgres: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping Postgres: %v", err)
	}

	transactionRepo := core.NewPostgresTransactionRepository(db)
	usersClient := usersclient.NewClient(cfg.UsersAPIURL)
	producer := kafka.NewProducer(cfg.KafkaBrokers, events.TransactionEventsTopic)
	defer producer.Close()
	publisher := events.NewKafkaPublisher(producer)

	svc := service.NewTransactionService(transactionRepo, usersClient, publisher)
	router := api.NewTransactionsRouter(handler.NewTransactionHandler(svc))

	server := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: router,
	}
	go func() {
		log.Printf("Starting transactions service on %s", cfg.ListenAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped")
}
