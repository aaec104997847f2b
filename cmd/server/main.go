package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/flutterbye/sms-engine/internal/api"
	"github.com/flutterbye/sms-engine/internal/config"
	"github.com/flutterbye/sms-engine/internal/events"
	"github.com/flutterbye/sms-engine/internal/pkg/logger"
	"github.com/flutterbye/sms-engine/internal/render"
	"github.com/flutterbye/sms-engine/internal/repository/postgres"
	"github.com/flutterbye/sms-engine/internal/scoring"
	"github.com/flutterbye/sms-engine/internal/sms"
	"github.com/flutterbye/sms-engine/internal/storage"
)

func main() {
	log.Println("Flutterbye SMS engine (cmd/server/main.go)")

	cfg, err := config.LoadFromEnv("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Business event tracker
	var tracker events.Tracker = events.LogTracker{}
	if cfg.Events.Sink == "redis" && cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Printf("[events] Redis unreachable, falling back to log sink: %v", err)
		} else {
			tracker = events.NewRedisTracker(redisClient, cfg.Events.Stream)
			log.Printf("[events] Redis stream sink active (%s)", cfg.Events.Stream)
		}
	}

	// Campaign store
	store := sms.New(sms.Config{
		TickInterval:  cfg.Simulation.TickInterval(),
		MaxBatch:      cfg.Simulation.MaxBatch,
		PerMessageUSD: cfg.Pricing.PerMessageUSD,
	}, scoring.NewRandom(), tracker)
	defer store.Close()

	// Optional Postgres campaign archive
	if cfg.Database.Enabled && cfg.Database.URL != "" {
		db, err := postgres.Open(ctx, cfg.Database.URL)
		if err != nil {
			log.Printf("[archive] Postgres unavailable, archiving disabled: %v", err)
		} else {
			defer db.Close()
			store.SetArchive(postgres.NewCampaignArchive(db))
			log.Println("[archive] Postgres campaign archive active")
		}
	}

	// Optional snapshot persistence
	backend, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	if backend != nil {
		snap, err := backend.LoadSnapshot(ctx)
		if err != nil {
			log.Printf("[storage] Could not load snapshot: %v", err)
		} else if snap != nil {
			store.Restore(*snap)
			log.Printf("[storage] Restored %d campaigns, %d contacts, %d templates",
				len(snap.Campaigns), len(snap.Contacts), len(snap.Templates))
		}

		go func() {
			interval := cfg.Storage.FlushInterval()
			if interval <= 0 {
				interval = time.Minute
			}
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					flushCtx, flushCancel := context.WithTimeout(context.Background(), 30*time.Second)
					if err := backend.SaveSnapshot(flushCtx, store.Snapshot()); err != nil {
						logger.Error("snapshot flush failed", "error", err.Error())
					}
					flushCancel()
				}
			}
		}()
	}

	if cfg.SeedDemoData && len(store.Campaigns()) == 0 {
		store.SeedDemoData()
		log.Println("[seed] Demo data loaded")
	}

	server := api.NewServer(cfg.Server, store, render.NewEngine())

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.Server.GetHost(), cfg.Server.Port)
		log.Printf("Starting server on %s", addr)
		if err := server.ListenAndServe(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-done
	log.Println("Shutting down...")

	// Stop background flushing and delivery workers
	cancel()

	// One final snapshot so restarts resume where we left off
	if backend != nil {
		flushCtx, flushCancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := backend.SaveSnapshot(flushCtx, store.Snapshot()); err != nil {
			log.Printf("Final snapshot failed: %v", err)
		}
		flushCancel()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}
