package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/quakecraft-arsenal/internal/config"
	"github.com/KirkDiggler/quakecraft-arsenal/internal/entities"
	"github.com/KirkDiggler/quakecraft-arsenal/internal/events"
	"github.com/KirkDiggler/quakecraft-arsenal/internal/i18n"
	"github.com/KirkDiggler/quakecraft-arsenal/internal/item"
	"github.com/KirkDiggler/quakecraft-arsenal/internal/logger"
	"github.com/KirkDiggler/quakecraft-arsenal/internal/repositories/weapons"
	"github.com/KirkDiggler/quakecraft-arsenal/internal/services/arsenal"
	"github.com/KirkDiggler/quakecraft-arsenal/internal/weapon"
)

// app holds everything the subcommands share
type app struct {
	cfg         *config.Config
	logger      *slog.Logger
	items       *item.Registry
	weapons     *weapon.Registry
	catalog     *i18n.Catalog
	bus         *events.Bus
	repository  weapons.Repository
	service     arsenal.Service
	redisClient *redis.Client
}

func newApp(ctx context.Context) (*app, error) {
	// Load .env file
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log := logger.Setup(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if envErr != nil {
		log.Debug("No .env file found")
	} else {
		log.Debug("Loaded .env file")
	}

	a := &app{
		cfg:    cfg,
		logger: log,
		items:  item.Vanilla(),
		bus:    events.NewBus(log),
	}

	a.catalog, err = i18n.LoadEmbedded()
	if err != nil {
		return nil, err
	}

	a.weapons, err = weapon.DefaultArsenal(a.items, a.launch("primary"), a.launch("secondary"))
	if err != nil {
		return nil, err
	}

	a.repository = a.connectRepository(ctx)

	a.service = arsenal.NewService(&arsenal.ServiceConfig{
		Weapons:    a.weapons,
		Items:      a.items,
		Bus:        a.bus,
		Repository: a.repository,
		Catalog:    a.catalog,
		Logger:     log,
	})

	return a, nil
}

// connectRepository uses Redis when REDIS_URL is set and reachable, falling
// back to an in-memory repository otherwise
func (a *app) connectRepository(ctx context.Context) weapons.Repository {
	if a.cfg.Redis.URL == "" {
		a.logger.Debug("No REDIS_URL found, using in-memory repository")
		return weapons.NewInMemoryRepository(nil)
	}

	opts, err := redis.ParseURL(a.cfg.Redis.URL)
	if err != nil {
		a.logger.Warn("Failed to parse Redis URL, falling back to in-memory repository", "error", err)
		return weapons.NewInMemoryRepository(nil)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		a.logger.Warn("Failed to connect to Redis, falling back to in-memory repository", "error", err)
		return weapons.NewInMemoryRepository(nil)
	}

	a.logger.Info("Using Redis for weapon definitions", "addr", opts.Addr)
	a.redisClient = client
	return weapons.NewRedis(client, nil)
}

// launch returns a launcher that logs the shot; projectiles live in the
// game server, not here
func (a *app) launch(action string) weapon.Launcher {
	return func(w *weapon.Weapon, world *entities.World, player *entities.Player) bool {
		tick := int64(0)
		if world != nil {
			tick = world.Tick
		}
		a.logger.Info("launch", "action", action, "weapon", w.ID().String(), "player", player.ID, "tick", tick)
		return true
	}
}

func (a *app) close() {
	if a.redisClient == nil {
		return
	}
	if err := a.redisClient.Close(); err != nil {
		a.logger.Error("Error closing Redis client", "error", err)
	}
}
