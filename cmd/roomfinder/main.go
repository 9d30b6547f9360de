package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"roomfinder/internal/app/policies"
	authsvc "roomfinder/internal/app/services/auth"
	"roomfinder/internal/app/snapshots"
	"roomfinder/internal/domain/catalog"
	"roomfinder/internal/domain/messaging"
	domainuser "roomfinder/internal/domain/user"
	"roomfinder/internal/infra/broker/kafka"
	"roomfinder/internal/infra/config"
	ginserver "roomfinder/internal/infra/http/gin"
	"roomfinder/internal/infra/obs"
	"roomfinder/internal/infra/security"
	"roomfinder/internal/infra/storage/memory"
	"roomfinder/internal/infra/storage/mongo"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := getenv("APP_ENV", "dev")
	logger := obs.NewLogger(env)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("configuration invalid", "error", err)
		os.Exit(1)
	}

	users := memory.NewUserRepository()
	sessions := memory.NewSessionStore()
	chatStore := messaging.NewStore()

	listings, err := loadListingFixtures(filepath.Join(cfg.FixturesDir, "listings.json"), logger)
	if err != nil {
		logger.Warn("listing fixtures load failed", "error", err)
	}
	propertyCatalog := catalog.NewCatalog(listings)

	if err := loadUserFixtures(ctx, filepath.Join(cfg.FixturesDir, "users.json"), users, logger); err != nil {
		logger.Warn("user fixtures load failed", "error", err)
	}
	if err := loadConversationFixtures(filepath.Join(cfg.FixturesDir, "conversations.json"), chatStore, logger); err != nil {
		logger.Warn("conversation fixtures load failed", "error", err)
	}

	snapshotStore, closeMongo := buildSnapshotStore(ctx, cfg, logger)
	defer closeMongo()
	manager := &snapshots.Manager{
		Store:     snapshotStore,
		Messaging: chatStore,
		Users:     users,
		Logger:    logger,
	}
	// A stored snapshot wins over fixture seeds, like a returning browser session.
	if err := manager.Restore(ctx); err != nil {
		logger.Warn("snapshot restore failed, keeping fixture state", "error", err)
	}
	go manager.RunPeriodic(ctx, cfg.SnapshotInterval)

	notifier, closeNotifier := buildNotifier(cfg, logger)
	defer closeNotifier()

	authService := &authsvc.Service{
		Users:      users,
		Sessions:   sessions,
		Tokens:     security.RandomTokenGenerator{},
		SessionTTL: cfg.SessionTTL,
		Logger:     logger,
	}

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{
		Ready: func() error { return nil },
	}, ginserver.Handlers{
		Catalog: ginserver.CatalogHandler{Catalog: propertyCatalog},
		Chat: ginserver.ChatHandler{
			Store:    chatStore,
			Notifier: notifier,
			Logger:   logger,
		},
		Auth:           ginserver.AuthHandler{Service: authService, Logger: logger},
		AuthMiddleware: ginserver.AuthMiddleware{Service: authService, Logger: logger}.Handle,
	})

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "listings", propertyCatalog.Len(), "conversations", chatStore.Len())
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := manager.Save(flushCtx); err != nil {
		logger.Error("shutdown snapshot failed", "error", err)
	}
	logger.Info("HTTP server stopped")
}

func buildSnapshotStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (snapshots.Store, func()) {
	if cfg.MongoURI == "" {
		logger.Warn("MONGO_URI not set, snapshots stay in memory")
		return memory.NewSnapshotStore(), func() {}
	}
	client, err := mongo.New(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logger.Error("mongo connect failed, snapshots stay in memory", "error", err)
		return memory.NewSnapshotStore(), func() {}
	}
	if err := client.Ping(ctx); err != nil {
		logger.Error("mongo ping failed, snapshots stay in memory", "error", err)
		return memory.NewSnapshotStore(), func() {}
	}
	return mongo.NewSnapshotStore(client), func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Close(closeCtx); err != nil {
			logger.Warn("mongo disconnect failed", "error", err)
		}
	}
}

func buildNotifier(cfg config.Config, logger *slog.Logger) (policies.MessageNotifier, func()) {
	if len(cfg.KafkaBrokers) == 0 {
		return policies.NoopNotifier{}, func() {}
	}
	producer, err := kafka.NewProducer(cfg.KafkaBrokers, nil)
	if err != nil {
		logger.Error("kafka producer init failed, notifications disabled", "error", err)
		return policies.NoopNotifier{}, func() {}
	}
	logger.Info("chat notifications enabled", "topic", cfg.KafkaChatTopic)
	return kafka.Notifier{Producer: producer, Topic: cfg.KafkaChatTopic}, func() {
		if err := producer.Close(); err != nil {
			logger.Warn("kafka producer close failed", "error", err)
		}
	}
}

func loadListingFixtures(path string, logger *slog.Logger) ([]catalog.Listing, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Info("listing fixtures file not found, skipping", "path", path)
			return nil, nil
		}
		return nil, fmt.Errorf("read fixtures: %w", err)
	}
	var listings []catalog.Listing
	if err := json.Unmarshal(data, &listings); err != nil {
		return nil, fmt.Errorf("decode fixtures: %w", err)
	}
	return listings, nil
}

type userFixture struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Password  string    `json:"password"`
	Role      string    `json:"role"`
	Phone     string    `json:"phone"`
	Gender    string    `json:"gender"`
	Location  string    `json:"location"`
	AvatarURL string    `json:"avatar_url"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"created_at"`
}

func loadUserFixtures(ctx context.Context, path string, repo domainuser.Repository, logger *slog.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Info("user fixtures file not found, skipping", "path", path)
			return nil
		}
		return fmt.Errorf("read fixtures: %w", err)
	}
	var fixtures []userFixture
	if err := json.Unmarshal(data, &fixtures); err != nil {
		return fmt.Errorf("decode fixtures: %w", err)
	}
	for _, fx := range fixtures {
		account, err := domainuser.NewUser(domainuser.CreateParams{
			ID:        domainuser.ID(fx.ID),
			Email:     fx.Email,
			Name:      fx.Name,
			Password:  fx.Password,
			Role:      domainuser.Role(fx.Role),
			Phone:     fx.Phone,
			Gender:    fx.Gender,
			Location:  fx.Location,
			AvatarURL: fx.AvatarURL,
			Verified:  fx.Verified,
			CreatedAt: fx.CreatedAt,
		})
		if err != nil {
			logger.Error("user fixture invalid", "user_id", fx.ID, "error", err)
			continue
		}
		if err := repo.Save(ctx, account); err != nil {
			logger.Error("cannot store fixture user", "user_id", fx.ID, "error", err)
		}
	}
	return nil
}

type conversationFixture struct {
	Participants []string `json:"participants"`
	Subject      string   `json:"subject"`
	Messages     []struct {
		From string `json:"from"`
		Text string `json:"text"`
	} `json:"messages"`
}

func loadConversationFixtures(path string, store *messaging.Store, logger *slog.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Info("conversation fixtures file not found, skipping", "path", path)
			return nil
		}
		return fmt.Errorf("read fixtures: %w", err)
	}
	var fixtures []conversationFixture
	if err := json.Unmarshal(data, &fixtures); err != nil {
		return fmt.Errorf("decode fixtures: %w", err)
	}
	for _, fx := range fixtures {
		if len(fx.Participants) != 2 {
			logger.Error("conversation fixture invalid", "subject", fx.Subject)
			continue
		}
		conversationID, err := store.FindOrCreate(fx.Participants[0], fx.Participants[1], fx.Subject)
		if err != nil {
			logger.Error("conversation fixture rejected", "subject", fx.Subject, "error", err)
			continue
		}
		for _, msg := range fx.Messages {
			if _, err := store.Post(conversationID, msg.From, msg.Text); err != nil {
				logger.Error("conversation fixture message rejected", "subject", fx.Subject, "error", err)
			}
		}
	}
	return nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
