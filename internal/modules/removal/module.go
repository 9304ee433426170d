package removal

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/redis/go-redis/v9"

	"github.com/saransh1220/background-erase/internal/modules/removal/application"
	"github.com/saransh1220/background-erase/internal/modules/removal/domain"
	"github.com/saransh1220/background-erase/internal/modules/removal/infrastructure/api"
	"github.com/saransh1220/background-erase/internal/modules/removal/infrastructure/cache"
	"github.com/saransh1220/background-erase/internal/modules/removal/infrastructure/preview"
	"github.com/saransh1220/background-erase/internal/shared/infrastructure/config"
	"github.com/saransh1220/background-erase/internal/shared/infrastructure/database"
	"github.com/saransh1220/background-erase/internal/shared/infrastructure/metrics"
)

// Module represents the Removal module
type Module struct {
	client  *api.Client
	service *application.RemovalService
	redis   *redis.Client
}

// NewModule creates and initializes the Removal module. m may be nil.
func NewModule(ctx context.Context, cfg config.Config, writer domain.ResultWriter, m *metrics.Metrics, logger *slog.Logger) (*Module, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	var transport http.RoundTripper = http.DefaultTransport
	if m != nil {
		transport = m.InstrumentTransport(transport)
	}

	client, err := api.NewClient(api.ClientConfig{
		Endpoint:  cfg.API.Endpoint,
		APIKey:    cfg.API.Key,
		Timeout:   cfg.API.Timeout,
		Transport: transport,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize api client: %w", err)
	}

	opts := []application.Option{application.WithPreview(preview.NewThumbnail())}
	if m != nil {
		opts = append(opts, application.WithRecorder(m))
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = database.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logger.Warn("result cache disabled", "addr", cfg.Redis.Addr, "error", err)
		} else {
			opts = append(opts, application.WithCache(cache.NewRedisCache(redisClient, client.Endpoint()), cfg.Cache.TTL))
		}
	}

	return &Module{
		client:  client,
		service: application.NewRemovalService(client, writer, logger, opts...),
		redis:   redisClient,
	}, nil
}

// Service returns the removal service
func (m *Module) Service() *application.RemovalService {
	return m.service
}

// Endpoint returns the API endpoint in use
func (m *Module) Endpoint() string {
	return m.client.Endpoint()
}

// CacheEnabled reports whether results go through Redis
func (m *Module) CacheEnabled() bool {
	return m.redis != nil
}

// Close releases the Redis connection, if any
func (m *Module) Close() error {
	if m.redis == nil {
		return nil
	}
	return m.redis.Close()
}
