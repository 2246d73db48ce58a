package cli

import (
	"context"
	"fmt"
	"net/http"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/folio/internal/application/ports"
	"github.com/amirhosseinghanipour/folio/internal/config"
	"github.com/amirhosseinghanipour/folio/internal/infrastructure/apiclient"
	"github.com/amirhosseinghanipour/folio/internal/infrastructure/tokenstore"
)

// openTokens picks the token store: Redis when REDIS_URL is set and answers a ping, the token
// file otherwise. The returned client is nil for the file store; the caller closes it.
func openTokens(ctx context.Context, cfg *config.Config, log zerolog.Logger) (ports.TokenStore, *redis.Client, error) {
	if cfg.Token.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.Token.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("parse REDIS_URL: %w", err)
		}
		client := redis.NewClient(opt)
		if err = client.Ping(ctx).Err(); err == nil {
			log.Debug().Str("key", tokenstore.RedisKey).Msg("token store: redis")
			return tokenstore.NewRedisStore(client), client, nil
		}
		log.Warn().Err(err).Msg("redis ping failed; falling back to token file")
		_ = client.Close()
	}
	log.Debug().Str("path", cfg.Token.File).Msg("token store: file")
	return tokenstore.NewFileStore(cfg.Token.File), nil, nil
}

func newAPIClient(cfg *config.Config, tokens ports.TokenStore, log zerolog.Logger) *apiclient.Client {
	return apiclient.New(cfg.API.BaseURL, tokens,
		apiclient.WithHTTPClient(&http.Client{Timeout: cfg.API.Timeout}),
		apiclient.WithLogger(log.With().Str("component", "apiclient").Logger()),
		apiclient.WithHeader("User-Agent", "folio"),
	)
}
