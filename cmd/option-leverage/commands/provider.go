package commands

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/contactkeval/option-leverage/internal/chain"
	"github.com/contactkeval/option-leverage/internal/config"
	"github.com/contactkeval/option-leverage/internal/logger"
)

// newProvider chooses a market data provider from config: Massive when
// an API key is present, local CSV files when a data dir is set,
// synthetic otherwise. An enabled Redis wraps the provider with a chain
// cache; an unreachable Redis downgrades to no caching instead of
// failing the command.
func newProvider(cfg *config.Config) chain.Provider {
	var prov chain.Provider
	switch {
	case cfg.PolygonAPIKey != "":
		prov = chain.NewMassiveDataProvider(cfg.PolygonAPIKey)
		logger.Infof("massive provider enabled")
	case cfg.DataDir != "":
		prov = chain.NewLocalFileDataProvider(cfg.DataDir, nil)
		logger.Infof("local CSV provider enabled dir=%s", cfg.DataDir)
	default:
		prov = chain.NewSyntheticProvider(time.Now().UnixNano())
		logger.Infof("synthetic provider enabled")
	}

	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warnf("redis unreachable, chain cache disabled: %v", err)
			return prov
		}

		logger.Infof("chain cache enabled addr=%s ttl=%s", cfg.Redis.Addr, cfg.ChainTTL)
		return chain.NewCachedProvider(prov, rdb, cfg.ChainTTL)
	}

	return prov
}
