package util

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lintang-b-s/arterial/pkg"
	"github.com/spf13/viper"
)

func ReadConfig() error {
	viper.SetConfigName("config")
	viper.AddConfigPath("./data/")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	SetDefaults()

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// env + defaults only
			return nil
		}
		return fmt.Errorf("fatal error config file: %w", err)
	}
	return nil
}

func SetDefaults() {
	viper.SetDefault("LOG_MODE", "production")

	viper.SetDefault("API_PORT", 6060)
	viper.SetDefault("WEBSOCKET_PORT", 6666)
	viper.SetDefault("PROXY_PORT", 6767)
	viper.SetDefault("API_TIMEOUT", "30s")
	viper.SetDefault("HTTP_SERVER_READ_TIMEOUT", 10*time.Second)
	viper.SetDefault("HTTP_SERVER_WRITE_TIMEOUT", 10*time.Second)
	viper.SetDefault("HTTP_SERVER_IDLE_TIMEOUT", 60*time.Second)
	viper.SetDefault("HTTP_SERVER_READ_HEADER_TIMEOUT", 5*time.Second)

	viper.SetDefault("USE_RATE_LIMIT", false)
	viper.SetDefault("RATE_LIMIT_RPS", 20)
	viper.SetDefault("RATE_LIMIT_BURST", 40)

	viper.SetDefault("STORAGE_DRIVER", "csv")
	viper.SetDefault("SEGMENTS_CSV", "./data/segments.csv")
	viper.SetDefault("TRAVEL_TIMES_CSV", "./data/travel_times.csv")
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("SNAPSHOT_TTL", "0s")

	viper.SetDefault("SEARCH_STRATEGY", "bounded")
	viper.SetDefault("SEARCH_MAX_HOPS", pkg.DEFAULT_MAX_HOPS)
	viper.SetDefault("SEARCH_BUDGET", pkg.DEFAULT_SEARCH_BUDGET)
	viper.SetDefault("RANDOM_SEED", 0)
	viper.SetDefault("RANDOM_MULTIPLIER", true)
	viper.SetDefault("TRAFFIC_WORKERS", 8)

	viper.SetDefault("ROUTE_STORE", "memory")
	viper.SetDefault("ROUTE_STORE_SIZE", 4096)
	viper.SetDefault("ROUTE_TTL", 24*time.Hour)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)

	viper.SetDefault("NEAREST_POINT_RADIUS_KM", 1.0)
}
