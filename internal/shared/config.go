package shared

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string `env:"APP_ENV" envDefault:"prod"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	HTTPAddr    string `env:"HTTP_ADDR" envDefault:":8080"`
	MetricsAddr string `env:"METRICS_ADDR"`
	MySQLDSN    string `env:"MYSQL_DSN" envDefault:"root:root@tcp(localhost:3306)/dune?parseTime=true&charset=utf8mb4,utf8&loc=UTC"`
	RedisAddr   string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass   string `env:"REDIS_PASSWORD"`
	RedisDB     int    `env:"REDIS_DB" envDefault:"0"`

	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"15m"`

	CatalogBase string `env:"CATALOG_BASE_URL" envDefault:"http://localhost:54321/rest/v1"`
	CatalogKey  string `env:"CATALOG_API_KEY"`
	CatalogRPS  int    `env:"CATALOG_RPS" envDefault:"5"`
	Workers     int    `env:"INGEST_WORKERS" envDefault:"8"`

	AdminToken string `env:"ADMIN_TOKEN"`

	ChatReplyDelay  time.Duration `env:"CHAT_REPLY_DELAY" envDefault:"1s"`
	ChatMaxSessions int           `env:"CHAT_MAX_SESSIONS" envDefault:"1000"`
	ChatSessionTTL  time.Duration `env:"CHAT_SESSION_TTL" envDefault:"30m"`

	Map MapConfig `envPrefix:"MAP_"`
}

type MapConfig struct {
	Lat         float64 `env:"LAT" envDefault:"33.4570"`
	Lon         float64 `env:"LON" envDefault:"9.0207"`
	Zoom        int     `env:"ZOOM" envDefault:"12"`
	Label       string  `env:"LABEL"`
	TileURL     string  `env:"TILE_URL" envDefault:"https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png"`
	Attribution string  `env:"ATTRIBUTION" envDefault:"&copy; OpenStreetMap contributors"`
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err == nil {
		log.Debug().Msg("loaded .env")
	}
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, err
	}
	if c.CatalogKey == "" {
		log.Warn().Msg("CATALOG_API_KEY is empty")
	}
	if c.AdminToken == "" {
		log.Warn().Msg("ADMIN_TOKEN is empty; admin endpoints are disabled")
	}
	return c, nil
}
