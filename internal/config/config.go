package config

import "os"

type Config struct {
	Server       ServerConfig
	Auth         AuthConfig
	Postgres     PostgresConfig
	Redis        RedisConfig
	Ticketmaster TicketmasterConfig
}

type ServerConfig struct {
	Port    string
	AppEnv  string
	Origins string
}

type AuthConfig struct {
	JWTSecret    string
	JWTAccessTTL string
	BcryptCost   string
}

type PostgresConfig struct {
	DatabaseURL  string
	Host         string
	Port         string
	User         string
	Password     string
	Database     string
	SSLMode      string
	QueryTimeout string
}

type RedisConfig struct {
	URL      string
	Password string
}

type TicketmasterConfig struct {
	APIKey   string
	BaseURL  string
	CacheTTL string
}

func Load() Config {
	return Config{
		Server: ServerConfig{
			Port:    getenv("PORT", "8080"),
			AppEnv:  getenv("APP_ENV", "development"),
			Origins: os.Getenv("CORS_ALLOWED_ORIGINS"),
		},
		Auth: AuthConfig{
			JWTSecret:    os.Getenv("JWT_SECRET"),
			JWTAccessTTL: getenv("JWT_ACCESS_TTL", "30m"),
			BcryptCost:   os.Getenv("BCRYPT_COST"),
		},
		Postgres: PostgresConfig{
			DatabaseURL:  os.Getenv("DATABASE_URL"),
			Host:         getenv("PGHOST", "localhost"),
			Port:         getenv("PGPORT", "5432"),
			User:         os.Getenv("PGUSER"),
			Password:     os.Getenv("PGPASSWORD"),
			Database:     os.Getenv("PGDATABASE"),
			SSLMode:      getenv("PGSSLMODE", "disable"),
			QueryTimeout: getenv("PG_QUERY_TIMEOUT", "5s"),
		},
		Redis: RedisConfig{
			URL:      os.Getenv("REDIS_URL"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
		Ticketmaster: TicketmasterConfig{
			APIKey:   os.Getenv("TICKETMASTER_API_KEY"),
			BaseURL:  getenv("TICKETMASTER_URL", "https://app.ticketmaster.com/discovery/v2"),
			CacheTTL: getenv("EVENT_CACHE_TTL", "5m"),
		},
	}
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
