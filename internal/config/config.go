package config

import (
	"errors"
	"net"
	"net/url"
	"os"
	"strings"
)

var errMissingPostgres = errors.New("missing required env: DATABASE_URL or PGUSER/PGDATABASE")

type Config struct {
	Server   ServerConfig
	Postgres PostgresConfig
	Auth     AuthConfig
	Redis    RedisConfig
	Email    EmailConfig
	CORS     CORSConfig
}

type ServerConfig struct {
	Addr string
}

type PostgresConfig struct {
	DatabaseURL string
	Host        string
	Port        string
	User        string
	Password    string
	Database    string
	SSLMode     string
}

type AuthConfig struct {
	JWTSecret     string
	JWTAccessTTL  string
	JWTRefreshTTL string
	AdminEmail    string
	AdminPassword string
	AdminName     string
}

type RedisConfig struct {
	Addr     string
	Password string
}

type EmailConfig struct {
	ResendAPIKey string
	FromAddress  string
	NotifyTo     string
}

type CORSConfig struct {
	AllowedOrigins []string
}

func Load() Config {
	return Config{
		Server: ServerConfig{
			Addr: getenv("LISTEN_ADDR", ":8080"),
		},
		Postgres: PostgresConfig{
			DatabaseURL: os.Getenv("DATABASE_URL"),
			Host:        getenv("PGHOST", "localhost"),
			Port:        getenv("PGPORT", "5432"),
			User:        os.Getenv("PGUSER"),
			Password:    os.Getenv("PGPASSWORD"),
			Database:    os.Getenv("PGDATABASE"),
			SSLMode:     getenv("PGSSLMODE", "disable"),
		},
		Auth: AuthConfig{
			JWTSecret:     os.Getenv("JWT_SECRET"),
			JWTAccessTTL:  getenv("JWT_ACCESS_TTL", "15m"),
			JWTRefreshTTL: getenv("JWT_REFRESH_TTL", "168h"),
			AdminEmail:    os.Getenv("ADMIN_EMAIL"),
			AdminPassword: os.Getenv("ADMIN_PASSWORD"),
			AdminName:     getenv("ADMIN_NAME", "Admin"),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
		Email: EmailConfig{
			ResendAPIKey: os.Getenv("RESEND_API_KEY"),
			FromAddress:  getenv("RESEND_FROM_EMAIL", "Agencia <hola@agenciadev.es>"),
			NotifyTo:     os.Getenv("LEAD_NOTIFY_EMAIL"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173")),
		},
	}
}

// URL builds the connection string, preferring DATABASE_URL over the
// individual PG* variables.
func (p PostgresConfig) URL() (string, error) {
	if p.DatabaseURL != "" {
		return p.DatabaseURL, nil
	}

	if p.User == "" || p.Database == "" {
		return "", errMissingPostgres
	}

	u := &url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(p.Host, p.Port),
		Path:   p.Database,
	}
	if p.Password == "" {
		u.User = url.User(p.User)
	} else {
		u.User = url.UserPassword(p.User, p.Password)
	}
	q := u.Query()
	q.Set("sslmode", p.SSLMode)
	u.RawQuery = q.Encode()

	return u.String(), nil
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
