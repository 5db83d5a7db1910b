package app

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"auth-serverless/internal/account"
	"auth-serverless/internal/auth"
	"auth-serverless/internal/db"
	"auth-serverless/internal/maintenance"
	"auth-serverless/internal/observability"
)

type Options struct {
	LoadDotEnv    bool
	RunMigrations bool
}

type Runtime struct {
	Handler http.Handler
	Close   func() error
}

// Build wires the whole service from environment variables. AUTH_STORE_DRIVER
// selects the credential store: "postgres" (default) or "memory" for the
// volatile variant used in local runs.
func Build(options Options) (*Runtime, error) {
	if options.LoadDotEnv {
		_ = godotenv.Load()
	}

	logger := observability.NewLogger()

	jwtSecret, err := mustEnv("JWT_SECRET")
	if err != nil {
		return nil, err
	}

	if err := observability.InitSentry(os.Getenv("SENTRY_DSN"), envOrDefault("APP_ENV", "development")); err != nil {
		logger.Error("init_sentry_failed", map[string]any{"error": err.Error()})
	}

	var store account.Store
	var audit *auth.AuditLog
	var database *sql.DB

	driver := strings.ToLower(envOrDefault("AUTH_STORE_DRIVER", "postgres"))
	switch driver {
	case "memory":
		store = account.NewMemoryStore()
		logger.Info("store_driver", map[string]any{"driver": "memory"})
	case "postgres":
		databaseURL, err := mustEnv("DATABASE_URL")
		if err != nil {
			return nil, err
		}

		database, err = sql.Open("pgx", databaseURL)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}

		database.SetMaxOpenConns(envIntOrDefault("DB_MAX_OPEN_CONNS", 10))
		database.SetMaxIdleConns(envIntOrDefault("DB_MAX_IDLE_CONNS", 5))
		database.SetConnMaxLifetime(envMinutesOrDefault("DB_CONN_MAX_LIFETIME_MINUTES", 30))
		database.SetConnMaxIdleTime(envMinutesOrDefault("DB_CONN_MAX_IDLE_TIME_MINUTES", 10))

		if err := database.Ping(); err != nil {
			_ = database.Close()
			return nil, fmt.Errorf("ping database: %w", err)
		}

		if options.RunMigrations {
			if err := db.RunMigrations(database); err != nil {
				_ = database.Close()
				return nil, fmt.Errorf("run migrations: %w", err)
			}
		}

		store = account.NewPostgresStore(database)
		audit = auth.NewAuditLog(database)
	default:
		return nil, fmt.Errorf("unknown AUTH_STORE_DRIVER: %s", driver)
	}

	hasher := auth.NewBcryptHasher(envIntOrDefault("BCRYPT_COST", 0))
	issuer := auth.NewTokenIssuer(jwtSecret, envHoursOrDefault("TOKEN_TTL_HOURS", 10))
	authService := auth.NewService(store, hasher, issuer)
	authHandler := auth.NewHandler(authService, audit)

	if err := seedAdmin(authService, os.Getenv("ADMIN_USERNAME"), os.Getenv("ADMIN_PASSWORD")); err != nil {
		if database != nil {
			_ = database.Close()
		}
		return nil, fmt.Errorf("seed admin: %w", err)
	}

	cleanupHandler := maintenance.NewCleanupHandler(
		audit,
		logger,
		os.Getenv("CRON_SECRET"),
		envDaysOrDefault("AUTH_LOGIN_EVENT_RETENTION_DAYS", 30),
		envIntOrDefault("AUTH_CLEANUP_BATCH_SIZE", 500),
	)

	loginLimiter := auth.NewLoginRateLimiter(
		envIntOrDefault("LOGIN_RATE_LIMIT_MAX", 10),
		envSecondsOrDefault("LOGIN_RATE_LIMIT_WINDOW_SECONDS", 60),
	)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/register", authHandler.Register)
	mux.Handle("POST /auth/login", loginLimiter.Middleware(http.HandlerFunc(authHandler.Login)))
	mux.Handle("GET /auth/session", auth.Middleware(issuer, http.HandlerFunc(authHandler.Session)))
	mux.HandleFunc("GET /internal/maintenance/cleanup", cleanupHandler.Handle)
	mux.HandleFunc("POST /internal/maintenance/cleanup", cleanupHandler.Handle)
	mux.HandleFunc("GET /health", healthHandler(database))

	handler := observability.RecoverMiddleware(logger, observability.RequestLoggingMiddleware(logger, mux))

	return &Runtime{
		Handler: handler,
		Close: func() error {
			observability.FlushSentry()
			if database != nil {
				return database.Close()
			}
			return nil
		},
	}, nil
}

func seedAdmin(service *auth.Service, username, password string) error {
	username = strings.TrimSpace(strings.ToLower(username))
	password = strings.TrimSpace(password)

	if username == "" && password == "" {
		return nil
	}
	if username == "" || password == "" {
		return fmt.Errorf("ADMIN_USERNAME and ADMIN_PASSWORD are required together")
	}

	_, err := service.Register(context.Background(), username, password, "")
	if err != nil && !errors.Is(err, auth.ErrUserAlreadyExists) {
		return err
	}

	return nil
}

func healthHandler(database *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		body := map[string]any{"status": "ok", "time": time.Now().UTC().Format(time.RFC3339)}
		if database != nil {
			if err := database.PingContext(ctx); err != nil {
				status = http.StatusServiceUnavailable
				body = map[string]any{"status": "degraded", "time": time.Now().UTC().Format(time.RFC3339)}
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}
}

func mustEnv(name string) (string, error) {
	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		return "", fmt.Errorf("missing required env: %s", name)
	}
	return value, nil
}

func envOrDefault(name, fallback string) string {
	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		return fallback
	}
	return value
}

func envIntOrDefault(name string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func envMinutesOrDefault(name string, fallback int) time.Duration {
	return time.Duration(envIntOrDefault(name, fallback)) * time.Minute
}

func envHoursOrDefault(name string, fallback int) time.Duration {
	return time.Duration(envIntOrDefault(name, fallback)) * time.Hour
}

func envDaysOrDefault(name string, fallback int) time.Duration {
	return time.Duration(envIntOrDefault(name, fallback)) * 24 * time.Hour
}

func envSecondsOrDefault(name string, fallback int) time.Duration {
	return time.Duration(envIntOrDefault(name, fallback)) * time.Second
}

func EnvBoolOrDefault(name string, fallback bool) bool {
	value := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if value == "" {
		return fallback
	}

	switch value {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}
