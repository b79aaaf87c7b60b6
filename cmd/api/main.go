package main

import (
	"expvar"
	"fmt"
	"net/http"
	"os"
	"runtime"
	"strconv"
	"time"

	"reaheats/internal/auth"
	"reaheats/internal/db"
	"reaheats/internal/domain/storage"
	"reaheats/internal/gotrue"
	"reaheats/internal/images"
	"reaheats/internal/ratelimiter"
	"reaheats/internal/session"

	"github.com/gorilla/sessions"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoadRateLimiterConfig retrieves rate limiter settings from environment variables
func LoadRateLimiterConfig() ratelimiter.Config {
	defaultRequests := 20
	defaultEnabled := true

	requestsPerTimeFrame := defaultRequests
	if val, exists := os.LookupEnv("RATELIMITER_REQUESTS_COUNT"); exists {
		if parsedVal, err := strconv.Atoi(val); err == nil && parsedVal > 0 {
			requestsPerTimeFrame = parsedVal
		} else {
			fmt.Println("Invalid RATELIMITER_REQUESTS_COUNT, defaulting to", defaultRequests)
		}
	}

	enabled := defaultEnabled
	if val, exists := os.LookupEnv("RATE_LIMITER_ENABLED"); exists {
		if parsedVal, err := strconv.ParseBool(val); err == nil {
			enabled = parsedVal
		} else {
			fmt.Println("Invalid RATE_LIMITER_ENABLED, defaulting to", defaultEnabled)
		}
	}

	return ratelimiter.Config{
		RequestsPerTimeFrame: requestsPerTimeFrame,
		TimeFrame:            time.Minute,
		Enabled:              enabled,
	}
}

// NewLogger creates a new zap logger with color.
func NewLogger() (*zap.SugaredLogger, error) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder

	consoleEncoder := zapcore.NewConsoleEncoder(encoderCfg)

	core := zapcore.NewCore(consoleEncoder, zapcore.AddSync(os.Stdout), zapcore.InfoLevel)

	return zap.New(core).Sugar(), nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

var version = "1.0.0"

func main() {
	// .env is optional; deployments set the environment directly
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, reading configuration from the environment")
	}

	maxConns, err := strconv.ParseInt(getEnv("DB_MAX_CONNS", "10"), 10, 32)
	if err != nil {
		fmt.Println("Invalid value for DB_MAX_CONNS:", err)
		os.Exit(1)
	}

	cfg := config{
		addr:   getEnv("ADDR", ":8080"),
		env:    getEnv("ENV", "development"),
		apiURL: getEnv("EXTERNAL_URL", "localhost:8080"),
		db: dbConfig{
			addr:        os.Getenv("DB_ADDR"),
			maxConns:    int32(maxConns),
			maxIdleTime: getEnv("DB_MAX_IDLE_TIME", "15m"),
		},
		auth: authConfig{
			basic: basicConfig{
				user: os.Getenv("AUTH_BASIC_USER"),
				pass: os.Getenv("AUTH_BASIC_PASS"),
			},
			token: tokenConfig{
				secret:         os.Getenv("AUTH_JWT_SECRET"),
				aud:            "authenticated",
				accessTokenExp: time.Hour,
			},
			remote: remoteAuthConfig{
				url:     os.Getenv("AUTH_URL"),
				anonKey: os.Getenv("AUTH_ANON_KEY"),
			},
		},
		session: sessionConfig{
			secret: os.Getenv("SESSION_SECRET"),
		},
		cloudinary:  os.Getenv("CLOUDINARY_URL"),
		rateLimiter: LoadRateLimiterConfig(),
	}

	logger, err := NewLogger()
	if err != nil {
		fmt.Println("Error creating logger:", err)
		return
	}
	defer logger.Sync()

	if cfg.auth.token.secret == "" || cfg.session.secret == "" {
		logger.Fatal("AUTH_JWT_SECRET and SESSION_SECRET must be set")
	}

	// Database
	pool, err := db.New(cfg.db.addr, cfg.db.maxConns, cfg.db.maxIdleTime)
	if err != nil {
		logger.Fatal(err)
	}
	defer pool.Close()
	logger.Info("database connection pool established")

	imageResolver, err := images.New(cfg.cloudinary)
	if err != nil {
		logger.Fatal(err)
	}

	authenticator := auth.NewJWTAuthenticator(cfg.auth.token.secret, cfg.auth.token.aud)
	sessionManager := session.NewManager(gotrue.New(cfg.auth.remote.url, cfg.auth.remote.anonKey), authenticator)

	unsubscribe := sessionManager.Subscribe(func(e session.Event) {
		logger.Infow("auth state changed", "event", e.Type.String(), "user_id", e.User.ID)
		authEvents.WithLabelValues(e.Type.String()).Inc()
	})
	defer unsubscribe()

	flashes := sessions.NewCookieStore([]byte(cfg.session.secret))
	flashes.Options.HttpOnly = true
	flashes.Options.Secure = cfg.env == "production"
	flashes.Options.SameSite = http.SameSiteLaxMode

	app := &application{
		config:      cfg,
		store:       storage.NewContainer(pool),
		logger:      logger,
		sessions:    sessionManager,
		flashes:     flashes,
		images:      imageResolver,
		rateLimiter: ratelimiter.NewFixedWindowLimiter(cfg.rateLimiter.RequestsPerTimeFrame, cfg.rateLimiter.TimeFrame),
	}

	// Metrics collected
	expvar.NewString("version").Set(version)
	expvar.Publish("database", expvar.Func(func() any {
		return db.Stats(pool)
	}))
	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))

	mux := app.mount()

	if err := app.run(mux); err != nil {
		logger.Fatal(err)
	}
}
