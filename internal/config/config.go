package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/lucasAG-UNQ/FutbolApi/internal/platform/logging"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv             string
	ServiceName        string
	ServiceVersion     string
	HTTPAddr           string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	ShutdownTimeout    time.Duration
	LogLevel           logging.Level
	CORSAllowedOrigins []string
	SwaggerEnabled     bool
	MetricsEnabled     bool

	StorageDriver string
	DBURL         string
	DBSSLRequired bool
	CacheEnabled  bool
	CacheTTL      time.Duration

	FreshnessWindow time.Duration
	FixtureWorkers  int

	WhoScoredBaseURL             string
	WhoScoredTimeout             time.Duration
	WhoScoredCircuitEnabled      bool
	WhoScoredCircuitFailureCount int
	WhoScoredCircuitOpenTimeout  time.Duration
	WhoScoredCircuitHalfOpenMax  int

	FootballDataEnabled  bool
	FootballDataBaseURL  string
	FootballDataToken    string
	FootballDataTimeout  time.Duration
	FootballDataCacheTTL time.Duration

	JWTSecret string
	JWTIssuer string
	JWTExpiry time.Duration

	RedisURL       string
	RefreshLockTTL time.Duration

	NATSURL           string
	NATSSubjectPrefix string

	UptraceEnabled             bool
	UptraceDSN                 string
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
	PprofEnabled               bool
	PprofAddr                  string
}

// LoadDotEnv loads KEY=VALUE pairs from the given files, ".env" by default.
// Variables already set in the environment win. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}

	existing := make([]string, 0, len(paths))
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("stat %s: %w", path, err)
		}
		existing = append(existing, path)
	}
	if len(existing) == 0 {
		return nil
	}

	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("load dotenv: %w", err)
	}
	return nil
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	swaggerDefault := "true"
	if appEnv == EnvProd {
		swaggerDefault = "false"
	}
	swaggerEnabled, err := strconv.ParseBool(getEnv("SWAGGER_ENABLED", swaggerDefault))
	if err != nil {
		return Config{}, fmt.Errorf("parse SWAGGER_ENABLED: %w", err)
	}
	metricsEnabled, err := strconv.ParseBool(getEnv("METRICS_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse METRICS_ENABLED: %w", err)
	}

	readTimeout, err := getEnvAsPositiveDuration("APP_READ_TIMEOUT", "10s")
	if err != nil {
		return Config{}, err
	}
	writeTimeout, err := getEnvAsPositiveDuration("APP_WRITE_TIMEOUT", "60s")
	if err != nil {
		return Config{}, err
	}
	shutdownTimeout, err := getEnvAsPositiveDuration("APP_SHUTDOWN_TIMEOUT", "15s")
	if err != nil {
		return Config{}, err
	}

	storageDriver := strings.ToLower(strings.TrimSpace(getEnv("STORAGE_DRIVER", StorageMemory)))
	switch storageDriver {
	case StorageMemory, StoragePostgres:
	default:
		return Config{}, fmt.Errorf("invalid STORAGE_DRIVER %q: valid values are %s, %s", storageDriver, StorageMemory, StoragePostgres)
	}
	dbURL := strings.TrimSpace(getEnv("DB_URL", ""))
	if storageDriver == StoragePostgres && dbURL == "" {
		return Config{}, fmt.Errorf("DB_URL is required when STORAGE_DRIVER=%s", StoragePostgres)
	}
	sslDefault := "false"
	if appEnv == EnvProd {
		sslDefault = "true"
	}
	dbSSLRequired, err := strconv.ParseBool(getEnv("DB_SSL_REQUIRED", sslDefault))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_SSL_REQUIRED: %w", err)
	}
	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := getEnvAsPositiveDuration("CACHE_TTL", "60s")
	if err != nil {
		return Config{}, err
	}

	freshnessWindow, err := getEnvAsPositiveDuration("FRESHNESS_WINDOW", "24h")
	if err != nil {
		return Config{}, err
	}
	fixtureWorkers, err := getEnvAsInt("FIXTURE_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse FIXTURE_WORKERS: %w", err)
	}
	if fixtureWorkers < 1 {
		return Config{}, fmt.Errorf("FIXTURE_WORKERS must be >= 1")
	}

	whoScoredTimeout, err := getEnvAsPositiveDuration("WHOSCORED_TIMEOUT", "20s")
	if err != nil {
		return Config{}, err
	}
	whoScoredCircuitEnabled, err := strconv.ParseBool(getEnv("WHOSCORED_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse WHOSCORED_CIRCUIT_ENABLED: %w", err)
	}
	whoScoredCircuitFailureCount, err := getEnvAsInt("WHOSCORED_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse WHOSCORED_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if whoScoredCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("WHOSCORED_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	whoScoredCircuitOpenTimeout, err := getEnvAsPositiveDuration("WHOSCORED_CIRCUIT_OPEN_TIMEOUT", "30s")
	if err != nil {
		return Config{}, err
	}
	whoScoredCircuitHalfOpenMax, err := getEnvAsInt("WHOSCORED_CIRCUIT_HALF_OPEN_MAX_REQ", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse WHOSCORED_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if whoScoredCircuitHalfOpenMax < 1 {
		return Config{}, fmt.Errorf("WHOSCORED_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	footballDataEnabled, err := strconv.ParseBool(getEnv("FOOTBALL_DATA_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FOOTBALL_DATA_ENABLED: %w", err)
	}
	footballDataToken := strings.TrimSpace(getEnv("FOOTBALL_DATA_TOKEN", ""))
	if footballDataEnabled && footballDataToken == "" {
		return Config{}, fmt.Errorf("FOOTBALL_DATA_TOKEN is required when FOOTBALL_DATA_ENABLED=true")
	}
	footballDataTimeout, err := getEnvAsPositiveDuration("FOOTBALL_DATA_TIMEOUT", "15s")
	if err != nil {
		return Config{}, err
	}
	footballDataCacheTTL, err := getEnvAsPositiveDuration("FOOTBALL_DATA_CACHE_TTL", "12h")
	if err != nil {
		return Config{}, err
	}

	jwtSecret := strings.TrimSpace(getEnv("JWT_SECRET", ""))
	if jwtSecret == "" {
		if appEnv == EnvProd {
			return Config{}, fmt.Errorf("JWT_SECRET is required when APP_ENV=%s", EnvProd)
		}
		jwtSecret = "dev-only-secret"
	}
	jwtExpiry, err := getEnvAsPositiveDuration("JWT_EXPIRY", "24h")
	if err != nil {
		return Config{}, err
	}

	refreshLockTTL, err := getEnvAsPositiveDuration("REFRESH_LOCK_TTL", "30s")
	if err != nil {
		return Config{}, err
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := getEnvAsPositiveDuration("PYROSCOPE_UPLOAD_RATE", "15s")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:             appEnv,
		ServiceName:        getEnv("APP_SERVICE_NAME", "futbol-api"),
		ServiceVersion:     getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:           getEnv("APP_HTTP_ADDR", ":8080"),
		ReadTimeout:        readTimeout,
		WriteTimeout:       writeTimeout,
		ShutdownTimeout:    shutdownTimeout,
		LogLevel:           logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info")),
		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		SwaggerEnabled:     swaggerEnabled,
		MetricsEnabled:     metricsEnabled,

		StorageDriver: storageDriver,
		DBURL:         dbURL,
		DBSSLRequired: dbSSLRequired,
		CacheEnabled:  cacheEnabled,
		CacheTTL:      cacheTTL,

		FreshnessWindow: freshnessWindow,
		FixtureWorkers:  fixtureWorkers,

		WhoScoredBaseURL:             strings.TrimSpace(getEnv("WHOSCORED_BASE_URL", "https://www.whoscored.com")),
		WhoScoredTimeout:             whoScoredTimeout,
		WhoScoredCircuitEnabled:      whoScoredCircuitEnabled,
		WhoScoredCircuitFailureCount: whoScoredCircuitFailureCount,
		WhoScoredCircuitOpenTimeout:  whoScoredCircuitOpenTimeout,
		WhoScoredCircuitHalfOpenMax:  whoScoredCircuitHalfOpenMax,

		FootballDataEnabled:  footballDataEnabled,
		FootballDataBaseURL:  strings.TrimSpace(getEnv("FOOTBALL_DATA_BASE_URL", "https://api.football-data.org/v4")),
		FootballDataToken:    footballDataToken,
		FootballDataTimeout:  footballDataTimeout,
		FootballDataCacheTTL: footballDataCacheTTL,

		JWTSecret: jwtSecret,
		JWTIssuer: strings.TrimSpace(getEnv("JWT_ISSUER", "futbol-api")),
		JWTExpiry: jwtExpiry,

		RedisURL:       strings.TrimSpace(getEnv("REDIS_URL", "")),
		RefreshLockTTL: refreshLockTTL,

		NATSURL:           strings.TrimSpace(getEnv("NATS_URL", "")),
		NATSSubjectPrefix: strings.TrimSpace(getEnv("NATS_SUBJECT_PREFIX", "futbol.events")),

		UptraceEnabled:             uptraceEnabled,
		UptraceDSN:                 uptraceDSN,
		PyroscopeEnabled:           pyroscopeEnabled,
		PyroscopeServerAddress:     pyroscopeServerAddress,
		PyroscopeAuthToken:         strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:        pyroscopeUploadRate,
		PprofEnabled:               pprofEnabled,
		PprofAddr:                  pprofAddr,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func getEnvAsPositiveDuration(key, fallback string) (time.Duration, error) {
	out, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if out <= 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
	}
	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
