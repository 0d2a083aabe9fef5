package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Config stores service settings.
type Config struct {
	Port      int
	Storage   Storage
	DB        DB
	Dispatch  Dispatch
	Sweeper   Sweeper
	Kafka     Kafka
	Customers Customers
	RateLimit RateLimit
	Auth      Auth
	Fare      Fare
	Pprof     Pprof
}

// Storage selects the persistence driver.
type Storage struct {
	Driver string // postgres | memory
}

// Storage drivers.
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// DB stores Postgres connection settings.
type DB struct {
	Host string
	Port string
	User string
	Pass string
	Name string
}

// DSN builds a pgx connection string.
func (d DB) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", d.User, d.Pass, d.Host, d.Port, d.Name)
}

// Dispatch stores assignment loop settings.
type Dispatch struct {
	MaxAttempts      int
	InitialRadiusKm  float64
	RadiusStepKm     float64
	Backoff          time.Duration
	CandidateLimit   int
	Workers          int
	UnrankedFallback bool
	OperationTimeout time.Duration
}

// Sweeper stores stale lock reclamation settings.
type Sweeper struct {
	LockTTL   time.Duration
	Schedule  string
	InProcess bool
}

// Kafka stores broker and topic settings. Empty Brokers disables Kafka.
type Kafka struct {
	Brokers           []string
	GroupID           string
	HeartbeatTopic    string
	NotificationTopic string
	LedgerTopic       string
}

// Enabled reports whether brokers are configured.
func (k Kafka) Enabled() bool { return len(k.Brokers) > 0 }

// Customers stores customer directory gRPC settings. Empty GRPCAddr means the
// directory is served from storage.
type Customers struct {
	GRPCAddr    string
	Seed        []string // upserted into the local directory at startup
	Timeout     time.Duration
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// RateLimit stores HTTP rate limiting settings.
type RateLimit struct {
	Enabled    bool
	Rate       float64
	Burst      int
	TTL        time.Duration
	MaxBuckets int
}

// Auth stores bearer token settings.
type Auth struct {
	JWTSecret string
}

// Fare stores pricing settings.
type Fare struct {
	TariffFile string
	TimeZone   string
}

// Pprof stores the debug listener settings.
type Pprof struct {
	Enabled bool
	Addr    string
	User    string
	Pass    string
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg := &Config{
		Port:      defaultPort,
		Storage:   Storage{Driver: DriverPostgres},
		DB:        defaultDB,
		Dispatch:  defaultDispatch,
		Sweeper:   defaultSweeper,
		Kafka:     defaultKafka,
		Customers: defaultCustomers,
		RateLimit: defaultRateLimit,
		Auth:      Auth{JWTSecret: defaultJWTSecret},
		Fare:      Fare{TimeZone: defaultTimeZone},
		Pprof:     Pprof{Addr: defaultPprofAddr},
	}

	e := envReader{}
	e.int("PORT", &cfg.Port)
	e.string("STORAGE_DRIVER", &cfg.Storage.Driver)

	e.string("POSTGRES_HOST", &cfg.DB.Host)
	e.string("POSTGRES_PORT", &cfg.DB.Port)
	e.string("POSTGRES_USER", &cfg.DB.User)
	e.string("POSTGRES_PASSWORD", &cfg.DB.Pass)
	e.string("POSTGRES_DB", &cfg.DB.Name)

	e.int("DISPATCH_MAX_ATTEMPTS", &cfg.Dispatch.MaxAttempts)
	e.float("DISPATCH_INITIAL_RADIUS_KM", &cfg.Dispatch.InitialRadiusKm)
	e.float("DISPATCH_RADIUS_STEP_KM", &cfg.Dispatch.RadiusStepKm)
	e.duration("DISPATCH_BACKOFF", &cfg.Dispatch.Backoff)
	e.int("DISPATCH_CANDIDATE_LIMIT", &cfg.Dispatch.CandidateLimit)
	e.int("DISPATCH_WORKERS", &cfg.Dispatch.Workers)
	e.bool("DISPATCH_UNRANKED_FALLBACK", &cfg.Dispatch.UnrankedFallback)
	e.duration("DISPATCH_OPERATION_TIMEOUT", &cfg.Dispatch.OperationTimeout)

	e.duration("SWEEPER_LOCK_TTL", &cfg.Sweeper.LockTTL)
	e.string("SWEEPER_SCHEDULE", &cfg.Sweeper.Schedule)
	e.bool("SWEEPER_IN_PROCESS", &cfg.Sweeper.InProcess)

	e.list("KAFKA_BROKERS", &cfg.Kafka.Brokers)
	e.string("KAFKA_GROUP_ID", &cfg.Kafka.GroupID)
	e.string("KAFKA_HEARTBEAT_TOPIC", &cfg.Kafka.HeartbeatTopic)
	e.string("KAFKA_NOTIFICATION_TOPIC", &cfg.Kafka.NotificationTopic)
	e.string("KAFKA_LEDGER_TOPIC", &cfg.Kafka.LedgerTopic)

	e.string("CUSTOMERS_GRPC_ADDR", &cfg.Customers.GRPCAddr)
	e.duration("CUSTOMERS_TIMEOUT", &cfg.Customers.Timeout)
	e.int("CUSTOMERS_MAX_ATTEMPTS", &cfg.Customers.MaxAttempts)
	e.duration("CUSTOMERS_BASE_DELAY", &cfg.Customers.BaseDelay)
	e.duration("CUSTOMERS_MAX_DELAY", &cfg.Customers.MaxDelay)
	e.list("CUSTOMERS_SEED", &cfg.Customers.Seed)

	e.bool("RATE_LIMIT_ENABLED", &cfg.RateLimit.Enabled)
	e.float("RATE_LIMIT_RATE", &cfg.RateLimit.Rate)
	e.int("RATE_LIMIT_BURST", &cfg.RateLimit.Burst)
	e.duration("RATE_LIMIT_TTL", &cfg.RateLimit.TTL)
	e.int("RATE_LIMIT_MAX_BUCKETS", &cfg.RateLimit.MaxBuckets)

	e.string("AUTH_JWT_SECRET", &cfg.Auth.JWTSecret)

	e.string("FARE_TARIFF_FILE", &cfg.Fare.TariffFile)
	e.string("FARE_TIMEZONE", &cfg.Fare.TimeZone)

	e.bool("PPROF_ENABLED", &cfg.Pprof.Enabled)
	e.string("PPROF_ADDR", &cfg.Pprof.Addr)
	e.string("PPROF_USER", &cfg.Pprof.User)
	e.string("PPROF_PASS", &cfg.Pprof.Pass)

	if e.err != nil {
		return nil, e.err
	}

	fs := pflag.CommandLine
	if fs.Lookup("port") == nil {
		fs.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
		fs.StringVar(&cfg.Fare.TariffFile, "tariff", cfg.Fare.TariffFile, "path to a fare tariff file (yaml, json or toml)")
	}
	if err := fs.Parse(os.Args[1:]); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if p, err := strconv.Atoi(c.DB.Port); err != nil || p <= 0 || p > 65535 {
		return fmt.Errorf("invalid postgres port: %q", c.DB.Port)
	}
	switch c.Storage.Driver {
	case DriverPostgres, DriverMemory:
	default:
		return fmt.Errorf("invalid storage driver: %q", c.Storage.Driver)
	}
	d := c.Dispatch
	if d.MaxAttempts <= 0 {
		return fmt.Errorf("invalid dispatch max attempts: %d", d.MaxAttempts)
	}
	if d.InitialRadiusKm <= 0 || d.RadiusStepKm < 0 {
		return fmt.Errorf("invalid dispatch radius: initial=%v step=%v", d.InitialRadiusKm, d.RadiusStepKm)
	}
	if d.Backoff < 0 || d.Workers <= 0 || d.CandidateLimit <= 0 {
		return fmt.Errorf("invalid dispatch settings: backoff=%s workers=%d candidates=%d", d.Backoff, d.Workers, d.CandidateLimit)
	}
	if c.Sweeper.LockTTL <= 0 {
		return fmt.Errorf("invalid sweeper lock ttl: %s", c.Sweeper.LockTTL)
	}
	if strings.TrimSpace(c.Sweeper.Schedule) == "" {
		return fmt.Errorf("sweeper schedule is empty")
	}
	if c.Pprof.Enabled && strings.TrimSpace(c.Pprof.Addr) == "" {
		return fmt.Errorf("pprof enabled without an address")
	}
	if _, err := time.LoadLocation(c.Fare.TimeZone); err != nil {
		return fmt.Errorf("invalid fare timezone %q: %w", c.Fare.TimeZone, err)
	}
	return nil
}

// envReader parses environment variables into typed fields and keeps the first error.
type envReader struct {
	err error
}

func (e *envReader) lookup(key string) (string, bool) {
	if e.err != nil {
		return "", false
	}
	v := strings.TrimSpace(os.Getenv(key))
	return v, v != ""
}

func (e *envReader) fail(key string, err error) {
	e.err = fmt.Errorf("parse %s: %w", key, err)
}

func (e *envReader) string(key string, dst *string) {
	if v, ok := e.lookup(key); ok {
		*dst = v
	}
}

func (e *envReader) int(key string, dst *int) {
	v, ok := e.lookup(key)
	if !ok {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.fail(key, err)
		return
	}
	*dst = n
}

func (e *envReader) float(key string, dst *float64) {
	v, ok := e.lookup(key)
	if !ok {
		return
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		e.fail(key, err)
		return
	}
	*dst = f
}

func (e *envReader) bool(key string, dst *bool) {
	v, ok := e.lookup(key)
	if !ok {
		return
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		e.fail(key, err)
		return
	}
	*dst = b
}

func (e *envReader) duration(key string, dst *time.Duration) {
	v, ok := e.lookup(key)
	if !ok {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		e.fail(key, err)
		return
	}
	*dst = d
}

func (e *envReader) list(key string, dst *[]string) {
	v, ok := e.lookup(key)
	if !ok {
		return
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	*dst = out
}
