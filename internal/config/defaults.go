package config

import "time"

const defaultPort = 8080

const defaultJWTSecret = "dev-secret"

const defaultTimeZone = "Africa/Johannesburg"

const defaultPprofAddr = "127.0.0.1:6060"

var defaultDB = DB{
	Host: "127.0.0.1",
	Port: "5432",
	User: "myuser",
	Pass: "mypassword",
	Name: "dispatch",
}

var defaultDispatch = Dispatch{
	MaxAttempts:      3,
	InitialRadiusKm:  5,
	RadiusStepKm:     2,
	Backoff:          2 * time.Second,
	CandidateLimit:   5,
	Workers:          64,
	UnrankedFallback: false,
	OperationTimeout: 3 * time.Second,
}

var defaultSweeper = Sweeper{
	LockTTL:  10 * time.Minute,
	Schedule: "@every 30s",
}

var defaultKafka = Kafka{
	GroupID:           "rider-dispatch-worker",
	HeartbeatTopic:    "courier.heartbeats",
	NotificationTopic: "dispatch.notifications",
	LedgerTopic:       "dispatch.ledger",
}

var defaultCustomers = Customers{
	Timeout:     2 * time.Second,
	MaxAttempts: 4,
	BaseDelay:   150 * time.Millisecond,
	MaxDelay:    time.Second,
}

var defaultRateLimit = RateLimit{
	Enabled:    true,
	Rate:       10,
	Burst:      20,
	TTL:        10 * time.Minute,
	MaxBuckets: 100000,
}

// DefaultPort returns the default port.
func DefaultPort() int {
	return defaultPort
}

// DefaultDB returns the default database settings.
func DefaultDB() DB {
	return defaultDB
}

// DefaultDispatch returns the default assignment loop settings.
func DefaultDispatch() Dispatch {
	return defaultDispatch
}

// DefaultSweeper returns the default sweeper settings.
func DefaultSweeper() Sweeper {
	return defaultSweeper
}
