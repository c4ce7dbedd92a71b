package redis

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Key is the Redis key holding the player snapshot
	Key string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// ConnectRetries bounds the startup ping retries
	ConnectRetries uint64
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:            "redis://localhost:6379",
		Key:            "playerstats:snapshot",
		PoolSize:       10,
		MinIdleConns:   2,
		ConnectRetries: 5,
	}
}
