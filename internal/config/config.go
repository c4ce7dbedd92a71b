package config

// CurrentConfigVersion is stamped on config files for migration tracking
const CurrentConfigVersion = 2

// Config holds all service configuration. It is loaded once at startup from
// config.json, overridden by environment variables, and treated as immutable
// afterwards.
type Config struct {
	ConfigVersion int `json:"configVersion" env:"-"`

	// Cloud sync - pushes player data to a remote aggregation endpoint
	PushEnabled         bool   `json:"pushEnabled" env:"PUSH_ENABLED"`
	PushURL             string `json:"pushUrl" env:"PUSH_URL"`
	PushIntervalSeconds int    `json:"pushIntervalSeconds" env:"PUSH_INTERVAL_SECONDS"`

	// ServerName is the custom display name for this server; empty means
	// the remote end falls back to the connecting address
	ServerName string `json:"serverName" env:"SERVER_NAME"`

	// PublicListing controls whether the server appears on the public listing
	PublicListing bool `json:"publicListing" env:"PUBLIC_LISTING"`

	// Local JSON API
	WebEnabled     bool   `json:"webEnabled" env:"WEB_ENABLED"`
	WebPort        int    `json:"webPort" env:"WEB_PORT"`
	WebBindAddress string `json:"webBindAddress" env:"WEB_BIND_ADDRESS"`

	// Webhook notifications
	WebhookEnabled              bool   `json:"webhookEnabled" env:"WEBHOOK_ENABLED"`
	WebhookURL                  string `json:"webhookUrl" env:"WEBHOOK_URL"`
	WebhookPlayerJoin           bool   `json:"webhookPlayerJoin" env:"WEBHOOK_PLAYER_JOIN"`
	WebhookPlayerLeave          bool   `json:"webhookPlayerLeave" env:"WEBHOOK_PLAYER_LEAVE"`
	WebhookPlayerDeath          bool   `json:"webhookPlayerDeath" env:"WEBHOOK_PLAYER_DEATH"`
	WebhookPlayerKill           bool   `json:"webhookPlayerKill" env:"WEBHOOK_PLAYER_KILL"`
	WebhookDailyLeaderboard     bool   `json:"webhookDailyLeaderboard" env:"WEBHOOK_DAILY_LEADERBOARD"`
	WebhookDailyLeaderboardHour int    `json:"webhookDailyLeaderboardHour" env:"WEBHOOK_DAILY_LEADERBOARD_HOUR"`
	WebhookShowBranding         bool   `json:"webhookShowBranding" env:"WEBHOOK_SHOW_BRANDING"`

	// Storage selects the persistence backend ("file" or "redis").
	// Environment-only: deployment concerns stay out of config.json.
	StorageType string `json:"-" env:"STORAGE_TYPE"`
	DataFile    string `json:"-" env:"DATA_FILE"`
	RedisURL    string `json:"-" env:"REDIS_URL"`
}

// Default returns the built-in configuration used when no file exists or the
// file cannot be read.
func Default() Config {
	return Config{
		ConfigVersion:               CurrentConfigVersion,
		PushEnabled:                 true,
		PushURL:                     "https://api.hytaletravelers.com",
		PushIntervalSeconds:         30,
		ServerName:                  "",
		PublicListing:               true,
		WebEnabled:                  false,
		WebPort:                     8080,
		WebBindAddress:              "0.0.0.0",
		WebhookEnabled:              false,
		WebhookURL:                  "",
		WebhookPlayerJoin:           true,
		WebhookPlayerLeave:          true,
		WebhookPlayerDeath:          true,
		WebhookPlayerKill:           true,
		WebhookDailyLeaderboard:     true,
		WebhookDailyLeaderboardHour: 12,
		WebhookShowBranding:         true,
		StorageType:                 "file",
		DataFile:                    "data/players.json",
	}
}
