package request

// ResetRequest is the request body for resetting stats
type ResetRequest struct {
	Category string `json:"category"`
}

// IngestEvent is the wire form of a host game event
type IngestEvent struct {
	Type     string `json:"type"`
	UUID     string `json:"uuid"`
	Username string `json:"username,omitempty"`
	// Timestamp is unix milliseconds; server receive time is used when zero
	Timestamp int64          `json:"timestamp,omitempty"`
	Damage    *DamageDetails `json:"damage,omitempty"`
}

// DamageDetails carries the damage-specific fields of an ingest event
type DamageDetails struct {
	Amount         float64 `json:"amount"`
	VictimHealth   float64 `json:"victimHealth"`
	VictimIsPlayer bool    `json:"victimIsPlayer"`
	VictimName     string  `json:"victimName,omitempty"`
}
