package model

import "time"

// EventType identifies the type of a game event delivered by the host runtime
type EventType string

const (
	EventPlayerConnect    EventType = "player_connect"
	EventPlayerDisconnect EventType = "player_disconnect"
	EventDamage           EventType = "damage"
	EventDeath            EventType = "death"
	EventBlockPlace       EventType = "block_place"
	EventBlockBreak       EventType = "block_break"
)

// GameEvent is the base structure for all host events
type GameEvent struct {
	Type      EventType
	Timestamp time.Time
	PlayerID  PlayerID // The player the event is about (attacker for damage)
	Username  string
	Payload   any // Type-specific data
}

// DamagePayload carries the details of a damage event.
// VictimHealth is the victim's health before the hit; the event is a kill
// when Amount >= VictimHealth.
type DamagePayload struct {
	Amount         float64
	VictimHealth   float64
	VictimIsPlayer bool
	VictimName     string
}
