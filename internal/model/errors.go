package model

import "errors"

// Common errors used across the application
var (
	ErrPlayerNotFound  = errors.New("player not found")
	ErrUnknownCategory = errors.New("unknown stat category")

	// Persistence errors
	ErrSnapshotNotFound = errors.New("no persisted snapshot")
	ErrCorruptRecord    = errors.New("corrupt player record")
)
